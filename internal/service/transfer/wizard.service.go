package transfer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/phonemask"
	wizardRepo "transfer-storefront/internal/repository/wizard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CanAdvance lists the fields that keep w from leaving its current step.
// An empty result means Next will succeed.
func CanAdvance(w *models.WizardSession, maxAmount decimal.Decimal) []string {
	var missing []string
	switch w.Step {
	case enum.StepAmount:
		amount, err := decimal.NewFromString(strings.TrimSpace(w.Amount))
		if err != nil || !amount.IsPositive() || amount.GreaterThan(maxAmount) {
			missing = append(missing, "amount")
		}
	case enum.StepRecipient:
		r := w.Receiver
		fields := []struct{ name, value string }{
			{"receiver.first_name", r.FirstName},
			{"receiver.last_name", r.LastName},
			{"receiver.phone", r.Phone},
			{"receiver.address", r.Address},
			{"receiver.city", r.City},
			{"receiver.country", r.Country},
		}
		for _, f := range fields {
			if strings.TrimSpace(f.value) == "" {
				missing = append(missing, f.name)
			}
		}
		if _, ok := phonemask.Lookup(r.Country); r.Country != "" && !ok {
			missing = append(missing, "receiver.country")
		} else if r.Phone != "" && r.Country != "" && !phonemask.Valid(r.Country, r.Phone) {
			missing = append(missing, "receiver.phone")
		}
	case enum.StepPaymentMethod:
		if !w.PaymentMethod.IsValid() {
			missing = append(missing, "payment_method")
		}
	case enum.StepPayment:
		if !w.Paid() {
			missing = append(missing, "payment")
		}
	case enum.StepReceipt:
		missing = append(missing, "receipt")
	}
	return missing
}

// inFlight is true between Pay and the first result for that attempt.
func inFlight(w *models.WizardSession) bool {
	return w.TransferID != "" && w.Result == nil
}

// normalizeCountry maps a country code or name to its ISO code.
func normalizeCountry(country string) (string, bool) {
	if strings.TrimSpace(country) == "" {
		return "", true
	}
	m, ok := phonemask.Lookup(country)
	return m.Country, ok
}

func (s *Service) view(w *models.WizardSession) WizardResponse {
	missing := CanAdvance(w, s.cfg.MaxAmount)
	if w.Step == enum.StepReceipt {
		missing = nil
	}
	return WizardResponse{WizardSession: w, CanAdvance: len(missing) == 0 && w.Step != enum.StepReceipt, Missing: missing}
}

func (s *Service) load(id string) (*models.WizardSession, *types.Response) {
	w, err := s.rp.Wizard.Get(id)
	if errors.Is(err, wizardRepo.ErrNotFound) {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Transfer wizard not found or expired", Error: err})
	}
	if err != nil {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load transfer wizard", Error: err})
	}
	return w, nil
}

func (s *Service) save(w *models.WizardSession) error {
	w.StepName = w.Step.ToString()
	w.UpdatedAt = s.now().UTC()
	return s.rp.Wizard.Save(w)
}

func (s *Service) saved(w *models.WizardSession, code int) *types.Response {
	if err := s.save(w); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to save transfer wizard", Error: err})
	}
	return helper.ParseResponse(&types.Response{Code: code, Data: s.view(w)})
}

func conflict(msg string, err error, data any) *types.Response {
	return helper.ParseResponse(&types.Response{Code: http.StatusConflict, Message: msg, Error: err, Data: data})
}

func (s *Service) StartWizard(_ context.Context, req *StartWizardRequest) *types.Response {
	now := s.now().UTC()
	w := &models.WizardSession{
		ID:          uuid.NewString(),
		Step:        enum.StepAmount,
		Amount:      strings.TrimSpace(req.Amount),
		Currency:    s.cfg.Currency,
		SenderEmail: strings.ToLower(strings.TrimSpace(req.SenderEmail)),
		CreatedAt:   now,
	}
	return s.saved(w, http.StatusCreated)
}

func (s *Service) GetWizard(_ context.Context, id string) *types.Response {
	w, res := s.load(id)
	if res != nil {
		return res
	}
	return helper.ParseResponse(&types.Response{Data: s.view(w)})
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// PatchWizard merges the given fields into the session. Fields may be set
// from any step; only Next enforces completeness.
func (s *Service) PatchWizard(_ context.Context, id string, req *PatchWizardRequest) *types.Response {
	w, res := s.load(id)
	if res != nil {
		return res
	}
	if w.Paid() {
		return conflict("Transfer is already paid", ErrAlreadyPaid, nil)
	}
	if inFlight(w) {
		return conflict("Go back to cancel the pending payment before editing", ErrWizardLocked, nil)
	}

	country := w.Receiver.Country
	if r := req.Receiver; r != nil && r.Country != nil {
		var ok bool
		if country, ok = normalizeCountry(*r.Country); !ok {
			return helper.ParseResponse(&types.Response{Code: http.StatusUnprocessableEntity, Message: "Unsupported receiver country", Error: ErrUnknownCountry})
		}
	}

	set(&w.Amount, req.Amount)
	set(&w.SenderEmail, req.SenderEmail)
	w.SenderEmail = strings.ToLower(w.SenderEmail)
	if req.PaymentMethod != nil {
		w.PaymentMethod = *req.PaymentMethod
	}
	if r := req.Receiver; r != nil {
		set(&w.Receiver.FirstName, r.FirstName)
		set(&w.Receiver.LastName, r.LastName)
		set(&w.Receiver.Address, r.Address)
		set(&w.Receiver.City, r.City)
		w.Receiver.Country = country
		set(&w.Receiver.Phone, r.Phone)
		if (r.Phone != nil || r.Country != nil) && w.Receiver.Phone != "" && w.Receiver.Country != "" {
			w.Receiver.Phone = phonemask.Format(w.Receiver.Country, w.Receiver.Phone)
		}
	}
	return s.saved(w, http.StatusOK)
}

func (s *Service) Next(_ context.Context, id string) *types.Response {
	w, res := s.load(id)
	if res != nil {
		return res
	}
	if w.Step == enum.StepReceipt {
		return conflict("Already on the last step", ErrLastStep, nil)
	}
	if missing := CanAdvance(w, s.cfg.MaxAmount); len(missing) > 0 {
		return conflict("Complete the current step first", ErrStepIncomplete, StepIncompleteResponse{
			Step:    w.Step.ToString(),
			Missing: missing,
		})
	}
	w.Step++
	return s.saved(w, http.StatusOK)
}

// Back moves one step back. Leaving the payment step while a payment is
// pending cancels that attempt's transfer.
func (s *Service) Back(ctx context.Context, id string) *types.Response {
	w, res := s.load(id)
	if res != nil {
		return res
	}
	switch {
	case w.Step == enum.StepAmount:
		return conflict("Already on the first step", ErrFirstStep, nil)
	case w.Step == enum.StepReceipt || w.Paid():
		return conflict("Transfer is already paid", ErrAlreadyPaid, nil)
	}

	if inFlight(w) {
		if err := s.cancelAttempt(ctx, w); err != nil {
			return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to cancel pending payment", Error: err})
		}
	}
	w.Step--
	return s.saved(w, http.StatusOK)
}

// applyResult records the first result of the current attempt on w and
// reports whether w changed. Results of older attempts and duplicates are
// ignored.
func applyResult(w *models.WizardSession, res types.PaymentResult, now time.Time) bool {
	if res.TransferID == "" || res.TransferID != w.TransferID || w.Result != nil {
		return false
	}
	r := res
	w.Result = &r
	if res.Success {
		w.Step = enum.StepReceipt
	}
	w.UpdatedAt = now
	return true
}
