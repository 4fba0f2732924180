package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/logger"
	"transfer-storefront/internal/pkg/middleware"
	"transfer-storefront/internal/pkg/moncash"
	"transfer-storefront/internal/pkg/paypal"
	"transfer-storefront/internal/pkg/rabbitmq"
	transferRepo "transfer-storefront/internal/repository/transfer"
	wizardRepo "transfer-storefront/internal/repository/wizard"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const trackingAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newTrackingCode() (string, error) {
	id, err := gonanoid.Generate(trackingAlphabet, 8)
	if err != nil {
		return "", err
	}
	return "TRK" + id, nil
}

func badGateway(msg string, err error) *types.Response {
	return helper.ParseResponse(&types.Response{Code: http.StatusBadGateway, Message: msg, Error: err})
}

// attemptTransfer returns the pending transfer of the current attempt, or
// creates one when there is none or the last attempt already has a result.
func (s *Service) attemptTransfer(ctx context.Context, w *models.WizardSession) (*models.Transfer, error) {
	if inFlight(w) {
		trx, err := s.rp.Transfer.FindByID(ctx, w.TransferID)
		if err == nil && !trx.Status.IsTerminal() {
			return trx, nil
		}
		if err != nil && !errors.Is(err, transferRepo.ErrNotFound) {
			return nil, err
		}
	}

	amount, err := decimal.NewFromString(w.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", w.Amount, err)
	}
	code, err := newTrackingCode()
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	trx := &models.Transfer{
		ID:                uuid.NewString(),
		TrackingCode:      code,
		WizardID:          w.ID,
		SenderEmail:       w.SenderEmail,
		Amount:            amount.Round(2),
		Currency:          w.Currency,
		ReceiverFirstName: w.Receiver.FirstName,
		ReceiverLastName:  w.Receiver.LastName,
		ReceiverPhone:     w.Receiver.Phone,
		ReceiverAddress:   w.Receiver.Address,
		ReceiverCity:      w.Receiver.City,
		ReceiverCountry:   w.Receiver.Country,
		PaymentMethod:     w.PaymentMethod,
		CreatedAt:         now,
	}
	if trx.Currency == "" {
		trx.Currency = s.cfg.Currency
	}
	trx.AppendStatus(enum.TransferPending, now, "payment initiated")
	if err := s.rp.Transfer.Create(ctx, trx); err != nil {
		return nil, err
	}

	w.TransferID = trx.ID
	w.TrackingCode = trx.TrackingCode
	w.ProviderReference = ""
	w.Result = nil
	return trx, nil
}

// Pay starts a payment for the wizard with its chosen method.
func (s *Service) Pay(ctx context.Context, id string) *types.Response {
	w, res := s.load(id)
	if res != nil {
		return res
	}
	if w.Paid() {
		return conflict("Transfer is already paid", ErrAlreadyPaid, nil)
	}
	if w.Step != enum.StepPayment {
		return conflict("Payment can only start on the payment step", ErrWrongStep, nil)
	}

	switch w.PaymentMethod {
	case enum.PaymentPayPal:
		if s.paypal == nil {
			return helper.ParseResponse(&types.Response{Code: http.StatusServiceUnavailable, Message: "PayPal is not available", Error: paypal.ErrNotConfigured})
		}
	case enum.PaymentMonCash:
		if s.moncash == nil {
			return helper.ParseResponse(&types.Response{Code: http.StatusServiceUnavailable, Message: "MonCash is not available", Error: moncash.ErrNotConfigured})
		}
	default:
		return conflict("Choose a payment method first", ErrStepIncomplete, nil)
	}

	trx, err := s.attemptTransfer(ctx, w)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to create transfer", Error: err})
	}
	if err := s.save(w); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to save transfer wizard", Error: err})
	}

	out := PayResponse{TransferID: trx.ID, TrackingCode: trx.TrackingCode, Method: w.PaymentMethod}

	switch w.PaymentMethod {
	case enum.PaymentPayPal:
		token, err := s.paypal.ClientToken(ctx)
		if err != nil {
			return badGateway("Failed to get PayPal client token", err)
		}
		order, err := s.paypal.CreateOrder(ctx, paypal.CreateOrderInput{
			ReferenceID: trx.ID,
			Amount:      trx.Amount,
			Currency:    trx.Currency,
			Description: "Money transfer " + trx.TrackingCode,
		})
		if err != nil {
			return badGateway("Failed to create PayPal order", err)
		}
		out.OrderID = order.ID
		out.ClientToken = token
		w.ProviderReference = order.ID

	case enum.PaymentMonCash:
		link, err := s.moncash.CreatePayment(ctx, trx.TrackingCode, trx.Amount)
		if err != nil {
			return badGateway("Failed to create MonCash payment", err)
		}
		out.RedirectURL = link.RedirectURL
		w.ProviderReference = link.Token
	}

	trx.ProviderReference = w.ProviderReference
	if err := s.rp.Transfer.Update(ctx, trx); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to update transfer", Error: err})
	}
	if err := s.save(w); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to save transfer wizard", Error: err})
	}

	logger.Z().Info("payment started",
		zap.String("wizard_id", w.ID),
		zap.String("transfer_id", trx.ID),
		zap.String("method", w.PaymentMethod.ToString()),
	)
	return helper.ParseResponse(&types.Response{Data: out})
}

// declined reports whether a PayPal error is the payer's instrument being
// refused rather than a transport or server problem.
func declined(err error) (*paypal.APIError, bool) {
	var apiErr *paypal.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr, true
	}
	return nil, false
}

func (s *Service) CapturePayPal(ctx context.Context, id string) *types.Response {
	w, res := s.load(id)
	if res != nil {
		return res
	}
	if w.PaymentMethod != enum.PaymentPayPal {
		return conflict("Wizard is not paying with PayPal", ErrMethodMismatch, nil)
	}
	if w.Result != nil {
		if _, err := s.ApplyPaymentResult(ctx, *w.Result); err != nil {
			return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to record payment result", Error: err})
		}
		return helper.ParseResponse(&types.Response{Data: s.view(w)})
	}
	if w.TransferID == "" || w.ProviderReference == "" {
		return conflict("Start the payment before capturing it", ErrWrongStep, nil)
	}
	if s.paypal == nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusServiceUnavailable, Message: "PayPal is not available", Error: paypal.ErrNotConfigured})
	}

	result := types.PaymentResult{
		TransferID: w.TransferID,
		WizardID:   w.ID,
		Method:     enum.PaymentPayPal.ToString(),
		OccurredAt: s.now().UTC(),
	}
	amount, err := decimal.NewFromString(w.Amount)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Wizard amount is corrupt", Error: err})
	}
	result.Amount = amount

	order, err := s.paypal.CaptureOrder(ctx, w.ProviderReference, w.TransferID)
	switch apiErr, ok := declined(err); {
	case err == nil:
		result.Success = order.Status == paypal.StatusCompleted
		result.Reference = order.CaptureID()
		if !result.Success {
			result.Error = "order status " + order.Status
		}
	case ok:
		result.Error = apiErr.Message
	default:
		return badGateway("Failed to capture PayPal order", err)
	}

	if _, err := s.ApplyPaymentResult(ctx, result); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to record payment result", Error: err})
	}
	return s.GetWizard(ctx, id)
}

func (s *Service) frontendURL(path string, q url.Values) string {
	return strings.TrimRight(s.cfg.FrontendURL, "/") + path + "?" + q.Encode()
}

// MonCashReturn verifies the transaction MonCash redirected back with and
// returns where to send the browser next.
func (s *Service) MonCashReturn(ctx context.Context, transactionID string) *types.Response {
	fail := func(code int, reason string, err error) *types.Response {
		return helper.ParseResponse(&types.Response{
			Code:    code,
			Message: reason,
			Error:   err,
			Data: MonCashReturnResponse{
				RedirectURL: s.frontendURL("/transfer/receipt", url.Values{"status": {"error"}, "reason": {reason}}),
			},
		})
	}
	if transactionID == "" {
		return fail(http.StatusBadRequest, "missing transaction id", nil)
	}
	if s.moncash == nil {
		return fail(http.StatusServiceUnavailable, "moncash unavailable", moncash.ErrNotConfigured)
	}

	payment, err := s.moncash.RetrieveTransaction(ctx, transactionID)
	if err != nil && !errors.Is(err, moncash.ErrNotFound) {
		return fail(http.StatusBadGateway, "verification failed", err)
	}
	if payment == nil {
		return fail(http.StatusNotFound, "transaction not found", err)
	}

	trx, err := s.rp.Transfer.FindByTrackingCode(ctx, payment.Reference)
	if errors.Is(err, transferRepo.ErrNotFound) {
		return fail(http.StatusNotFound, "unknown order", err)
	}
	if err != nil {
		return fail(http.StatusInternalServerError, "lookup failed", err)
	}

	result := types.PaymentResult{
		TransferID: trx.ID,
		WizardID:   trx.WizardID,
		Method:     enum.PaymentMonCash.ToString(),
		Success:    payment.Successful(),
		Reference:  payment.TransactionID,
		Amount:     payment.Cost,
		OccurredAt: s.now().UTC(),
	}
	switch {
	case !result.Success:
		result.Error = "moncash payment " + payment.Message
	case !payment.Cost.Equal(trx.Amount):
		result.Success = false
		result.Error = fmt.Sprintf("amount mismatch: paid %s, expected %s", payment.Cost.StringFixed(2), trx.Amount.StringFixed(2))
	}

	if _, err := s.ApplyPaymentResult(ctx, result); err != nil {
		return fail(http.StatusInternalServerError, "failed to record payment", err)
	}

	trx, err = s.rp.Transfer.FindByID(ctx, trx.ID)
	if err != nil {
		return fail(http.StatusInternalServerError, "lookup failed", err)
	}
	success := result.Success
	status := "success"
	switch {
	case trx.Status == enum.TransferCompleted:
		success = true
	case trx.Status.IsTerminal() && result.Success:
		logger.Error.Printf("moncash transaction %s paid transfer %s after it was %s, refund required", payment.TransactionID, trx.ID, trx.Status)
		return fail(http.StatusConflict, "payment received for a closed transfer", ErrWrongStep)
	case trx.Status.IsTerminal():
		success = false
	}
	if !success {
		status = "failed"
	}
	return helper.ParseResponse(&types.Response{
		Code: http.StatusFound,
		Data: MonCashReturnResponse{
			Success: success,
			RedirectURL: s.frontendURL("/transfer/receipt", url.Values{
				"wizard":   {trx.WizardID},
				"tracking": {trx.TrackingCode},
				"status":   {status},
			}),
		},
	})
}

// ApplyPaymentResult is the single entry point for payment outcomes. It
// records res on the wizard (first result of the attempt wins) and hands it
// to the payment result queue, or finalizes the transfer directly when no
// publisher is configured. It reports whether the wizard changed.
func (s *Service) ApplyPaymentResult(ctx context.Context, res types.PaymentResult) (bool, error) {
	if res.OccurredAt.IsZero() {
		res.OccurredAt = s.now().UTC()
	}

	applied := false
	w, err := s.rp.Wizard.Get(res.WizardID)
	switch {
	case err == nil:
		if applyResult(w, res, s.now().UTC()) {
			if err := s.save(w); err != nil {
				return false, err
			}
			applied = true
			break
		}
		if w.Result == nil || w.Result.TransferID != res.TransferID {
			logger.Warning.Printf("ignoring result for transfer %s, wizard %s moved on", res.TransferID, w.ID)
			return false, nil
		}
		// The attempt already has its result; finish the handoff if the
		// transfer never got it.
		trx, err := s.rp.Transfer.FindByID(ctx, res.TransferID)
		if err != nil {
			return false, err
		}
		if trx.Status.IsTerminal() {
			return false, nil
		}
		res = *w.Result
	case errors.Is(err, wizardRepo.ErrNotFound):
		logger.Warning.Printf("wizard %s expired before its payment result arrived", res.WizardID)
	default:
		return false, err
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, types.QueuePaymentResult, "PaymentResult", res)
		if err == nil {
			return applied, nil
		}
		logger.Warning.Printf("failed to publish payment result, finalizing inline: %v", err)
	}
	_, err = s.FinalizeTransfer(ctx, res)
	return applied, err
}

// FinalizeTransfer writes the terminal status for res onto its transfer. The
// first terminal status wins; it reports whether this call wrote it.
func (s *Service) FinalizeTransfer(ctx context.Context, res types.PaymentResult) (bool, error) {
	trx, err := s.rp.Transfer.FindByID(ctx, res.TransferID)
	if err != nil {
		return false, err
	}
	if trx.Status.IsTerminal() {
		return false, nil
	}

	status := enum.TransferFailed
	note := res.Error
	if res.Success {
		status = enum.TransferCompleted
		note = "paid with " + res.Method
		at := res.OccurredAt
		trx.PaidAt = &at
	} else {
		trx.FailureReason = res.Error
	}
	if res.Reference != "" {
		trx.ProviderReference = res.Reference
	}
	trx.AppendStatus(status, res.OccurredAt, note)

	applied, err := s.rp.Transfer.ApplyOutcome(ctx, trx)
	if err != nil || !applied {
		return false, err
	}

	result := "failed"
	if res.Success {
		result = "success"
	}
	middleware.PaymentsTotal.WithLabelValues(res.Method, result).Inc()
	logger.Z().Info("transfer finalized",
		zap.String("transfer_id", trx.ID),
		zap.String("status", status.ToString()),
	)

	if res.Success {
		if err := s.storeReceipt(ctx, trx); err != nil {
			logger.Warning.Printf("failed to store receipt for %s: %v", trx.TrackingCode, err)
		}
	}
	return true, nil
}

func (s *Service) cancelAttempt(ctx context.Context, w *models.WizardSession) error {
	trx, err := s.rp.Transfer.FindByID(ctx, w.TransferID)
	if err != nil && !errors.Is(err, transferRepo.ErrNotFound) {
		return err
	}
	if trx != nil && !trx.Status.IsTerminal() {
		trx.AppendStatus(enum.TransferCancelled, s.now().UTC(), "cancelled by sender")
		applied, err := s.rp.Transfer.ApplyOutcome(ctx, trx)
		if err != nil {
			return err
		}
		if applied {
			middleware.PaymentsTotal.WithLabelValues(trx.PaymentMethod.ToString(), "cancelled").Inc()
		}
	}
	w.TransferID = ""
	w.TrackingCode = ""
	w.ProviderReference = ""
	w.Result = nil
	return nil
}

// HandlePaymentResult consumes the payment result queue.
func (s *Service) HandlePaymentResult(ctx context.Context, msg *amqp.Delivery) error {
	res, err := rabbitmq.Decode[types.PaymentResult](msg)
	if err != nil {
		return fmt.Errorf("%w: %v", rabbitmq.ErrPermanent, err)
	}
	if _, err := s.FinalizeTransfer(ctx, *res); err != nil {
		if errors.Is(err, transferRepo.ErrNotFound) {
			return fmt.Errorf("%w: %v", rabbitmq.ErrPermanent, err)
		}
		return err
	}
	return nil
}
