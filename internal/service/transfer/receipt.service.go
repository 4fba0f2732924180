package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/logger"
	transferRepo "transfer-storefront/internal/repository/transfer"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	titleCaser = cases.Title(language.English)
	printer    = message.NewPrinter(language.English)
)

func formatAmount(trx *models.Transfer) string {
	return printer.Sprintf("%.2f", trx.Amount.InexactFloat64())
}

func receiptFor(trx *models.Transfer) ReceiptResponse {
	return ReceiptResponse{
		TrackingCode:  trx.TrackingCode,
		Status:        trx.Status,
		Amount:        formatAmount(trx),
		Currency:      trx.Currency,
		ReceiverName:  titleCaser.String(strings.TrimSpace(trx.ReceiverName())),
		ReceiverPhone: trx.ReceiverPhone,
		Destination:   titleCaser.String(trx.ReceiverCity) + ", " + trx.ReceiverCountry,
		PaymentMethod: trx.PaymentMethod,
		Reference:     trx.ProviderReference,
		CreatedAt:     trx.CreatedAt,
		PaidAt:        trx.PaidAt,
	}
}

func receiptKey(trx *models.Transfer) string {
	return "receipts/" + trx.TrackingCode + ".json"
}

// storeReceipt uploads the receipt document once per transfer.
func (s *Service) storeReceipt(ctx context.Context, trx *models.Transfer) error {
	if s.storage == nil || trx.ReceiptKey != "" {
		return nil
	}
	body, err := json.Marshal(receiptFor(trx))
	if err != nil {
		return err
	}
	key := receiptKey(trx)
	if err := s.storage.UploadFile(ctx, key, body, "application/json"); err != nil {
		return err
	}
	if err := s.rp.Transfer.SetReceiptKey(ctx, trx.ID, key); err != nil {
		return err
	}
	trx.ReceiptKey = key
	return nil
}

// Receipt returns the receipt of a paid wizard, with a download link when
// receipts are stored.
func (s *Service) Receipt(ctx context.Context, id string) *types.Response {
	w, res := s.load(id)
	if res != nil {
		return res
	}
	if !w.Paid() {
		return conflict("Transfer is not paid yet", ErrWrongStep, nil)
	}

	trx, err := s.rp.Transfer.FindByID(ctx, w.TransferID)
	if errors.Is(err, transferRepo.ErrNotFound) {
		return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Transfer not found", Error: err})
	}
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load transfer", Error: err})
	}

	// The worker may not have finalized yet; the wizard result is authoritative.
	if trx.Status != enum.TransferCompleted {
		trx.Status = enum.TransferCompleted
		if trx.PaidAt == nil {
			at := w.Result.OccurredAt
			trx.PaidAt = &at
		}
		if w.Result.Reference != "" {
			trx.ProviderReference = w.Result.Reference
		}
	} else if err := s.storeReceipt(ctx, trx); err != nil {
		logger.Warning.Printf("failed to store receipt for %s: %v", trx.TrackingCode, err)
	}

	out := receiptFor(trx)
	if s.storage != nil && trx.ReceiptKey != "" {
		if out.URL, err = s.storage.GetPresignedURL(trx.ReceiptKey); err != nil {
			logger.Warning.Printf("failed to presign receipt %s: %v", trx.ReceiptKey, err)
		}
	}
	return helper.ParseResponse(&types.Response{Data: out})
}
