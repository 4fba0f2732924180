package types

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	QueuePaymentResult = "transfer.payment.result"
	QueueEmailCaptured = "auth.email.captured"
)

// PaymentResult is the single typed outcome of a wizard payment, whichever
// provider produced it.
type PaymentResult struct {
	TransferID string          `json:"transfer_id"`
	WizardID   string          `json:"wizard_id"`
	Method     string          `json:"method"`
	Success    bool            `json:"success"`
	Reference  string          `json:"reference,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Error      string          `json:"error,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EmailCaptured is published when a visitor leaves their email on a lead form.
type EmailCaptured struct {
	Email      string    `json:"email"`
	Source     string    `json:"source"`
	CapturedAt time.Time `json:"captured_at"`
}
