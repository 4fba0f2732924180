package models

import (
	"time"

	"transfer-storefront/internal/common/enum"
	types "transfer-storefront/internal/common/type"
)

type Receiver struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// WizardSession is the transfer being assembled step by step. It lives in
// redis until it expires or reaches the receipt.
type WizardSession struct {
	ID            string                 `json:"id"`
	Step          enum.WizardStepEnum    `json:"step"`
	StepName      string                 `json:"step_name"`
	Amount        string                 `json:"amount"`
	Currency      string                 `json:"currency"`
	Receiver      Receiver               `json:"receiver"`
	PaymentMethod enum.PaymentMethodEnum `json:"payment_method"`
	SenderEmail   string                 `json:"sender_email,omitempty"`

	TransferID        string `json:"transfer_id,omitempty"`
	TrackingCode      string `json:"tracking_code,omitempty"`
	ProviderReference string `json:"provider_reference,omitempty"`

	// Result is the first terminal payment outcome; later ones are ignored.
	Result *types.PaymentResult `json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Paid reports whether a successful result has been recorded.
func (w *WizardSession) Paid() bool {
	return w.Result != nil && w.Result.Success
}
