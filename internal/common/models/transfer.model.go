package models

import (
	"encoding/json"
	"time"
	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/pkg/logger"

	"github.com/shopspring/decimal"
)

type StatusChange struct {
	Status enum.TransferStatusEnum `json:"status"`
	At     time.Time               `json:"at"`
	Note   string                  `json:"note,omitempty"`
}

type Transfer struct {
	ID                string                  `json:"id" gorm:"type:varchar(36);primaryKey"`
	TrackingCode      string                  `json:"tracking_code" gorm:"type:varchar(32);uniqueIndex;not null"`
	WizardID          string                  `json:"wizard_id" gorm:"type:varchar(36);index"`
	SenderEmail       string                  `json:"sender_email" gorm:"type:varchar(255);index"`
	Amount            decimal.Decimal         `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency          string                  `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	ReceiverFirstName string                  `json:"receiver_first_name" gorm:"type:varchar(100)"`
	ReceiverLastName  string                  `json:"receiver_last_name" gorm:"type:varchar(100)"`
	ReceiverPhone     string                  `json:"receiver_phone" gorm:"type:varchar(50)"`
	ReceiverAddress   string                  `json:"receiver_address" gorm:"type:text"`
	ReceiverCity      string                  `json:"receiver_city" gorm:"type:varchar(100)"`
	ReceiverCountry   string                  `json:"receiver_country" gorm:"type:varchar(2)"`
	PaymentMethod     enum.PaymentMethodEnum  `json:"payment_method" gorm:"type:varchar(20);not null"`
	ProviderReference string                  `json:"provider_reference" gorm:"type:varchar(255)"`
	Status            enum.TransferStatusEnum `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	FailureReason     string                  `json:"failure_reason,omitempty" gorm:"type:text"`
	Timeline          JSONB                   `json:"timeline" gorm:"type:json"`
	ReceiptKey        string                  `json:"receipt_key,omitempty" gorm:"type:varchar(255)"`
	CreatedAt         time.Time               `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time               `json:"updated_at" gorm:"autoUpdateTime"`
	PaidAt            *time.Time              `json:"paid_at"`
}

func (Transfer) TableName() string {
	return "transfers"
}

func (t *Transfer) ReceiverName() string {
	return t.ReceiverFirstName + " " + t.ReceiverLastName
}

// AppendStatus records a status change on the timeline and sets the status.
func (t *Transfer) AppendStatus(status enum.TransferStatusEnum, at time.Time, note string) {
	history := t.History()
	history = append(history, StatusChange{Status: status, At: at, Note: note})
	raw, _ := json.Marshal(history)
	t.Timeline = JSONB(raw)
	t.Status = status
}

func (t *Transfer) History() []StatusChange {
	var history []StatusChange
	if len(t.Timeline) == 0 {
		return history
	}
	if err := json.Unmarshal(t.Timeline, &history); err != nil {
		logger.Warning.Printf("transfer %s has an unreadable timeline: %v", t.ID, err)
		return nil
	}
	return history
}
