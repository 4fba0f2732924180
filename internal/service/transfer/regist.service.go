package transfer

import (
	"context"
	"errors"
	"time"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/moncash"
	"transfer-storefront/internal/pkg/paypal"
	"transfer-storefront/internal/pkg/rabbitmq"
	s3aws "transfer-storefront/internal/pkg/storage/s3"
	"transfer-storefront/internal/repository"
	transferRepo "transfer-storefront/internal/repository/transfer"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

var (
	ErrStepIncomplete = errors.New("current step is incomplete")
	ErrLastStep       = errors.New("wizard is already on the last step")
	ErrFirstStep      = errors.New("wizard is already on the first step")
	ErrWrongStep      = errors.New("operation not allowed on the current step")
	ErrWizardLocked   = errors.New("a payment is in progress for this transfer")
	ErrAlreadyPaid    = errors.New("transfer is already paid")
	ErrMethodMismatch = errors.New("payment method does not match the wizard")
	ErrUnknownCountry = errors.New("receiver country is not supported")
)

type Config struct {
	MaxAmount   decimal.Decimal
	Currency    string
	FrontendURL string
}

type Service struct {
	rp        repository.IRepository
	cfg       Config
	paypal    paypal.IPayPal
	moncash   moncash.IMonCash
	storage   s3aws.Is3
	publisher rabbitmq.IPublisher
	now       func() time.Time
}

type IService interface {
	StartWizard(ctx context.Context, req *StartWizardRequest) *types.Response
	GetWizard(ctx context.Context, id string) *types.Response
	PatchWizard(ctx context.Context, id string, req *PatchWizardRequest) *types.Response
	Next(ctx context.Context, id string) *types.Response
	Back(ctx context.Context, id string) *types.Response

	Pay(ctx context.Context, id string) *types.Response
	CapturePayPal(ctx context.Context, id string) *types.Response
	MonCashReturn(ctx context.Context, transactionID string) *types.Response
	ApplyPaymentResult(ctx context.Context, res types.PaymentResult) (bool, error)
	FinalizeTransfer(ctx context.Context, res types.PaymentResult) (bool, error)
	HandlePaymentResult(ctx context.Context, msg *amqp.Delivery) error
	Receipt(ctx context.Context, id string) *types.Response

	History(ctx context.Context, user types.UserWithAuth, q transferRepo.Query) *types.Response
	Track(ctx context.Context, code string) *types.Response
}

// NewService wires the transfer flow. Providers, storage and publisher may be
// nil: the matching payment method is then unavailable, receipts are not
// uploaded and results are finalized in-process.
func NewService(
	rp repository.IRepository,
	cfg Config,
	paypalClient paypal.IPayPal,
	moncashClient moncash.IMonCash,
	storage s3aws.Is3,
	publisher rabbitmq.IPublisher,
) IService {
	if cfg.MaxAmount.IsZero() {
		cfg.MaxAmount = decimal.NewFromInt(5000)
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return &Service{
		rp:        rp,
		cfg:       cfg,
		paypal:    paypalClient,
		moncash:   moncashClient,
		storage:   storage,
		publisher: publisher,
		now:       time.Now,
	}
}

// Request/Response DTOs

type StartWizardRequest struct {
	SenderEmail string `json:"sender_email" validate:"omitempty,emailaddr"`
	Amount      string `json:"amount" validate:"omitempty,decimal"`
}

type ReceiverPatch struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	Country   *string `json:"country" validate:"omitempty,max=56"`
}

type PatchWizardRequest struct {
	Amount        *string                 `json:"amount" validate:"omitempty,max=20"`
	Receiver      *ReceiverPatch          `json:"receiver"`
	PaymentMethod *enum.PaymentMethodEnum `json:"payment_method" validate:"omitempty,enum"`
	SenderEmail   *string                 `json:"sender_email" validate:"omitempty,emailaddr"`
}

type WizardResponse struct {
	*models.WizardSession
	CanAdvance bool     `json:"can_advance"`
	Missing    []string `json:"missing,omitempty"`
}

type StepIncompleteResponse struct {
	Step    string   `json:"step"`
	Missing []string `json:"missing"`
}

type PayResponse struct {
	TransferID   string                 `json:"transfer_id"`
	TrackingCode string                 `json:"tracking_code"`
	Method       enum.PaymentMethodEnum `json:"method"`
	OrderID      string                 `json:"order_id,omitempty"`
	ClientToken  string                 `json:"client_token,omitempty"`
	RedirectURL  string                 `json:"redirect_url,omitempty"`
}

type MonCashReturnResponse struct {
	RedirectURL string `json:"redirect_url"`
	Success     bool   `json:"success"`
}

type ReceiptResponse struct {
	TrackingCode  string                  `json:"tracking_code"`
	Status        enum.TransferStatusEnum `json:"status"`
	Amount        string                  `json:"amount"`
	Currency      string                  `json:"currency"`
	ReceiverName  string                  `json:"receiver_name"`
	ReceiverPhone string                  `json:"receiver_phone"`
	Destination   string                  `json:"destination"`
	PaymentMethod enum.PaymentMethodEnum  `json:"payment_method"`
	Reference     string                  `json:"reference,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	PaidAt        *time.Time              `json:"paid_at,omitempty"`
	URL           string                  `json:"url,omitempty"`
}

type TrackResponse struct {
	TrackingCode  string                  `json:"tracking_code"`
	Status        enum.TransferStatusEnum `json:"status"`
	Amount        decimal.Decimal         `json:"amount"`
	Currency      string                  `json:"currency"`
	ReceiverName  string                  `json:"receiver_name"`
	ReceiverCity  string                  `json:"receiver_city"`
	PaymentMethod enum.PaymentMethodEnum  `json:"payment_method"`
	CreatedAt     time.Time               `json:"created_at"`
	PaidAt        *time.Time              `json:"paid_at,omitempty"`
	Timeline      []models.StatusChange   `json:"timeline"`
}
