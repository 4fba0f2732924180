package enum

/*----------- TransferStatusEnum -----------*/

type TransferStatusEnum string

const (
	TransferPending    TransferStatusEnum = "pending"
	TransferProcessing TransferStatusEnum = "processing"
	TransferCompleted  TransferStatusEnum = "completed"
	TransferFailed     TransferStatusEnum = "failed"
	TransferCancelled  TransferStatusEnum = "cancelled"
)

func (e TransferStatusEnum) ToString() string {
	return string(e)
}

func (e TransferStatusEnum) IsValid() bool {
	switch e {
	case TransferPending, TransferProcessing, TransferCompleted, TransferFailed, TransferCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further payment result may change the status.
func (e TransferStatusEnum) IsTerminal() bool {
	switch e {
	case TransferCompleted, TransferFailed, TransferCancelled:
		return true
	}
	return false
}

/*----------- PaymentMethodEnum -----------*/

type PaymentMethodEnum string

const (
	PaymentPayPal  PaymentMethodEnum = "paypal"
	PaymentMonCash PaymentMethodEnum = "moncash"
)

func (e PaymentMethodEnum) ToString() string {
	return string(e)
}

func (e PaymentMethodEnum) IsValid() bool {
	switch e {
	case PaymentPayPal, PaymentMonCash:
		return true
	}
	return false
}

/*----------- WizardStepEnum -----------*/

type WizardStepEnum int

const (
	StepAmount WizardStepEnum = iota
	StepRecipient
	StepPaymentMethod
	StepPayment
	StepReceipt
)

func (e WizardStepEnum) ToString() string {
	switch e {
	case StepAmount:
		return "amount"
	case StepRecipient:
		return "recipient"
	case StepPaymentMethod:
		return "payment_method"
	case StepPayment:
		return "payment"
	case StepReceipt:
		return "receipt"
	}
	return ""
}

func (e WizardStepEnum) IsValid() bool {
	return e >= StepAmount && e <= StepReceipt
}

/*----------- CouponTypeEnum -----------*/

type CouponTypeEnum string

const (
	CouponPercentage CouponTypeEnum = "percentage"
	CouponFlat       CouponTypeEnum = "flat"
)

func (e CouponTypeEnum) IsValid() bool {
	switch e {
	case CouponPercentage, CouponFlat:
		return true
	}
	return false
}
