package pricing

import (
	"errors"
	"fmt"

	"transfer-storefront/internal/common/enum"

	"github.com/shopspring/decimal"
)

var ErrCouponMinOrder = errors.New("order does not reach the coupon minimum")

var hundred = decimal.NewFromInt(100)

type Coupon struct {
	Code        string              `json:"code"`
	Description string              `json:"description"`
	Type        enum.CouponTypeEnum `json:"type"`
	Value       decimal.Decimal     `json:"value"`
	MinOrder    decimal.Decimal     `json:"min_order"`
}

// Discount is the amount taken off subtotal, never more than subtotal.
func (c Coupon) Discount(subtotal decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.LessThan(c.MinOrder) {
		return decimal.Zero, fmt.Errorf("%w: %s needs %s", ErrCouponMinOrder, c.Code, c.MinOrder.StringFixed(2))
	}
	var d decimal.Decimal
	switch c.Type {
	case enum.CouponPercentage:
		d = subtotal.Mul(c.Value).Div(hundred).Round(2)
	case enum.CouponFlat:
		d = c.Value
	default:
		return decimal.Zero, fmt.Errorf("unknown coupon type %q", c.Type)
	}
	return decimal.Min(d, subtotal), nil
}

type ShippingOption struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	MinDays int             `json:"min_days"`
	MaxDays int             `json:"max_days"`
	// MinSubtotal gates the option, e.g. free shipping above a threshold.
	MinSubtotal decimal.Decimal `json:"min_subtotal"`
}

func (s ShippingOption) Available(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(s.MinSubtotal)
}
