package catalog

import (
	"errors"
	"strings"

	"transfer-storefront/internal/pkg/pricing"

	"github.com/samber/lo"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrShippingNotFound = errors.New("shipping option not found")
)

type Variant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	StockMax int    `json:"stock_max"`
}

type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Variants    []Variant      `json:"variants"`
	Pricing     *pricing.Table `json:"-"`
}

func (p Product) Variant(id string) (Variant, error) {
	v, ok := lo.Find(p.Variants, func(v Variant) bool { return v.ID == id })
	if !ok {
		return Variant{}, ErrVariantNotFound
	}
	return v, nil
}

type IRepository interface {
	Products() []Product
	Product(id string) (Product, error)
	Coupons() []pricing.Coupon
	Coupon(code string) (pricing.Coupon, error)
	ShippingOptions() []pricing.ShippingOption
	ShippingOption(id string) (pricing.ShippingOption, error)
}

// Repository serves the static catalog. It is read-only and safe for
// concurrent use.
type Repository struct {
	products []Product
	coupons  []pricing.Coupon
	shipping []pricing.ShippingOption
}

func NewRepo() IRepository {
	return &Repository{
		products: defaultProducts(),
		coupons:  defaultCoupons(),
		shipping: defaultShipping(),
	}
}

func (r *Repository) Products() []Product {
	return append([]Product(nil), r.products...)
}

func (r *Repository) Product(id string) (Product, error) {
	p, ok := lo.Find(r.products, func(p Product) bool { return p.ID == id })
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *Repository) Coupons() []pricing.Coupon {
	return append([]pricing.Coupon(nil), r.coupons...)
}

// Coupon looks codes up case-insensitively.
func (r *Repository) Coupon(code string) (pricing.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c, ok := lo.Find(r.coupons, func(c pricing.Coupon) bool { return c.Code == code })
	if !ok {
		return pricing.Coupon{}, ErrCouponNotFound
	}
	return c, nil
}

func (r *Repository) ShippingOptions() []pricing.ShippingOption {
	return append([]pricing.ShippingOption(nil), r.shipping...)
}

func (r *Repository) ShippingOption(id string) (pricing.ShippingOption, error) {
	s, ok := lo.Find(r.shipping, func(s pricing.ShippingOption) bool { return s.ID == id })
	if !ok {
		return pricing.ShippingOption{}, ErrShippingNotFound
	}
	return s, nil
}
