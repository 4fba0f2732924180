package catalog

import (
	"context"
	"time"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/pricing"
	"transfer-storefront/internal/pkg/stock"
	"transfer-storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type Service struct {
	rp    repository.IRepository
	stock stock.Config
	now   func() time.Time
}

type IService interface {
	Products(ctx context.Context) *types.Response
	Product(ctx context.Context, id string) *types.Response
	Pricing(ctx context.Context, id string, quantity int) *types.Response
	Coupons(ctx context.Context) *types.Response
	ShippingOptions(ctx context.Context, subtotal decimal.Decimal) *types.Response
	Quote(ctx context.Context, req *QuoteRequest) *types.Response
	Stock(ctx context.Context, productID, variantID string) *types.Response
}

func NewService(rp repository.IRepository, stockCfg stock.Config) IService {
	return &Service{
		rp:    rp,
		stock: stockCfg,
		now:   time.Now,
	}
}

// Request/Response DTOs

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Tiers       []pricing.Tier  `json:"tiers"`
	Variants    []VariantDTO    `json:"variants"`
}

type VariantDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ShippingOptionResponse struct {
	pricing.ShippingOption
	Available bool `json:"available"`
}

type QuoteRequest struct {
	ProductID        string `json:"product_id" validate:"required"`
	Quantity         int    `json:"quantity" validate:"required,min=1"`
	CouponCode       string `json:"coupon_code" validate:"omitempty,max=32"`
	ShippingOptionID string `json:"shipping_option_id" validate:"omitempty"`
}

type QuoteResponse struct {
	ProductID string          `json:"product_id"`
	Pricing   pricing.Quote   `json:"pricing"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Coupon    string          `json:"coupon,omitempty"`
	Discount  decimal.Decimal `json:"discount"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

type StockResponse struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	stock.Snapshot
}
