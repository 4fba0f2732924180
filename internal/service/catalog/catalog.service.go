package catalog

import (
	"context"
	"errors"
	"net/http"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/pricing"
	"transfer-storefront/internal/pkg/stock"
	catalogRepo "transfer-storefront/internal/repository/catalog"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// errorResponse maps catalog and pricing errors onto HTTP codes.
func errorResponse(err error) *types.Response {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalogRepo.ErrProductNotFound),
		errors.Is(err, catalogRepo.ErrVariantNotFound),
		errors.Is(err, catalogRepo.ErrShippingNotFound):
		code = http.StatusNotFound
	case errors.Is(err, pricing.ErrInvalidQuantity):
		code = http.StatusBadRequest
	case errors.Is(err, catalogRepo.ErrCouponNotFound),
		errors.Is(err, pricing.ErrCouponMinOrder),
		errors.Is(err, pricing.ErrNoTier):
		code = http.StatusUnprocessableEntity
	}
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = ""
	}
	return helper.ParseResponse(&types.Response{Code: code, Message: msg, Error: err})
}

func toProductResponse(p catalogRepo.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		BasePrice:   p.Pricing.BasePrice(),
		Tiers:       p.Pricing.Tiers(),
		Variants: lo.Map(p.Variants, func(v catalogRepo.Variant, _ int) VariantDTO {
			return VariantDTO{ID: v.ID, Name: v.Name}
		}),
	}
}

func (s *Service) Products(_ context.Context) *types.Response {
	return helper.ParseResponse(&types.Response{
		Data: lo.Map(s.rp.Catalog.Products(), func(p catalogRepo.Product, _ int) ProductResponse {
			return toProductResponse(p)
		}),
	})
}

func (s *Service) Product(_ context.Context, id string) *types.Response {
	p, err := s.rp.Catalog.Product(id)
	if err != nil {
		return errorResponse(err)
	}
	return helper.ParseResponse(&types.Response{Data: toProductResponse(p)})
}

func (s *Service) Pricing(_ context.Context, id string, quantity int) *types.Response {
	p, err := s.rp.Catalog.Product(id)
	if err != nil {
		return errorResponse(err)
	}
	q, err := p.Pricing.Quote(quantity)
	if err != nil {
		return errorResponse(err)
	}
	return helper.ParseResponse(&types.Response{Data: q})
}

func (s *Service) Coupons(_ context.Context) *types.Response {
	return helper.ParseResponse(&types.Response{Data: s.rp.Catalog.Coupons()})
}

func (s *Service) ShippingOptions(_ context.Context, subtotal decimal.Decimal) *types.Response {
	return helper.ParseResponse(&types.Response{
		Data: lo.Map(s.rp.Catalog.ShippingOptions(), func(o pricing.ShippingOption, _ int) ShippingOptionResponse {
			return ShippingOptionResponse{ShippingOption: o, Available: o.Available(subtotal)}
		}),
	})
}

func (s *Service) Quote(_ context.Context, req *QuoteRequest) *types.Response {
	p, err := s.rp.Catalog.Product(req.ProductID)
	if err != nil {
		return errorResponse(err)
	}
	q, err := p.Pricing.Quote(req.Quantity)
	if err != nil {
		return errorResponse(err)
	}

	out := QuoteResponse{
		ProductID: p.ID,
		Pricing:   q,
		Subtotal:  q.Total,
		Discount:  decimal.Zero,
		Shipping:  decimal.Zero,
	}

	if req.CouponCode != "" {
		c, err := s.rp.Catalog.Coupon(req.CouponCode)
		if err != nil {
			return errorResponse(err)
		}
		if out.Discount, err = c.Discount(out.Subtotal); err != nil {
			return errorResponse(err)
		}
		out.Coupon = c.Code
	}

	if req.ShippingOptionID != "" {
		opt, err := s.rp.Catalog.ShippingOption(req.ShippingOptionID)
		if err != nil {
			return errorResponse(err)
		}
		// The free-shipping threshold applies to the discounted amount.
		if !opt.Available(out.Subtotal.Sub(out.Discount)) {
			return helper.ParseResponse(&types.Response{
				Code:    http.StatusUnprocessableEntity,
				Message: "Shipping option " + opt.ID + " needs a subtotal of " + opt.MinSubtotal.StringFixed(2),
			})
		}
		out.Shipping = opt.Price
	}

	out.Total = out.Subtotal.Sub(out.Discount).Add(out.Shipping).Round(2)
	return helper.ParseResponse(&types.Response{Data: out})
}

// Stock reads the simulated level, creating the state on first access and
// persisting it again whenever a cycle rolled over.
func (s *Service) Stock(_ context.Context, productID, variantID string) *types.Response {
	p, err := s.rp.Catalog.Product(productID)
	if err != nil {
		return errorResponse(err)
	}
	v, err := p.Variant(variantID)
	if err != nil {
		return errorResponse(err)
	}

	now := s.now().UTC()
	state, found, err := s.rp.Stock.Get(p.ID, v.ID)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to read stock", Error: err})
	}
	dirty := !found
	if !found {
		state = stock.NewState(v.StockMax, now)
	}

	snap, next, changed := s.stock.Current(state, now)
	if dirty || changed {
		if err := s.rp.Stock.Save(p.ID, v.ID, next); err != nil {
			return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to save stock", Error: err})
		}
	}

	return helper.ParseResponse(&types.Response{Data: StockResponse{ProductID: p.ID, VariantID: v.ID, Snapshot: snap}})
}
