package catalog

import (
	"context"
	"net/http"
	"testing"
	"time"

	"transfer-storefront/internal/pkg/pricing"
	"transfer-storefront/internal/pkg/stock"
	"transfer-storefront/internal/repository"
	catalogRepo "transfer-storefront/internal/repository/catalog"
	stockRepo "transfer-storefront/internal/repository/stock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStock struct {
	states map[string]stock.State
	saves  int
}

func (m *memStock) Get(product, variant string) (stock.State, bool, error) {
	s, ok := m.states[stockRepo.Key(product, variant)]
	return s, ok, nil
}

func (m *memStock) Save(product, variant string, s stock.State) error {
	m.states[stockRepo.Key(product, variant)] = s
	m.saves++
	return nil
}

var testStock = stock.Config{Window: 2 * time.Hour, Cooldown: 30 * time.Minute, RefillPercent: 60}

func newService(st *memStock) *Service {
	rp := repository.IRepository{Catalog: catalogRepo.NewRepo(), Stock: st}
	return NewService(rp, testStock).(*Service)
}

func TestQuote(t *testing.T) {
	svc := newService(&memStock{states: map[string]stock.State{}})
	ctx := context.Background()

	res := svc.Quote(ctx, &QuoteRequest{ProductID: "gift-box", Quantity: 3, CouponCode: "family20", ShippingOptionID: "free"})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	q := res.Data.(QuoteResponse)
	assert.Equal(t, "134.97", q.Subtotal.StringFixed(2))
	assert.Equal(t, "26.99", q.Discount.StringFixed(2))
	assert.True(t, q.Shipping.IsZero())
	assert.Equal(t, "107.98", q.Total.StringFixed(2))
	assert.Equal(t, "FAMILY20", q.Coupon)
}

func TestQuote_Errors(t *testing.T) {
	svc := newService(&memStock{states: map[string]stock.State{}})
	ctx := context.Background()

	res := svc.Quote(ctx, &QuoteRequest{ProductID: "calling-card", Quantity: 2, CouponCode: "SAVE5"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.ErrorIs(t, res.Error, pricing.ErrCouponMinOrder)

	res = svc.Quote(ctx, &QuoteRequest{ProductID: "calling-card", Quantity: 2, CouponCode: "NOPE"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.ErrorIs(t, res.Error, catalogRepo.ErrCouponNotFound)

	res = svc.Quote(ctx, &QuoteRequest{ProductID: "calling-card", Quantity: 2, ShippingOptionID: "free"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

	res = svc.Quote(ctx, &QuoteRequest{ProductID: "missing", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = svc.Pricing(ctx, "calling-card", 0)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestPricing_UnitPriceIsTierPrice(t *testing.T) {
	svc := newService(&memStock{states: map[string]stock.State{}})
	p, err := svc.rp.Catalog.Product("calling-card")
	require.NoError(t, err)

	for _, tier := range p.Pricing.Tiers() {
		hi := tier.Max
		if hi == 0 {
			hi = tier.Min + 20
		}
		for qty := tier.Min; qty <= hi; qty++ {
			res := svc.Pricing(context.Background(), p.ID, qty)
			require.Equal(t, http.StatusOK, res.Code)
			assert.True(t, tier.Price.Equal(res.Data.(pricing.Quote).UnitPrice), "qty %d", qty)
		}
	}
}

func TestShippingOptions_Availability(t *testing.T) {
	svc := newService(&memStock{states: map[string]stock.State{}})
	res := svc.ShippingOptions(context.Background(), decimal.NewFromInt(20))
	for _, o := range res.Data.([]ShippingOptionResponse) {
		assert.Equal(t, o.ID != "free", o.Available, o.ID)
	}
}

func TestStock_PersistsAndRefills(t *testing.T) {
	st := &memStock{states: map[string]stock.State{}}
	svc := newService(st)
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	res := svc.Stock(context.Background(), "gift-box", "small")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, 40, res.Data.(StockResponse).Value)
	assert.Equal(t, 1, st.saves)

	svc.now = func() time.Time { return start.Add(time.Hour) }
	res = svc.Stock(context.Background(), "gift-box", "small")
	assert.Equal(t, 20, res.Data.(StockResponse).Value)
	assert.Equal(t, 1, st.saves)

	svc.now = func() time.Time { return start.Add(testStock.Window + testStock.Cooldown) }
	res = svc.Stock(context.Background(), "gift-box", "small")
	assert.Equal(t, 24, res.Data.(StockResponse).Value)
	assert.Equal(t, stock.PhaseActive, res.Data.(StockResponse).Phase)
	assert.Equal(t, 2, st.saves)

	res = svc.Stock(context.Background(), "gift-box", "xl")
	assert.Equal(t, http.StatusNotFound, res.Code)
}
