package pricing

import (
	"testing"

	"transfer-storefront/internal/common/enum"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bundleTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]Tier{
		{Min: 1, Max: 1, Price: d("49.99")},
		{Min: 2, Max: 3, Price: d("44.99"), Discount: 10},
		{Min: 4, Max: 9, Price: d("39.99"), Discount: 20},
		{Min: 10, Max: 0, Price: d("34.99"), Discount: 30},
	})
	require.NoError(t, err)
	return table
}

func TestTierFor_EveryQuantityGetsItsTierPrice(t *testing.T) {
	table := bundleTable(t)
	for _, tier := range table.Tiers() {
		hi := tier.Max
		if hi == 0 {
			hi = tier.Min + 50
		}
		for qty := tier.Min; qty <= hi; qty++ {
			got, err := table.TierFor(qty)
			require.NoError(t, err)
			assert.True(t, got.Price.Equal(tier.Price), "qty %d", qty)
		}
	}
}

func TestTierFor_Errors(t *testing.T) {
	table := bundleTable(t)
	_, err := table.TierFor(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	bounded, err := NewTable([]Tier{{Min: 1, Max: 5, Price: d("1")}})
	require.NoError(t, err)
	_, err = bounded.TierFor(6)
	assert.ErrorIs(t, err, ErrNoTier)
}

func TestQuote(t *testing.T) {
	q, err := bundleTable(t).Quote(3)
	require.NoError(t, err)
	assert.Equal(t, "134.97", q.Total.StringFixed(2))
	assert.Equal(t, "15.00", q.Savings.StringFixed(2))
	assert.Equal(t, 10, q.Tier.Discount)
}

func TestNewTable_Validation(t *testing.T) {
	cases := map[string][]Tier{
		"empty":      nil,
		"overlap":    {{Min: 1, Max: 3, Price: d("1")}, {Min: 3, Max: 5, Price: d("1")}},
		"unordered":  {{Min: 4, Max: 5, Price: d("1")}, {Min: 1, Max: 3, Price: d("1")}},
		"zero price": {{Min: 1, Max: 1, Price: decimal.Zero}},
		"unbounded":  {{Min: 1, Max: 0, Price: d("1")}, {Min: 5, Max: 6, Price: d("1")}},
		"min zero":   {{Min: 0, Max: 2, Price: d("1")}},
	}
	for name, tiers := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewTable(tiers)
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestCoupon_Discount(t *testing.T) {
	pct := Coupon{Code: "SAVE10", Type: enum.CouponPercentage, Value: d("10"), MinOrder: d("50")}
	got, err := pct.Discount(d("120"))
	require.NoError(t, err)
	assert.Equal(t, "12.00", got.StringFixed(2))

	_, err = pct.Discount(d("49.99"))
	assert.ErrorIs(t, err, ErrCouponMinOrder)

	flat := Coupon{Code: "FIVE", Type: enum.CouponFlat, Value: d("25")}
	got, err = flat.Discount(d("20"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("20")), "capped at subtotal")
}

func TestShippingOption_Available(t *testing.T) {
	free := ShippingOption{ID: "free", MinSubtotal: d("75")}
	assert.False(t, free.Available(d("74.99")))
	assert.True(t, free.Available(d("75")))
}
