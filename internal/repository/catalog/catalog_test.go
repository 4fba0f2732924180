package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Lookups(t *testing.T) {
	repo := NewRepo()

	require.NotEmpty(t, repo.Products())
	p, err := repo.Product("gift-box")
	require.NoError(t, err)
	assert.NotNil(t, p.Pricing)

	_, err = p.Variant("large")
	assert.NoError(t, err)
	_, err = p.Variant("huge")
	assert.ErrorIs(t, err, ErrVariantNotFound)

	_, err = repo.Product("nope")
	assert.ErrorIs(t, err, ErrProductNotFound)

	c, err := repo.Coupon(" save5 ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE5", c.Code)
	_, err = repo.Coupon("BOGUS")
	assert.ErrorIs(t, err, ErrCouponNotFound)

	_, err = repo.ShippingOption("express")
	assert.NoError(t, err)
	_, err = repo.ShippingOption("teleport")
	assert.ErrorIs(t, err, ErrShippingNotFound)
}

func TestRepository_ProductsIsACopy(t *testing.T) {
	repo := NewRepo()
	list := repo.Products()
	list[0].Name = "changed"
	p, err := repo.Product(list[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", p.Name)
}
