package catalog

import (
	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/pkg/pricing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultProducts() []Product {
	return []Product{
		{
			ID:          "calling-card",
			Name:        "International Calling Card",
			Description: "Prepaid minutes to Haiti and the Caribbean.",
			Image:       "/images/calling-card.png",
			Variants: []Variant{
				{ID: "10", Name: "$10 card", StockMax: 120},
				{ID: "25", Name: "$25 card", StockMax: 80},
			},
			Pricing: pricing.MustTable(
				pricing.Tier{Min: 1, Max: 1, Price: d("10.00")},
				pricing.Tier{Min: 2, Max: 4, Price: d("9.50"), Discount: 5},
				pricing.Tier{Min: 5, Max: 9, Price: d("9.00"), Discount: 10},
				pricing.Tier{Min: 10, Max: 0, Price: d("8.00"), Discount: 20},
			),
		},
		{
			ID:          "gift-box",
			Name:        "Family Gift Box",
			Description: "Groceries and essentials delivered to the receiver.",
			Image:       "/images/gift-box.png",
			Variants: []Variant{
				{ID: "small", Name: "Small", StockMax: 40},
				{ID: "large", Name: "Large", StockMax: 25},
			},
			Pricing: pricing.MustTable(
				pricing.Tier{Min: 1, Max: 2, Price: d("49.99")},
				pricing.Tier{Min: 3, Max: 5, Price: d("44.99"), Discount: 10},
				pricing.Tier{Min: 6, Max: 0, Price: d("39.99"), Discount: 20},
			),
		},
		{
			ID:          "solar-lamp",
			Name:        "Solar Lamp",
			Description: "Rechargeable lamp with phone charging port.",
			Image:       "/images/solar-lamp.png",
			Variants: []Variant{
				{ID: "default", Name: "Standard", StockMax: 60},
			},
			Pricing: pricing.MustTable(
				pricing.Tier{Min: 1, Max: 1, Price: d("24.00")},
				pricing.Tier{Min: 2, Max: 3, Price: d("21.60"), Discount: 10},
				pricing.Tier{Min: 4, Max: 0, Price: d("19.20"), Discount: 20},
			),
		},
	}
}

func defaultCoupons() []pricing.Coupon {
	return []pricing.Coupon{
		{Code: "WELCOME10", Description: "10% off your first order", Type: enum.CouponPercentage, Value: d("10"), MinOrder: decimal.Zero},
		{Code: "SAVE5", Description: "$5 off orders over $25", Type: enum.CouponFlat, Value: d("5"), MinOrder: d("25")},
		{Code: "FAMILY20", Description: "20% off orders over $100", Type: enum.CouponPercentage, Value: d("20"), MinOrder: d("100")},
	}
}

func defaultShipping() []pricing.ShippingOption {
	return []pricing.ShippingOption{
		{ID: "standard", Name: "Standard", Price: d("4.99"), MinDays: 5, MaxDays: 7, MinSubtotal: decimal.Zero},
		{ID: "express", Name: "Express", Price: d("12.99"), MinDays: 1, MaxDays: 2, MinSubtotal: decimal.Zero},
		{ID: "free", Name: "Free shipping", Price: decimal.Zero, MinDays: 7, MaxDays: 10, MinSubtotal: d("50")},
	}
}
