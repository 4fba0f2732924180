package catalog

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	products := e.Group("/v1/products")
	products.GET("", h.Products)
	products.GET("/:id", h.Product)
	products.GET("/:id/pricing", h.Pricing)
	products.GET("/:id/variants/:variant/stock", h.Stock)

	e.GET("/v1/coupons", h.Coupons)
	e.GET("/v1/shipping-options", h.ShippingOptions)
	e.POST("/v1/cart/quote", h.Quote)
}
