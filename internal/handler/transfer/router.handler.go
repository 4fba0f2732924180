package transfer

import (
	"transfer-storefront/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	transfers := e.Group("/v1/transfers")

	transfers.GET("", middleware.AuthMiddleware(h.signer), h.History)
	transfers.GET("/track/:code", h.Track)
	transfers.GET("/phone-masks", h.PhoneMasks)

	wizard := transfers.Group("/wizard")
	wizard.POST("", middleware.OptionalAuth(h.signer), h.StartWizard)
	wizard.GET("/:id", h.GetWizard)
	wizard.PATCH("/:id", h.PatchWizard)
	wizard.POST("/:id/next", h.Next)
	wizard.POST("/:id/back", h.Back)
	wizard.POST("/:id/pay", h.Pay)
	wizard.POST("/:id/paypal/capture", h.CapturePayPal)
	wizard.GET("/:id/receipt", h.Receipt)

	payments := e.Group("/v1/payments")
	payments.GET("/moncash/return", h.MonCashReturn)
}
