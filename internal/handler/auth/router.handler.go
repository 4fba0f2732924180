package auth

import (
	"transfer-storefront/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	auth := e.Group("/v1/auth")

	auth.POST("/check-email", h.CheckEmail)
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/email-capture", h.CaptureEmail)
	auth.GET("/me", middleware.AuthMiddleware(h.signer), h.Me)
}
