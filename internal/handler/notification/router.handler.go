package notification

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	notifications := e.Group("/v1/notifications")

	notifications.GET("", h.Active)
	notifications.GET("/stream", h.Stream)
}
