package notification

import (
	"io"

	types "transfer-storefront/internal/common/type"
	notificationService "transfer-storefront/internal/service/notification"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	notificationService notificationService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(notificationService notificationService.IService) IHandler {
	return &Handler{notificationService: notificationService}
}

// Active godoc
// @Summary      Visible social-proof notifications
// @Tags         Notifications
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=[]notificationService.Notification}
// @Router       /v1/notifications [get]
func (h *Handler) Active(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.notificationService.Active(c.Request.Context()))
}

// Stream godoc
// @Summary      Stream new notifications
// @Description  Server-sent events, one "notification" event per new entry
// @Tags         Notifications
// @Produce      text/event-stream
// @Router       /v1/notifications/stream [get]
func (h *Handler) Stream(c *gin.Context) {
	ch, cancel := h.notificationService.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		}
	})
}
