package auth

import (
	"net/http"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/handler"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/jwt"
	"transfer-storefront/internal/pkg/middleware"
	authService "transfer-storefront/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authService authService.IService
	signer      *jwt.Signer
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(authService authService.IService, signer *jwt.Signer) IHandler {
	return &Handler{
		authService: authService,
		signer:      signer,
	}
}

// CheckEmail godoc
// @Summary      Check whether an email is registered
// @Description  Invalid addresses answer success=false; results are cached for 30s
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authService.CheckEmailRequest  true  "Email to check"
// @Success      200      {object}  types.ResponseAPI{data=authService.CheckEmailResponse}
// @Router       /v1/auth/check-email [post]
func (h *Handler) CheckEmail(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req authService.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.authService.CheckEmail(c.Request.Context(), &req))
}

// Register godoc
// @Summary      Create an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authService.RegisterRequest  true  "New account"
// @Success      201      {object}  types.ResponseAPI{data=authService.TokenResponse}
// @Failure      400      {object}  types.ResponseAPI
// @Failure      409      {object}  types.ResponseAPI
// @Router       /v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req authService.RegisterRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	send(h.authService.Register(c.Request.Context(), &req))
}

// Login godoc
// @Summary      Sign in with email and password
// @Description  remember_me extends the token lifetime to 30 days
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authService.LoginRequest  true  "Credentials"
// @Success      200      {object}  types.ResponseAPI{data=authService.TokenResponse}
// @Failure      401      {object}  types.ResponseAPI
// @Router       /v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req authService.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	send(h.authService.Login(c.Request.Context(), &req))
}

// Me godoc
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.ResponseAPI{data=authService.UserResponse}
// @Failure      401  {object}  types.ResponseAPI
// @Router       /v1/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	user, _ := middleware.AuthUser(c)
	send(h.authService.Me(c.Request.Context(), user))
}

// CaptureEmail godoc
// @Summary      Leave an email on a lead form
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authService.CaptureEmailRequest  true  "Lead"
// @Success      201      {object}  types.ResponseAPI
// @Router       /v1/auth/email-capture [post]
func (h *Handler) CaptureEmail(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req authService.CaptureEmailRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	send(h.authService.CaptureEmail(c.Request.Context(), &req))
}
