package transfer

import (
	"net/http"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/handler"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/jwt"
	"transfer-storefront/internal/pkg/middleware"
	"transfer-storefront/internal/pkg/phonemask"
	transferRepo "transfer-storefront/internal/repository/transfer"
	transferService "transfer-storefront/internal/service/transfer"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	transferService transferService.IService
	signer          *jwt.Signer
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(transferService transferService.IService, signer *jwt.Signer) IHandler {
	return &Handler{
		transferService: transferService,
		signer:          signer,
	}
}

// StartWizard godoc
// @Summary      Start a transfer
// @Description  Signed-in senders are linked to the transfer automatically
// @Tags         Transfers
// @Accept       json
// @Produce      json
// @Param        request  body      transferService.StartWizardRequest  false  "Initial values"
// @Success      201      {object}  types.ResponseAPI{data=transferService.WizardResponse}
// @Router       /v1/transfers/wizard [post]
func (h *Handler) StartWizard(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req transferService.StartWizardRequest
	if c.Request.ContentLength != 0 && !handler.BindJSON(c, &req) {
		return
	}
	if user, ok := middleware.AuthUser(c); ok {
		req.SenderEmail = user.Email
	}

	send(h.transferService.StartWizard(c.Request.Context(), &req))
}

// GetWizard godoc
// @Summary      Current wizard state
// @Tags         Transfers
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  types.ResponseAPI{data=transferService.WizardResponse}
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/transfers/wizard/{id} [get]
func (h *Handler) GetWizard(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.transferService.GetWizard(c.Request.Context(), c.Param("id")))
}

// PatchWizard godoc
// @Summary      Update wizard fields
// @Tags         Transfers
// @Accept       json
// @Produce      json
// @Param        id       path      string                              true  "Wizard ID"
// @Param        request  body      transferService.PatchWizardRequest  true  "Fields to change"
// @Success      200      {object}  types.ResponseAPI{data=transferService.WizardResponse}
// @Failure      409      {object}  types.ResponseAPI
// @Router       /v1/transfers/wizard/{id} [patch]
func (h *Handler) PatchWizard(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req transferService.PatchWizardRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	send(h.transferService.PatchWizard(c.Request.Context(), c.Param("id"), &req))
}

// Next godoc
// @Summary      Advance to the next step
// @Tags         Transfers
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  types.ResponseAPI{data=transferService.WizardResponse}
// @Failure      409  {object}  types.ResponseAPI{data=transferService.StepIncompleteResponse}
// @Router       /v1/transfers/wizard/{id}/next [post]
func (h *Handler) Next(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.transferService.Next(c.Request.Context(), c.Param("id")))
}

// Back godoc
// @Summary      Return to the previous step
// @Tags         Transfers
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  types.ResponseAPI{data=transferService.WizardResponse}
// @Router       /v1/transfers/wizard/{id}/back [post]
func (h *Handler) Back(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.transferService.Back(c.Request.Context(), c.Param("id")))
}

// Pay godoc
// @Summary      Start the payment
// @Description  PayPal returns an order id and Hosted Fields client token, MonCash a redirect URL
// @Tags         Transfers
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  types.ResponseAPI{data=transferService.PayResponse}
// @Failure      409  {object}  types.ResponseAPI
// @Failure      502  {object}  types.ResponseAPI
// @Router       /v1/transfers/wizard/{id}/pay [post]
func (h *Handler) Pay(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.transferService.Pay(c.Request.Context(), c.Param("id")))
}

// CapturePayPal godoc
// @Summary      Capture the approved PayPal order
// @Tags         Transfers
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  types.ResponseAPI{data=transferService.WizardResponse}
// @Router       /v1/transfers/wizard/{id}/paypal/capture [post]
func (h *Handler) CapturePayPal(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.transferService.CapturePayPal(c.Request.Context(), c.Param("id")))
}

// Receipt godoc
// @Summary      Receipt of a paid transfer
// @Tags         Transfers
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  types.ResponseAPI{data=transferService.ReceiptResponse}
// @Router       /v1/transfers/wizard/{id}/receipt [get]
func (h *Handler) Receipt(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.transferService.Receipt(c.Request.Context(), c.Param("id")))
}

// History godoc
// @Summary      Transfer history of the signed-in sender
// @Tags         Transfers
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "pending, processing, completed, failed or cancelled"
// @Param        search     query     string  false  "Receiver name or tracking code"
// @Param        sort_by    query     string  false  "created_at or amount"
// @Param        direction  query     string  false  "asc or desc"
// @Param        page       query     int     false  "Page, from 1"
// @Param        page_size  query     int     false  "Page size, up to 100"
// @Success      200        {object}  types.ResponseAPI
// @Router       /v1/transfers [get]
func (h *Handler) History(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var q transferRepo.Query
	if !handler.BindQuery(c, &q) {
		return
	}
	user, _ := middleware.AuthUser(c)
	send(h.transferService.History(c.Request.Context(), user, q))
}

// Track godoc
// @Summary      Track a transfer
// @Tags         Transfers
// @Produce      json
// @Param        code  path      string  true  "Tracking code"
// @Success      200   {object}  types.ResponseAPI{data=transferService.TrackResponse}
// @Failure      404   {object}  types.ResponseAPI
// @Router       /v1/transfers/track/{code} [get]
func (h *Handler) Track(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.transferService.Track(c.Request.Context(), c.Param("code")))
}

// PhoneMasks godoc
// @Summary      Phone formats per receiver country
// @Tags         Transfers
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=[]phonemask.Mask}
// @Router       /v1/transfers/phone-masks [get]
func (h *Handler) PhoneMasks(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(helper.ParseResponse(&types.Response{Data: phonemask.Masks()}))
}

// MonCashReturn godoc
// @Summary      MonCash return URL
// @Description  Verifies the transaction and redirects the browser to the receipt page
// @Tags         Payments
// @Param        transactionId  query  string  true  "MonCash transaction id"
// @Success      302
// @Router       /v1/payments/moncash/return [get]
func (h *Handler) MonCashReturn(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	res := h.transferService.MonCashReturn(c.Request.Context(), c.Query("transactionId"))
	if data, ok := res.Data.(transferService.MonCashReturnResponse); ok && data.RedirectURL != "" {
		c.Redirect(http.StatusFound, data.RedirectURL)
		c.Abort()
		return
	}
	send(res)
}
