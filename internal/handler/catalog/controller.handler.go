package catalog

import (
	"net/http"
	"strconv"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/handler"
	"transfer-storefront/internal/pkg/helper"
	catalogService "transfer-storefront/internal/service/catalog"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	catalogService catalogService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(catalogService catalogService.IService) IHandler {
	return &Handler{catalogService: catalogService}
}

// Products godoc
// @Summary      List products
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=[]catalogService.ProductResponse}
// @Router       /v1/products [get]
func (h *Handler) Products(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.catalogService.Products(c.Request.Context()))
}

// Product godoc
// @Summary      Product with its price tiers
// @Tags         Catalog
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  types.ResponseAPI{data=catalogService.ProductResponse}
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/products/{id} [get]
func (h *Handler) Product(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.catalogService.Product(c.Request.Context(), c.Param("id")))
}

// Pricing godoc
// @Summary      Price a quantity
// @Tags         Catalog
// @Produce      json
// @Param        id        path      string  true  "Product ID"
// @Param        quantity  query     int     true  "Quantity"
// @Success      200       {object}  types.ResponseAPI{data=pricing.Quote}
// @Failure      400       {object}  types.ResponseAPI
// @Router       /v1/products/{id}/pricing [get]
func (h *Handler) Pricing(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	qty, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		send(helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "quantity must be a whole number", Error: err}))
		return
	}
	send(h.catalogService.Pricing(c.Request.Context(), c.Param("id"), qty))
}

// Stock godoc
// @Summary      Simulated stock level of a variant
// @Tags         Catalog
// @Produce      json
// @Param        id       path      string  true  "Product ID"
// @Param        variant  path      string  true  "Variant ID"
// @Success      200      {object}  types.ResponseAPI{data=catalogService.StockResponse}
// @Router       /v1/products/{id}/variants/{variant}/stock [get]
func (h *Handler) Stock(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.catalogService.Stock(c.Request.Context(), c.Param("id"), c.Param("variant")))
}

// Coupons godoc
// @Summary      List coupons
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=[]pricing.Coupon}
// @Router       /v1/coupons [get]
func (h *Handler) Coupons(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.catalogService.Coupons(c.Request.Context()))
}

// ShippingOptions godoc
// @Summary      List shipping options
// @Tags         Catalog
// @Produce      json
// @Param        subtotal  query     string  false  "Cart subtotal used to flag available options"
// @Success      200       {object}  types.ResponseAPI{data=[]catalogService.ShippingOptionResponse}
// @Router       /v1/shipping-options [get]
func (h *Handler) ShippingOptions(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	subtotal := decimal.Zero
	if raw := c.Query("subtotal"); raw != "" {
		var err error
		if subtotal, err = decimal.NewFromString(raw); err != nil {
			send(helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "subtotal must be a decimal", Error: err}))
			return
		}
	}
	send(h.catalogService.ShippingOptions(c.Request.Context(), subtotal))
}

// Quote godoc
// @Summary      Quote a cart line
// @Description  Applies tier pricing, a coupon and a shipping option
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request  body      catalogService.QuoteRequest  true  "Cart line"
// @Success      200      {object}  types.ResponseAPI{data=catalogService.QuoteResponse}
// @Failure      422      {object}  types.ResponseAPI
// @Router       /v1/cart/quote [post]
func (h *Handler) Quote(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req catalogService.QuoteRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	send(h.catalogService.Quote(c.Request.Context(), &req))
}
