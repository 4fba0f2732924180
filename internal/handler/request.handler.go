package handler

import (
	"errors"
	"net/http"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/validation"

	"github.com/gin-gonic/gin"
)

func send(c *gin.Context) func(r *types.Response) {
	return c.MustGet("send").(func(r *types.Response))
}

func validate(c *gin.Context, dst any) bool {
	if err := validation.Validate(dst); err != nil {
		res := &types.Response{Code: http.StatusBadRequest, Message: "Validation failed", Error: err}
		var ve *validation.Error
		if errors.As(err, &ve) {
			res.Data = ve.Fields
		}
		send(c)(helper.ParseResponse(res))
		return false
	}
	return true
}

// BindJSON decodes and validates the body into dst. On failure it has
// already sent a 400 and the handler must return.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		send(c)(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return false
	}
	return validate(c, dst)
}

// BindQuery is BindJSON for query strings.
func BindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		send(c)(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid query parameters",
			Error:   err,
		}))
		return false
	}
	return validate(c, dst)
}
