package helper

import (
	"net/http"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/logger"
)

// ParseResponse fills in defaults so handlers can send the result as is.
func ParseResponse(r *types.Response) *types.Response {
	if r == nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
	}
	if r.Code == 0 {
		if r.Error != nil {
			r.Code = http.StatusInternalServerError
		} else {
			r.Code = http.StatusOK
		}
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	if r.Code >= http.StatusInternalServerError && r.Error != nil {
		logger.Error.Printf("%s: %v", r.Message, r.Error)
	}
	return r
}

// ToAPI converts a service response into the wire envelope.
func ToAPI(r *types.Response) types.ResponseAPI {
	out := types.ResponseAPI{
		Status:  r.Code,
		Message: r.Message,
		Data:    r.Data,
	}
	if r.Error != nil {
		out.Error = r.Error.Error()
	}
	return out
}
