package middleware

import (
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"

	"github.com/gin-gonic/gin"
)

// ResponseInit installs the "send" func handlers use to write the envelope.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			r = helper.ParseResponse(r)
			c.AbortWithStatusJSON(r.Code, helper.ToAPI(r))
		})
		c.Next()
	}
}
