package middleware

import (
	"net/http"
	"strings"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const AuthKey = "auth"

// AuthMiddleware accepts "Bearer <token>" or a bare token in Authorization.
func AuthMiddleware(signer *jwt.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		send := c.MustGet("send").(func(r *types.Response))

		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "token not found"}))
			return
		}

		user, err := signer.ValidateToken(token)
		if err != nil {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err}))
			return
		}

		c.Set(AuthKey, *user)
		c.Next()
	}
}

// AuthUser returns the user stored by AuthMiddleware.
func AuthUser(c *gin.Context) (types.UserWithAuth, bool) {
	v, ok := c.Get(AuthKey)
	if !ok {
		return types.UserWithAuth{}, false
	}
	user, ok := v.(types.UserWithAuth)
	return user, ok
}

// OptionalAuth stores the user when a valid token is sent and lets the
// request through either way.
func OptionalAuth(signer *jwt.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token != "" {
			if user, err := signer.ValidateToken(token); err == nil {
				c.Set(AuthKey, *user)
			}
		}
		c.Next()
	}
}
