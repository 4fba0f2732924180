package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(CorsMiddleware([]string{"http://shop.test"}), RequestInit(), ResponseInit(), PrometheusMiddleware())
	return e
}

func TestResponseInit_WritesEnvelope(t *testing.T) {
	e := newEngine()
	e.GET("/boom", func(c *gin.Context) {
		send := c.MustGet("send").(func(r *types.Response))
		send(&types.Response{Error: errors.New("db down")})
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body types.ResponseAPI
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 500, body.Status)
	assert.Equal(t, "db down", body.Error)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestCors(t *testing.T) {
	e := newEngine()
	e.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://shop.test")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://shop.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthMiddleware(t *testing.T) {
	signer, err := jwt.NewSigner("0123456789abcdef-secret")
	require.NoError(t, err)

	e := newEngine()
	e.GET("/me", AuthMiddleware(signer), func(c *gin.Context) {
		user, ok := AuthUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, user)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	user := types.UserWithAuth{ID: uuid.New(), Email: "ana@example.com"}
	token, _, err := signer.GenerateToken(user, 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPrometheusMiddleware_Observes(t *testing.T) {
	e := newEngine()
	e.GET("/observed", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/observed", nil))

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() != "http_request_duration_seconds" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "path" && l.GetValue() == "/observed" {
					found = true
				}
			}
		}
	}
	assert.True(t, found)
}
