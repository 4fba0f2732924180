package helper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	types "transfer-storefront/internal/common/type"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_Defaults(t *testing.T) {
	r := ParseResponse(&types.Response{Data: "x"})
	assert.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "OK", r.Message)

	r = ParseResponse(&types.Response{Error: assert.AnError})
	assert.Equal(t, http.StatusInternalServerError, r.Code)
	assert.Equal(t, assert.AnError.Error(), ToAPI(r).Error)
}

func TestHTTPClient_FormAndBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","expires_in":60}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(&ClientConfig{RequestTimeout: 5})
	resp, err := client.Request(&HTTPRequestPayload{
		Method: POST,
		URL:    srv.URL,
		Body:   map[string]string{"grant_type": "client_credentials"},
	}, &HTTPRequestConfig{
		Ctx:  context.Background(),
		Auth: &BasicAuth{Username: "id", Password: "secret"},
		Form: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())

	type token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	tok, err := DecodeResponse[token](resp)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)
	assert.Equal(t, 60, tok.ExpiresIn)
}

func TestHTTPClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(nil).Request(&HTTPRequestPayload{Method: GET, URL: srv.URL},
		&HTTPRequestConfig{Ctx: context.Background()})
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, "upstream down", resp.Data)
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "50937001234", OnlyDigits("+509 3700-1234"))
}

func TestTokenCache(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &TokenCache{Now: func() time.Time { return now }}
	calls := 0
	fetch := func() (string, time.Duration, error) {
		calls++
		return fmt.Sprintf("tok-%d", calls), 10 * time.Minute, nil
	}

	tok, err := c.Get(fetch)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	now = now.Add(8 * time.Minute)
	tok, _ = c.Get(fetch)
	assert.Equal(t, "tok-1", tok)

	now = now.Add(2 * time.Minute)
	tok, _ = c.Get(fetch)
	assert.Equal(t, "tok-2", tok)

	c.Reset()
	tok, _ = c.Get(fetch)
	assert.Equal(t, "tok-3", tok)
}
