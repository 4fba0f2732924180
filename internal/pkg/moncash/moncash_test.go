package moncash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeMonCash(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/Api/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "cid", user)
		assert.Equal(t, "csecret", pass)
		_ = r.ParseForm()
		assert.Equal(t, "read,write", r.PostForm.Get("scope"))
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "token_type": "bearer", "expires_in": 59})
	})
	mux.HandleFunc("/Api/v1/CreatePayment", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "TR-42", body["orderId"])
		assert.Equal(t, 150.0, body["amount"])
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"mode":"sandbox","path":"/Api/v1/CreatePayment","payment_token":{"expired":"2024-01-01 00:10:00:000","created":"2024-01-01 00:00:00:000","token":"eyJ+abc"},"timestamp":1,"status":202}`))
	})
	mux.HandleFunc("/Api/v1/RetrieveTransactionPayment", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["transactionId"] != "804" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":404,"error":"Not Found","message":"Transaction not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"path":"/Api/v1/RetrieveTransactionPayment","payment":{"reference":"TR-42","transaction_id":"804","cost":150,"message":"successful","payer":"50937000000"},"timestamp":1,"status":200}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CreateAndRetrieve(t *testing.T) {
	srv := fakeMonCash(t)
	c, err := Setup(&Config{ClientID: "cid", ClientSecret: "csecret", Host: srv.URL}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	link, err := c.CreatePayment(ctx, "TR-42", decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.Equal(t, "eyJ+abc", link.Token)
	assert.Equal(t, srv.URL+"/Moncash-middleware/Payment/Redirect?token=eyJ%2Babc", link.RedirectURL)

	p, err := c.RetrieveTransaction(ctx, "804")
	require.NoError(t, err)
	assert.True(t, p.Successful())
	assert.Equal(t, "TR-42", p.Reference)
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(150)))

	_, err = c.RetrieveTransaction(ctx, "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetup(t *testing.T) {
	_, err := Setup(&Config{ClientID: "x"}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	c, err := Setup(&Config{ClientID: "x", ClientSecret: "y"}, nil)
	require.NoError(t, err)
	assert.Equal(t, SandboxHost, c.host)
}

func TestCreatePayment_Validates(t *testing.T) {
	c, err := Setup(&Config{ClientID: "x", ClientSecret: "y"}, nil)
	require.NoError(t, err)
	_, err = c.CreatePayment(context.Background(), "", decimal.NewFromInt(1))
	assert.Error(t, err)
	_, err = c.CreatePayment(context.Background(), "o", decimal.NewFromInt(-1))
	assert.Error(t, err)
}
