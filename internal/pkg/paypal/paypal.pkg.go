package paypal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/telemetry"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	SandboxBaseURL = "https://api-m.sandbox.paypal.com"
	LiveBaseURL    = "https://api-m.paypal.com"

	StatusCompleted = "COMPLETED"
)

var ErrNotConfigured = errors.New("paypal is not configured")

type Config struct {
	ClientID     string
	ClientSecret string
	Environment  string // "sandbox" or "live"
	// BaseURL overrides the environment host.
	BaseURL string
}

// IPayPal covers the calls the Hosted Fields checkout needs.
type IPayPal interface {
	ClientToken(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error)
	CaptureOrder(ctx context.Context, orderID, requestID string) (*Order, error)
}

type Client struct {
	cfg     Config
	baseURL string
	http    *helper.HTTPClient
	token   helper.TokenCache
}

func Setup(cfg *Config, httpClient *helper.HTTPClient) (*Client, error) {
	if cfg == nil || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	base := cfg.BaseURL
	if base == "" {
		base = SandboxBaseURL
		if cfg.Environment == "live" || cfg.Environment == "production" {
			base = LiveBaseURL
		}
	}
	if httpClient == nil {
		httpClient = helper.NewHTTPClient(nil)
	}
	return &Client{
		cfg:     *cfg,
		baseURL: strings.TrimRight(base, "/"),
		http:    httpClient,
	}, nil
}

type CreateOrderInput struct {
	ReferenceID string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PurchaseUnit struct {
	ReferenceID string    `json:"reference_id,omitempty"`
	CustomID    string    `json:"custom_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Amount      *Amount   `json:"amount,omitempty"`
	Payments    *Payments `json:"payments,omitempty"`
}

type Payments struct {
	Captures []CaptureDetail `json:"captures"`
}

type CaptureDetail struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Amount *Amount `json:"amount,omitempty"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type Order struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units,omitempty"`
	Links         []Link         `json:"links,omitempty"`
}

// CaptureID returns the first capture id of a captured order.
func (o *Order) CaptureID() string {
	for _, pu := range o.PurchaseUnits {
		if pu.Payments != nil && len(pu.Payments.Captures) > 0 {
			return pu.Payments.Captures[0].ID
		}
	}
	return ""
}

// APIError is the error body PayPal returns on 4xx/5xx.
type APIError struct {
	StatusCode int    `json:"-"`
	Name       string `json:"name"`
	Message    string `json:"message"`
	DebugID    string `json:"debug_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal %d %s: %s (debug_id=%s)", e.StatusCode, e.Name, e.Message, e.DebugID)
}

func apiError(res *helper.HTTPAPIResponse) error {
	out, err := helper.DecodeResponse[APIError](res)
	if err != nil || out == nil {
		out = &APIError{Message: string(res.Raw)}
	}
	out.StatusCode = res.StatusCode
	return out
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	return c.token.Get(func() (string, time.Duration, error) {
		res, err := c.http.Request(&helper.HTTPRequestPayload{
			Method: helper.POST,
			URL:    c.baseURL + "/v1/oauth2/token",
			Body:   map[string]string{"grant_type": "client_credentials"},
		}, &helper.HTTPRequestConfig{
			Ctx:  ctx,
			Auth: &helper.BasicAuth{Username: c.cfg.ClientID, Password: c.cfg.ClientSecret},
			Form: true,
		})
		if err != nil {
			return "", 0, err
		}
		if !res.IsSuccess() {
			return "", 0, apiError(res)
		}
		tok, err := helper.DecodeResponse[tokenResponse](res)
		if err != nil {
			return "", 0, err
		}
		return tok.AccessToken, time.Duration(tok.ExpiresIn) * time.Second, nil
	})
}

func (c *Client) call(ctx context.Context, span string, method helper.HTTPMethod, path string, body any, headers map[string]string) (*helper.HTTPAPIResponse, error) {
	ctx, sp := telemetry.Tracer("paypal").Start(ctx, span)
	defer sp.End()

	token, err := c.accessToken(ctx)
	if err != nil {
		sp.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("paypal auth: %w", err)
	}

	cfg := &helper.HTTPRequestConfig{Ctx: ctx, BearerToken: token}
	if len(headers) > 0 {
		cfg.Headers = http.Header{}
		for k, v := range headers {
			cfg.Headers.Set(k, v)
		}
	}
	res, err := c.http.Request(&helper.HTTPRequestPayload{Method: method, URL: c.baseURL + path, Body: body}, cfg)
	if err != nil {
		sp.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	sp.SetAttributes(attribute.Int("http.status_code", res.StatusCode))
	if res.StatusCode == http.StatusUnauthorized {
		c.token.Reset()
	}
	if !res.IsSuccess() {
		err := apiError(res)
		sp.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return res, nil
}

// ClientToken returns the token the Hosted Fields widget is initialised with.
func (c *Client) ClientToken(ctx context.Context) (string, error) {
	res, err := c.call(ctx, "paypal.generate_token", helper.POST, "/v1/identity/generate-token", map[string]any{}, nil)
	if err != nil {
		return "", err
	}
	out, err := helper.DecodeResponse[struct {
		ClientToken string `json:"client_token"`
	}](res)
	if err != nil {
		return "", err
	}
	return out.ClientToken, nil
}

func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("paypal order amount must be positive, got %s", in.Amount)
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []PurchaseUnit{{
			ReferenceID: in.ReferenceID,
			CustomID:    in.ReferenceID,
			Description: in.Description,
			Amount:      &Amount{CurrencyCode: currency, Value: in.Amount.StringFixed(2)},
		}},
	}
	res, err := c.call(ctx, "paypal.create_order", helper.POST, "/v2/checkout/orders", body, map[string]string{
		"PayPal-Request-Id": "create-" + in.ReferenceID,
	})
	if err != nil {
		return nil, err
	}
	return helper.DecodeResponse[Order](res)
}

// CaptureOrder captures an approved order. requestID makes retries idempotent.
func (c *Client) CaptureOrder(ctx context.Context, orderID, requestID string) (*Order, error) {
	if orderID == "" {
		return nil, errors.New("paypal order id is required")
	}
	headers := map[string]string{"Prefer": "return=representation"}
	if requestID != "" {
		headers["PayPal-Request-Id"] = "capture-" + requestID
	}
	res, err := c.call(ctx, "paypal.capture_order", helper.POST, "/v2/checkout/orders/"+orderID+"/capture", map[string]any{}, headers)
	if err != nil {
		return nil, err
	}
	return helper.DecodeResponse[Order](res)
}
