package moncash

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/telemetry"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/codes"
)

const (
	SandboxHost = "https://sandbox.moncashbutton.digicelgroup.com"
	LiveHost    = "https://moncashbutton.digicelgroup.com"

	redirectPath = "/Moncash-middleware/Payment/Redirect"

	// MessageSuccessful is the payment.message value of a settled payment.
	MessageSuccessful = "successful"
)

var (
	ErrNotConfigured = errors.New("moncash is not configured")
	ErrNotFound      = errors.New("moncash transaction not found")
)

type Config struct {
	ClientID     string
	ClientSecret string
	Environment  string // "sandbox" or "live"
	// Host overrides the environment host.
	Host string
}

type IMonCash interface {
	CreatePayment(ctx context.Context, orderID string, amount decimal.Decimal) (*PaymentLink, error)
	RetrieveTransaction(ctx context.Context, transactionID string) (*Payment, error)
	RetrieveOrder(ctx context.Context, orderID string) (*Payment, error)
}

type Client struct {
	cfg   Config
	host  string
	http  *helper.HTTPClient
	token helper.TokenCache
}

func Setup(cfg *Config, httpClient *helper.HTTPClient) (*Client, error) {
	if cfg == nil || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	host := cfg.Host
	if host == "" {
		host = SandboxHost
		if cfg.Environment == "live" || cfg.Environment == "production" {
			host = LiveHost
		}
	}
	if httpClient == nil {
		httpClient = helper.NewHTTPClient(nil)
	}
	return &Client{
		cfg:  *cfg,
		host: strings.TrimRight(host, "/"),
		http: httpClient,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

type apiError struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp int64  `json:"timestamp"`
}

// Error wraps a non 2xx MonCash answer.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("moncash %d: %s", e.StatusCode, e.Message)
}

func toError(res *helper.HTTPAPIResponse) error {
	msg := string(res.Raw)
	if body, err := helper.DecodeResponse[apiError](res); err == nil && body != nil {
		if body.Message != "" {
			msg = body.Message
		} else if body.Error != "" {
			msg = body.Error
		}
	}
	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return &Error{StatusCode: res.StatusCode, Message: msg}
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	return c.token.Get(func() (string, time.Duration, error) {
		res, err := c.http.Request(&helper.HTTPRequestPayload{
			Method: helper.POST,
			URL:    c.host + "/Api/oauth/token",
			Body: map[string]string{
				"scope":      "read,write",
				"grant_type": "client_credentials",
			},
		}, &helper.HTTPRequestConfig{
			Ctx:  ctx,
			Auth: &helper.BasicAuth{Username: c.cfg.ClientID, Password: c.cfg.ClientSecret},
			Form: true,
		})
		if err != nil {
			return "", 0, err
		}
		if !res.IsSuccess() {
			return "", 0, toError(res)
		}
		tok, err := helper.DecodeResponse[tokenResponse](res)
		if err != nil {
			return "", 0, err
		}
		// MonCash tokens live for about a minute; a zero lifetime is used once.
		return tok.AccessToken, time.Duration(tok.ExpiresIn) * time.Second, nil
	})
}

func (c *Client) post(ctx context.Context, span, path string, body any) (*helper.HTTPAPIResponse, error) {
	ctx, sp := telemetry.Tracer("moncash").Start(ctx, span)
	defer sp.End()

	token, err := c.accessToken(ctx)
	if err != nil {
		sp.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("moncash auth: %w", err)
	}
	res, err := c.http.Request(&helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.host + path,
		Body:   body,
	}, &helper.HTTPRequestConfig{Ctx: ctx, BearerToken: token})
	if err != nil {
		sp.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if res.StatusCode == http.StatusUnauthorized {
		c.token.Reset()
	}
	if !res.IsSuccess() {
		err := toError(res)
		sp.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return res, nil
}

type PaymentToken struct {
	Token   string `json:"token"`
	Created string `json:"created"`
	Expired string `json:"expired"`
}

type createPaymentResponse struct {
	Mode         string       `json:"mode"`
	Path         string       `json:"path"`
	PaymentToken PaymentToken `json:"payment_token"`
	Timestamp    int64        `json:"timestamp"`
	Status       int          `json:"status"`
}

// PaymentLink is where the payer is sent to approve the payment.
type PaymentLink struct {
	Token       string
	RedirectURL string
	ExpiresAt   string
}

func (c *Client) RedirectURL(token string) string {
	return c.host + redirectPath + "?token=" + url.QueryEscape(token)
}

func (c *Client) CreatePayment(ctx context.Context, orderID string, amount decimal.Decimal) (*PaymentLink, error) {
	if orderID == "" {
		return nil, errors.New("moncash order id is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("moncash amount must be positive, got %s", amount)
	}
	res, err := c.post(ctx, "moncash.create_payment", "/Api/v1/CreatePayment", map[string]any{
		"amount":  amount.InexactFloat64(),
		"orderId": orderID,
	})
	if err != nil {
		return nil, err
	}
	out, err := helper.DecodeResponse[createPaymentResponse](res)
	if err != nil {
		return nil, err
	}
	if out.PaymentToken.Token == "" {
		return nil, &Error{StatusCode: res.StatusCode, Message: "payment token missing in response"}
	}
	return &PaymentLink{
		Token:       out.PaymentToken.Token,
		RedirectURL: c.RedirectURL(out.PaymentToken.Token),
		ExpiresAt:   out.PaymentToken.Expired,
	}, nil
}

type Payment struct {
	Reference     string          `json:"reference"`
	TransactionID string          `json:"transaction_id"`
	Cost          decimal.Decimal `json:"cost"`
	Message       string          `json:"message"`
	Payer         string          `json:"payer"`
}

func (p *Payment) Successful() bool {
	return strings.EqualFold(p.Message, MessageSuccessful)
}

type retrieveResponse struct {
	Path      string   `json:"path"`
	Payment   *Payment `json:"payment"`
	Timestamp int64    `json:"timestamp"`
	Status    int      `json:"status"`
}

func (c *Client) retrieve(ctx context.Context, span, path string, body map[string]string) (*Payment, error) {
	res, err := c.post(ctx, span, path, body)
	if err != nil {
		return nil, err
	}
	out, err := helper.DecodeResponse[retrieveResponse](res)
	if err != nil {
		return nil, err
	}
	if out.Payment == nil {
		return nil, ErrNotFound
	}
	return out.Payment, nil
}

// RetrieveTransaction looks up the transaction id MonCash appends to the
// return URL.
func (c *Client) RetrieveTransaction(ctx context.Context, transactionID string) (*Payment, error) {
	return c.retrieve(ctx, "moncash.retrieve_transaction", "/Api/v1/RetrieveTransactionPayment", map[string]string{
		"transactionId": transactionID,
	})
}

func (c *Client) RetrieveOrder(ctx context.Context, orderID string) (*Payment, error) {
	return c.retrieve(ctx, "moncash.retrieve_order", "/Api/v1/RetrieveOrderPayment", map[string]string{
		"orderId": orderID,
	})
}
