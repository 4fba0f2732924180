package emailcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"transfer-storefront/internal/pkg/debounce"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/validation"
)

const DefaultQuietPeriod = 800 * time.Millisecond

// Result is the body of POST /auth/check-email.
type Result struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Exists  bool   `json:"exists"`
	Err     error  `json:"-"`
}

type API struct {
	endpoint string
	http     *helper.HTTPClient
}

// NewAPI targets the check-email endpoint under baseURL, e.g.
// http://localhost:8080/api/v1.
func NewAPI(baseURL string, httpClient *helper.HTTPClient) *API {
	if httpClient == nil {
		httpClient = helper.NewHTTPClient(&helper.ClientConfig{RequestTimeout: 10})
	}
	return &API{
		endpoint: strings.TrimRight(baseURL, "/") + "/auth/check-email",
		http:     httpClient,
	}
}

func (a *API) Check(ctx context.Context, email string) (*Result, error) {
	res, err := a.http.Request(&helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    a.endpoint,
		Body:   map[string]string{"email": email},
	}, &helper.HTTPRequestConfig{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("check-email returned %d", res.StatusCode)
	}
	env, err := helper.DecodeResponse[struct {
		Data Result `json:"data"`
	}](res)
	if err != nil {
		return nil, err
	}
	env.Data.Email = email
	return &env.Data, nil
}

// Checker debounces typed input and reports the latest check result.
type Checker struct {
	d        *debounce.Debouncer[string]
	onResult func(Result)
}

type CheckFunc func(ctx context.Context, email string) (*Result, error)

func NewChecker(check CheckFunc, quiet time.Duration, onResult func(Result)) *Checker {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	c := &Checker{onResult: onResult}
	c.d = debounce.New(quiet, func(ctx context.Context, email string) {
		res, err := check(ctx, email)
		// A superseded or closed check reports nothing.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			onResult(Result{Email: email, Err: err})
			return
		}
		onResult(*res)
	})
	return c
}

// Input feeds the current field value. Malformed addresses are reported at
// once without a request.
func (c *Checker) Input(value string) {
	email := strings.TrimSpace(value)
	if !validation.IsEmail(email) {
		c.d.Cancel()
		c.onResult(Result{Email: email, Success: false})
		return
	}
	c.d.Trigger(email)
}

func (c *Checker) Close() {
	c.d.Close()
}
