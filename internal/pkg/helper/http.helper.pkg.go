package helper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type HTTPMethod string

const (
	GET    HTTPMethod = http.MethodGet
	POST   HTTPMethod = http.MethodPost
	PUT    HTTPMethod = http.MethodPut
	PATCH  HTTPMethod = http.MethodPatch
	DELETE HTTPMethod = http.MethodDelete
)

func (m HTTPMethod) ToString() string {
	return string(m)
}

type HTTPRequestPayload struct {
	Method HTTPMethod
	URL    string
	Params map[string]string
	Body   any
}

type BasicAuth struct {
	Username string
	Password string
}

type HTTPRequestConfig struct {
	Ctx         context.Context
	Headers     http.Header
	Auth        *BasicAuth
	BearerToken string
	// Form sends Body as application/x-www-form-urlencoded. Body must be
	// map[string]string or url.Values.
	Form bool
}

type HTTPAPIResponse struct {
	StatusCode int
	Headers    http.Header
	Data       any
	Raw        []byte
}

func (r *HTTPAPIResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeResponse unmarshals the raw response body into T.
func DecodeResponse[T any](r *HTTPAPIResponse) (*T, error) {
	var out T
	if len(r.Raw) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(r.Raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

func handleRequestBody(payload *HTTPRequestPayload, config *HTTPRequestConfig) (io.Reader, error) {
	if config.Headers == nil {
		config.Headers = http.Header{}
	}
	if config.Headers.Get("Accept") == "" {
		config.Headers.Set("Accept", "application/json")
	}
	if payload.Body == nil {
		return nil, nil
	}

	if config.Form {
		var values url.Values
		switch v := payload.Body.(type) {
		case url.Values:
			values = v
		case map[string]string:
			values = url.Values{}
			for key, value := range v {
				values.Set(key, value)
			}
		default:
			return nil, fmt.Errorf("unsupported form body type %T", payload.Body)
		}
		config.Headers.Set("Content-Type", "application/x-www-form-urlencoded")
		return strings.NewReader(values.Encode()), nil
	}

	body, err := json.Marshal(payload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	config.Headers.Set("Content-Type", "application/json")
	return bytes.NewReader(body), nil
}

func parseResponseBody(resp *http.Response) (any, []byte, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return nil, raw, nil
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		// Not every upstream answers with JSON on errors.
		return string(raw), raw, nil
	}
	return data, raw, nil
}
