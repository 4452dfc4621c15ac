package delhivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultBaseURL is the production tracking host.
	DefaultBaseURL = "https://track.delhivery.com"
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 2048

	// defaultMaxResponse bounds decoded bodies; packing slips are the largest payloads.
	defaultMaxResponse = 8 << 20
)

// APIError is returned for non-2xx responses and for 2xx responses the carrier marks as failed.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("delhivery: %s", e.Message)
	}
	return fmt.Sprintf("delhivery: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Delhivery B2C API. Calls are never retried.
type Client struct {
	baseURL     *url.URL
	token       string
	httpClient  *http.Client
	maxResponse int64
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithMaxResponseBytes caps how much of a response body the client reads.
func WithMaxResponseBytes(limit int64) Option {
	return func(c *Client) {
		if limit > 0 {
			c.maxResponse = limit
		}
	}
}

// NewClient instantiates the carrier client. A zero timeout selects the default.
func NewClient(baseURL, token string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse delhivery base URL: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("delhivery API token is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: parsed,
		token:   token,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxResponse: defaultMaxResponse,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type queryParam struct {
	name  string
	value any
}

func (c *Client) endpoint(path string, params ...queryParam) (string, error) {
	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + path
	values := target.Query()
	for _, param := range params {
		fragment, err := runtime.StyleParamWithLocation("form", true, param.name, runtime.ParamLocationQuery, param.value)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", param.name, err)
		}
		parsed, err := url.ParseQuery(fragment)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", param.name, err)
		}
		for key, vals := range parsed {
			for _, v := range vals {
				values.Add(key, v)
			}
		}
	}
	target.RawQuery = values.Encode()
	return target.String(), nil
}

func (c *Client) get(ctx context.Context, path string, out any, params ...queryParam) error {
	endpoint, err := c.endpoint(path, params...)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	endpoint, err := c.endpoint(path)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	endpoint, err := c.endpoint(path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("delhivery client not configured")
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call delhivery API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponse+1))
	if err != nil {
		return fmt.Errorf("read delhivery response: %w", err)
	}
	if int64(len(body)) > c.maxResponse {
		return fmt.Errorf("delhivery response exceeds %d bytes", c.maxResponse)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body, resp.Status)}
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode delhivery response: %w", err)
	}
	return nil
}

func errorMessage(body []byte, fallback string) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Rmk     string `json:"rmk"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, candidate := range []string{envelope.Error, envelope.Message, envelope.Rmk, envelope.Detail} {
			if msg := strings.TrimSpace(candidate); msg != "" {
				return msg
			}
		}
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallback
	}
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}
