// Package api is the REST client for the CPQ backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/transport"
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// Transport is the base round tripper under the bearer transport.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client talks to /api/v1 on the configured base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client that asks tokens for a bearer token on every
// request.
func NewClient(baseURL string, tokens transport.TokenSource, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport.NewBearerTransport(tokens, opts.Transport),
		},
		logger: logger,
	}
}

// BaseURL returns the backend root the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch loads the full record set of resource. The response must be a JSON
// array.
func Fetch[T any](ctx context.Context, c *Client, resource catalog.Resource) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/"+string(resource)+"/", nil)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s list is not an array", ErrMalformed, resource)
	}
	var records []T
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrMalformed, resource, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Client) Customers(ctx context.Context) ([]catalog.Customer, error) {
	return Fetch[catalog.Customer](ctx, c, catalog.Customers)
}

func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	return Fetch[catalog.Product](ctx, c, catalog.Products)
}

func (c *Client) Proposals(ctx context.Context) ([]catalog.Proposal, error) {
	return Fetch[catalog.Proposal](ctx, c, catalog.Proposals)
}

func (c *Client) Subscriptions(ctx context.Context) ([]catalog.Subscription, error) {
	return Fetch[catalog.Subscription](ctx, c, catalog.Subscriptions)
}

func (c *Client) Invoices(ctx context.Context) ([]catalog.Invoice, error) {
	return Fetch[catalog.Invoice](ctx, c, catalog.Invoices)
}

// Create posts body to the resource's create endpoint and returns the
// server's message.
func (c *Client) Create(ctx context.Context, resource catalog.Resource, body any) (string, error) {
	respBody, err := c.do(ctx, http.MethodPost, "/api/v1/"+string(resource)+"/create", body)
	if err != nil {
		return "", err
	}
	var out transport.MessageBody
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("%w: create response: %v", ErrMalformed, err)
	}
	return out.Message, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	respBody, err := c.do(ctx, http.MethodPost, "/api/v1/users/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var out loginResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("%w: login response: %v", ErrMalformed, err)
	}
	return out.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "error", err)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg transport.MessageBody
		_ = json.Unmarshal(body, &msg)
		return nil, &StatusError{Code: resp.StatusCode, Message: msg.Message}
	}
	return body, nil
}
