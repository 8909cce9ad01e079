package transport

import (
	"context"
	"fmt"
	"net/http"
)

// TokenSource supplies the bearer token for outgoing requests. An empty token
// means the request is sent without credentials.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// BearerTransport attaches the current token to every request.
type BearerTransport struct {
	Source TokenSource
	Base   http.RoundTripper
}

// NewBearerTransport wraps base, defaulting to http.DefaultTransport.
func NewBearerTransport(source TokenSource, base http.RoundTripper) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &BearerTransport{Source: source, Base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Source == nil {
		return t.Base.RoundTrip(req)
	}
	token, err := t.Source.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("reading bearer token: %w", err)
	}
	if token == "" {
		return t.Base.RoundTrip(req)
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return t.Base.RoundTrip(out)
}
