package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticSource struct {
	token string
	err   error
	calls int
}

func (s *staticSource) Token(context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

func captureServer(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestBearerTransport_AttachesTokenPerRequest(t *testing.T) {
	srv, seen := captureServer(t)
	source := &staticSource{token: "tok-1"}
	client := &http.Client{Transport: NewBearerTransport(source, nil)}

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "Bearer tok-1", *seen)
	require.Empty(t, req.Header.Get("Authorization"), "caller's request must not be mutated")

	source.token = "tok-2"
	resp, err = client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "Bearer tok-2", *seen)
	require.Equal(t, 2, source.calls)
}

func TestBearerTransport_OmitsHeaderWithoutToken(t *testing.T) {
	srv, seen := captureServer(t)
	client := &http.Client{Transport: NewBearerTransport(&staticSource{}, nil)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Empty(t, *seen)
}

func TestBearerTransport_SourceErrorFailsRequest(t *testing.T) {
	srv, _ := captureServer(t)
	boom := errors.New("locked")
	client := &http.Client{Transport: NewBearerTransport(&staticSource{err: boom}, nil)}

	_, err := client.Get(srv.URL)
	require.ErrorIs(t, err, boom)
}
