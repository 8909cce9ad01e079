package testserver

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Default login accepted by a new TestServer.
const (
	Email    = "ops@acme.test"
	Password = "s3cret"
)

// TestServer is a running fake backend.
type TestServer struct {
	Server  *httptest.Server
	Backend *Backend
	URL     string
}

// New starts a fake backend with the default login registered.
func New(t *testing.T) *TestServer {
	t.Helper()

	backend := NewBackend()
	require.NoError(t, backend.AddUser(Email, Password))

	server := httptest.NewServer(backend.Router())
	t.Cleanup(server.Close)

	return &TestServer{
		Server:  server,
		Backend: backend,
		URL:     server.URL,
	}
}

// Token issues a valid token for the default login.
func (ts *TestServer) Token() string {
	return ts.Backend.IssueToken(Email)
}
