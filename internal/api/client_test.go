package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/quotedesk/internal/api"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/testserver"
	"github.com/stretchr/testify/require"
)

type tokenFunc func() string

func (f tokenFunc) Token(context.Context) (string, error) { return f(), nil }

func newClient(t *testing.T) (*api.Client, *testserver.TestServer) {
	t.Helper()
	ts := testserver.New(t)
	token := ts.Token()
	return api.NewClient(ts.URL, tokenFunc(func() string { return token }), api.Options{}), ts
}

func TestClient_FetchEachResource(t *testing.T) {
	ctx := context.Background()
	client, _ := newClient(t)

	customers, err := client.Customers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	require.Equal(t, "Acme", customers[0].Name)

	products, err := client.Products(ctx)
	require.NoError(t, err)
	require.Equal(t, 10.0, products[0].UnitPrice)

	proposals, err := client.Proposals(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, proposals)

	subs, err := client.Subscriptions(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, subs)

	invoices, err := api.Fetch[catalog.Invoice](ctx, client, catalog.Invoices)
	require.NoError(t, err)
	require.Equal(t, "INV-1001", invoices[0].InvoiceNo)
}

func TestClient_FetchWithoutTokenIsUnauthorized(t *testing.T) {
	ts := testserver.New(t)
	client := api.NewClient(ts.URL, tokenFunc(func() string { return "" }), api.Options{})

	_, err := client.Customers(context.Background())
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 401, statusErr.Code)
	require.Equal(t, "missing bearer token", statusErr.Message)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	ctx := context.Background()
	client, ts := newClient(t)

	ts.Backend.FailList(catalog.Invoices, testserver.FaultStatus)
	_, err := client.Invoices(ctx)
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 500, statusErr.Code)
	require.Equal(t, testserver.FaultMessage, statusErr.Message)

	ts.Backend.FailList(catalog.Invoices, testserver.FaultMalformed)
	_, err = client.Invoices(ctx)
	require.ErrorIs(t, err, api.ErrMalformed)

	ts.Backend.FailList(catalog.Invoices, testserver.FaultHangup)
	_, err = client.Invoices(ctx)
	var transportErr *api.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestClient_Unreachable(t *testing.T) {
	ts := testserver.New(t)
	ts.Server.Close()
	client := api.NewClient(ts.URL, nil, api.Options{Timeout: time.Second})

	_, err := client.Products(context.Background())
	var transportErr *api.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, api.NoResponseMessage, api.UserMessage(err, "fallback"))
}

func TestClient_Create(t *testing.T) {
	ctx := context.Background()
	client, ts := newClient(t)

	msg, err := client.Create(ctx, catalog.Products, catalog.ProductInput{Name: "Widget"})
	require.NoError(t, err)
	require.Equal(t, "Product created successfully", msg)

	created := ts.Backend.Created(catalog.Products)
	require.Len(t, created, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal(created[0], &body))
	require.Equal(t, "Widget", body["name"])

	_, err = client.Create(ctx, catalog.Customers, catalog.CustomerInput{Name: "Acme"})
	require.Equal(t, "Error: Customer already exists", api.UserMessage(err, "fallback"))
}

func TestClient_Login(t *testing.T) {
	ctx := context.Background()
	ts := testserver.New(t)
	client := api.NewClient(ts.URL+"/", nil, api.Options{})

	token, err := client.Login(ctx, testserver.Email, testserver.Password)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	account, err := ts.Backend.ResolveAccount(ctx, token)
	require.NoError(t, err)
	require.Equal(t, testserver.Email, account)

	_, err = client.Login(ctx, testserver.Email, "wrong")
	require.Equal(t, "Error: Invalid email or password", api.UserMessage(err, ""))
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "Error: boom", api.UserMessage(&api.StatusError{Code: 400, Message: "boom"}, "x"))
	require.Equal(t, "Error: Unknown server error", api.UserMessage(&api.StatusError{Code: 500}, "x"))
	require.Equal(t, api.NoResponseMessage, api.UserMessage(&api.TransportError{Err: errors.New("eof")}, "x"))
	require.Equal(t, "Error creating customer. Please try again.", api.UserMessage(errors.New("encode"), "Error creating customer. Please try again."))
}
