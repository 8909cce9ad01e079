package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/quotedesk/internal/app"
	"github.com/rpggio/quotedesk/internal/config"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/mcp"
	"github.com/rpggio/quotedesk/internal/testserver"
	"github.com/stretchr/testify/require"
)

type harness struct {
	ts     *testserver.TestServer
	app    *app.App
	client *sdkmcp.ClientSession
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	ts := testserver.New(t)
	cfg := config.Defaults()
	cfg.API.BaseURL = ts.URL
	cfg.Session.Path = ":memory:"
	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	ss, err := a.MCPServer("test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	return &harness{ts: ts, app: a, client: cs}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	_, err := h.app.Session.Login(context.Background(), testserver.Email, testserver.Password)
	require.NoError(t, err)
}

func (h *harness) call(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	result, err := h.client.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	return result
}

func text(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	content, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

func decode[T any](t *testing.T, result *sdkmcp.CallToolResult) T {
	t.Helper()
	require.False(t, result.IsError, text(t, result))
	var out T
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &out))
	return out
}

func TestListTools(t *testing.T) {
	h := newHarness(t)

	tools, err := h.client.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_records", "create_customer", "create_product",
		"quote_total", "session_status", "recent_activity",
	}, names)
}

func TestProtectedToolsRequireSession(t *testing.T) {
	h := newHarness(t)

	result := h.call(t, "list_records", map[string]any{"resource": "customers"})
	require.True(t, result.IsError)
	require.Contains(t, text(t, result), "NOT_AUTHENTICATED")
	require.Zero(t, h.ts.Backend.Requests(catalog.Customers))

	status := decode[mcp.SessionStatusOutput](t, h.call(t, "session_status", map[string]any{}))
	require.False(t, status.Authenticated)
}

func TestSessionStatusAfterLogin(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	status := decode[mcp.SessionStatusOutput](t, h.call(t, "session_status", map[string]any{}))
	require.True(t, status.Authenticated)
	require.Equal(t, testserver.Email, status.Account)
	require.NotEmpty(t, status.ExpiresAt)
}

func TestListRecords_FilterSortPage(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out := decode[mcp.ListRecordsOutput](t, h.call(t, "list_records", map[string]any{
		"resource":       "customer",
		"filter":         "ACME",
		"sort_column":    "name",
		"sort_direction": "descending",
	}))
	require.Equal(t, catalog.Customers, out.Resource)
	require.Equal(t, 2, out.Matched)
	require.Equal(t, 3, out.Total)
	require.Equal(t, "acme Corp", out.Rows[0][0])
	require.Equal(t, "Acme", out.Rows[1][0])
	require.Equal(t, "name", out.Sort.ColumnKey)
	require.False(t, out.Degraded)

	paged := decode[mcp.ListRecordsOutput](t, h.call(t, "list_records", map[string]any{
		"resource":  "invoices",
		"page":      2,
		"page_size": 2,
	}))
	require.Equal(t, 2, paged.Page)
	require.Equal(t, 2, paged.PageCount)
	require.Len(t, paged.Rows, 1)
	require.Equal(t, "INV-1003", paged.Rows[0][0])
}

func TestListRecords_DegradesOnFetchFailure(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.ts.Backend.FailList(catalog.Products, testserver.FaultStatus)

	out := decode[mcp.ListRecordsOutput](t, h.call(t, "list_records", map[string]any{"resource": "products"}))
	require.True(t, out.Degraded)
	require.Empty(t, out.Rows)
	require.Zero(t, out.Total)
	require.NotEmpty(t, out.Warning)
}

func TestListRecords_Errors(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	result := h.call(t, "list_records", map[string]any{"resource": "orders"})
	require.True(t, result.IsError)
	require.Contains(t, text(t, result), "UNKNOWN_RESOURCE")

	result = h.call(t, "list_records", map[string]any{"resource": "customers", "sort_column": "location"})
	require.True(t, result.IsError)
	require.Contains(t, text(t, result), "INVALID_SORT")
}

func TestCreateTools(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	result := h.call(t, "create_customer", map[string]any{"email": "a@b.test"})
	require.True(t, result.IsError)
	require.Contains(t, text(t, result), "Please input the company name!")
	require.Empty(t, h.ts.Backend.Created(catalog.Customers))

	out := decode[mcp.CreateOutput](t, h.call(t, "create_product", map[string]any{"name": "Training"}))
	require.Equal(t, "Product created successfully", out.Message)

	result = h.call(t, "create_customer", map[string]any{
		"name": "Acme", "email": "ap@acme.test", "currency": "USD",
		"billing_contact": "Jo", "location": "1 Main St", "city": "Austin",
		"postal_code": "73301", "country": "usa", "state": "Texas",
	})
	require.True(t, result.IsError)
	require.Contains(t, text(t, result), "Error: Customer already exists")
}

func TestQuoteTotal(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out := decode[mcp.QuoteTotalOutput](t, h.call(t, "quote_total", map[string]any{
		"lines": []map[string]any{
			{"product_id": 1, "quantity": 4},
			{"product_id": 2, "quantity": -3},
		},
	}))
	require.Len(t, out.Lines, 2)
	require.Equal(t, 40.0, out.Lines[0].Subtotal)
	require.Equal(t, 0.0, out.Lines[1].Quantity)
	require.Equal(t, 40.0, out.Total)
	require.Equal(t, "40.00", out.TotalText)

	result := h.call(t, "quote_total", map[string]any{
		"lines": []map[string]any{{"product_id": 99, "quantity": 1}},
	})
	require.True(t, result.IsError)
	require.Contains(t, text(t, result), "UNKNOWN_PRODUCT")
}

func TestRecentActivity(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out := decode[mcp.RecentActivityOutput](t, h.call(t, "recent_activity", map[string]any{"type": "signed_in"}))
	require.Len(t, out.Entries, 1)
	require.Equal(t, "signed_in", out.Entries[0].Type)
}

func TestDocsResource(t *testing.T) {
	h := newHarness(t)

	res, err := h.client.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "quotedesk://docs/tools"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "list_records")
}
