package mcp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/quotedesk/internal/console"
	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/proposal"
	"github.com/rpggio/quotedesk/internal/domain/viewstate"
)

type ListRecordsInput struct {
	Resource      string `json:"resource" jsonschema:"proposals, subscriptions, invoices, customers or products"`
	Filter        string `json:"filter,omitempty" jsonschema:"case-insensitive substring matched against the title column"`
	SortColumn    string `json:"sort_column,omitempty" jsonschema:"column key to sort by"`
	SortDirection string `json:"sort_direction,omitempty" jsonschema:"ascending, descending or none"`
	Page          int    `json:"page,omitempty" jsonschema:"1-based page number"`
	PageSize      int    `json:"page_size,omitempty" jsonschema:"rows per page"`
}

type ListRecordsOutput struct {
	Resource  catalog.Resource     `json:"resource"`
	Columns   []console.ColumnInfo `json:"columns"`
	Rows      [][]string           `json:"rows"`
	Page      int                  `json:"page"`
	PageCount int                  `json:"page_count"`
	Matched   int                  `json:"matched"`
	Total     int                  `json:"total"`
	Sort      viewstate.SortState  `json:"sort"`
	Degraded  bool                 `json:"degraded,omitempty"`
	Warning   string               `json:"warning,omitempty"`
}

type CreateCustomerInput struct {
	Name           string `json:"name,omitempty" jsonschema:"company name"`
	Email          string `json:"email,omitempty"`
	Currency       string `json:"currency,omitempty" jsonschema:"USD or INR"`
	BillingContact string `json:"billing_contact,omitempty"`
	Location       string `json:"location,omitempty" jsonschema:"street address"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	Country        string `json:"country,omitempty" jsonschema:"india, usa or england"`
	State          string `json:"state,omitempty" jsonschema:"state or province within the country"`
}

type CreateProductInput struct {
	Name string `json:"name,omitempty" jsonschema:"product name"`
}

type CreateOutput struct {
	Message string `json:"message"`
}

type QuoteLineInput struct {
	ProductID int64   `json:"product_id" jsonschema:"product id from list_records products"`
	Quantity  float64 `json:"quantity" jsonschema:"negative quantities count as 0"`
}

type QuoteTotalInput struct {
	Lines []QuoteLineInput `json:"lines"`
}

type QuotedLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  float64 `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type QuoteTotalOutput struct {
	Lines     []QuotedLine `json:"lines"`
	Total     float64      `json:"total"`
	TotalText string       `json:"total_text"`
}

type SessionStatusInput struct{}

type SessionStatusOutput struct {
	Authenticated bool   `json:"authenticated"`
	Account       string `json:"account,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

type RecentActivityInput struct {
	Resource string `json:"resource,omitempty"`
	Type     string `json:"type,omitempty" jsonschema:"signed_in, signed_out, record_created, create_failed, fetch_degraded or proposal_submitted"`
	Limit    int    `json:"limit,omitempty"`
}

type ActivityOutput struct {
	Type      string `json:"type"`
	Resource  string `json:"resource,omitempty"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

type RecentActivityOutput struct {
	Entries []ActivityOutput `json:"entries"`
}

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_records",
		Description: "Fetch one resource and return a filtered, sorted page of rendered rows.",
	}, listRecords(svc))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_customer",
		Description: "Validate and create a customer.",
	}, createCustomer(svc))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_product",
		Description: "Validate and create a product.",
	}, createProduct(svc))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "quote_total",
		Description: "Price product lines and return subtotals and the proposal total.",
	}, quoteTotal(svc))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "session_status",
		Description: "Report whether a session is stored and when it expires.",
	}, sessionStatus(svc))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent console events, newest first.",
	}, recentActivity(svc))
}

func listRecords(svc Services) sdkmcp.ToolHandlerFor[ListRecordsInput, ListRecordsOutput] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListRecordsInput) (*sdkmcp.CallToolResult, ListRecordsOutput, error) {
		r, err := catalog.ParseResource(in.Resource)
		if err != nil {
			return nil, ListRecordsOutput{}, toolError(err)
		}
		v, err := svc.Console.FreshView(r)
		if err != nil {
			return nil, ListRecordsOutput{}, toolError(err)
		}
		if in.PageSize > 0 {
			v.SetPageSize(in.PageSize)
		}

		out := ListRecordsOutput{Resource: r}
		if err := v.Refresh(ctx); err != nil {
			out.Degraded = true
			out.Warning = err.Error()
			if apiErr := MapError(err); apiErr != nil {
				out.Warning = apiErr.Message
			}
		}

		v.SetFilter(in.Filter)
		if in.SortColumn != "" {
			if err := console.ApplySort(v, in.SortColumn, viewstate.ParseDirection(in.SortDirection)); err != nil {
				return nil, ListRecordsOutput{}, toolError(err)
			}
		}
		if in.Page > 0 {
			v.SetPage(in.Page - 1)
		}

		out.Columns = v.Columns()
		out.Rows = append([][]string{}, v.Rows()...)
		out.Page = v.Page() + 1
		out.PageCount = v.PageCount()
		out.Matched = v.Len()
		out.Total = v.Total()
		out.Sort = v.Sort()
		return nil, out, nil
	}
}

func createCustomer(svc Services) sdkmcp.ToolHandlerFor[CreateCustomerInput, CreateOutput] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateCustomerInput) (*sdkmcp.CallToolResult, CreateOutput, error) {
		msg, err := svc.Console.CreateCustomer(ctx, catalog.CustomerInput{
			Name:           in.Name,
			Email:          in.Email,
			Currency:       in.Currency,
			BillingContact: in.BillingContact,
			Location:       in.Location,
			City:           in.City,
			PostalCode:     in.PostalCode,
			Country:        in.Country,
			State:          in.State,
		})
		if err != nil {
			return nil, CreateOutput{}, createError(msg, err)
		}
		return nil, CreateOutput{Message: msg}, nil
	}
}

func createProduct(svc Services) sdkmcp.ToolHandlerFor[CreateProductInput, CreateOutput] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProductInput) (*sdkmcp.CallToolResult, CreateOutput, error) {
		msg, err := svc.Console.CreateProduct(ctx, catalog.ProductInput{Name: in.Name})
		if err != nil {
			return nil, CreateOutput{}, createError(msg, err)
		}
		return nil, CreateOutput{Message: msg}, nil
	}
}

func createError(msg string, err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return &APIError{Code: "CREATE_FAILED", Message: msg}
}

func quoteTotal(svc Services) sdkmcp.ToolHandlerFor[QuoteTotalInput, QuoteTotalOutput] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in QuoteTotalInput) (*sdkmcp.CallToolResult, QuoteTotalOutput, error) {
		lines := make([]proposal.QuoteLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			lines = append(lines, proposal.QuoteLine{
				ProductID: l.ProductID,
				Quantity:  strconv.FormatFloat(l.Quantity, 'f', -1, 64),
			})
		}
		d, err := svc.Quotes.Quote(ctx, lines)
		if err != nil {
			return nil, QuoteTotalOutput{}, toolError(err)
		}

		out := QuoteTotalOutput{Lines: []QuotedLine{}, Total: d.Total()}
		for _, l := range d.Lines() {
			out.Lines = append(out.Lines, QuotedLine{
				ProductID: l.ProductID,
				Name:      l.Name,
				UnitPrice: l.UnitPrice,
				Quantity:  l.Quantity,
				Subtotal:  l.Subtotal(),
			})
		}
		out.TotalText = fmt.Sprintf("%.2f", out.Total)
		return nil, out, nil
	}
}

func sessionStatus(svc Services) sdkmcp.ToolHandlerFor[SessionStatusInput, SessionStatusOutput] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ SessionStatusInput) (*sdkmcp.CallToolResult, SessionStatusOutput, error) {
		st, err := svc.Session.Status(ctx)
		if err != nil {
			return nil, SessionStatusOutput{}, toolError(err)
		}
		out := SessionStatusOutput{Authenticated: st.Authenticated, Account: st.Account}
		if st.ExpiresAt != nil {
			out.ExpiresAt = st.ExpiresAt.UTC().Format(time.RFC3339)
		}
		return nil, out, nil
	}
}

func recentActivity(svc Services) sdkmcp.ToolHandlerFor[RecentActivityInput, RecentActivityOutput] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityInput) (*sdkmcp.CallToolResult, RecentActivityOutput, error) {
		opts := activity.ListActivityOptions{Resource: in.Resource, Limit: in.Limit}
		if in.Type != "" {
			typ := activity.ActivityType(in.Type)
			opts.ActivityType = &typ
		}
		entries, err := svc.Activity.GetRecentActivity(ctx, opts)
		if err != nil {
			return nil, RecentActivityOutput{}, toolError(err)
		}
		out := RecentActivityOutput{Entries: make([]ActivityOutput, 0, len(entries))}
		for _, e := range entries {
			out.Entries = append(out.Entries, ActivityOutput{
				Type:      string(e.ActivityType),
				Resource:  e.Resource,
				Summary:   e.Summary,
				CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return nil, out, nil
	}
}
