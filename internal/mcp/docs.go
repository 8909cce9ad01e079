package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `quotedesk is the admin console of a CPQ (configure, price, quote) backend.

Tools:
- list_records: filter, sort and page proposals, subscriptions, invoices, customers or products.
- create_customer / create_product: validated creates; the result is the server's message.
- quote_total: price product ids and quantities without submitting a proposal.
- session_status / recent_activity: local state, available while signed out.

All other tools need a stored session. When a tool returns NOT_AUTHENTICATED the
operator must run ` + "`quotedesk login`" + `; agents cannot sign in.

Docs: quotedesk://docs/tools
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "quotedesk://docs/tools",
		Name:        "docs_tools",
		Title:       "quotedesk tool reference",
		Description: "Arguments, column keys and error codes for every quotedesk tool.",
		Content: `# quotedesk tools

## list_records

- ` + "`resource`" + `: proposals | subscriptions | invoices | customers | products (singular accepted).
- ` + "`filter`" + `: case-insensitive substring matched against the title column only.
- ` + "`sort_column`" + ` / ` + "`sort_direction`" + `: ascending | descending | none. Sorting a column that is not sortable fails with INVALID_SORT.
- ` + "`page`" + ` (1-based) and ` + "`page_size`" + `.

A failed fetch returns an empty table with ` + "`degraded: true`" + `; it is not an error.

Sortable columns:

| resource | columns |
|---|---|
| proposals | customerOrProposalTitle, valueOrTerm, lastActivity, status, signed |
| subscriptions | customerSubscriptionNo, start, end, tcv, billFrequencyMethod |
| invoices | invoiceNo, customer, amount, balance, invoiceDate, dueDate, linkedStatus |
| customers | name |
| products | name, unitPrice |

## create_customer

Every field is required. ` + "`currency`" + ` is USD or INR. ` + "`country`" + ` is india, usa or england and
` + "`state`" + ` must belong to it.

## create_product

Only ` + "`name`" + ` is required.

## quote_total

Lines of ` + "`product_id`" + ` and ` + "`quantity`" + `. Negative quantities count as 0. The same
product may appear on more than one line.

## Error codes

NOT_AUTHENTICATED, VALIDATION_FAILED, UNKNOWN_RESOURCE, INVALID_SORT, UNKNOWN_PRODUCT,
BACKEND_ERROR, BACKEND_UNREACHABLE, BACKEND_MALFORMED.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
