package catalog

import (
	"strconv"

	"github.com/rpggio/quotedesk/internal/domain/viewstate"
)

// Column describes one table column. A nil Compare makes the column unsortable.
type Column[T any] struct {
	Key     string
	Title   string
	Render  func(T) string
	Compare viewstate.Comparator[T]
}

// Sortable reports whether the column can order the projection.
func (c Column[T]) Sortable() bool {
	return c.Compare != nil
}

// Definition binds a record type to its resource, title field and columns.
type Definition[T any] struct {
	Resource Resource
	Title    func(T) string
	Columns  []Column[T]
}

// Column looks up a column by key.
func (d Definition[T]) Column(key string) (Column[T], bool) {
	for _, c := range d.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

func text[T any](key, title string, field func(T) string, sortable bool) Column[T] {
	c := Column[T]{Key: key, Title: title, Render: field}
	if sortable {
		c.Compare = viewstate.TextComparator(field)
	}
	return c
}

func number[T any](key, title string, field func(T) float64, sortable bool) Column[T] {
	c := Column[T]{
		Key:    key,
		Title:  title,
		Render: func(v T) string { return formatNumber(field(v)) },
	}
	if sortable {
		c.Compare = viewstate.NumberComparator(field)
	}
	return c
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ProposalDefinition describes the proposals table.
func ProposalDefinition() Definition[Proposal] {
	title := func(p Proposal) string { return p.CustomerOrProposalTitle }
	return Definition[Proposal]{
		Resource: Proposals,
		Title:    title,
		Columns: []Column[Proposal]{
			text("customerOrProposalTitle", "Customer/Proposal Title", title, true),
			text("valueOrTerm", "Value/Term", func(p Proposal) string { return p.ValueOrTerm }, true),
			text("lastActivity", "Last Activity", func(p Proposal) string { return p.LastActivity }, true),
			text("status", "Status", func(p Proposal) string { return p.Status }, true),
			text("signed", "Signed", func(p Proposal) string { return p.Signed }, true),
		},
	}
}

// CustomerDefinition describes the customers table.
func CustomerDefinition() Definition[Customer] {
	title := func(c Customer) string { return c.Name }
	return Definition[Customer]{
		Resource: Customers,
		Title:    title,
		Columns: []Column[Customer]{
			text("name", "Name", title, true),
			text("location", "Ship to address / Bill to address", func(c Customer) string { return c.Location }, false),
			text("email", "Billing Contact", func(c Customer) string { return c.Email }, false),
			text("currency", "Default Currency", func(c Customer) string { return c.Currency }, false),
		},
	}
}

// ProductDefinition describes the products table.
func ProductDefinition() Definition[Product] {
	title := func(p Product) string { return p.Name }
	return Definition[Product]{
		Resource: Products,
		Title:    title,
		Columns: []Column[Product]{
			text("name", "Name", title, true),
			number("quantity", "Quantity", func(p Product) float64 { return p.Quantity }, false),
			text("internalName", "Internal Name", func(p Product) string { return p.InternalName }, false),
			text("description", "Description", func(p Product) string { return p.Description }, false),
			text("chargeMethod", "Charge Method", func(p Product) string { return p.ChargeMethod }, false),
			text("currency", "Currency", func(p Product) string { return p.Currency }, false),
			number("unitPrice", "Unit Price", func(p Product) float64 { return p.UnitPrice }, true),
			text("status", "Status", func(p Product) string { return p.Status }, false),
			text("lastActivity", "Last Activity", func(p Product) string { return p.LastActivity }, false),
		},
	}
}

// SubscriptionDefinition describes the subscriptions table.
func SubscriptionDefinition() Definition[Subscription] {
	title := func(s Subscription) string { return s.CustomerSubscriptionNo }
	return Definition[Subscription]{
		Resource: Subscriptions,
		Title:    title,
		Columns: []Column[Subscription]{
			text("customerSubscriptionNo", "Customer/Subscription No.", title, true),
			text("start", "Start", func(s Subscription) string { return s.Start }, true),
			text("end", "End", func(s Subscription) string { return s.End }, true),
			number("tcv", "TCV", func(s Subscription) float64 { return s.TCV }, true),
			text("nextPayment", "Next Payment", func(s Subscription) string { return s.NextPayment }, false),
			text("billFrequencyMethod", "Bill Frequency/Method", func(s Subscription) string { return s.BillFrequencyMethod }, true),
			text("autoRenewal", "Auto Renewal", func(s Subscription) string { return s.AutoRenewal }, false),
			text("status", "Status", func(s Subscription) string { return s.Status }, false),
		},
	}
}

// InvoiceDefinition describes the invoices table.
func InvoiceDefinition() Definition[Invoice] {
	title := func(i Invoice) string { return i.InvoiceNo }
	return Definition[Invoice]{
		Resource: Invoices,
		Title:    title,
		Columns: []Column[Invoice]{
			text("invoiceNo", "Invoice No", title, true),
			text("customer", "Customer", func(i Invoice) string { return i.Customer }, true),
			number("amount", "Amount", func(i Invoice) float64 { return i.Amount }, true),
			number("balance", "Balance", func(i Invoice) float64 { return i.Balance }, true),
			text("invoiceDate", "Invoice Date", func(i Invoice) string { return i.InvoiceDate }, true),
			text("dueDate", "Due Date", func(i Invoice) string { return i.DueDate }, true),
			text("linkedStatus", "Linked Status", func(i Invoice) string { return i.LinkedStatus }, true),
			text("status", "Status", func(i Invoice) string { return i.Status }, false),
		},
	}
}
