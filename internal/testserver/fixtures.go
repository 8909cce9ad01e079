package testserver

import "github.com/rpggio/quotedesk/internal/domain/catalog"

func (b *Backend) seed() {
	b.customers = []catalog.Customer{
		{ID: "cust-acme", Name: "Acme", Email: "billing@acme.test", Currency: "USD", Location: "1 Main St", City: "Austin", State: "Texas", Country: "usa"},
		{ID: "cust-zebra", Name: "Zebra", Email: "ap@zebra.test", Currency: "INR", Location: "4 MG Road", City: "Bengaluru", State: "Karnataka", Country: "india"},
		{ID: "cust-acme-corp", Name: "acme Corp", Email: "finance@acmecorp.test", Currency: "USD", Location: "9 Dock Rd", City: "Liverpool", State: "Merseyside", Country: "england"},
	}
	b.products = []catalog.Product{
		{ID: 1, UUID: "9f1c3a52-0000-4000-8000-000000000001", Name: "Seat licence", Quantity: 100, InternalName: "seat", ChargeMethod: "Recurring", Currency: "USD", UnitPrice: 10, Status: "Active"},
		{ID: 2, UUID: "9f1c3a52-0000-4000-8000-000000000002", Name: "Support plan", Quantity: 10, InternalName: "support", ChargeMethod: "Recurring", Currency: "USD", UnitPrice: 5, Status: "Active"},
		{ID: 3, UUID: "9f1c3a52-0000-4000-8000-000000000003", Name: "Onboarding", Quantity: 1, InternalName: "onboard", ChargeMethod: "One-time", Currency: "USD", UnitPrice: 250, Status: "Active"},
	}
	b.nextID = 3
	b.proposals = []catalog.Proposal{
		{CustomerOrProposalTitle: "Acme renewal", ValueOrTerm: "1200 / 12 months", LastActivity: "2026-02-01", Status: "Sent", Signed: "No"},
		{CustomerOrProposalTitle: "Zebra expansion", ValueOrTerm: "300 / 1 years", LastActivity: "2026-01-15", Status: "Draft", Signed: "No"},
		{CustomerOrProposalTitle: "acme Corp pilot", ValueOrTerm: "50 / 3 months", LastActivity: "2026-02-20", Status: "Accepted", Signed: "Yes"},
	}
	b.subscriptions = []catalog.Subscription{
		{CustomerSubscriptionNo: "Acme / SUB-001", Start: "2025-01-01", End: "2025-12-31", TCV: 1200, NextPayment: "2025-07-01", BillFrequencyMethod: "Monthly / Card", AutoRenewal: "Yes", Status: "Active"},
		{CustomerSubscriptionNo: "Zebra / SUB-002", Start: "2025-03-01", End: "2026-02-28", TCV: 300, NextPayment: "2025-09-01", BillFrequencyMethod: "Annual / Invoice", AutoRenewal: "No", Status: "Active"},
	}
	b.invoices = []catalog.Invoice{
		{InvoiceNo: "INV-1001", Customer: "Acme", Amount: 100, Balance: 0, InvoiceDate: "2025-01-01", DueDate: "2025-01-31", LinkedStatus: "Paid", Status: "Closed"},
		{InvoiceNo: "INV-1002", Customer: "Zebra", Amount: 300, Balance: 300, InvoiceDate: "2025-03-01", DueDate: "2025-03-31", LinkedStatus: "Open", Status: "Open"},
		{InvoiceNo: "INV-1003", Customer: "acme Corp", Amount: 50, Balance: 25, InvoiceDate: "2025-02-20", DueDate: "2025-03-20", LinkedStatus: "Partial", Status: "Open"},
	}
}
