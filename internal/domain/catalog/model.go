package catalog

// Customer is a billing customer as returned by GET /api/v1/customers/.
type Customer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	BillingContact string `json:"billing_contact"`
	Currency       string `json:"currency"`
	Location       string `json:"location"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	PostalCode     string `json:"postal_code"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// Product is a sellable product as returned by GET /api/v1/products/.
type Product struct {
	ID           int64   `json:"id"`
	UUID         string  `json:"uuid"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	InternalName string  `json:"internal_name"`
	Description  string  `json:"description"`
	ChargeMethod string  `json:"charge_method"`
	Currency     string  `json:"currency"`
	UnitPrice    float64 `json:"unit_price"`
	Status       string  `json:"status"`
	LastActivity string  `json:"last_activity"`
}

// Proposal is a row of the proposals list.
type Proposal struct {
	CustomerOrProposalTitle string `json:"customerOrProposalTitle"`
	ValueOrTerm             string `json:"valueOrTerm"`
	LastActivity            string `json:"lastActivity"`
	Status                  string `json:"status"`
	Signed                  string `json:"signed"`
}

// Subscription is a row of the subscriptions list.
type Subscription struct {
	CustomerSubscriptionNo string  `json:"customerSubscriptionNo"`
	Start                  string  `json:"start"`
	End                    string  `json:"end"`
	TCV                    float64 `json:"tcv"`
	NextPayment            string  `json:"nextPayment"`
	BillFrequencyMethod    string  `json:"billFrequencyMethod"`
	AutoRenewal            string  `json:"autoRenewal"`
	Status                 string  `json:"status"`
}

// Invoice is a row of the invoices list.
type Invoice struct {
	InvoiceNo    string  `json:"invoiceNo"`
	Customer     string  `json:"customer"`
	Amount       float64 `json:"amount"`
	Balance      float64 `json:"balance"`
	InvoiceDate  string  `json:"invoiceDate"`
	DueDate      string  `json:"dueDate"`
	LinkedStatus string  `json:"linkedStatus"`
	Status       string  `json:"status"`
}
