package proposal

import (
	"fmt"
	"strings"
	"time"
)

// TermUnit is the period a proposal term is counted in.
type TermUnit string

const (
	TermMonths   TermUnit = "months"
	TermQuarters TermUnit = "quarters"
	TermYears    TermUnit = "years"
)

// TermUnits returns the accepted units in form order.
func TermUnits() []TermUnit {
	return []TermUnit{TermMonths, TermQuarters, TermYears}
}

// ParseTermUnit accepts a unit name in any case. Empty input selects months.
func ParseTermUnit(s string) (TermUnit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TermMonths, nil
	}
	for _, u := range TermUnits() {
		if string(u) == s || string(u) == s+"s" {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown term unit %q", s)
}

// Term is the proposal duration.
type Term struct {
	Count int      `json:"count"`
	Unit  TermUnit `json:"unit"`
}

func (t Term) String() string {
	if t.Count == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s", t.Count, t.Unit)
}

// LineItem is one product line of a draft.
type LineItem struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    float64 `json:"quantity"`
}

// Subtotal is quantity times unit price.
func (l LineItem) Subtotal() float64 {
	return l.Quantity * l.UnitPrice
}

// Request is the body of POST /api/v1/proposals/create.
type Request struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customerId"`
	Reference       string     `json:"proposalRef,omitempty"`
	ProposalExpires string     `json:"proposalExpires"`
	Term            Term       `json:"term"`
	Products        []LineItem `json:"products"`
	TotalPrice      float64    `json:"totalPrice"`
}

// DateLayout is the wire format of the expiry date.
const DateLayout = time.DateOnly
