package proposal

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
)

// Draft is a client-side proposal under composition. Its total is kept equal
// to the sum of line subtotals after every change.
type Draft struct {
	ID         string
	CustomerID string
	Reference  string
	ExpiresOn  time.Time
	Term       Term

	lines []LineItem
	total float64
}

// NewDraft creates an empty draft with a fresh identifier.
func NewDraft() *Draft {
	return &Draft{ID: uuid.NewString(), Term: Term{Unit: TermMonths}}
}

// AddLine appends a line for product with quantity 0 and returns its index.
// Adding the same product twice yields two lines.
func (d *Draft) AddLine(p catalog.Product) int {
	d.lines = append(d.lines, LineItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   max(0, finite(p.UnitPrice)),
	})
	d.recompute()
	return len(d.lines) - 1
}

// SetQuantity parses raw as a decimal quantity for the line at index.
// Unparseable or negative input becomes 0. An out-of-range index is ignored.
func (d *Draft) SetQuantity(index int, raw string) {
	if index < 0 || index >= len(d.lines) {
		return
	}
	d.lines[index].Quantity = ParseQuantity(raw)
	d.recompute()
}

// Lines returns a copy of the draft's lines.
func (d *Draft) Lines() []LineItem {
	return slices.Clone(d.lines)
}

// Total returns the current sum of subtotals.
func (d *Draft) Total() float64 {
	return d.total
}

// ParseQuantity converts user input into a non-negative finite quantity.
func ParseQuantity(raw string) float64 {
	q, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	q = finite(q)
	if q < 0 {
		return 0
	}
	return q
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (d *Draft) recompute() {
	var sum float64
	for _, l := range d.lines {
		sum += l.Subtotal()
	}
	d.total = sum
}

// Validate reports every missing header field.
func (d *Draft) Validate() error {
	var messages []string
	if strings.TrimSpace(d.CustomerID) == "" {
		messages = append(messages, "Please select a customer!")
	}
	if d.ExpiresOn.IsZero() {
		messages = append(messages, "Please select the proposal expiry date!")
	}
	if d.Term.Count <= 0 || !slices.Contains(TermUnits(), d.Term.Unit) {
		messages = append(messages, "Term is required!")
	}
	if len(messages) > 0 {
		return &catalog.ValidationError{Messages: messages}
	}
	return nil
}

// Request validates the draft and builds its submission body.
func (d *Draft) Request() (Request, error) {
	if err := d.Validate(); err != nil {
		return Request{}, err
	}
	return Request{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		Reference:       strings.TrimSpace(d.Reference),
		ProposalExpires: d.ExpiresOn.Format(DateLayout),
		Term:            d.Term,
		Products:        d.Lines(),
		TotalPrice:      d.total,
	}, nil
}
