package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownResource indicates a resource name outside the catalog.
var ErrUnknownResource = errors.New("unknown resource")

// Resource names a backend collection under /api/v1/.
type Resource string

const (
	Proposals     Resource = "proposals"
	Subscriptions Resource = "subscriptions"
	Invoices      Resource = "invoices"
	Customers     Resource = "customers"
	Products      Resource = "products"
)

// Resources returns every resource in menu order.
func Resources() []Resource {
	return []Resource{Proposals, Subscriptions, Invoices, Customers, Products}
}

// ParseResource resolves a resource name, accepting singular forms.
func ParseResource(s string) (Resource, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Resources() {
		if name == string(r) || name+"s" == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
}

// Label is the heading shown for the resource.
func (r Resource) Label() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}
