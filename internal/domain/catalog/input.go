package catalog

import (
	"slices"
	"strings"
)

// ValidationError carries one human readable message per rejected field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// First returns the message shown inline by create flows.
func (e *ValidationError) First() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

type checker struct {
	messages []string
}

func (c *checker) require(value, message string) {
	if strings.TrimSpace(value) == "" {
		c.messages = append(c.messages, message)
	}
}

func (c *checker) fail(message string) {
	c.messages = append(c.messages, message)
}

func (c *checker) err() error {
	if len(c.messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: c.messages}
}

// Currencies accepted by the customer form.
var Currencies = []string{"USD", "INR"}

// CountryStates lists the states offered for each country.
var CountryStates = map[string][]string{
	"india":   {"Maharashtra", "Karnataka", "Tamil Nadu", "Delhi", "Telangana", "AndhraPradesh"},
	"usa":     {"California", "Texas", "Florida", "New York"},
	"england": {"Greater London", "West Midlands", "Greater Manchester", "Merseyside"},
}

// Countries returns the country keys in form order.
func Countries() []string {
	return []string{"india", "usa", "england"}
}

// DefaultCountry is preselected by the customer form.
const DefaultCountry = "india"

// CustomerInput is the body of POST /api/v1/customers/create.
type CustomerInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Currency       string `json:"currency"`
	BillingContact string `json:"billingContact"`
	Location       string `json:"location"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	State          string `json:"state"`
}

// Validate reports every missing or unsupported field.
func (in CustomerInput) Validate() error {
	var c checker
	c.require(in.Name, "Please input the company name!")
	c.require(in.Email, "Please input the email!")
	if !slices.Contains(Currencies, in.Currency) {
		c.fail("Please select the customer currency!")
	}
	c.require(in.BillingContact, "Please input the billing contact!")
	c.require(in.Location, "Please input the address!")
	c.require(in.City, "Please input the city!")
	c.require(in.PostalCode, "Please input the postal code!")
	states, ok := CountryStates[in.Country]
	if !ok {
		c.fail("Please select the country!")
	}
	if !slices.Contains(states, in.State) {
		c.fail("Please select the state/province!")
	}
	return c.err()
}

// ProductInput is the body of POST /api/v1/products/create.
type ProductInput struct {
	Name string `json:"name"`
}

// Validate reports a missing product name.
func (in ProductInput) Validate() error {
	var c checker
	c.require(in.Name, "Please input the Product name!")
	return c.err()
}
