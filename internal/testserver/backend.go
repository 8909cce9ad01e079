// Package testserver runs an in-process fake of the CPQ backend for tests.
package testserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/transport"
	"golang.org/x/crypto/bcrypt"
)

// Fault selects how a route misbehaves.
type Fault int

const (
	FaultNone Fault = iota
	// FaultStatus answers 500 with a JSON message.
	FaultStatus
	// FaultStatusNoMessage answers 500 with a plain text body.
	FaultStatusNoMessage
	// FaultMalformed answers 200 with an object where an array is expected.
	FaultMalformed
	// FaultHangup closes the connection without a response.
	FaultHangup
)

// FaultMessage is the message carried by FaultStatus responses.
const FaultMessage = "database unavailable"

// Backend is the fake's state. It is safe for concurrent use.
type Backend struct {
	mu         sync.Mutex
	users      map[string][]byte
	tokens     map[string]string
	listFault  map[catalog.Resource]Fault
	createFail map[catalog.Resource]Fault
	created    map[catalog.Resource][]json.RawMessage
	requests   map[catalog.Resource]int
	nextID     int64

	customers     []catalog.Customer
	products      []catalog.Product
	proposals     []catalog.Proposal
	subscriptions []catalog.Subscription
	invoices      []catalog.Invoice
}

// NewBackend creates a backend seeded with fixture records.
func NewBackend() *Backend {
	b := &Backend{
		users:      make(map[string][]byte),
		tokens:     make(map[string]string),
		listFault:  make(map[catalog.Resource]Fault),
		createFail: make(map[catalog.Resource]Fault),
		created:    make(map[catalog.Resource][]json.RawMessage),
		requests:   make(map[catalog.Resource]int),
	}
	b.seed()
	return b
}

// AddUser registers a login.
func (b *Backend) AddUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[strings.ToLower(email)] = hash
	return nil
}

// IssueToken returns a valid token for email without a login round trip.
func (b *Backend) IssueToken(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	token := uuid.NewString()
	b.tokens[token] = email
	return token
}

// RevokeTokens invalidates every issued token.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.tokens)
}

// ResolveAccount implements transport.AccountResolver.
func (b *Backend) ResolveAccount(_ context.Context, token string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	account, ok := b.tokens[token]
	if !ok {
		return "", transport.ErrUnauthorized
	}
	return account, nil
}

// FailList makes GET on resource misbehave until reset with FaultNone.
func (b *Backend) FailList(r catalog.Resource, f Fault) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listFault[r] = f
}

// FailCreate makes POST on resource's create endpoint misbehave.
func (b *Backend) FailCreate(r catalog.Resource, f Fault) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createFail[r] = f
}

// Created returns the raw bodies accepted by resource's create endpoint.
func (b *Backend) Created(r catalog.Resource) []json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]json.RawMessage(nil), b.created[r]...)
}

// Requests counts list requests served for resource.
func (b *Backend) Requests(r catalog.Resource) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[r]
}

// SetProducts replaces the product list.
func (b *Backend) SetProducts(products []catalog.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products = append([]catalog.Product(nil), products...)
}

// SetCustomers replaces the customer list.
func (b *Backend) SetCustomers(customers []catalog.Customer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customers = append([]catalog.Customer(nil), customers...)
}

// Router builds the /api/v1 routes.
func (b *Backend) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/users/login", b.handleLogin).Methods(http.MethodPost)

	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(transport.AuthMiddleware(b))
	protected.HandleFunc("/{resource}/", b.handleList).Methods(http.MethodGet)
	protected.HandleFunc("/{resource}/create", b.handleCreate).Methods(http.MethodPost)
	return r
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		transport.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b.mu.Lock()
	hash, ok := b.users[strings.ToLower(body.Email)]
	b.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(body.Password)) != nil {
		transport.WriteMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token := b.IssueToken(body.Email)
	transport.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (b *Backend) handleList(w http.ResponseWriter, r *http.Request) {
	resource, err := catalog.ParseResource(mux.Vars(r)["resource"])
	if err != nil {
		transport.WriteMessage(w, http.StatusNotFound, "unknown resource")
		return
	}

	b.mu.Lock()
	b.requests[resource]++
	fault := b.listFault[resource]
	var records any
	switch resource {
	case catalog.Customers:
		records = append([]catalog.Customer{}, b.customers...)
	case catalog.Products:
		records = append([]catalog.Product{}, b.products...)
	case catalog.Proposals:
		records = append([]catalog.Proposal{}, b.proposals...)
	case catalog.Subscriptions:
		records = append([]catalog.Subscription{}, b.subscriptions...)
	case catalog.Invoices:
		records = append([]catalog.Invoice{}, b.invoices...)
	}
	b.mu.Unlock()

	if writeFault(w, fault) {
		return
	}
	transport.WriteJSON(w, http.StatusOK, records)
}

func (b *Backend) handleCreate(w http.ResponseWriter, r *http.Request) {
	resource, err := catalog.ParseResource(mux.Vars(r)["resource"])
	if err != nil {
		transport.WriteMessage(w, http.StatusNotFound, "unknown resource")
		return
	}

	b.mu.Lock()
	fault := b.createFail[resource]
	b.mu.Unlock()
	if writeFault(w, fault) {
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		transport.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, msg := b.create(resource, raw)
	transport.WriteMessage(w, status, msg)
}

func (b *Backend) create(resource catalog.Resource, raw json.RawMessage) (int, string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch resource {
	case catalog.Customers:
		var in catalog.CustomerInput
		if err := json.Unmarshal(raw, &in); err != nil || in.Name == "" {
			return http.StatusBadRequest, "Customer name is required"
		}
		for _, c := range b.customers {
			if strings.EqualFold(c.Name, in.Name) {
				return http.StatusConflict, "Customer already exists"
			}
		}
		b.customers = append(b.customers, catalog.Customer{
			ID:             uuid.NewString(),
			Name:           in.Name,
			Email:          in.Email,
			BillingContact: in.BillingContact,
			Currency:       in.Currency,
			Location:       in.Location,
			City:           in.City,
			State:          in.State,
			Country:        in.Country,
			PostalCode:     in.PostalCode,
		})
	case catalog.Products:
		var in catalog.ProductInput
		if err := json.Unmarshal(raw, &in); err != nil || in.Name == "" {
			return http.StatusBadRequest, "Product name is required"
		}
		b.nextID++
		b.products = append(b.products, catalog.Product{
			ID:     b.nextID,
			UUID:   uuid.NewString(),
			Name:   in.Name,
			Status: "Active",
		})
	case catalog.Proposals:
		var in struct {
			CustomerID string  `json:"customerId"`
			Reference  string  `json:"proposalRef"`
			Total      float64 `json:"totalPrice"`
			Term       struct {
				Count int    `json:"count"`
				Unit  string `json:"unit"`
			} `json:"term"`
		}
		if err := json.Unmarshal(raw, &in); err != nil || in.CustomerID == "" {
			return http.StatusBadRequest, "Customer is required"
		}
		title := in.Reference
		if title == "" {
			title = b.customerName(in.CustomerID)
		}
		b.proposals = append(b.proposals, catalog.Proposal{
			CustomerOrProposalTitle: title,
			ValueOrTerm:             fmt.Sprintf("%.2f / %d %s", in.Total, in.Term.Count, in.Term.Unit),
			Status:                  "Draft",
			Signed:                  "No",
		})
	default:
		return http.StatusMethodNotAllowed, "resource cannot be created"
	}

	b.created[resource] = append(b.created[resource], raw)
	return http.StatusCreated, createdMessage(resource)
}

func (b *Backend) customerName(id string) string {
	for _, c := range b.customers {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

func createdMessage(r catalog.Resource) string {
	singular := strings.TrimSuffix(r.Label(), "s")
	return singular + " created successfully"
}

func writeFault(w http.ResponseWriter, f Fault) bool {
	switch f {
	case FaultStatus:
		transport.WriteMessage(w, http.StatusInternalServerError, FaultMessage)
	case FaultStatusNoMessage:
		http.Error(w, "internal error", http.StatusInternalServerError)
	case FaultMalformed:
		transport.WriteJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	case FaultHangup:
		hj, ok := w.(http.Hijacker)
		if !ok {
			http.Error(w, "hangup unsupported", http.StatusInternalServerError)
			return true
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	default:
		return false
	}
	return true
}
