// Package console wires list views and create flows to the REST client and
// the session. It holds no presentation code.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/quotedesk/internal/api"
	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/proposal"
	"github.com/rpggio/quotedesk/internal/domain/session"
)

// MissingTokenMessage is shown when a create flow runs without a session.
const MissingTokenMessage = "JWT token is missing. Please log in again."

// Backend is the REST surface the console consumes.
type Backend interface {
	proposal.Backend
	Proposals(ctx context.Context) ([]catalog.Proposal, error)
	Subscriptions(ctx context.Context) ([]catalog.Subscription, error)
	Invoices(ctx context.Context) ([]catalog.Invoice, error)
}

// SessionGate evaluates protected access.
type SessionGate interface {
	Require(ctx context.Context) (*session.Credential, error)
}

// Options configures a Console.
type Options struct {
	PageSize int
	Activity ActivityRecorder
	Logger   *slog.Logger
}

// Console owns one view per resource and the create flows.
type Console struct {
	backend   Backend
	gate      SessionGate
	activity  ActivityRecorder
	logger    *slog.Logger
	views     map[catalog.Resource]View
	proposals *proposal.Service
	viewOpts  ViewOptions
}

// New builds a console with a view for every resource.
func New(backend Backend, gate SessionGate, opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	viewOpts := ViewOptions{PageSize: opts.PageSize, Activity: opts.Activity, Logger: opts.Logger}
	c := &Console{
		backend:   backend,
		gate:      gate,
		activity:  opts.Activity,
		logger:    opts.Logger,
		views:     make(map[catalog.Resource]View),
		proposals: proposal.NewService(backend, opts.Activity, opts.Logger),
		viewOpts:  viewOpts,
	}
	for _, r := range catalog.Resources() {
		v, _ := NewResourceView(r, backend, viewOpts)
		c.views[r] = v
	}
	return c
}

// NewResourceView builds a fresh, unshared view of resource r.
func NewResourceView(r catalog.Resource, backend Backend, opts ViewOptions) (View, error) {
	switch r {
	case catalog.Proposals:
		return NewView(catalog.ProposalDefinition(), backend.Proposals, opts), nil
	case catalog.Subscriptions:
		return NewView(catalog.SubscriptionDefinition(), backend.Subscriptions, opts), nil
	case catalog.Invoices:
		return NewView(catalog.InvoiceDefinition(), backend.Invoices, opts), nil
	case catalog.Customers:
		return NewView(catalog.CustomerDefinition(), backend.Customers, opts), nil
	case catalog.Products:
		return NewView(catalog.ProductDefinition(), backend.Products, opts), nil
	}
	return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownResource, r)
}

// View returns the console's shared view of r.
func (c *Console) View(r catalog.Resource) (View, error) {
	v, ok := c.views[r]
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownResource, r)
	}
	return v, nil
}

// FreshView returns a new view of r that shares no state with the console.
func (c *Console) FreshView(r catalog.Resource) (View, error) {
	return NewResourceView(r, c.backend, c.viewOpts)
}

// Proposals returns the proposal composer service.
func (c *Console) Proposals() *proposal.Service {
	return c.proposals
}

// CreateCustomer validates in and posts it. The returned message is the
// inline text to show in either case.
func (c *Console) CreateCustomer(ctx context.Context, in catalog.CustomerInput) (string, error) {
	return c.create(ctx, catalog.Customers, in, in.Validate, "Error creating customer. Please try again.")
}

// CreateProduct validates in and posts it. The returned message is the
// inline text to show in either case.
func (c *Console) CreateProduct(ctx context.Context, in catalog.ProductInput) (string, error) {
	return c.create(ctx, catalog.Products, in, in.Validate, "Error adding Product. Please try again.")
}

func (c *Console) create(ctx context.Context, r catalog.Resource, body any, validate func() error, fallback string) (string, error) {
	if err := validate(); err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			return verr.First(), err
		}
		return err.Error(), err
	}

	if _, err := c.gate.Require(ctx); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			return MissingTokenMessage, err
		}
		return fallback, err
	}

	msg, err := c.backend.Create(ctx, r, body)
	if err != nil {
		text := api.UserMessage(err, fallback)
		c.logger.Warn("create failed", "resource", r, "error", err)
		c.record(ctx, activity.TypeCreateFailed, r, text)
		return text, err
	}

	c.logger.Info("record created", "resource", r, "message", msg)
	c.record(ctx, activity.TypeRecordCreated, r, msg)
	return msg, nil
}

func (c *Console) record(ctx context.Context, typ activity.ActivityType, r catalog.Resource, summary string) {
	if c.activity != nil {
		c.activity.Record(ctx, typ, string(r), summary)
	}
}
