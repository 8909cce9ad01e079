package proposal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
)

// Pickers holds the choices offered by the composer.
type Pickers struct {
	Customers []catalog.Customer
	Products  []catalog.Product
}

// QuoteLine selects a product by id with a raw quantity.
type QuoteLine struct {
	ProductID int64
	Quantity  string
}

// Service loads composer data and submits drafts.
type Service struct {
	backend  Backend
	activity ActivityRecorder
	logger   *slog.Logger
}

// NewService creates a new proposal service. activity may be nil.
func NewService(backend Backend, rec ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, activity: rec, logger: logger}
}

// LoadPickers fetches customers and products. Each list degrades to empty on
// failure.
func (s *Service) LoadPickers(ctx context.Context) Pickers {
	customers, err := s.backend.Customers(ctx)
	if err != nil {
		s.degraded(ctx, catalog.Customers, err)
	}
	products, err := s.backend.Products(ctx)
	if err != nil {
		s.degraded(ctx, catalog.Products, err)
	}
	return Pickers{
		Customers: append([]catalog.Customer{}, customers...),
		Products:  append([]catalog.Product{}, products...),
	}
}

// Quote builds a draft from product ids and quantities.
func (s *Service) Quote(ctx context.Context, lines []QuoteLine) (*Draft, error) {
	products, err := s.backend.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	byID := make(map[int64]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	d := NewDraft()
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownProduct, l.ProductID)
		}
		d.SetQuantity(d.AddLine(p), l.Quantity)
	}
	return d, nil
}

// Submit validates the draft and posts it, returning the server message.
func (s *Service) Submit(ctx context.Context, d *Draft) (string, error) {
	req, err := d.Request()
	if err != nil {
		return "", err
	}
	msg, err := s.backend.Create(ctx, catalog.Proposals, req)
	if err != nil {
		s.logger.Warn("proposal submit failed", "draft", d.ID, "error", err)
		s.record(ctx, activity.TypeCreateFailed, "proposal "+d.ID+": "+err.Error())
		return "", fmt.Errorf("submitting proposal: %w", err)
	}
	s.logger.Info("proposal submitted", "draft", d.ID, "total", d.Total())
	s.record(ctx, activity.TypeProposalSubmitted, fmt.Sprintf("proposal %s total %.2f", d.ID, d.Total()))
	return msg, nil
}

func (s *Service) degraded(ctx context.Context, r catalog.Resource, err error) {
	s.logger.Warn("picker fetch failed", "resource", r, "error", err)
	if s.activity != nil {
		s.activity.Record(ctx, activity.TypeFetchDegraded, string(r), err.Error())
	}
}

func (s *Service) record(ctx context.Context, typ activity.ActivityType, summary string) {
	if s.activity != nil {
		s.activity.Record(ctx, typ, string(catalog.Proposals), summary)
	}
}
