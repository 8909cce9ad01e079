package proposal

import (
	"context"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
)

// Backend is the slice of the REST client the composer needs.
type Backend interface {
	Customers(ctx context.Context) ([]catalog.Customer, error)
	Products(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, resource catalog.Resource, body any) (string, error)
}

// ActivityRecorder receives submission and degraded-fetch events.
type ActivityRecorder interface {
	Record(ctx context.Context, typ activity.ActivityType, resource, summary string)
}
