// Package mcp exposes the console to agents over the Model Context Protocol.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/quotedesk/internal/console"
	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/proposal"
	"github.com/rpggio/quotedesk/internal/domain/session"
)

// ConsoleService defines console operations needed by MCP.
type ConsoleService interface {
	FreshView(r catalog.Resource) (console.View, error)
	CreateCustomer(ctx context.Context, in catalog.CustomerInput) (string, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (string, error)
}

// QuoteService prices line items.
type QuoteService interface {
	Quote(ctx context.Context, lines []proposal.QuoteLine) (*proposal.Draft, error)
}

// SessionService defines session operations needed by MCP.
type SessionService interface {
	Require(ctx context.Context) (*session.Credential, error)
	Status(ctx context.Context) (session.Status, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Console  ConsoleService
	Quotes   QuoteService
	Session  SessionService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "quotedesk",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(requireSessionMiddleware(cfg.Services.Session))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
