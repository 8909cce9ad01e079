// Package app assembles the console's services from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/quotedesk/internal/api"
	"github.com/rpggio/quotedesk/internal/config"
	"github.com/rpggio/quotedesk/internal/console"
	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/session"
	"github.com/rpggio/quotedesk/internal/mcp"
	"github.com/rpggio/quotedesk/internal/sqlite"
	"github.com/rpggio/quotedesk/internal/transport"
)

// App holds the wired services of one process.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	DB       *sqlite.DB
	Activity *activity.Service
	Session  *session.Service
	Client   *api.Client
	Console  *console.Console
}

// New opens the session store and wires every service.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sqlite.Open(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return Wire(cfg, db, logger), nil
}

// Wire builds the services over an open, migrated database.
func Wire(cfg config.Config, db *sqlite.DB, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger, DB: db}

	a.Activity = activity.NewService(sqlite.NewActivityRepository(db), logger)
	tokens := transport.TokenFunc(func(ctx context.Context) (string, error) {
		return a.Session.Token(ctx)
	})
	a.Client = api.NewClient(cfg.API.BaseURL, tokens, api.Options{
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	a.Session = session.NewService(sqlite.NewCredentialRepository(db), a.Client, session.Options{
		TTL:      cfg.Session.TTL,
		Activity: a.Activity,
	}, logger)
	a.Console = console.New(a.Client, a.Session, console.Options{
		PageSize: cfg.UI.PageSize,
		Activity: a.Activity,
		Logger:   logger,
	})
	return a
}

// MCPServer builds an MCP server over the app's services.
func (a *App) MCPServer(version string) *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Console:  a.Console,
			Quotes:   a.Console.Proposals(),
			Session:  a.Session,
			Activity: a.Activity,
		},
		Version: version,
		Logger:  a.Logger,
	})
}

// Close releases the session store.
func (a *App) Close() error {
	return a.DB.Close()
}
