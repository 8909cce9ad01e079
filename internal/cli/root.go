// Package cli implements the quotedesk command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpggio/quotedesk/internal/app"
	"github.com/rpggio/quotedesk/internal/config"
	"github.com/rpggio/quotedesk/internal/tui"
	"github.com/spf13/cobra"
)

// Build information, set from main.
var (
	Version = "0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

type state struct {
	configPath string
	apiURL     string
	logLevel   string

	app    *app.App
	closer io.Closer
}

// NewRootCmd builds the quotedesk command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&state{})
}

func newRootCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "quotedesk",
		Short:        "Admin console for the CPQ backend",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive console
  quotedesk

  # Scriptable commands
  quotedesk login --email ops@acme.test
  quotedesk list customers --filter acme --sort name:desc
  quotedesk quote --line 1=4 --line 2=2`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsApp(cmd) {
				return nil
			}
			// The TUI owns the terminal, so it only logs to a file.
			fallback := cmd.ErrOrStderr()
			if cmd == cmd.Root() {
				fallback = io.Discard
			}
			return st.open(fallback)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return st.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			return tui.Run(cmd.Context(), tui.Deps{
				Console: a.Console,
				Session: a.Session,
				Logger:  a.Logger,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&st.configPath, "config", os.Getenv("QUOTEDESK_CONFIG_PATH"), "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&st.apiURL, "api-url", "", "Backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	cmd.AddCommand(
		newLoginCmd(st),
		newLogoutCmd(st),
		newStatusCmd(st),
		newListCmd(st),
		newCreateCmd(st),
		newQuoteCmd(st),
		newActivityCmd(st),
		newMCPCmd(st),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command line. The app is closed even when a command fails,
// since cobra skips post-run hooks after an error.
func Execute(ctx context.Context) error {
	st := &state{}
	err := newRootCmd(st).ExecuteContext(ctx)
	if cerr := st.close(); err == nil {
		err = cerr
	}
	return err
}

func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	if p := cmd.Parent(); p != nil && p.Name() == "completion" {
		return false
	}
	return true
}

func (st *state) open(logFallback io.Writer) error {
	cfg, err := config.LoadFile(st.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if st.apiURL != "" {
		cfg.API.BaseURL = st.apiURL
	}
	if st.logLevel != "" {
		cfg.Log.Level = st.logLevel
	}

	logger, closer, err := app.NewLogger(cfg.Log, logFallback)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	a, err := app.New(cfg, logger)
	if err != nil {
		closer.Close()
		return err
	}
	st.app, st.closer = a, closer
	return nil
}

func (st *state) close() error {
	if st.app == nil {
		return nil
	}
	err := st.app.Close()
	st.closer.Close()
	st.app = nil
	return err
}
