package cli

import (
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the console as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st.app.Logger.Info("mcp server starting", "transport", "stdio", "api", st.app.Config.API.BaseURL)
			return st.app.MCPServer(Version).Run(ctx, &sdkmcp.StdioTransport{})
		},
	}
}
