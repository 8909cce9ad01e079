package mcp

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/quotedesk/internal/domain/session"
)

type contextKey int

const accountKey contextKey = iota

// getAccount extracts the signed-in account from context.
func getAccount(ctx context.Context) string {
	v, _ := ctx.Value(accountKey).(string)
	return v
}

// publicTools run without a stored credential.
var publicTools = map[string]bool{
	"session_status":  true,
	"recent_activity": true,
}

// requireSessionMiddleware rejects protected tool calls while signed out.
// The rejection is a tool error result so agents can read the recovery hint.
func requireSessionMiddleware(sessions SessionService) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}
			call, ok := req.(*sdkmcp.CallToolRequest)
			if !ok || call.Params == nil || publicTools[call.Params.Name] {
				return next(ctx, method, req)
			}

			cred, err := sessions.Require(ctx)
			if err != nil {
				if errors.Is(err, session.ErrNotAuthenticated) {
					return errorResult(MapError(err)), nil
				}
				return errorResult(&APIError{Code: "SESSION_UNAVAILABLE", Message: err.Error()}), nil
			}

			ctx = context.WithValue(ctx, accountKey, cred.Account)
			return next(ctx, method, req)
		}
	}
}

func errorResult(err *APIError) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: formatPayload(err)}},
	}
}
