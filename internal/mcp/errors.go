package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/quotedesk/internal/api"
	"github.com/rpggio/quotedesk/internal/console"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/proposal"
	"github.com/rpggio/quotedesk/internal/domain/session"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unrecognised errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var (
		verr      *catalog.ValidationError
		statusErr *api.StatusError
		transErr  *api.TransportError
	)
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return &APIError{Code: "NOT_AUTHENTICATED", Message: "no stored session", RecoveryHint: "Run `quotedesk login` and retry"}
	case errors.As(err, &verr):
		return &APIError{Code: "VALIDATION_FAILED", Message: verr.First(), Details: verr.Messages, RecoveryHint: "Fix the listed fields"}
	case errors.Is(err, catalog.ErrUnknownResource):
		return &APIError{Code: "UNKNOWN_RESOURCE", Message: err.Error(), Details: catalog.Resources()}
	case errors.Is(err, console.ErrUnknownColumn), errors.Is(err, console.ErrNotSortable):
		return &APIError{Code: "INVALID_SORT", Message: err.Error(), RecoveryHint: "Use a column marked sortable"}
	case errors.Is(err, proposal.ErrUnknownProduct):
		return &APIError{Code: "UNKNOWN_PRODUCT", Message: err.Error(), RecoveryHint: "List products for valid ids"}
	case errors.As(err, &statusErr):
		return &APIError{Code: "BACKEND_ERROR", Message: api.UserMessage(err, ""), Details: map[string]int{"status": statusErr.Code}}
	case errors.As(err, &transErr):
		return &APIError{Code: "BACKEND_UNREACHABLE", Message: api.NoResponseMessage, RecoveryHint: "Check api.base_url"}
	case errors.Is(err, api.ErrMalformed):
		return &APIError{Code: "BACKEND_MALFORMED", Message: err.Error()}
	default:
		return nil
	}
}

// toolError converts err for return from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
