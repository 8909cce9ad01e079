package tui

import (
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/proposal"
)

type loginDoneMsg struct{ err error }

type logoutDoneMsg struct{ err error }

// sessionChangedMsg arrives from the session subscription.
type sessionChangedMsg struct{ authenticated bool }

type refreshedMsg struct {
	resource catalog.Resource
	err      error
}

type createDoneMsg struct {
	resource catalog.Resource
	message  string
	err      error
}

type pickersLoadedMsg struct{ pickers proposal.Pickers }

type proposalSubmittedMsg struct {
	message string
	err     error
}
