package activity

import "time"

// ActivityType represents the type of console event.
type ActivityType string

const (
	TypeSignedIn          ActivityType = "signed_in"
	TypeSignedOut         ActivityType = "signed_out"
	TypeRecordCreated     ActivityType = "record_created"
	TypeCreateFailed      ActivityType = "create_failed"
	TypeFetchDegraded     ActivityType = "fetch_degraded"
	TypeProposalSubmitted ActivityType = "proposal_submitted"
)

// ActivityEntry represents an event in the console activity log.
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ActivityType ActivityType `json:"type"`
	Resource     string       `json:"resource,omitempty"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
