package session

import "time"

// TokenKey is the storage key of the bearer token.
const TokenKey = "jwtToken"

// DefaultTTL is how long a stored token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Credential is a stored bearer token.
type Credential struct {
	Key       string    `json:"key"`
	Token     string    `json:"-"`
	Account   string    `json:"account"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the credential is past its expiry at now.
func (c *Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Status describes the current session for display.
type Status struct {
	Authenticated bool       `json:"authenticated"`
	Account       string     `json:"account,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}
