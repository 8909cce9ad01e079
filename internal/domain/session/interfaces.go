package session

import (
	"context"

	"github.com/rpggio/quotedesk/internal/domain/activity"
)

// CredentialRepository persists bearer tokens.
type CredentialRepository interface {
	Put(ctx context.Context, cred *Credential) error
	Get(ctx context.Context, key string) (*Credential, error)
	Delete(ctx context.Context, key string) error
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// ActivityRecorder receives sign-in and sign-out events.
type ActivityRecorder interface {
	Record(ctx context.Context, typ activity.ActivityType, resource, summary string)
}
