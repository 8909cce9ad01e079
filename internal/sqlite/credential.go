package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/quotedesk/internal/domain/session"
	"github.com/rpggio/quotedesk/internal/repository"
)

var _ session.CredentialRepository = (*CredentialRepository)(nil)

// CredentialRepository implements session.CredentialRepository for SQLite
type CredentialRepository struct {
	db *DB
}

// NewCredentialRepository creates a new CredentialRepository
func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Put stores a credential, replacing any previous one under the same key
func (r *CredentialRepository) Put(ctx context.Context, cred *session.Credential) error {
	if cred == nil || cred.Key == "" {
		return repository.ErrInvalidInput
	}

	query := `
		INSERT INTO credentials (key, token, account, issued_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			token = excluded.token,
			account = excluded.account,
			issued_at = excluded.issued_at,
			expires_at = excluded.expires_at
	`

	_, err := r.db.ExecContext(ctx, query,
		cred.Key,
		cred.Token,
		cred.Account,
		cred.IssuedAt.UTC(),
		cred.ExpiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// Get retrieves a credential by key
func (r *CredentialRepository) Get(ctx context.Context, key string) (*session.Credential, error) {
	query := `
		SELECT key, token, account, issued_at, expires_at
		FROM credentials
		WHERE key = ?
	`

	var cred session.Credential
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&cred.Key,
		&cred.Token,
		&cred.Account,
		&cred.IssuedAt,
		&cred.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &cred, nil
}

// Delete removes a credential by key
func (r *CredentialRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM credentials WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
