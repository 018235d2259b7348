package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/pagegist"
)

// Compile-time interface verification.
var _ pagegist.CredentialStore = (*CredentialStore)(nil)

// CredentialStore implements pagegist.CredentialStore using SQLite.
// A file-backed DB gives the durable scope; ":memory:" gives a
// session scope that ends when the DB is closed.
type CredentialStore struct {
	db *DB
}

// NewCredentialStore creates a new CredentialStore.
func NewCredentialStore(db *DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// LoadCredential returns the stored credential.
func (s *CredentialStore) LoadCredential(ctx context.Context) (*pagegist.Credential, error) {
	var cred pagegist.Credential
	var savedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT api_key, remember, saved_at
		FROM credentials
		WHERE id = 1
	`).Scan(&cred.APIKey, &cred.Remember, &savedAt)

	if err == sql.ErrNoRows {
		return nil, pagegist.Errorf(pagegist.ENOTFOUND, "credential not found")
	}
	if err != nil {
		return nil, err
	}

	cred.SavedAt, err = parseRFC3339(savedAt, "saved_at")
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

// SaveCredential replaces the stored credential.
func (s *CredentialStore) SaveCredential(ctx context.Context, cred *pagegist.Credential) error {
	if err := cred.Validate(); err != nil {
		return err
	}
	if cred.SavedAt.IsZero() {
		cred.SavedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (id, api_key, remember, saved_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			api_key = excluded.api_key,
			remember = excluded.remember,
			saved_at = excluded.saved_at
	`, cred.APIKey, cred.Remember, cred.SavedAt.Format(time.RFC3339))

	return err
}

// DeleteCredential removes the stored credential.
func (s *CredentialStore) DeleteCredential(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM credentials WHERE id = 1")
	return err
}
