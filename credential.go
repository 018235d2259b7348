package pagegist

import (
	"context"
	"strings"
	"time"
)

// APIKeyPrefix is the literal prefix every valid API key starts with.
const APIKeyPrefix = "sk-"

// ValidateAPIKey returns ECONFIG unless key starts with APIKeyPrefix.
// No further entropy, length or charset checks are performed.
func ValidateAPIKey(key string) error {
	if !strings.HasPrefix(key, APIKeyPrefix) {
		return Errorf(ECONFIG, "invalid API key")
	}
	return nil
}

// Credential is a stored API key.
type Credential struct {
	APIKey   string    `json:"apiKey"`
	Remember bool      `json:"remember"`
	SavedAt  time.Time `json:"savedAt"`
}

// Validate returns an error if the credential contains invalid fields.
func (c *Credential) Validate() error {
	return ValidateAPIKey(c.APIKey)
}

// CredentialStore persists a single credential in one storage scope.
type CredentialStore interface {
	// LoadCredential returns the stored credential.
	// Returns ENOTFOUND if none is stored.
	LoadCredential(ctx context.Context) (*Credential, error)

	// SaveCredential replaces the stored credential.
	SaveCredential(ctx context.Context, cred *Credential) error

	// DeleteCredential removes the stored credential. Deleting an empty
	// store is not an error.
	DeleteCredential(ctx context.Context) error
}
