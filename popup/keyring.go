package popup

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/pagegist"
)

// Keyring manages the API key across a durable and a session-scoped store.
type Keyring struct {
	Durable pagegist.CredentialStore
	Session pagegist.CredentialStore
}

// NewKeyring returns a Keyring over the given stores.
func NewKeyring(durable, session pagegist.CredentialStore) *Keyring {
	return &Keyring{Durable: durable, Session: session}
}

// Save validates key and stores it. Remembered keys go to the durable
// store, others to the session store; the other scope is cleared.
func (k *Keyring) Save(ctx context.Context, key string, remember bool) error {
	key = strings.TrimSpace(key)
	if err := pagegist.ValidateAPIKey(key); err != nil {
		return err
	}

	cred := &pagegist.Credential{APIKey: key, Remember: remember, SavedAt: time.Now().UTC()}
	target, other := k.Session, k.Durable
	if remember {
		target, other = k.Durable, k.Session
	}
	if err := target.SaveCredential(ctx, cred); err != nil {
		return err
	}
	return other.DeleteCredential(ctx)
}

// Remembered reports whether a key exists in the durable store.
func (k *Keyring) Remembered(ctx context.Context) (bool, error) {
	_, err := k.Durable.LoadCredential(ctx)
	if pagegist.ErrorCode(err) == pagegist.ENOTFOUND {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// Effective returns the key to use for a request. A non-empty typed value
// wins over the session key, which wins over the durable key. Returns an
// empty string when no key is available.
func (k *Keyring) Effective(ctx context.Context, typed string) (string, error) {
	if typed = strings.TrimSpace(typed); typed != "" {
		return typed, nil
	}
	for _, store := range []pagegist.CredentialStore{k.Session, k.Durable} {
		cred, err := store.LoadCredential(ctx)
		if pagegist.ErrorCode(err) == pagegist.ENOTFOUND {
			continue
		} else if err != nil {
			return "", err
		}
		return cred.APIKey, nil
	}
	return "", nil
}

// Clear removes the key from both scopes.
func (k *Keyring) Clear(ctx context.Context) error {
	if err := k.Session.DeleteCredential(ctx); err != nil {
		return err
	}
	return k.Durable.DeleteCredential(ctx)
}
