package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/pagegist"
)

var (
	_ pagegist.CredentialStore = (*CredentialStore)(nil)
	_ pagegist.CredentialStore = (*MemoryCredentialStore)(nil)
)

// CredentialStore is a mock implementation of pagegist.CredentialStore.
type CredentialStore struct {
	LoadCredentialFn   func(ctx context.Context) (*pagegist.Credential, error)
	SaveCredentialFn   func(ctx context.Context, cred *pagegist.Credential) error
	DeleteCredentialFn func(ctx context.Context) error
}

func (s *CredentialStore) LoadCredential(ctx context.Context) (*pagegist.Credential, error) {
	return s.LoadCredentialFn(ctx)
}

func (s *CredentialStore) SaveCredential(ctx context.Context, cred *pagegist.Credential) error {
	return s.SaveCredentialFn(ctx, cred)
}

func (s *CredentialStore) DeleteCredential(ctx context.Context) error {
	return s.DeleteCredentialFn(ctx)
}

// MemoryCredentialStore is a working in-memory credential store for tests
// that exercise save-then-load sequences.
type MemoryCredentialStore struct {
	mu   sync.Mutex
	cred *pagegist.Credential
}

func (s *MemoryCredentialStore) LoadCredential(ctx context.Context) (*pagegist.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil, pagegist.Errorf(pagegist.ENOTFOUND, "credential not found")
	}
	c := *s.cred
	return &c, nil
}

func (s *MemoryCredentialStore) SaveCredential(ctx context.Context, cred *pagegist.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cred
	s.cred = &c
	return nil
}

func (s *MemoryCredentialStore) DeleteCredential(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}
