// Package registry tracks the set of refresh tokens the service currently
// honours. A refresh token is only accepted while it is present here, so
// logging out removes it and refreshing a revoked token fails even if its
// signature and expiry are still valid.
package registry

import (
	"context"
	"sync"
)

// Registry is the allow-list of live refresh tokens. Implementations must be
// safe for concurrent use.
type Registry interface {
	// Add records a token as live. Adding the same token twice is allowed;
	// membership is what matters, not multiplicity.
	Add(ctx context.Context, token string) error

	// Contains reports whether the token is currently live.
	Contains(ctx context.Context, token string) (bool, error)

	// Remove revokes every stored copy of the token. Removing a token that
	// was never added is not an error.
	Remove(ctx context.Context, token string) error
}

// Memory is an in-process Registry. Tokens are lost on restart, which also
// means every session is implicitly revoked when the service goes down.
type Memory struct {
	mu     sync.Mutex
	tokens []string
}

// NewMemory returns an empty in-process registry.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Add(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens = append(m.tokens, token)
	return nil
}

func (m *Memory) Contains(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tokens {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Remove(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.tokens[:0]
	for _, t := range m.tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	m.tokens = kept
	return nil
}
