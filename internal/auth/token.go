// Package auth holds the session bearer token and decodes its claims on the
// client side. Verification is the server's job; this package only reads
// what the token says.
package auth

import "sync"

// TokenStore is the in-memory holder for the session's bearer token. It is
// constructed explicitly and passed to whoever needs it; its lifetime is the
// application session.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Set replaces the stored token.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the stored token, empty when signed out. Satisfies
// api.TokenSource.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear signs the session out.
func (s *TokenStore) Clear() {
	s.Set("")
}
