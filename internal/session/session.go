// Package session tracks the authenticated identity for the lifetime of a
// client process. The state has one writer: Login and Logout mutate it, every
// other consumer only reads, and an empty token is the sole authority for
// "unauthenticated".
package session

import (
	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/infrastructure/kvstore"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Store holds the in-memory session state and persists it through a kvstore
// file so a later process can pick it up again.
type Store struct {
	kv    *kvstore.Store
	token string
	user  *entity.User
}

// NewStore builds an empty, unauthenticated store over kv.
func NewStore(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Restore rehydrates the session from persistence. Missing or malformed data
// leaves the store unauthenticated without surfacing an error.
func (s *Store) Restore() {
	var token string
	if ok, err := s.kv.Get(tokenKey, &token); err != nil || !ok || token == "" {
		return
	}
	var user entity.User
	if ok, err := s.kv.Get(userKey, &user); err != nil || !ok {
		return
	}
	s.token = token
	s.user = &user
}

// Login persists the token and user, then updates the in-memory state.
func (s *Store) Login(token string, user entity.User) error {
	if err := s.kv.Set(tokenKey, token); err != nil {
		return err
	}
	if err := s.kv.Set(userKey, user); err != nil {
		return err
	}
	s.token = token
	s.user = &user
	return nil
}

// Logout clears both the persisted and in-memory state.
func (s *Store) Logout() error {
	if err := s.kv.Delete(tokenKey); err != nil {
		return err
	}
	if err := s.kv.Delete(userKey); err != nil {
		return err
	}
	s.token = ""
	s.user = nil
	return nil
}

// Token returns the bearer token, "" when unauthenticated.
func (s *Store) Token() string { return s.token }

// User returns the signed-in user, nil when unauthenticated.
func (s *Store) User() *entity.User { return s.user }

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool { return s.token != "" }
