// Package token persists the API auth token between runs.
package token

import (
	"fmt"
	"time"

	"github.com/naveenspark/leavedesk/internal/storage"
)

// Key is the storage entry holding the token.
const Key = "access_token"

// EnvVar overrides the stored token when set.
const EnvVar = "LEAVEDESK_TOKEN"

// Store reads and writes the auth token. It never caches the value, so every
// Get reflects the current storage state.
type Store struct {
	kv       storage.KV
	override string
}

// New returns a Store over kv.
func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// WithOverride returns a Store whose Get always yields tok when tok is
// non-empty. Set and Clear still write through to storage.
func (s *Store) WithOverride(tok string) *Store {
	return &Store{kv: s.kv, override: tok}
}

// Get returns the current token and whether one is present. Storage errors
// read as "no token".
func (s *Store) Get() (string, bool) {
	if s.override != "" {
		return s.override, true
	}
	tok, ok, err := s.kv.Get(Key)
	if err != nil || !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// Set persists tok for ttlDays days.
func (s *Store) Set(tok string, ttlDays int) error {
	if err := s.kv.Set(Key, tok, time.Duration(ttlDays)*24*time.Hour); err != nil {
		return fmt.Errorf("token.Set: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (s *Store) Clear() error {
	if err := s.kv.Delete(Key); err != nil {
		return fmt.Errorf("token.Clear: %w", err)
	}
	return nil
}
