// Package session holds the signed-in user's profile.
package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/naveenspark/leavedesk/internal/storage"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

// Key is the storage entry mirroring the current user.
const Key = "user"

// Store keeps the current user in memory and mirrors every change to
// storage. Writes are last-write-wins.
type Store struct {
	mu   sync.RWMutex
	kv   storage.KV
	user domain.User
}

// New returns a Store hydrated from whatever kv last persisted. An entry
// that cannot be decoded is discarded.
func New(kv storage.KV) *Store {
	s := &Store{kv: kv}

	raw, ok, err := kv.Get(Key)
	switch {
	case err != nil:
		zap.L().Warn("session: read persisted user", zap.Error(err))
	case ok:
		u, err := domain.DecodeUser([]byte(raw))
		if err != nil {
			zap.L().Warn("session: discard unreadable user", zap.Error(err))
			kv.Delete(Key) //nolint:errcheck
			break
		}
		s.user = u
	}
	return s
}

// Current returns the signed-in user, or nil.
func (s *Store) Current() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Set replaces the current user. A nil user, including a nil *Employee or
// *Supervisor, signs out and removes the persisted entry. The in-memory value
// is updated even when persisting fails.
func (s *Store) Set(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if isNilUser(u) {
		u = nil
	}
	s.user = u
	if u == nil {
		if err := s.kv.Delete(Key); err != nil {
			return fmt.Errorf("session.Set: %w", err)
		}
		return nil
	}

	data, err := domain.EncodeUser(u)
	if err != nil {
		return fmt.Errorf("session.Set: %w", err)
	}
	if err := s.kv.Set(Key, string(data), 0); err != nil {
		return fmt.Errorf("session.Set: %w", err)
	}
	return nil
}

// Employee returns the current user if it is an employee.
func (s *Store) Employee() (*domain.Employee, bool) {
	e, ok := s.Current().(*domain.Employee)
	return e, ok
}

// Supervisor returns the current user if it is a supervisor.
func (s *Store) Supervisor() (*domain.Supervisor, bool) {
	sup, ok := s.Current().(*domain.Supervisor)
	return sup, ok
}

func isNilUser(u domain.User) bool {
	switch v := u.(type) {
	case nil:
		return true
	case *domain.Employee:
		return v == nil
	case *domain.Supervisor:
		return v == nil
	}
	return false
}
