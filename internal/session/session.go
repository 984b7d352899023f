// Package session owns the client's authentication state: a single
// JSON-shaped {token, role} record kept under a fixed key in a pluggable
// local backend. Nothing else in the program reads or writes that record
// directly.
package session

import (
	"encoding/json"
	"fmt"
)

// StorageKey is the record key, fixed for the application's lifetime.
const StorageKey = "docchat_session"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// Backend is a minimal key/value store. Implementations must tolerate
// deletes of missing keys.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

type Store struct {
	backend Backend
}

func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Save writes the session as one record. Token and role always land
// together; there is no partial write path.
func (s *Store) Save(sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.backend.Set(StorageKey, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Load returns the stored session. A missing record, an unavailable
// backend, or an unparseable record all report absent rather than an
// error, so callers only ever branch on presence.
func (s *Store) Load() (Session, bool) {
	raw, ok, err := s.backend.Get(StorageKey)
	if err != nil || !ok {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

// Clear removes the record. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	return s.backend.Delete(StorageKey)
}
