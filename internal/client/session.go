package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hongminglow/safeguard/internal/models/dto"
)

// Identity marker keys. They match the cookie names the web frontend uses.
const (
	KeyUserID       = "user_id"
	KeyUserEmail    = "user_email"
	KeyUserName     = "user_name"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Session is a client-local key/value cache persisted as JSON at path.
// It is a presentation hint only: the server authorizes by bearer token.
type Session struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// Identity is what the session remembers about the logged-in user.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Token  string
}

// OpenSession loads the session file at path. A missing file yields an empty session.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path, values: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.values); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

func (s *Session) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Clear drops every marker.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
}

// Save writes the session to disk with owner-only permissions.
func (s *Session) Save() error {
	s.mu.RLock()
	raw, err := json.MarshalIndent(s.values, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Remember stores the login result as identity markers.
func (s *Session) Remember(login dto.LoginResponse) {
	s.Set(KeyUserID, login.ID)
	s.Set(KeyUserEmail, login.Email)
	s.Set(KeyUserName, login.Name)
	s.Set(KeyAccessToken, login.Token)
}

// Identity reports the remembered user. ok is false when no user id marker exists.
func (s *Session) Identity() (Identity, bool) {
	id, ok := s.Get(KeyUserID)
	if !ok || id == "" {
		return Identity{}, false
	}
	name, _ := s.Get(KeyUserName)
	email, _ := s.Get(KeyUserEmail)
	token, _ := s.Get(KeyAccessToken)
	return Identity{UserID: id, Name: name, Email: email, Token: token}, true
}

// Logout clears all identity markers and persists the empty session.
func (s *Session) Logout() error {
	s.Clear()
	return s.Save()
}
