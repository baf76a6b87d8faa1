package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Credentials is what a login leaves behind.
type Credentials struct {
	Token  string `yaml:"access_token"`
	UserID string `yaml:"user_id"`
	Email  string `yaml:"email"`
}

func (c Credentials) LoggedIn() bool { return c.Token != "" }

// SessionStore persists credentials between runs.
type SessionStore interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// Session is the current login, injected into every Client. It is safe
// for concurrent use.
type Session struct {
	mu    sync.RWMutex
	store SessionStore
	creds Credentials
}

func NewSession(store SessionStore) *Session {
	return &Session{store: store}
}

// Load reads stored credentials. A missing store entry is an empty session.
func (s *Session) Load() error {
	creds, err := s.store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return nil
}

func (s *Session) Save(creds Credentials) error {
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return s.store.Save(creds)
}

// Clear forgets the login both in memory and in the store.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) Current() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

func (s *Session) Token() string { return s.Current().Token }

// ── File store ───────────────────────────────────────────────────────────────

// FileSessionStore keeps credentials in a YAML file readable only by the user.
type FileSessionStore struct{ Path string }

// DefaultSessionPath is <user config dir>/dealflow/session.yaml.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dealflow", "session.yaml"), nil
}

func (f FileSessionStore) Load() (Credentials, error) {
	var creds Credentials
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return creds, nil
	}
	if err != nil {
		return creds, err
	}
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("session: parse %s: %w", f.Path, err)
	}
	return creds, nil
}

func (f FileSessionStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(creds)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

func (f FileSessionStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ── Memory store ─────────────────────────────────────────────────────────────

type MemorySessionStore struct {
	mu    sync.Mutex
	creds Credentials
}

func (m *MemorySessionStore) Load() (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, nil
}

func (m *MemorySessionStore) Save(creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = Credentials{}
	return nil
}
