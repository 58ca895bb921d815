package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// Config configures the on-disk session storage.
type Config struct {
	BasePath string
	// Key defaults to console.SessionStorageKey.
	Key string
}

// DiskvStorage persists the console session as JSON through diskv.
type DiskvStorage struct {
	d   *diskv.Diskv
	key string
}

var _ console.SessionStorage = (*DiskvStorage)(nil)

// New builds a diskv-backed storage rooted at cfg.BasePath.
func New(cfg Config) (*DiskvStorage, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("sessionstore: base path is required")
	}
	if err := os.MkdirAll(cfg.BasePath, 0o700); err != nil {
		return nil, fmt.Errorf("sessionstore: create %s: %w", cfg.BasePath, err)
	}
	key := cfg.Key
	if key == "" {
		key = console.SessionStorageKey
	}
	return &DiskvStorage{
		d: diskv.New(diskv.Options{
			BasePath:     cfg.BasePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 64 * 1024,
			FilePerm:     0o600,
			PathPerm:     0o700,
		}),
		key: key,
	}, nil
}

// Load reads the persisted session.
func (s *DiskvStorage) Load(context.Context) (console.Session, error) {
	if !s.d.Has(s.key) {
		return console.Session{}, console.ErrNoSession
	}
	raw, err := s.d.Read(s.key)
	if err != nil {
		return console.Session{}, fmt.Errorf("sessionstore: read: %w", err)
	}
	var session console.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return console.Session{}, fmt.Errorf("sessionstore: decode: %w", err)
	}
	return session, nil
}

// Save writes the session, replacing any previous value.
func (s *DiskvStorage) Save(_ context.Context, session console.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("sessionstore: encode: %w", err)
	}
	if err := s.d.Write(s.key, raw); err != nil {
		return fmt.Errorf("sessionstore: write: %w", err)
	}
	return nil
}

// Clear removes every cached value under the base path.
func (s *DiskvStorage) Clear(context.Context) error {
	if err := s.d.EraseAll(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("sessionstore: clear: %w", err)
	}
	return nil
}
