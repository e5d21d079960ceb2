package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"catatan/pkg/models"
)

// Keys for the persisted state, one file per key under the data directory.
const (
	notesKey  = "notes.json"
	pinnedKey = "pinned.json"
	seededKey = "seeded"
	themeKey  = "theme"
	tokenKey  = "token"
)

// ErrMalformed reports persisted note state that is not a JSON array.
var ErrMalformed = errors.New("malformed persisted state")

// Store is a namespaced key-value store on disk. Writes are best-effort:
// callers treat failures as non-fatal for the in-memory state and log them.
type Store struct {
	dir string
	log *logrus.Logger
}

// Open ensures the data directory exists and returns a store rooted there.
func Open(dir string, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// NotesPath returns the file holding the note collection; the watcher keys
// change notifications off it.
func (s *Store) NotesPath() string {
	return filepath.Join(s.dir, notesKey)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}

// LoadNotes deserializes the persisted collection. A missing file yields an
// empty collection; content that is not a JSON array yields ErrMalformed so
// the caller can fall back to reseeding.
func (s *Store) LoadNotes() ([]*models.Note, error) {
	raw, err := os.ReadFile(s.path(notesKey))
	if os.IsNotExist(err) {
		return []*models.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}

	var notes []*models.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	return notes, nil
}

// SaveNotes persists the collection. Quota or permission failures are
// logged and returned, but callers keep their in-memory state.
func (s *Store) SaveNotes(notes []*models.Note) error {
	raw, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.write(notesKey, raw, 0o644); err != nil {
		s.log.WithError(err).Warn("failed to persist notes")
		return err
	}
	return nil
}

// Seeded reports whether the one-time sample seed already ran.
func (s *Store) Seeded() bool {
	raw, err := os.ReadFile(s.path(seededKey))
	return err == nil && strings.TrimSpace(string(raw)) == "1"
}

// MarkSeeded records that the sample seed ran so it never runs again.
func (s *Store) MarkSeeded() error {
	return s.write(seededKey, []byte("1"), 0o644)
}

// LoadTheme returns the persisted theme preference, or ok=false when none
// is stored and the caller should fall back to the system preference.
func (s *Store) LoadTheme() (models.Theme, bool) {
	raw, err := os.ReadFile(s.path(themeKey))
	if err != nil || len(strings.TrimSpace(string(raw))) == 0 {
		return models.ThemeLight, false
	}
	return models.ParseTheme(strings.TrimSpace(string(raw))), true
}

// SaveTheme persists the theme preference.
func (s *Store) SaveTheme(t models.Theme) error {
	if err := s.write(themeKey, []byte(t), 0o644); err != nil {
		s.log.WithError(err).Warn("failed to persist theme")
		return err
	}
	return nil
}

// LoadPinned returns the pinned-id map. Missing or unreadable state yields
// an empty map; pin status is a client-local nicety, never worth failing on.
func (s *Store) LoadPinned() map[string]bool {
	raw, err := os.ReadFile(s.path(pinnedKey))
	if err != nil {
		return map[string]bool{}
	}
	var pinned map[string]bool
	if err := json.Unmarshal(raw, &pinned); err != nil || pinned == nil {
		return map[string]bool{}
	}
	return pinned
}

// SavePinned persists the pinned-id map.
func (s *Store) SavePinned(pinned map[string]bool) error {
	raw, err := json.MarshalIndent(pinned, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pinned set: %w", err)
	}
	if err := s.write(pinnedKey, raw, 0o644); err != nil {
		s.log.WithError(err).Warn("failed to persist pinned set")
		return err
	}
	return nil
}

// Token returns the stored access token, empty when logged out.
func (s *Store) Token() string {
	raw, err := os.ReadFile(s.path(tokenKey))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// SaveToken persists the access token with owner-only permissions.
func (s *Store) SaveToken(token string) error {
	return s.write(tokenKey, []byte(token), 0o600)
}

// ClearToken forgets the access token.
func (s *Store) ClearToken() error {
	err := os.Remove(s.path(tokenKey))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// write lands content under key via a rename so a concurrent reader in
// another process never sees a torn file.
func (s *Store) write(key string, data []byte, mode os.FileMode) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}
