package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catatan/pkg/models"
)

func TestOpenCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Expected data directory to be created")
	}
	if s.Dir() != dir {
		t.Errorf("Expected dir %s, got %s", dir, s.Dir())
	}
}

func TestLoadNotesMissingFile(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	notes, err := s.LoadNotes()
	if err != nil {
		t.Fatalf("LoadNotes on empty store failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("Expected empty collection, got %d notes", len(notes))
	}
}

func TestSaveAndLoadNotes(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	in := []*models.Note{
		{ID: "a", Title: "First", Body: "body", CreatedAt: time.Now().UTC(), Pinned: true},
		{ID: "b", Title: "Second", Body: "body", CreatedAt: time.Now().UTC(), Archived: true},
	}
	if err := s.SaveNotes(in); err != nil {
		t.Fatalf("SaveNotes failed: %v", err)
	}

	out, err := s.LoadNotes()
	if err != nil {
		t.Fatalf("LoadNotes failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(out))
	}
	if out[0].ID != "a" || !out[0].Pinned {
		t.Errorf("First note round-tripped wrong: %+v", out[0])
	}
	if out[1].ID != "b" || !out[1].Archived {
		t.Errorf("Second note round-tripped wrong: %+v", out[1])
	}

	// No leftover temp file from the atomic write.
	if _, err := os.Stat(s.NotesPath() + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temp file to be renamed away")
	}
}

func TestLoadNotesMalformed(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	if err := os.WriteFile(s.NotesPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write malformed file: %v", err)
	}

	_, err = s.LoadNotes()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}

func TestSeededFlag(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	if s.Seeded() {
		t.Error("Fresh store should not be marked seeded")
	}
	if err := s.MarkSeeded(); err != nil {
		t.Fatalf("MarkSeeded failed: %v", err)
	}
	if !s.Seeded() {
		t.Error("Store should be seeded after MarkSeeded")
	}
}

func TestThemePreference(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	if _, ok := s.LoadTheme(); ok {
		t.Error("Expected no stored theme on a fresh store")
	}

	if err := s.SaveTheme(models.ThemeDark); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}
	theme, ok := s.LoadTheme()
	if !ok || theme != models.ThemeDark {
		t.Errorf("Expected dark theme, got %v ok=%v", theme, ok)
	}
}

func TestPinnedMap(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	if got := s.LoadPinned(); len(got) != 0 {
		t.Errorf("Expected empty pinned map, got %v", got)
	}

	if err := s.SavePinned(map[string]bool{"a": true, "b": true}); err != nil {
		t.Fatalf("SavePinned failed: %v", err)
	}
	got := s.LoadPinned()
	if !got["a"] || !got["b"] || len(got) != 2 {
		t.Errorf("Pinned map round-tripped wrong: %v", got)
	}
}

func TestPinnedMapCorruptFallsBackToEmpty(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	if err := os.WriteFile(filepath.Join(s.Dir(), "pinned.json"), []byte("nope"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}
	if got := s.LoadPinned(); len(got) != 0 {
		t.Errorf("Expected empty map for corrupt state, got %v", got)
	}
}

func TestTokenLifecycle(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	if s.Token() != "" {
		t.Error("Expected no token on a fresh store")
	}

	if err := s.SaveToken("secret-token"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if s.Token() != "secret-token" {
		t.Errorf("Expected stored token, got %q", s.Token())
	}

	info, err := os.Stat(filepath.Join(s.Dir(), "token"))
	if err != nil {
		t.Fatalf("Stat token file failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected owner-only token file, got %v", info.Mode().Perm())
	}

	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken failed: %v", err)
	}
	if s.Token() != "" {
		t.Error("Expected token cleared")
	}

	// Clearing twice is fine.
	if err := s.ClearToken(); err != nil {
		t.Errorf("Second ClearToken failed: %v", err)
	}
}

func TestSeedNotes(t *testing.T) {
	notes := SeedNotes()
	if len(notes) == 0 {
		t.Fatal("Expected sample notes")
	}
	seen := map[string]bool{}
	for i, n := range notes {
		if n.ID == "" || n.Title == "" || n.Body == "" {
			t.Errorf("Seed note %d has empty fields: %+v", i, n)
		}
		if seen[n.ID] {
			t.Errorf("Duplicate seed id %s", n.ID)
		}
		seen[n.ID] = true
		if n.Archived || n.Pinned {
			t.Errorf("Seed note %d should start active and unpinned", i)
		}
		if i > 0 && notes[i].CreatedAt.After(notes[i-1].CreatedAt) {
			t.Error("Seed notes should be ordered newest first")
		}
	}
}
