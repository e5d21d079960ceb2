package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input string
		want  Filter
	}{
		{"all", FilterAll},
		{"active", FilterActive},
		{"archived", FilterArchived},
		{"pinned", FilterPinned},
		{"", FilterAll},
		{"bogus", FilterAll},
		{"ARCHIVED", FilterAll},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFilter(tt.input); got != tt.want {
				t.Errorf("ParseFilter(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		input string
		want  Theme
	}{
		{"dark", ThemeDark},
		{"light", ThemeLight},
		{"", ThemeLight},
		{"solarized", ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseTheme(tt.input); got != tt.want {
				t.Errorf("ParseTheme(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark {
		t.Error("Expected light to toggle to dark")
	}
	if ThemeDark.Toggle() != ThemeLight {
		t.Error("Expected dark to toggle to light")
	}
}

func TestNoteClone(t *testing.T) {
	orig := &Note{
		ID:        "n1",
		Title:     "Title",
		Body:      "Body",
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Pinned:    true,
	}

	c := orig.Clone()
	c.Title = "Changed"
	c.Pinned = false

	if orig.Title != "Title" {
		t.Errorf("Clone mutated the original title: %s", orig.Title)
	}
	if !orig.Pinned {
		t.Error("Clone mutated the original pin status")
	}
}

func TestNoteJSONFieldNames(t *testing.T) {
	note := &Note{
		ID:        "n1",
		Title:     "Title",
		Body:      "Body",
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Archived:  true,
	}

	raw, err := json.Marshal(note)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	// The wire and persisted formats use camelCase field names.
	for _, key := range []string{"id", "title", "body", "createdAt", "archived", "pinned"} {
		if _, ok := m[key]; !ok {
			t.Errorf("Expected JSON key %q, got %v", key, m)
		}
	}
}
