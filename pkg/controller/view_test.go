package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"catatan/pkg/models"
)

func mkNote(id, title, body string, age time.Duration, archived, pinned bool) *models.Note {
	return &models.Note{
		ID:        id,
		Title:     title,
		Body:      body,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Add(-age),
		Archived:  archived,
		Pinned:    pinned,
	}
}

func sample() []*models.Note {
	return []*models.Note{
		mkNote("a", "Groceries", "milk and eggs", 0, false, false),
		mkNote("b", "Project plan", "ship the MILK feature", time.Hour, false, true),
		mkNote("c", "Old receipts", "archived paperwork", 2*time.Hour, true, false),
		mkNote("d", "Pinned archive", "kept for reference", 3*time.Hour, true, true),
	}
}

func ids(notes []*models.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestApplyFilterAndSearch(t *testing.T) {
	notes := sample()

	tests := []struct {
		name   string
		filter models.Filter
		query  string
		want   []string
	}{
		{"all no query", models.FilterAll, "", []string{"a", "b", "c", "d"}},
		{"active", models.FilterActive, "", []string{"a", "b"}},
		{"archived", models.FilterArchived, "", []string{"c", "d"}},
		{"pinned spans both partitions", models.FilterPinned, "", []string{"b", "d"}},
		{"query matches title or body", models.FilterAll, "milk", []string{"a", "b"}},
		{"query is case-insensitive", models.FilterAll, "MILK", []string{"a", "b"}},
		{"query is trimmed", models.FilterAll, "  milk  ", []string{"a", "b"}},
		{"query composes with filter", models.FilterActive, "plan", []string{"b"}},
		{"no matches", models.FilterAll, "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilterAndSearch(notes, tt.filter, tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyFilterAndSearchDoesNotMutateInput(t *testing.T) {
	notes := sample()
	before := ids(notes)

	_ = ApplyFilterAndSearch(notes, models.FilterPinned, "milk")

	assert.Equal(t, before, ids(notes))
}

func TestSortForView(t *testing.T) {
	notes := []*models.Note{
		mkNote("old-pinned", "t", "b", 3*time.Hour, false, true),
		mkNote("newest", "t", "b", 0, false, false),
		mkNote("new-pinned", "t", "b", time.Hour, false, true),
		mkNote("oldest", "t", "b", 4*time.Hour, false, false),
	}

	sorted := SortForView(notes)

	// Pinned first, newest first within each group.
	assert.Equal(t, []string{"new-pinned", "old-pinned", "newest", "oldest"}, ids(sorted))
	// The input slice keeps its order.
	assert.Equal(t, []string{"old-pinned", "newest", "new-pinned", "oldest"}, ids(notes))
}

func TestSortForViewStable(t *testing.T) {
	same := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	notes := []*models.Note{
		{ID: "x", CreatedAt: same},
		{ID: "y", CreatedAt: same},
		{ID: "z", CreatedAt: same},
	}

	once := SortForView(notes)
	twice := SortForView(once)

	assert.Equal(t, []string{"x", "y", "z"}, ids(once))
	assert.Equal(t, ids(once), ids(twice))
}

func TestCountsGet(t *testing.T) {
	c := Counts{All: 4, Active: 2, Archived: 2, Pinned: 1}

	assert.Equal(t, 4, c.Get(models.FilterAll))
	assert.Equal(t, 2, c.Get(models.FilterActive))
	assert.Equal(t, 2, c.Get(models.FilterArchived))
	assert.Equal(t, 1, c.Get(models.FilterPinned))
}
