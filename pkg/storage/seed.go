package storage

import (
	"time"

	"github.com/google/uuid"

	"catatan/pkg/models"
)

// seedSample is the bundled starter collection shown on first run.
var seedSample = []struct {
	title string
	body  string
}{
	{"Welcome to catatan", "This is your notes collection. Create, pin, archive, and search notes from here."},
	{"Shopping list", "Eggs, coffee beans, rice, and a new notebook."},
	{"Recipe: fried rice", "Day-old rice, garlic, shallots, sweet soy sauce. Fry hot and fast."},
	{"Reading queue", "The Go Programming Language, chapters 7-9."},
}

// SeedNotes builds a fresh sample collection. Each call generates new ids
// and timestamps; ordering is newest-first like a user-created list.
func SeedNotes() []*models.Note {
	now := time.Now()
	notes := make([]*models.Note, 0, len(seedSample))
	for i, s := range seedSample {
		notes = append(notes, &models.Note{
			ID:        uuid.NewString(),
			Title:     s.title,
			Body:      s.body,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
			Archived:  false,
			Pinned:    false,
		})
	}
	return notes
}
