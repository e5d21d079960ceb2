package controller

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"catatan/pkg/models"
)

var fold = cases.Fold()

// ApplyFilterAndSearch returns the notes matching the filter predicate and,
// when the query is non-empty after trimming, whose title or body contains
// it case-insensitively. The input is never mutated and relative order is
// preserved.
func ApplyFilterAndSearch(notes []*models.Note, filter models.Filter, query string) []*models.Note {
	q := fold.String(strings.TrimSpace(query))

	out := make([]*models.Note, 0, len(notes))
	for _, n := range notes {
		switch filter {
		case models.FilterActive:
			if n.Archived {
				continue
			}
		case models.FilterArchived:
			if !n.Archived {
				continue
			}
		case models.FilterPinned:
			// Pinned cuts across the archive partition.
			if !n.Pinned {
				continue
			}
		}
		if q != "" &&
			!strings.Contains(fold.String(n.Title), q) &&
			!strings.Contains(fold.String(n.Body), q) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// SortForView produces the display order: pinned notes first, then newest
// first by creation time. The sort is stable, so equal notes keep their
// original relative order and sorting an already-sorted view is a no-op.
func SortForView(notes []*models.Note) []*models.Note {
	out := make([]*models.Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Counts holds the per-filter totals shown on the toolbar tabs. Each count
// reflects the live search query but is independent of the active filter.
type Counts struct {
	All      int
	Active   int
	Archived int
	Pinned   int
}

// Get returns the count for one filter.
func (c Counts) Get(f models.Filter) int {
	switch f {
	case models.FilterActive:
		return c.Active
	case models.FilterArchived:
		return c.Archived
	case models.FilterPinned:
		return c.Pinned
	default:
		return c.All
	}
}

// View is the presentation-ready projection of the collection.
type View struct {
	Notes  []*models.Note
	Counts Counts

	// Moved maps note id to its position delta (new index minus old index)
	// for notes present in both this render and the previous one. The view
	// layer uses it for reflow hints; it carries no business meaning.
	Moved map[string]int
}
