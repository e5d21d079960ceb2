package models

import (
	"errors"
	"time"
)

// Note is a user-authored title/body record with archive and pin status.
// Identity is the ID; everything else is mutable in place.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived"`
	Pinned    bool      `json:"pinned"`
}

// Clone returns a copy. Notes only hold value fields, so a shallow copy is
// a full copy.
func (n *Note) Clone() *Note {
	c := *n
	return &c
}

// Filter selects which partition of the collection a view shows.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterArchived Filter = "archived"
	FilterPinned   Filter = "pinned"
)

// ParseFilter normalizes a filter name, defaulting to "all" for anything
// unrecognized so a stale persisted value can never break rendering.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterActive, FilterArchived, FilterPinned:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Filters lists every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterArchived, FilterPinned}
}

// Theme is the presentation color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme normalizes a theme name; anything that is not "dark" is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

var (
	// ErrValidation marks input rejected before any side effect happened.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks a remote call blocked by a missing or rejected
	// access token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks an operation on an id the server does not know.
	ErrNotFound = errors.New("not found")
)
