// Package controller owns the in-memory note collections and reconciles
// intent events with state mutations, persistence, and the remote service.
// All state changes go through its methods; there are no package-level
// collections.
package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catatan/pkg/models"
	"catatan/pkg/storage"
)

// Remote is the slice of the notes API the controller drives. Nil remote
// means offline mode: every mutation is local.
type Remote interface {
	Notes(ctx context.Context) ([]*models.Note, error)
	ArchivedNotes(ctx context.Context) ([]*models.Note, error)
	CreateNote(ctx context.Context, title, body string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
	ArchiveNote(ctx context.Context, id string) error
	UnarchiveNote(ctx context.Context, id string) error
}

// ConfirmFunc asks the user a yes/no question before a destructive
// operation. A nil ConfirmFunc means the caller already confirmed.
type ConfirmFunc func(prompt string) bool

// Controller is the single source of truth for note state. It is not
// safe for concurrent use; all mutation happens on the caller's event loop.
type Controller struct {
	store   *storage.Store
	remote  Remote
	confirm ConfirmFunc
	log     *logrus.Logger

	active   []*models.Note
	archived []*models.Note
	pinned   map[string]bool
	filter   models.Filter
	query    string
	theme    models.Theme

	// view positions from the previous recompute, for reflow deltas
	lastOrder map[string]int
}

// Option configures a Controller.
type Option func(*Controller)

// WithRemote puts the controller in API mode.
func WithRemote(r Remote) Option {
	return func(c *Controller) { c.remote = r }
}

// WithConfirm installs the confirmation collaborator used by DeleteNote.
func WithConfirm(f ConfirmFunc) Option {
	return func(c *Controller) { c.confirm = f }
}

// WithDefaultTheme sets the theme used when no preference is persisted,
// typically the terminal's detected background.
func WithDefaultTheme(t models.Theme) Option {
	return func(c *Controller) { c.theme = t }
}

// WithLogger overrides the default stderr logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// New builds a controller over the given store.
func New(store *storage.Store, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		pinned:    map[string]bool{},
		filter:    models.FilterAll,
		theme:     models.ThemeLight,
		lastOrder: map[string]int{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logrus.New()
		c.log.SetOutput(os.Stderr)
		c.log.SetLevel(logrus.WarnLevel)
	}
	return c
}

// SetConfirm swaps the confirmation collaborator. Nil means the caller
// handles confirmation itself.
func (c *Controller) SetConfirm(f ConfirmFunc) {
	c.confirm = f
}

// Online reports whether the controller talks to a remote service.
func (c *Controller) Online() bool {
	return c.remote != nil
}

// LoadInitialState populates the collections. Offline it deserializes the
// persisted state, seeding the bundled sample exactly once (and again as a
// fallback when the persisted state is malformed). In API mode it fetches
// both collections from the service; on failure the collections stay empty
// and the error is surfaced rather than crashing the caller.
func (c *Controller) LoadInitialState(ctx context.Context) error {
	if t, ok := c.store.LoadTheme(); ok {
		c.theme = t
	}
	c.pinned = c.store.LoadPinned()

	if c.remote != nil {
		return c.loadRemote(ctx)
	}
	return c.loadLocal()
}

func (c *Controller) loadLocal() error {
	if !c.store.Seeded() {
		return c.reseed()
	}

	notes, err := c.store.LoadNotes()
	if err != nil {
		if errors.Is(err, storage.ErrMalformed) {
			c.log.WithError(err).Warn("persisted notes malformed, reseeding")
			return c.reseed()
		}
		c.active, c.archived = nil, nil
		return err
	}
	c.setCollections(notes)
	c.prunePinned()
	return nil
}

func (c *Controller) reseed() error {
	notes := storage.SeedNotes()
	c.setCollections(notes)
	c.prunePinned()
	if err := c.store.SaveNotes(notes); err != nil {
		return err
	}
	return c.store.MarkSeeded()
}

func (c *Controller) loadRemote(ctx context.Context) error {
	active, err := c.remote.Notes(ctx)
	if err != nil {
		c.active, c.archived = nil, nil
		return fmt.Errorf("fetch notes: %w", err)
	}
	archived, err := c.remote.ArchivedNotes(ctx)
	if err != nil {
		c.active, c.archived = nil, nil
		return fmt.Errorf("fetch archived notes: %w", err)
	}

	c.active, c.archived = active, archived
	// Pin status is client-local; the service knows nothing about it.
	for _, n := range append(append([]*models.Note{}, active...), archived...) {
		n.Pinned = c.pinned[n.ID]
	}
	c.prunePinned()
	c.persistNotes()
	return nil
}

// setCollections partitions a flat persisted list by archive flag.
func (c *Controller) setCollections(notes []*models.Note) {
	c.active = c.active[:0]
	c.archived = c.archived[:0]
	for _, n := range notes {
		if n.Archived {
			c.archived = append(c.archived, n)
		} else {
			c.active = append(c.active, n)
		}
		if n.Pinned {
			c.pinned[n.ID] = true
		} else if c.pinned[n.ID] {
			n.Pinned = true
		}
	}
}

// prunePinned drops pinned entries for ids no longer in either collection.
func (c *Controller) prunePinned() {
	live := map[string]bool{}
	for _, n := range c.active {
		live[n.ID] = true
	}
	for _, n := range c.archived {
		live[n.ID] = true
	}
	for id := range c.pinned {
		if !live[id] {
			delete(c.pinned, id)
		}
	}
}

// Notes returns every note, active first. The slice is fresh but the notes
// are shared; callers must not mutate them.
func (c *Controller) Notes() []*models.Note {
	all := make([]*models.Note, 0, len(c.active)+len(c.archived))
	all = append(all, c.active...)
	all = append(all, c.archived...)
	return all
}

// Find returns the note with the given id, or nil.
func (c *Controller) Find(id string) *models.Note {
	for _, n := range c.Notes() {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// CreateNote validates and creates a note at the front of the active
// collection. In API mode the note is stored remotely first and the
// server's copy (its id and timestamp) is what gets inserted.
func (c *Controller) CreateNote(ctx context.Context, title, body string) (*models.Note, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", models.ErrValidation)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: body must not be empty", models.ErrValidation)
	}

	var note *models.Note
	if c.remote != nil {
		created, err := c.remote.CreateNote(ctx, title, body)
		if err != nil {
			return nil, err
		}
		note = created
	} else {
		note = &models.Note{
			ID:        uuid.NewString(),
			Title:     title,
			Body:      body,
			CreatedAt: time.Now(),
		}
	}

	c.active = append([]*models.Note{note}, c.active...)
	c.persistNotes()
	c.log.WithField("id", note.ID).Debug("created note")
	return note, nil
}

// TogglePin sets or clears pin status. Unknown ids are a no-op; repeated
// calls with the same desired state are idempotent. Pin is local-only, so
// there is no remote call even in API mode.
func (c *Controller) TogglePin(id string, pinned bool) bool {
	note := c.Find(id)
	if note == nil {
		return false
	}
	note.Pinned = pinned
	if pinned {
		c.pinned[id] = true
	} else {
		delete(c.pinned, id)
	}
	c.persistNotes()
	return true
}

// SetArchived moves a note between the active and archived collections. In
// API mode the archive call must succeed before any local mutation; on
// failure local state is untouched and the error surfaces to the caller.
// The note is never in both or neither collection at any point.
func (c *Controller) SetArchived(ctx context.Context, id string, archived bool) error {
	note := c.Find(id)
	if note == nil {
		return nil
	}
	if note.Archived == archived {
		return nil
	}

	if c.remote != nil {
		var err error
		if archived {
			err = c.remote.ArchiveNote(ctx, id)
		} else {
			err = c.remote.UnarchiveNote(ctx, id)
		}
		if err != nil {
			return err
		}
	}

	note.Archived = archived
	if archived {
		c.active = remove(c.active, id)
		c.archived = append([]*models.Note{note}, c.archived...)
	} else {
		c.archived = remove(c.archived, id)
		c.active = append([]*models.Note{note}, c.active...)
	}
	c.persistNotes()
	return nil
}

// DeleteNote removes a note after user confirmation. Unknown ids are a
// silent no-op, which also makes a duplicate delete intent harmless. In API
// mode the remote delete must succeed before local removal. The returned
// bool reports whether a note was actually removed.
func (c *Controller) DeleteNote(ctx context.Context, id string) (bool, error) {
	note := c.Find(id)
	if note == nil {
		return false, nil
	}

	if c.confirm != nil {
		prompt := fmt.Sprintf("Delete note %q? This cannot be undone.", note.Title)
		if !c.confirm(prompt) {
			return false, nil
		}
	}

	if c.remote != nil {
		if err := c.remote.DeleteNote(ctx, id); err != nil {
			return false, err
		}
	}

	c.active = remove(c.active, id)
	c.archived = remove(c.archived, id)
	delete(c.pinned, id)
	c.persistNotes()
	c.log.WithField("id", id).Debug("deleted note")
	return true, nil
}

// UpdateTheme persists and applies a theme preference.
func (c *Controller) UpdateTheme(t models.Theme) {
	c.theme = models.ParseTheme(string(t))
	_ = c.store.SaveTheme(c.theme)
}

// ToggleTheme flips between light and dark and returns the new theme.
func (c *Controller) ToggleTheme() models.Theme {
	c.UpdateTheme(c.theme.Toggle())
	return c.theme
}

// Theme returns the current theme.
func (c *Controller) Theme() models.Theme {
	return c.theme
}

// SetFilter changes the view filter.
func (c *Controller) SetFilter(f models.Filter) {
	c.filter = models.ParseFilter(string(f))
}

// Filter returns the current view filter.
func (c *Controller) Filter() models.Filter {
	return c.filter
}

// SetQuery changes the free-text search query.
func (c *Controller) SetQuery(q string) {
	c.query = q
}

// Query returns the current search query.
func (c *Controller) Query() string {
	return c.query
}

// ReloadNotes re-reads persisted note and pin state after another process
// changed it. Last writer wins; there is no merging.
func (c *Controller) ReloadNotes() error {
	c.pinned = c.store.LoadPinned()
	notes, err := c.store.LoadNotes()
	if err != nil {
		return err
	}
	c.setCollections(notes)
	c.prunePinned()
	return nil
}

// ReloadTheme re-reads the persisted theme preference.
func (c *Controller) ReloadTheme() models.Theme {
	if t, ok := c.store.LoadTheme(); ok {
		c.theme = t
	}
	return c.theme
}

// RecomputeView applies filter, search, and sort, computes per-filter
// counts against the live query, and reports position deltas relative to
// the previous recompute so the view layer can animate reflows.
func (c *Controller) RecomputeView() View {
	all := c.Notes()

	view := View{
		Notes: SortForView(ApplyFilterAndSearch(all, c.filter, c.query)),
		Counts: Counts{
			All:      len(ApplyFilterAndSearch(all, models.FilterAll, c.query)),
			Active:   len(ApplyFilterAndSearch(all, models.FilterActive, c.query)),
			Archived: len(ApplyFilterAndSearch(all, models.FilterArchived, c.query)),
			Pinned:   len(ApplyFilterAndSearch(all, models.FilterPinned, c.query)),
		},
		Moved: map[string]int{},
	}

	order := make(map[string]int, len(view.Notes))
	for i, n := range view.Notes {
		order[n.ID] = i
		if prev, ok := c.lastOrder[n.ID]; ok && prev != i {
			view.Moved[n.ID] = i - prev
		}
	}
	c.lastOrder = order
	return view
}

// persistNotes writes the flat collection and the pinned map. Failures are
// logged in the store and otherwise best-effort: in-memory state stays
// authoritative for this process.
func (c *Controller) persistNotes() {
	_ = c.store.SaveNotes(c.Notes())
	_ = c.store.SavePinned(c.pinned)
}

func remove(notes []*models.Note, id string) []*models.Note {
	out := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}
