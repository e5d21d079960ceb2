package controller

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catatan/pkg/models"
	"catatan/pkg/storage"
)

func newTestController(t *testing.T, opts ...Option) (*Controller, *storage.Store) {
	t.Helper()
	store, err := storage.Open(t.TempDir(), nil)
	require.NoError(t, err)
	return New(store, opts...), store
}

// fakeRemote is an in-memory Remote with injectable failures.
type fakeRemote struct {
	notes    []*models.Note
	archived []*models.Note

	listErr    error
	createErr  error
	archiveErr error
	deleteErr  error

	deleteCalls  int
	archiveCalls int
}

func (f *fakeRemote) Notes(ctx context.Context) ([]*models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.notes, nil
}

func (f *fakeRemote) ArchivedNotes(ctx context.Context) ([]*models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.archived, nil
}

func (f *fakeRemote) CreateNote(ctx context.Context, title, body string) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	n := &models.Note{ID: uuid.NewString(), Title: title, Body: body, CreatedAt: time.Now().UTC()}
	f.notes = append([]*models.Note{n}, f.notes...)
	return n, nil
}

func (f *fakeRemote) DeleteNote(ctx context.Context, id string) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeRemote) ArchiveNote(ctx context.Context, id string) error {
	f.archiveCalls++
	return f.archiveErr
}

func (f *fakeRemote) UnarchiveNote(ctx context.Context, id string) error {
	f.archiveCalls++
	return f.archiveErr
}

func TestLoadInitialStateSeedsOnce(t *testing.T) {
	c, store := newTestController(t)

	require.NoError(t, c.LoadInitialState(context.Background()))
	seeded := c.Notes()
	assert.NotEmpty(t, seeded)
	assert.True(t, store.Seeded())

	// Wipe the collection; the seed must not come back.
	for _, n := range seeded {
		_, err := c.DeleteNote(context.Background(), n.ID)
		require.NoError(t, err)
	}

	c2 := New(store)
	require.NoError(t, c2.LoadInitialState(context.Background()))
	assert.Empty(t, c2.Notes())
}

func TestLoadInitialStateReseedsOnMalformedState(t *testing.T) {
	c, store := newTestController(t)
	require.NoError(t, c.LoadInitialState(context.Background()))

	require.NoError(t, os.WriteFile(store.NotesPath(), []byte("{broken"), 0o644))

	c2 := New(store)
	require.NoError(t, c2.LoadInitialState(context.Background()))
	assert.NotEmpty(t, c2.Notes(), "malformed state falls back to the sample seed")
}

func TestCreateNoteValidation(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.LoadInitialState(context.Background()))
	before := len(c.Notes())

	tests := []struct {
		name  string
		title string
		body  string
	}{
		{"empty title", "", "body"},
		{"empty body", "title", ""},
		{"whitespace only", "   ", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateNote(context.Background(), tt.title, tt.body)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Len(t, c.Notes(), before, "rejected input must not mutate state")
		})
	}
}

func TestCreateNotePrependsAndPersists(t *testing.T) {
	c, store := newTestController(t)
	require.NoError(t, c.LoadInitialState(context.Background()))

	note, err := c.CreateNote(context.Background(), "  Trimmed  ", "  body text  ")
	require.NoError(t, err)
	assert.Equal(t, "Trimmed", note.Title)
	assert.Equal(t, "body text", note.Body)
	assert.NotEmpty(t, note.ID)
	assert.False(t, note.CreatedAt.IsZero())

	assert.Equal(t, note.ID, c.Notes()[0].ID, "new note goes to the front")

	persisted, err := store.LoadNotes()
	require.NoError(t, err)
	assert.Equal(t, note.ID, persisted[0].ID)
}

func TestTogglePin(t *testing.T) {
	c, store := newTestController(t)
	require.NoError(t, c.LoadInitialState(context.Background()))
	id := c.Notes()[0].ID

	assert.False(t, c.TogglePin("missing", true), "unknown id is a no-op")

	assert.True(t, c.TogglePin(id, true))
	assert.True(t, c.Find(id).Pinned)
	// Repeating the same state is idempotent.
	assert.True(t, c.TogglePin(id, true))
	assert.True(t, c.Find(id).Pinned)

	assert.True(t, store.LoadPinned()[id], "pin status persists")

	assert.True(t, c.TogglePin(id, false))
	assert.False(t, c.Find(id).Pinned)
	assert.False(t, store.LoadPinned()[id])
}

func TestSetArchivedRoundTrip(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.LoadInitialState(context.Background()))
	id := c.Notes()[0].ID

	require.NoError(t, c.SetArchived(context.Background(), id, true))
	assert.True(t, c.Find(id).Archived)
	assertOneCollection(t, c, id)

	// No-op when already in the target state.
	require.NoError(t, c.SetArchived(context.Background(), id, true))

	require.NoError(t, c.SetArchived(context.Background(), id, false))
	assert.False(t, c.Find(id).Archived)
	assertOneCollection(t, c, id)

	// Unknown ids are silently ignored.
	require.NoError(t, c.SetArchived(context.Background(), "missing", true))
}

// assertOneCollection checks a note lives in exactly one partition.
func assertOneCollection(t *testing.T, c *Controller, id string) {
	t.Helper()
	count := 0
	for _, n := range c.Notes() {
		if n.ID == id {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSetArchivedRemoteFirst(t *testing.T) {
	remote := &fakeRemote{
		notes: []*models.Note{{ID: "r1", Title: "t", Body: "b", CreatedAt: time.Now().UTC()}},
	}
	c, _ := newTestController(t, WithRemote(remote))
	require.NoError(t, c.LoadInitialState(context.Background()))

	remote.archiveErr = errors.New("service down")
	err := c.SetArchived(context.Background(), "r1", true)
	assert.Error(t, err)
	assert.False(t, c.Find("r1").Archived, "failed remote call must leave local state untouched")

	remote.archiveErr = nil
	require.NoError(t, c.SetArchived(context.Background(), "r1", true))
	assert.True(t, c.Find("r1").Archived)
	assert.Equal(t, 2, remote.archiveCalls)
}

func TestDeleteNote(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.LoadInitialState(context.Background()))
	id := c.Notes()[0].ID
	before := len(c.Notes())

	removed, err := c.DeleteNote(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, removed, "unknown id is a no-op")

	removed, err = c.DeleteNote(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Nil(t, c.Find(id))
	assert.Len(t, c.Notes(), before-1)

	// A duplicate delete intent is harmless.
	removed, err = c.DeleteNote(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteNoteConfirmDeclined(t *testing.T) {
	c, _ := newTestController(t, WithConfirm(func(string) bool { return false }))
	require.NoError(t, c.LoadInitialState(context.Background()))
	id := c.Notes()[0].ID

	removed, err := c.DeleteNote(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NotNil(t, c.Find(id), "declined confirmation keeps the note")
}

func TestDeleteNoteRemoteFirst(t *testing.T) {
	remote := &fakeRemote{
		notes: []*models.Note{{ID: "r1", Title: "t", Body: "b", CreatedAt: time.Now().UTC()}},
	}
	c, _ := newTestController(t, WithRemote(remote))
	require.NoError(t, c.LoadInitialState(context.Background()))

	remote.deleteErr = errors.New("service down")
	removed, err := c.DeleteNote(context.Background(), "r1")
	assert.Error(t, err)
	assert.False(t, removed)
	assert.NotNil(t, c.Find("r1"))

	remote.deleteErr = nil
	removed, err = c.DeleteNote(context.Background(), "r1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Nil(t, c.Find("r1"))
}

func TestLoadInitialStateRemote(t *testing.T) {
	remote := &fakeRemote{
		notes: []*models.Note{
			{ID: "a", Title: "Active", Body: "b", CreatedAt: time.Now().UTC()},
		},
		archived: []*models.Note{
			{ID: "z", Title: "Archived", Body: "b", CreatedAt: time.Now().UTC(), Archived: true},
		},
	}
	store, err := storage.Open(t.TempDir(), nil)
	require.NoError(t, err)
	// Pin state is client-local and must survive a remote reload.
	require.NoError(t, store.SavePinned(map[string]bool{"a": true, "gone": true}))

	c := New(store, WithRemote(remote))
	require.NoError(t, c.LoadInitialState(context.Background()))

	assert.True(t, c.Online())
	assert.Len(t, c.Notes(), 2)
	assert.True(t, c.Find("a").Pinned, "local pin applied to the fetched note")
	assert.False(t, store.LoadPinned()["gone"], "pins for vanished ids are pruned")
}

func TestLoadInitialStateRemoteFailure(t *testing.T) {
	remote := &fakeRemote{listErr: errors.New("connection refused")}
	c, _ := newTestController(t, WithRemote(remote))

	err := c.LoadInitialState(context.Background())
	assert.Error(t, err)
	assert.Empty(t, c.Notes(), "failed fetch leaves the collections empty")
}

func TestRecomputeViewCountsTrackQuery(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.LoadInitialState(context.Background()))
	n1, err := c.CreateNote(context.Background(), "Alpha report", "quarterly numbers")
	require.NoError(t, err)
	_, err = c.CreateNote(context.Background(), "Beta notes", "quarterly review")
	require.NoError(t, err)
	require.NoError(t, c.SetArchived(context.Background(), n1.ID, true))

	c.SetQuery("quarterly")
	view := c.RecomputeView()

	assert.Equal(t, 2, view.Counts.All)
	assert.Equal(t, 1, view.Counts.Active)
	assert.Equal(t, 1, view.Counts.Archived)
	assert.Equal(t, 0, view.Counts.Pinned)
	// The default filter is "all", so both matches render.
	assert.Len(t, view.Notes, 2)
}

func TestRecomputeViewMovedDeltas(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.LoadInitialState(context.Background()))
	view := c.RecomputeView()
	require.NotEmpty(t, view.Notes)
	assert.Empty(t, view.Moved, "first render has no previous positions")

	last := view.Notes[len(view.Notes)-1]
	assert.True(t, c.TogglePin(last.ID, true))
	view = c.RecomputeView()

	assert.Equal(t, last.ID, view.Notes[0].ID)
	assert.Negative(t, view.Moved[last.ID], "pinned note moved toward the front")
}

func TestReloadNotesPicksUpExternalChanges(t *testing.T) {
	store, err := storage.Open(t.TempDir(), nil)
	require.NoError(t, err)
	c := New(store)
	require.NoError(t, c.LoadInitialState(context.Background()))

	// Another process rewrites the persisted state; last writer wins.
	other := []*models.Note{
		{ID: "ext", Title: "External", Body: "written elsewhere", CreatedAt: time.Now().UTC()},
	}
	require.NoError(t, store.SaveNotes(other))
	require.NoError(t, store.SavePinned(map[string]bool{"ext": true}))

	require.NoError(t, c.ReloadNotes())
	require.Len(t, c.Notes(), 1)
	assert.Equal(t, "ext", c.Notes()[0].ID)
	assert.True(t, c.Notes()[0].Pinned)
}

func TestThemePersistence(t *testing.T) {
	c, store := newTestController(t, WithDefaultTheme(models.ThemeDark))
	require.NoError(t, c.LoadInitialState(context.Background()))
	assert.Equal(t, models.ThemeDark, c.Theme(), "default applies when nothing is stored")

	assert.Equal(t, models.ThemeLight, c.ToggleTheme())
	stored, ok := store.LoadTheme()
	assert.True(t, ok)
	assert.Equal(t, models.ThemeLight, stored)

	// A fresh controller picks the stored preference over the default.
	c2 := New(store, WithDefaultTheme(models.ThemeDark))
	require.NoError(t, c2.LoadInitialState(context.Background()))
	assert.Equal(t, models.ThemeLight, c2.Theme())
}

func TestSetFilterNormalizes(t *testing.T) {
	c, _ := newTestController(t)

	c.SetFilter(models.FilterArchived)
	assert.Equal(t, models.FilterArchived, c.Filter())

	c.SetFilter(models.Filter("bogus"))
	assert.Equal(t, models.FilterAll, c.Filter())
}
