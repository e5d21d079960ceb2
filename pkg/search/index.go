// Package search maintains a SQLite full-text index over the note
// collection for query-language search beyond the view layer's substring
// filter.
package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"catatan/pkg/models"
)

// Index manages the search index.
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex opens (or creates) the index database.
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS notes_meta (
		id TEXT PRIMARY KEY,
		title TEXT,
		body TEXT,
		created_at TIMESTAMP,
		is_archived BOOLEAN,
		is_pinned BOOLEAN
	);

	CREATE INDEX IF NOT EXISTS idx_notes_meta_archived ON notes_meta(is_archived);
	CREATE INDEX IF NOT EXISTS idx_notes_meta_pinned ON notes_meta(is_pinned);
	`
	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			id UNINDEXED,
			title,
			body,
			tokenize = 'porter unicode61'
		);
		`
		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// FTS is an optimization; fall back to LIKE queries.
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support probes whether the FTS5 module is compiled in.
func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// IndexNote indexes or reindexes a note.
func (idx *Index) IndexNote(note *models.Note) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM notes_fts WHERE id = ?", note.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO notes_fts (id, title, body) VALUES (?, ?, ?)
		`, note.ID, note.Title, note.Body); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM notes_meta WHERE id = ?", note.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT INTO notes_meta (id, title, body, created_at, is_archived, is_pinned)
		VALUES (?, ?, ?, ?, ?, ?)
	`, note.ID, note.Title, note.Body, note.CreatedAt, note.Archived, note.Pinned); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveNote drops a note from the index.
func (idx *Index) RemoveNote(id string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM notes_fts WHERE id = ?", id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM notes_meta WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Reindex rebuilds the index from scratch for the given collection.
func (idx *Index) Reindex(notes []*models.Note) error {
	if idx.useFTS {
		if _, err := idx.db.Exec("DELETE FROM notes_fts"); err != nil {
			return err
		}
	}
	if _, err := idx.db.Exec("DELETE FROM notes_meta"); err != nil {
		return err
	}
	for _, note := range notes {
		if err := idx.IndexNote(note); err != nil {
			return err
		}
	}
	return nil
}

// Options narrow a search.
type Options struct {
	Filter models.Filter
	Limit  int
}

// Search runs a full-text query and returns matching notes, best first.
func (idx *Index) Search(query string, opts *Options) ([]*models.Note, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, opts)
	}
	return idx.searchWithoutFTS(query, opts)
}

func filterConditions(f models.Filter) []string {
	switch f {
	case models.FilterActive:
		return []string{"m.is_archived = 0"}
	case models.FilterArchived:
		return []string{"m.is_archived = 1"}
	case models.FilterPinned:
		return []string{"m.is_pinned = 1"}
	default:
		return nil
	}
}

func (idx *Index) searchWithFTS(query string, opts *Options) ([]*models.Note, error) {
	conditions := append(filterConditions(opts.Filter), "notes_fts MATCH ?")
	args := []any{query, opts.Limit}

	searchQuery := fmt.Sprintf(`
		SELECT m.id, m.title, m.body, m.created_at, m.is_archived, m.is_pinned
		FROM notes_fts f
		JOIN notes_meta m ON f.id = m.id
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]*models.Note, error) {
	pattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions := append(filterConditions(opts.Filter), "(m.title LIKE ? OR m.body LIKE ?)")
	args := []any{pattern, pattern, opts.Limit}

	searchQuery := fmt.Sprintf(`
		SELECT m.id, m.title, m.body, m.created_at, m.is_archived, m.is_pinned
		FROM notes_meta m
		WHERE %s
		ORDER BY m.created_at DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	var results []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Title, &note.Body, &note.CreatedAt, &note.Archived, &note.Pinned); err != nil {
			return nil, err
		}
		results = append(results, note)
	}
	return results, rows.Err()
}

// Close releases the underlying database.
func (idx *Index) Close() error {
	return idx.db.Close()
}
