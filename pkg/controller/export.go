package controller

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"catatan/pkg/frontmatter"
	"catatan/pkg/models"
)

// ExportJSON serializes the whole collection, active notes first.
func (c *Controller) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(c.Notes(), "", "  ")
}

// ExportYAML serializes the whole collection as YAML.
func (c *Controller) ExportYAML() ([]byte, error) {
	return yaml.Marshal(c.Notes())
}

// ExportMarkdown renders one note as a markdown document with frontmatter.
func (c *Controller) ExportMarkdown(id string) (string, error) {
	note := c.Find(id)
	if note == nil {
		return "", fmt.Errorf("%w: note %s", models.ErrNotFound, id)
	}
	fm := &frontmatter.Frontmatter{
		ID:       note.ID,
		Title:    note.Title,
		Created:  frontmatter.FormatTimestamp(note.CreatedAt),
		Archived: note.Archived,
		Pinned:   note.Pinned,
	}
	return frontmatter.BuildContent(fm, note.Body) + "\n", nil
}

// ImportData merges notes from exported text into the collection. The
// filename extension picks the format: .md is a single frontmatter
// document, anything else is JSON (an array or a single note). Existing ids
// are replaced in place, new notes are prepended. Import works on the local
// collection only; the remote service never learns imported ids, so API
// mode rejects it.
func (c *Controller) ImportData(text, filename string) (int, error) {
	if c.remote != nil {
		return 0, fmt.Errorf("%w: import only works offline, the remote service owns note ids", models.ErrValidation)
	}

	var incoming []*models.Note
	var err error
	if strings.EqualFold(filepath.Ext(filename), ".md") {
		incoming, err = parseMarkdownImport(text)
	} else {
		incoming, err = parseJSONImport(text)
	}
	if err != nil {
		return 0, err
	}

	count := 0
	for _, in := range incoming {
		in.Title = strings.TrimSpace(in.Title)
		in.Body = strings.TrimSpace(in.Body)
		if in.Title == "" || in.Body == "" {
			continue
		}
		if in.ID == "" {
			in.ID = uuid.NewString()
		}
		if in.CreatedAt.IsZero() {
			in.CreatedAt = time.Now()
		}
		c.upsert(in)
		count++
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: no importable notes in %s", models.ErrValidation, filename)
	}

	c.persistNotes()
	return count, nil
}

// upsert replaces an existing note by id or prepends a new one, keeping the
// one-collection invariant.
func (c *Controller) upsert(in *models.Note) {
	c.active = remove(c.active, in.ID)
	c.archived = remove(c.archived, in.ID)
	if in.Archived {
		c.archived = append([]*models.Note{in}, c.archived...)
	} else {
		c.active = append([]*models.Note{in}, c.active...)
	}
	if in.Pinned {
		c.pinned[in.ID] = true
	} else {
		delete(c.pinned, in.ID)
	}
}

func parseJSONImport(text string) ([]*models.Note, error) {
	var list []*models.Note
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return list, nil
	}
	var one models.Note
	if err := json.Unmarshal([]byte(text), &one); err != nil {
		return nil, fmt.Errorf("%w: not a JSON note or note array: %v", models.ErrValidation, err)
	}
	return []*models.Note{&one}, nil
}

func parseMarkdownImport(text string) ([]*models.Note, error) {
	fm, body, err := frontmatter.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	note := &models.Note{Body: strings.TrimSpace(body)}
	if fm != nil {
		note.ID = fm.ID
		note.Title = fm.Title
		note.Archived = fm.Archived
		note.Pinned = fm.Pinned
		if fm.Created != "" {
			if t, err := frontmatter.ParseTimestamp(fm.Created); err == nil {
				note.CreatedAt = t
			}
		}
	}
	if note.Title == "" {
		// Fall back to the first markdown heading.
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "# ") {
				note.Title = strings.TrimPrefix(line, "# ")
				break
			}
		}
	}
	return []*models.Note{note}, nil
}
