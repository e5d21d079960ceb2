// Package frontmatter reads and writes the YAML metadata block used when
// notes travel as markdown files (export and import).
package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)`)

// Frontmatter is the structured metadata at the beginning of an exported
// note. The body of the markdown file is the note body.
type Frontmatter struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Created  string `yaml:"created,omitempty"`
	Archived bool   `yaml:"archived,omitempty"`
	Pinned   bool   `yaml:"pinned,omitempty"`
}

// Parse extracts frontmatter from content and returns the parsed metadata
// and the remaining body. Content without a frontmatter block returns a nil
// Frontmatter and the content unchanged.
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return &fm, matches[2], nil
}

// Build renders the YAML frontmatter block in a stable field order.
func Build(fm *Frontmatter) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("id: %s\n", fm.ID))
	sb.WriteString(fmt.Sprintf("title: %s\n", quoteIfNeeded(fm.Title)))
	if fm.Created != "" {
		sb.WriteString(fmt.Sprintf("created: %s\n", fm.Created))
	}
	if fm.Archived {
		sb.WriteString("archived: true\n")
	}
	if fm.Pinned {
		sb.WriteString("pinned: true\n")
	}
	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines frontmatter and body into a complete document.
func BuildContent(fm *Frontmatter, body string) string {
	block := Build(fm)
	if !strings.HasPrefix(body, "\n") {
		return block + "\n\n" + body
	}
	return block + "\n" + body
}

// FormatTimestamp renders a time in the frontmatter timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimestamp reads a frontmatter timestamp, accepting both RFC 3339 and
// the looser "2006-01-02 15:04:05" form hand-written files tend to use.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",:[]{}\"'#") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
