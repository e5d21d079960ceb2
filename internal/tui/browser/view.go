package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"catatan/pkg/models"
)

const (
	pinGlyph      = "★"
	archivedBadge = "[archived]"
)

func (m Model) View() string {
	if m.confirm.Active {
		return "\n" + m.confirm.View(m.th)
	}

	if m.step != stepIdle {
		return "\n" + m.renderCreateForm()
	}

	if m.help.ShowAll {
		return "\n" + m.help.View(m.keys)
	}

	header := m.th.Header.Render("catatan")
	if m.ctrl.Online() {
		header += " " + m.th.Faint.Render("(remote)")
	}

	sections := []string{
		header,
		m.renderTabs(),
		m.searchLine(),
		"",
		m.renderList(),
	}

	if m.errMsg != "" {
		sections = append(sections, m.th.Error.Render(m.errMsg))
	}
	if m.toasts.Active() {
		sections = append(sections, m.toasts.View(m.th))
	}
	sections = append(sections, m.help.View(m.keys))

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTabs draws the filter tabs with their live counts.
func (m Model) renderTabs() string {
	labels := map[models.Filter]string{
		models.FilterAll:      "All",
		models.FilterActive:   "Active",
		models.FilterArchived: "Archived",
		models.FilterPinned:   "Pinned",
	}

	var tabs []string
	for i, f := range models.Filters() {
		label := fmt.Sprintf("%d:%s (%d)", i+1, labels[f], m.view.Counts.Get(f))
		if f == m.ctrl.Filter() {
			tabs = append(tabs, m.th.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.th.TabIdle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

func (m Model) searchLine() string {
	if m.searchInput.Focused() || m.searchInput.Value() != "" {
		return m.searchInput.View()
	}
	return m.th.Faint.Render("/ to search")
}

// renderList draws the visible window of the note list.
func (m Model) renderList() string {
	if len(m.view.Notes) == 0 {
		if m.ctrl.Query() != "" {
			return m.th.Faint.Render("No notes match your search.")
		}
		return m.th.Faint.Render("No notes here yet. Press n to create one.")
	}

	var b strings.Builder
	vh := m.viewportHeight()
	end := m.scrollOffset + vh
	if end > len(m.view.Notes) {
		end = len(m.view.Notes)
	}

	for i := m.scrollOffset; i < end; i++ {
		n := m.view.Notes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = m.th.Highlight.Render("▶ ")
		}

		pin := "  "
		if n.Pinned {
			pin = m.th.Pinned.Render(pinGlyph) + " "
		}

		title := n.Title
		line := fmt.Sprintf("%s%s%s", cursor, pin, title)
		if n.Archived {
			line = m.th.Archived.Render(line + " " + archivedBadge)
		} else if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}

		meta := m.th.Faint.Render("  " + n.CreatedAt.Format("2006-01-02 15:04") + "  " + firstLine(n.Body, 48))

		b.WriteString(line)
		b.WriteString(meta)
		b.WriteString("\n")
	}

	if end < len(m.view.Notes) {
		b.WriteString(m.th.Faint.Render(fmt.Sprintf("… %d more", len(m.view.Notes)-end)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderCreateForm draws the two-step create flow.
func (m Model) renderCreateForm() string {
	header := m.th.Header.Render("New note")

	var body string
	switch m.step {
	case stepTitle:
		body = m.titleInput.View() + "\n" + m.th.Faint.Render("enter: next · esc: cancel")
	case stepBody:
		body = m.th.Faint.Render("Title: "+m.titleInput.Value()) + "\n" +
			m.bodyInput.View() + "\n" +
			m.th.Faint.Render("ctrl+s: save · esc: cancel")
	}

	sections := []string{header, "", body}
	if m.errMsg != "" {
		sections = append(sections, m.th.Error.Render(m.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// firstLine returns the first line of s truncated to max runes.
func firstLine(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return s
}
