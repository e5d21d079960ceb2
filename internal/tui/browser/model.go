// Package browser is the interactive notes view: a filterable, searchable
// list over the application controller, with a create flow, a delete
// confirmation dialog, a toast queue, and light/dark theming. The browser
// holds no business state of its own; every mutation goes through the
// controller.
package browser

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"catatan/internal/tui/browser/components/confirm"
	"catatan/internal/tui/theme"
	"catatan/internal/tui/toast"
	"catatan/pkg/controller"
	"catatan/pkg/models"
)

// createStep tracks where the note creation flow is.
type createStep int

const (
	stepIdle createStep = iota
	stepTitle
	stepBody
)

// Model is the main model for the notes browser TUI.
type Model struct {
	ctrl *controller.Controller

	view         controller.View
	cursor       int
	cursorID     string // note under the cursor, followed across reflows
	scrollOffset int
	width        int
	height       int

	keys KeyMap
	help help.Model
	th   *theme.Theme

	searchInput textinput.Model

	// Note creation flow
	step       createStep
	titleInput textinput.Model
	bodyInput  textarea.Model

	confirm         confirm.Model
	pendingDeleteID string

	toasts toast.Model

	errMsg  string
	changes <-chan string // storage change notifications, nil when unavailable
}

// New builds the browser over an already-loaded controller.
func New(ctrl *controller.Controller, changes <-chan string) Model {
	search := textinput.New()
	search.Placeholder = "search title or body"
	search.Prompt = "/ "
	search.CharLimit = 120

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 120

	body := textarea.New()
	body.Placeholder = "body"
	body.SetHeight(5)

	m := Model{
		ctrl:        ctrl,
		keys:        keys,
		help:        help.New(),
		th:          theme.For(ctrl.Theme()),
		searchInput: search,
		titleInput:  title,
		bodyInput:   body,
		confirm:     confirm.New(),
		toasts:      toast.New(),
		changes:     changes,
	}
	m.view = ctrl.RecomputeView()
	return m
}

// Init starts listening for external storage changes.
func (m Model) Init() tea.Cmd {
	return watchChangesCmd(m.changes)
}

// selected returns the note under the cursor, nil when the list is empty.
func (m Model) selected() *models.Note {
	if m.cursor < 0 || m.cursor >= len(m.view.Notes) {
		return nil
	}
	return m.view.Notes[m.cursor]
}

// recompute refreshes the projection and keeps the cursor on the same note
// across reflows, using the view's position deltas as the hint.
func (m *Model) recompute() {
	m.view = m.ctrl.RecomputeView()

	if m.cursorID != "" {
		for i, n := range m.view.Notes {
			if n.ID == m.cursorID {
				m.cursor = i
				m.clampScroll()
				return
			}
		}
	}
	if m.cursor >= len(m.view.Notes) {
		m.cursor = len(m.view.Notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if n := m.selected(); n != nil {
		m.cursorID = n.ID
	} else {
		m.cursorID = ""
	}
	m.clampScroll()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.view.Notes) {
		m.cursor = len(m.view.Notes) - 1
	}
	if n := m.selected(); n != nil {
		m.cursorID = n.ID
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	vh := m.viewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+vh {
		m.scrollOffset = m.cursor - vh + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// viewportHeight is the row budget for the note list.
func (m Model) viewportHeight() int {
	// header + tabs + search + spacing + footer
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}
