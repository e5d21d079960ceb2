package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"catatan/internal/tui/browser/components/confirm"
	"catatan/internal/tui/theme"
	"catatan/internal/tui/toast"
	"catatan/pkg/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The toast queue consumes its own expiry ticks regardless of mode.
	var toastCmd tea.Cmd
	m.toasts, toastCmd = m.toasts.Update(msg)
	if toastCmd != nil {
		cmds = append(cmds, toastCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.bodyInput.SetWidth(min(msg.Width-4, 80))
		m.clampScroll()
		return m, tea.Batch(cmds...)

	case storageChangedMsg:
		switch msg.key {
		case "notes.json", "pinned.json", "seeded":
			if err := m.ctrl.ReloadNotes(); err != nil {
				m.errMsg = fmt.Sprintf("reload failed: %v", err)
			} else {
				m.recompute()
			}
		case "theme":
			m.th = theme.For(m.ctrl.ReloadTheme())
		}
		cmds = append(cmds, watchChangesCmd(m.changes))
		return m, tea.Batch(cmds...)

	case watchClosedMsg:
		return m, tea.Batch(cmds...)

	case confirm.ConfirmedMsg:
		id := m.pendingDeleteID
		m.pendingDeleteID = ""
		deleted, err := m.ctrl.DeleteNote(context.Background(), id)
		switch {
		case err != nil:
			m.toasts, toastCmd = m.toasts.Push(fmt.Sprintf("Delete failed: %v", err), toast.Error)
		case deleted:
			m.recompute()
			m.toasts, toastCmd = m.toasts.Push("Note deleted", toast.Success)
		default:
			// Already gone, e.g. a duplicate delete intent.
			m.recompute()
		}
		if toastCmd != nil {
			cmds = append(cmds, toastCmd)
		}
		return m, tea.Batch(cmds...)

	case confirm.CancelledMsg:
		m.pendingDeleteID = ""
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.confirm.Active {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			cmds = append(cmds, cmd)
			return m, tea.Batch(cmds...)
		}

		if m.step != stepIdle {
			cmd := m.updateCreateFlow(msg)
			cmds = append(cmds, cmd)
			return m, tea.Batch(cmds...)
		}

		if m.searchInput.Focused() {
			switch {
			case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Confirm):
				m.searchInput.Blur()
			default:
				var cmd tea.Cmd
				m.searchInput, cmd = m.searchInput.Update(msg)
				cmds = append(cmds, cmd)
				m.ctrl.SetQuery(m.searchInput.Value())
				m.recompute()
			}
			return m, tea.Batch(cmds...)
		}

		if m.help.ShowAll {
			m.help.ShowAll = false
			return m, tea.Batch(cmds...)
		}

		cmd := m.handleBrowseKey(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	return m, tea.Batch(cmds...)
}

// handleBrowseKey reconciles a browse-mode keypress into a state mutation.
func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	var toastCmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.GoToTop):
		m.moveCursor(-len(m.view.Notes))

	case key.Matches(msg, m.keys.GoToBottom):
		m.moveCursor(len(m.view.Notes))

	case key.Matches(msg, m.keys.NextFilter):
		m.ctrl.SetFilter(nextFilter(m.ctrl.Filter()))
		m.recompute()

	case key.Matches(msg, m.keys.Search):
		m.searchInput.Focus()

	case key.Matches(msg, m.keys.New):
		m.step = stepTitle
		m.errMsg = ""
		m.titleInput.SetValue("")
		m.bodyInput.SetValue("")
		m.titleInput.Focus()

	case key.Matches(msg, m.keys.Pin):
		if n := m.selected(); n != nil {
			m.ctrl.TogglePin(n.ID, !n.Pinned)
			m.recompute()
			if n.Pinned {
				m.toasts, toastCmd = m.toasts.Push("Note pinned", toast.Success)
			} else {
				m.toasts, toastCmd = m.toasts.Push("Note unpinned", toast.Info)
			}
		}

	case key.Matches(msg, m.keys.Archive):
		if n := m.selected(); n != nil {
			wasArchived := n.Archived
			if err := m.ctrl.SetArchived(context.Background(), n.ID, !wasArchived); err != nil {
				m.toasts, toastCmd = m.toasts.Push(archiveErrMessage(err, !wasArchived), toast.Error)
			} else {
				m.recompute()
				if wasArchived {
					m.toasts, toastCmd = m.toasts.Push("Note unarchived", toast.Success)
				} else {
					m.toasts, toastCmd = m.toasts.Push("Note archived", toast.Success)
				}
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if n := m.selected(); n != nil {
			m.pendingDeleteID = n.ID
			title := strings.TrimSpace(n.Title)
			m.confirm.Activate(fmt.Sprintf("Delete note %q? This cannot be undone.", title))
		}

	case key.Matches(msg, m.keys.ThemeToggle):
		m.th = theme.For(m.ctrl.ToggleTheme())

	default:
		// Direct filter selection on 1-4, mirroring the toolbar tabs.
		if idx := filterIndex(msg.String()); idx >= 0 {
			m.ctrl.SetFilter(models.Filters()[idx])
			m.recompute()
		}
	}

	return toastCmd
}

// updateCreateFlow advances the two-step note creation form.
func (m *Model) updateCreateFlow(msg tea.KeyMsg) tea.Cmd {
	switch m.step {
	case stepTitle:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.step = stepIdle
			m.titleInput.Blur()
		case key.Matches(msg, m.keys.Confirm):
			if strings.TrimSpace(m.titleInput.Value()) == "" {
				m.errMsg = "title must not be empty"
				return nil
			}
			m.errMsg = ""
			m.step = stepBody
			m.titleInput.Blur()
			return m.bodyInput.Focus()
		default:
			var cmd tea.Cmd
			m.titleInput, cmd = m.titleInput.Update(msg)
			return cmd
		}

	case stepBody:
		switch msg.String() {
		case "esc":
			m.step = stepIdle
			m.bodyInput.Blur()
		case "ctrl+s", "ctrl+d":
			note, err := m.ctrl.CreateNote(context.Background(), m.titleInput.Value(), m.bodyInput.Value())
			if err != nil {
				if errors.Is(err, models.ErrValidation) {
					m.errMsg = err.Error()
					return nil
				}
				m.step = stepIdle
				m.bodyInput.Blur()
				var cmd tea.Cmd
				m.toasts, cmd = m.toasts.Push(fmt.Sprintf("Create failed: %v", err), toast.Error)
				return cmd
			}
			m.step = stepIdle
			m.errMsg = ""
			m.bodyInput.Blur()
			m.cursorID = note.ID
			m.recompute()
			var cmd tea.Cmd
			m.toasts, cmd = m.toasts.Push("Note created", toast.Success)
			return cmd
		default:
			var cmd tea.Cmd
			m.bodyInput, cmd = m.bodyInput.Update(msg)
			return cmd
		}
	}
	return nil
}

func nextFilter(f models.Filter) models.Filter {
	all := models.Filters()
	for i, cur := range all {
		if cur == f {
			return all[(i+1)%len(all)]
		}
	}
	return models.FilterAll
}

func filterIndex(keyStr string) int {
	switch keyStr {
	case "1":
		return 0
	case "2":
		return 1
	case "3":
		return 2
	case "4":
		return 3
	}
	return -1
}

func archiveErrMessage(err error, archiving bool) string {
	verb := "Archive"
	if !archiving {
		verb = "Unarchive"
	}
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Sprintf("%s failed: note not found on server", verb)
	}
	return fmt.Sprintf("%s failed: %v", verb, err)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
