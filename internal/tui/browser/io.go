package browser

import (
	tea "github.com/charmbracelet/bubbletea"
)

// storageChangedMsg reports that another process wrote one of the persisted
// keys; the browser reloads and re-renders, last writer wins.
type storageChangedMsg struct {
	key string
}

// watchClosedMsg reports that the change channel ended (shutdown).
type watchClosedMsg struct{}

// watchChangesCmd forwards one storage change notification as a message.
// The update loop re-issues it after each receipt.
func watchChangesCmd(changes <-chan string) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		key, ok := <-changes
		if !ok {
			return watchClosedMsg{}
		}
		return storageChangedMsg{key: key}
	}
}
