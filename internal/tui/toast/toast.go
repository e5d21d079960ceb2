// Package toast shows transient feedback messages one at a time: intents
// push onto a FIFO queue and a single drain loop displays each entry for a
// fixed duration before moving on.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"catatan/internal/tui/theme"
)

// DefaultDuration is how long each toast stays visible.
const DefaultDuration = 2200 * time.Millisecond

// Variant picks the accent of a toast.
type Variant int

const (
	Info Variant = iota
	Success
	Warn
	Error
)

// Toast is one queued message.
type Toast struct {
	Message string
	Variant Variant
}

// expiredMsg ends the current toast. The generation guards against a stale
// tick dismissing a later toast.
type expiredMsg struct {
	gen int
}

// Model is the toast queue. Only one drain runs at a time: Push starts it
// when idle, and expiry ticks keep it going until the queue empties.
type Model struct {
	queue    []Toast
	current  *Toast
	draining bool
	gen      int
	duration time.Duration
}

// New returns an empty queue.
func New() Model {
	return Model{duration: DefaultDuration}
}

// Push enqueues a message and starts the drain loop if it is idle.
func (m Model) Push(message string, v Variant) (Model, tea.Cmd) {
	m.queue = append(m.queue, Toast{Message: message, Variant: v})
	if m.draining {
		return m, nil
	}
	m.draining = true
	return m.next()
}

// Update consumes expiry ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	exp, ok := msg.(expiredMsg)
	if !ok || exp.gen != m.gen {
		return m, nil
	}
	if len(m.queue) == 0 {
		m.current = nil
		m.draining = false
		return m, nil
	}
	return m.next()
}

// next shows the head of the queue and schedules its expiry.
func (m Model) next() (Model, tea.Cmd) {
	head := m.queue[0]
	m.queue = m.queue[1:]
	m.current = &head
	m.gen++
	gen := m.gen
	return m, tea.Tick(m.duration, func(time.Time) tea.Msg {
		return expiredMsg{gen: gen}
	})
}

// Active reports whether a toast is on screen.
func (m Model) Active() bool {
	return m.current != nil
}

// Pending returns how many messages wait behind the current one.
func (m Model) Pending() int {
	return len(m.queue)
}

// Current returns the visible toast, or nil.
func (m Model) Current() *Toast {
	return m.current
}

// View renders the visible toast, empty when none is showing.
func (m Model) View(th *theme.Theme) string {
	if m.current == nil {
		return ""
	}
	var accent lipgloss.Style
	switch m.current.Variant {
	case Success:
		accent = th.Success
	case Warn:
		accent = th.Warning
	case Error:
		accent = th.Error
	default:
		accent = th.Info
	}
	bar := accent.Render("▎")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 1).
		Render(bar + " " + m.current.Message)
}
