package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// KeyMap holds the keyboard bindings of the timeline.
type KeyMap struct {
	Quit   key.Binding
	Cancel key.Binding
	Filter key.Binding
	Copy   key.Binding
	Reload key.Binding
	Help   key.Binding
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Cancel, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Filter, k.Cancel, k.Copy, k.Reload},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter rows"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy last move"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "earlier"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "later"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	LogKeyPress(msg)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.overlay.Toggle()

	case key.Matches(msg, m.keys.Cancel):
		if m.showHelp {
			m.showHelp = false
			m.overlay.Toggle()
			return m, nil
		}
		if res := m.machine.Cancel(); res.Outcome == drag.OutcomeCancelled {
			return m, statusCmd("Drag cancelled")
		}

	case key.Matches(msg, m.keys.Filter):
		m.cancelDrag("filter")
		m.filter = m.filter.Next()
		m.layout()
		return m, statusCmd(fmt.Sprintf("Showing %s rows", m.filter))

	case key.Matches(msg, m.keys.Copy):
		return m, commands.CopyToClipboard(m.journal.lastText)

	case key.Matches(msg, m.keys.Reload):
		if m.repo == nil {
			return m, statusCmd("Demo roster is held in memory")
		}
		if m.saving {
			return m, statusCmd("Still saving moves, try again")
		}
		m.cancelDrag("reload")
		m.loading = true
		return m, commands.LoadRoster(m.repo)

	case key.Matches(msg, m.keys.Left):
		m.grid = m.grid.Pan(-1)
	case key.Matches(msg, m.keys.Right):
		m.grid = m.grid.Pan(1)
	case key.Matches(msg, m.keys.Up):
		m.grid = m.grid.Scroll(-1, m.visibleRowCount())
	case key.Matches(msg, m.keys.Down):
		m.grid = m.grid.Scroll(1, m.visibleRowCount())
	}

	return m, nil
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return commands.StatusMsgCmd{Msg: text}
	}
}
