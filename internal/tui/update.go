package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/logger"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case commands.RosterLoadedMsg:
		m.cancelDrag("roster reloaded")
		m.loading = false
		if err := m.store.Load(msg.Rows); err != nil {
			return m.showError(fmt.Errorf("loading roster: %w", err))
		}
		m.err = nil
		m.layout()
		logger.Debug("roster loaded", "rows", m.store.Len())
		return m, nil

	case commands.MoveSavedMsg:
		logger.Debug("move saved", "visit", msg.Move.VisitID, "row", msg.Move.ToRowID)
		m.saving = false
		return m, m.nextSave()

	case commands.MoveFailedMsg:
		logger.Error("saving move", "visit", msg.Move.VisitID, "err", msg.Err, "dropped", len(m.saves))
		// Queued moves were made on top of the failed one; the reload
		// replaces them with what the repository holds.
		m.saving = false
		m.saves = nil
		var cmd tea.Cmd
		m, cmd = m.showError(fmt.Errorf("saving move: %w", msg.Err))
		// Re-read the repository so the screen matches what was stored.
		m.cancelDrag("save failed")
		m.loading = true
		return m, tea.Batch(cmd, commands.LoadRoster(m.repo))

	case commands.ErrMsg:
		m.loading = false
		return m.showError(msg.Err)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.ToastExpiredMsg:
		m.toast.Expire(msg.Seq)
		return m, nil

	case commands.NowTickMsg:
		m.now.Refresh()
		return m, commands.TickNow(m.now.Interval())
	}

	return m, nil
}

func (m Model) showError(err error) (Model, tea.Cmd) {
	m.err = err
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusTime = time.Now().Add(5 * time.Second)
	return m, tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
