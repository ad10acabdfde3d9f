package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/logger"
	"github.com/javiermolinar/rota/internal/timeaxis"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// handleMouseMsg feeds pointer events to the drag machine.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (Model, tea.Cmd) {
	p, inside := m.grid.Point(msg.X, msg.Y)
	LogMouse(msg, p, m.machine.State().Phase)

	if m.showHelp {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !inside || m.loading {
				return m, nil
			}
			block, ok := m.frame().HitTest(p)
			if !ok {
				return m, nil
			}
			if err := m.machine.Press(block.Visit.ID, p, block.Rect); err != nil {
				logger.Warn("press ignored", "err", err)
			}
		case tea.MouseButtonWheelUp:
			m.grid = m.grid.Scroll(-1, m.visibleRowCount())
		case tea.MouseButtonWheelDown:
			m.grid = m.grid.Scroll(1, m.visibleRowCount())
		case tea.MouseButtonWheelLeft:
			m.grid = m.grid.Pan(-1)
		case tea.MouseButtonWheelRight:
			m.grid = m.grid.Pan(1)
		}

	case tea.MouseActionMotion:
		if m.machine.State().Active() {
			m.machine.Move(p)
		}

	case tea.MouseActionRelease:
		visitID := m.machine.State().VisitID
		if !inside && m.machine.State().Dragging() {
			LogOutcome(m.machine.Cancel())
			return m, statusCmd("Dropped outside the timeline, visit left in place")
		}
		res := m.machine.Release(p)
		if res.Outcome != drag.OutcomeNone {
			LogOutcome(res)
		}
		return m.afterRelease(res, visitID)
	}

	return m, nil
}

// afterRelease turns the end of an interaction into follow-up commands.
func (m Model) afterRelease(res drag.Result, visitID string) (Model, tea.Cmd) {
	switch res.Outcome {
	case drag.OutcomeCommitted:
		m.saves = append(m.saves, m.journal.drain()...)
		return m, tea.Batch(m.nextSave(), commands.ExpireToast(m.toast.Seq(), m.toast.Duration()))

	case drag.OutcomeClick:
		return m, statusCmd(m.describeVisit(visitID))

	case drag.OutcomeInvalidTarget:
		return m, statusCmd("No row there, visit left in place")

	case drag.OutcomeVisitGone:
		return m, statusCmd("Visit no longer exists")
	}
	return m, nil
}

// nextSave starts storing the oldest queued move unless a save is already
// running.
func (m *Model) nextSave() tea.Cmd {
	if m.saving || len(m.saves) == 0 {
		return nil
	}
	mv := m.saves[0]
	m.saves = m.saves[1:]
	m.saving = true
	return commands.SaveMove(m.repo, mv)
}

// describeVisit summarizes a visit for the status line.
func (m Model) describeVisit(visitID string) string {
	v, rowID, ok := m.store.FindVisit(visitID)
	if !ok {
		return "Visit no longer exists"
	}
	parts := []string{}
	if v.Subject != "" {
		parts = append(parts, v.Subject)
	}
	parts = append(parts, timeaxis.FormatRange(v.StartHour, v.DurationHours))
	if v.Category != "" {
		parts = append(parts, string(v.Category))
	}
	if v.Status != "" {
		parts = append(parts, string(v.Status))
	}
	if r, ok := m.store.Row(rowID); ok {
		if r.IsUnallocated() {
			parts = append(parts, "unallocated")
		} else {
			parts = append(parts, fmt.Sprintf("with %s", r.Name))
		}
	}
	return strings.Join(parts, " · ")
}
