package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/logger"
)

// LogKeyPress logs a keystroke at debug level.
func LogKeyPress(msg tea.KeyMsg) {
	logger.Debug("key press", "key", msg.String())
}

// LogMouse logs a mouse event together with the pixel it maps to.
// Motion without an open interaction is not logged.
func LogMouse(msg tea.MouseMsg, p drag.Point, phase drag.Phase) {
	if msg.Action == tea.MouseActionMotion && phase == drag.PhaseIdle {
		return
	}
	logger.Debug("mouse",
		"event", msg.String(),
		"x", msg.X, "y", msg.Y,
		"px", p.X, "py", p.Y,
		"phase", phase.String(),
	)
}

// LogOutcome logs how a pointer interaction ended.
func LogOutcome(res drag.Result) {
	if res.Outcome == drag.OutcomeCommitted {
		logger.Info("visit moved",
			"visit", res.Move.VisitID,
			"from", res.Move.FromRowID,
			"to", res.Move.ToRowID,
			"start", res.Move.StartHour,
		)
		return
	}
	logger.Debug("interaction ended", "outcome", res.Outcome.String())
}
