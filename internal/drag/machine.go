// Package drag implements the pointer interaction that moves visits across
// the timeline: press, threshold promotion, live row retargeting, and
// commit-or-cancel on release.
package drag

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/rota/internal/logger"
	"github.com/javiermolinar/rota/internal/schedule"
	"github.com/javiermolinar/rota/internal/timeaxis"
	"github.com/javiermolinar/rota/internal/visit"
)

const (
	// DefaultRowHeight is the pixel height of one staff row.
	DefaultRowHeight = 80
	// DefaultThreshold is how far the pointer must travel before a press
	// becomes a drag.
	DefaultThreshold = 5
)

// Config holds the geometry the machine works in.
type Config struct {
	Scale     timeaxis.Scale
	RowHeight float64
	Threshold float64
}

// DefaultConfig returns the standard timeline geometry.
func DefaultConfig() Config {
	return Config{
		Scale:     timeaxis.NewScale(timeaxis.DefaultPixelsPerHour),
		RowHeight: DefaultRowHeight,
		Threshold: DefaultThreshold,
	}
}

// Outcome classifies how an interaction ended.
type Outcome int

const (
	OutcomeNone          Outcome = iota // release with no interaction open
	OutcomeClick                        // released before the threshold
	OutcomeCommitted                    // visit relocated
	OutcomeInvalidTarget                // destination row missing, nothing changed
	OutcomeVisitGone                    // visit vanished mid-drag, nothing changed
	OutcomeCancelled                    // aborted by the host
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClick:
		return "click"
	case OutcomeCommitted:
		return "committed"
	case OutcomeInvalidTarget:
		return "invalid-target"
	case OutcomeVisitGone:
		return "visit-gone"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Result reports the end of an interaction.
type Result struct {
	Outcome Outcome
	Move    visit.Move // set only when Outcome is OutcomeCommitted
}

// Notifier surfaces a short-lived acknowledgment to the user.
type Notifier interface {
	Notify(text string)
}

// Machine drives a single pointer interaction against a schedule store.
type Machine struct {
	cfg      Config
	store    *schedule.Store
	state    State
	onCommit func(visit.Move)
	notifier Notifier
}

// Option configures optional machine behavior.
type Option func(*Machine)

// WithOnCommit registers a callback fired once per committed move.
func WithOnCommit(fn func(visit.Move)) Option {
	return func(m *Machine) {
		m.onCommit = fn
	}
}

// WithNotifier sets where success acknowledgments are sent.
func WithNotifier(n Notifier) Option {
	return func(m *Machine) {
		m.notifier = n
	}
}

// New creates an idle machine for store.
func New(store *schedule.Store, cfg Config, opts ...Option) *Machine {
	if cfg.Scale.PixelsPerHour <= 0 {
		cfg.Scale = timeaxis.NewScale(0)
	}
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = DefaultRowHeight
	}
	if cfg.Threshold < 0 {
		cfg.Threshold = DefaultThreshold
	}
	m := &Machine{cfg: cfg, store: store}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the machine geometry.
func (m *Machine) Config() Config {
	return m.cfg
}

// State returns the current interaction state.
func (m *Machine) State() State {
	return m.state
}

// Press starts an interaction on a visit block. block is the on-screen
// bounds of the block at press time.
// A press while another interaction is open discards the stale one without
// mutating the store.
func (m *Machine) Press(visitID string, pointer Point, block Rect) error {
	v, rowID, found := m.store.FindVisit(visitID)
	if !found {
		return fmt.Errorf("press: %w: %s", visit.ErrVisitNotFound, visitID)
	}
	if m.state.Active() {
		logger.Debug("drag discarded", "visit", m.state.VisitID, "phase", m.state.Phase)
	}
	m.state = pressed(v.ID, rowID, v.StartHour, v.DurationHours, pointer, block)
	logger.Debug("drag pressed", "visit", v.ID, "row", rowID)
	return nil
}

// Move tracks the pointer and returns the updated state.
func (m *Machine) Move(pointer Point) State {
	prev := m.state.Phase
	m.state = m.state.moved(pointer, m.cfg, m.store.RowIDs())
	if prev == PhasePressed && m.state.Phase == PhaseDragging {
		logger.Debug("drag promoted", "visit", m.state.VisitID)
	}
	return m.state
}

// Release ends the interaction at pointer. The machine is idle afterwards
// whatever the outcome.
func (m *Machine) Release(pointer Point) Result {
	final := m.state.moved(pointer, m.cfg, m.store.RowIDs())
	m.state = State{}

	switch final.Phase {
	case PhaseIdle:
		return Result{Outcome: OutcomeNone}
	case PhasePressed:
		return Result{Outcome: OutcomeClick}
	}
	return m.commit(final)
}

// Cancel abandons any open interaction without touching the store.
func (m *Machine) Cancel() Result {
	if !m.state.Active() {
		return Result{Outcome: OutcomeNone}
	}
	logger.Debug("drag cancelled", "visit", m.state.VisitID)
	m.state = State{}
	return Result{Outcome: OutcomeCancelled}
}

func (m *Machine) commit(s State) Result {
	if s.TargetRowID == "" {
		logger.Debug("drag dropped without target", "visit", s.VisitID)
		return Result{Outcome: OutcomeInvalidTarget}
	}

	hour := s.ProposedHour(m.cfg.Scale)
	mv, err := m.store.MoveVisit(s.VisitID, s.TargetRowID, hour)
	switch {
	case errors.Is(err, visit.ErrRowNotFound):
		logger.Debug("drag target vanished", "visit", s.VisitID, "row", s.TargetRowID)
		return Result{Outcome: OutcomeInvalidTarget}
	case errors.Is(err, visit.ErrVisitNotFound):
		logger.Debug("dragged visit vanished", "visit", s.VisitID)
		return Result{Outcome: OutcomeVisitGone}
	case err != nil:
		logger.Warn("drag commit failed", "visit", s.VisitID, "err", err)
		return Result{Outcome: OutcomeInvalidTarget}
	}

	logger.Debug("drag committed", "visit", mv.VisitID, "from", mv.FromRowID, "to", mv.ToRowID, "start", hour)
	if m.onCommit != nil {
		m.onCommit(mv)
	}
	if m.notifier != nil {
		m.notifier.Notify(m.describe(mv))
	}
	return Result{Outcome: OutcomeCommitted, Move: mv}
}

// describe renders the success acknowledgment for a move.
func (m *Machine) describe(mv visit.Move) string {
	subject := mv.VisitID
	if v, _, ok := m.store.FindVisit(mv.VisitID); ok && v.Subject != "" {
		subject = v.Subject
	}
	rowName := mv.ToRowID
	if r, ok := m.store.Row(mv.ToRowID); ok && r.Name != "" {
		rowName = r.Name
	}
	return fmt.Sprintf("Moved %s to %s at %s", subject, rowName, timeaxis.FormatHour(mv.StartHour))
}
