// Package tui provides the terminal user interface for rota.
package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/logger"
	"github.com/javiermolinar/rota/internal/notify"
	"github.com/javiermolinar/rota/internal/nowline"
	"github.com/javiermolinar/rota/internal/schedule"
	"github.com/javiermolinar/rota/internal/timeaxis"
	"github.com/javiermolinar/rota/internal/timeline"
	"github.com/javiermolinar/rota/internal/tui/commands"
	"github.com/javiermolinar/rota/internal/tui/theme"
	"github.com/javiermolinar/rota/internal/visit"
)

// Screen layout, in terminal cells.
const (
	gutterWidth = 16 // staff names
	headerLines = 2  // title and hour ruler
	footerLines = 2  // status and key help
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   visit.Repository
	config *config.Config
	clock  nowline.Clock

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   KeyMap
	help   help.Model

	// Timeline state
	store   *schedule.Store
	machine *drag.Machine
	toast   *notify.Toast
	now     *nowline.Indicator
	journal *moveJournal
	filter  schedule.Filter
	grid    Grid

	// Committed moves waiting to be stored. One save is in flight at a time
	// so the repository sees moves in commit order.
	saves  []visit.Move
	saving bool

	roster  []*visit.StaffRow // preloaded rows, nil when reading from repo
	loading bool

	// Overlay state
	showHelp bool
	overlay  OverlayModel

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithRoster starts the model on rows instead of reading the repository.
func WithRoster(rows []*visit.StaffRow) ModelOption {
	return func(m *Model) {
		m.roster = rows
	}
}

// WithClock sets the clock used for the current-time marker and move
// timestamps.
func WithClock(c nowline.Clock) ModelOption {
	return func(m *Model) {
		m.clock = c
	}
}

// moveJournal collects what the drag machine reports on commit until the
// update loop turns it into commands.
type moveJournal struct {
	toast    *notify.Toast
	pending  []visit.Move
	lastText string
}

func (j *moveJournal) record(mv visit.Move) {
	j.pending = append(j.pending, mv)
}

// Notify implements drag.Notifier.
func (j *moveJournal) Notify(text string) {
	j.lastText = text
	j.toast.Notify(text)
}

func (j *moveJournal) drain() []visit.Move {
	moves := j.pending
	j.pending = nil
	return moves
}

// New creates a new TUI model.
func New(repo visit.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	m := &Model{
		repo:    repo,
		config:  cfg,
		clock:   nowline.SystemClock{},
		theme:   t,
		styles:  styles,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		filter:  cfg.FilterValue(),
		overlay: NewOverlayModel(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.overlay.SetBackground(styles.HelpBoxColor)

	geometry := drag.Config{
		Scale:     timeaxis.NewScale(cfg.Timeline.PixelsPerHour),
		RowHeight: cfg.Timeline.RowHeight,
		Threshold: cfg.Timeline.DragThreshold,
	}

	store, err := schedule.New(m.roster)
	if err != nil {
		logger.Warn("discarding initial roster", "err", err)
		m.err = err
		store, _ = schedule.New(nil)
	}
	store.SetNow(m.clock.Now)
	m.store = store

	m.toast = notify.New(cfg.NotifyDuration())
	m.toast.SetNow(m.clock.Now)
	m.journal = &moveJournal{toast: m.toast}
	m.machine = drag.New(store, geometry,
		drag.WithOnCommit(m.journal.record),
		drag.WithNotifier(m.journal),
	)
	m.now = nowline.New(m.clock, geometry.Scale, cfg.ClockInterval())

	viewStart, _ := cfg.ViewHours()
	m.grid = Grid{
		Scale:        geometry.Scale,
		RowHeight:    geometry.RowHeight,
		CellsPerHour: cfg.UI.CellsPerHour,
		RowLines:     cfg.UI.RowLines,
		Gutter:       gutterWidth,
		Top:          headerLines,
		ViewStart:    viewStart,
	}
	m.loading = repo != nil && m.roster == nil
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{commands.TickNow(m.now.Interval())}
	if m.loading {
		cmds = append(cmds, commands.LoadRoster(m.repo))
	}
	return tea.Batch(cmds...)
}

// Run starts the TUI. With a nil repo the roster must come from WithRoster
// and moves are kept in memory only.
func Run(repo visit.Repository, cfg *config.Config, opts ...ModelOption) error {
	m := New(repo, cfg, opts...)
	p := tea.NewProgram(*m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// cancelDrag abandons any open interaction, e.g. before the rows under it
// change.
func (m *Model) cancelDrag(reason string) {
	if res := m.machine.Cancel(); res.Outcome == drag.OutcomeCancelled {
		logger.Debug("drag cancelled", "reason", reason)
	}
}

// layout sizes the timeline area to the terminal.
func (m *Model) layout() {
	g := m.grid
	start, end := m.config.ViewHours()
	want := int(math.Ceil((end - start) * float64(g.CellsPerHour)))
	g.Cols = max(min(m.width-gutterWidth, want), 0)
	g.Lines = max(m.height-headerLines-footerLines, 0)
	if g.Cols > 0 {
		g.ViewStart = g.clampStart(g.ViewStart)
	}
	if g.RowLines > 0 {
		g.RowOffset = g.clampOffset(g.RowOffset, m.visibleRowCount())
	}
	m.grid = g
	m.help.Width = m.width
}

// visibleRowCount is the number of rows the current filter displays.
func (m Model) visibleRowCount() int {
	return len(m.store.Visible(m.filter))
}

// frame builds the shapes to draw for the current state.
func (m Model) frame() timeline.Frame {
	return timeline.Build(m.store, m.machine.State(), timeline.Options{
		Geometry:      m.machine.Config(),
		MinBlockWidth: m.config.Timeline.MinBlockWidth,
		Filter:        m.filter,
		NowHour:       m.now.Hour(),
		ShowNow:       true,
	})
}
