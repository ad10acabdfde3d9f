// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/visit"
)

// RosterLoadedMsg is sent when the roster has been read from the repository.
type RosterLoadedMsg struct {
	Rows []*visit.StaffRow
}

// MoveSavedMsg is sent when a committed move has been persisted.
type MoveSavedMsg struct {
	Move visit.Move
}

// MoveFailedMsg is sent when a committed move could not be persisted. The
// in-memory roster is then ahead of the repository.
type MoveFailedMsg struct {
	Move visit.Move
	Err  error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ToastExpiredMsg is sent when a commit notification's time is up.
type ToastExpiredMsg struct {
	Seq int
}

// NowTickMsg is sent when the current-time marker should be refreshed.
type NowTickMsg struct {
	At time.Time
}

// LoadRoster reads the roster from the repository.
func LoadRoster(repo visit.Repository) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: errors.New("no repository configured")}
		}
		rows, err := repo.LoadRoster(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RosterLoadedMsg{Rows: rows}
	}
}

// SaveMove persists a committed move. A nil repository means the roster is
// in memory only and the move is acknowledged immediately.
func SaveMove(repo visit.Repository, m visit.Move) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return MoveSavedMsg{Move: m}
		}
		if err := repo.RecordMove(context.Background(), m); err != nil {
			return MoveFailedMsg{Move: m, Err: err}
		}
		return MoveSavedMsg{Move: m}
	}
}

// ExpireToast fires after d to dismiss notification seq.
func ExpireToast(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

// TickNow schedules the next current-time refresh.
func TickNow(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return NowTickMsg{At: t}
	})
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return StatusMsgCmd{Msg: "Nothing to copy"}
		}
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsgCmd{Msg: "Copied last move"}
	}
}
