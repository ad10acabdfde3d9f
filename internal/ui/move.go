package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/timeaxis"
	"github.com/javiermolinar/rota/internal/visit"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		toRow string
		at    string
	)

	cmd := &cobra.Command{
		Use:   "move <visit-id>",
		Short: "Move a visit to another row or time",
		Long: `Move a visit without the TUI, the same way a drag does.

The start time is clamped to the day and snapped to the quarter hour.
Without --at the visit keeps its start time.`,
		Example: `  rota move 3f2a... --to staff-ben
  rota move 3f2a... --to unallocated --at 14:10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toRow == "" {
				return fmt.Errorf("--to is required")
			}
			store, err := a.loadStore()
			if err != nil {
				return err
			}

			v, _, ok := store.FindVisit(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", visit.ErrVisitNotFound, args[0])
			}
			hour := v.StartHour
			if at != "" {
				h, err := timeaxis.ParseHour(at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				hour = timeaxis.Snap(timeaxis.Clamp(h))
			}

			mv, err := store.MoveVisit(args[0], toRow, hour)
			if err != nil {
				return err
			}
			if err := a.repo.RecordMove(context.Background(), mv); err != nil {
				return fmt.Errorf("saving move: %w", err)
			}

			rowName := mv.ToRowID
			if r, ok := store.Row(mv.ToRowID); ok {
				rowName = r.Name
			}
			msg := fmt.Sprintf("Moved %s to %s at %s", v.Subject, rowName, timeaxis.FormatHour(mv.StartHour))
			fmt.Fprintln(cmd.OutOrStdout(), formatOK(msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&toRow, "to", "", "Destination row id")
	cmd.Flags().StringVar(&at, "at", "", "New start time (HH:MM)")

	return cmd
}

func (a *App) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent moves, newest first",
		Example: `  rota history
  rota history --limit=5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			moves, err := repo.ListMoves(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("listing moves: %w", err)
			}
			if len(moves) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No moves recorded yet.")
				return nil
			}
			printHistory(cmd.OutOrStdout(), moves)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of moves to show (0 for all)")

	return cmd
}

func printHistory(out io.Writer, moves []visit.Move) {
	for _, m := range moves {
		rows := m.ToRowID
		if m.ChangedRow() {
			rows = m.FromRowID + " → " + m.ToRowID
		}
		fmt.Fprintf(out, "%s  %s  %s  %s → %s\n",
			formatMuted(m.MovedAt.Local().Format("2006-01-02 15:04")),
			m.VisitID,
			rows,
			timeaxis.FormatHour(m.FromHour),
			timeaxis.FormatHour(m.StartHour),
		)
	}
}
