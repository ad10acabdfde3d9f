package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/demo"
	"github.com/javiermolinar/rota/internal/schedule"
	"github.com/javiermolinar/rota/internal/timeaxis"
	"github.com/javiermolinar/rota/internal/visit"
)

func (a *App) seedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo roster into the database",
		Long: `Replace the stored roster with the built-in demo roster.

The move history is kept. Without --force, seeding refuses to overwrite a
database that already holds staff rows.`,
		Example: `  rota seed
  rota seed --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			ctx := context.Background()

			existing, err := repo.LoadRoster(ctx)
			if err != nil {
				return fmt.Errorf("loading roster: %w", err)
			}
			if len(existing) > 0 && !force {
				return fmt.Errorf("database already holds %d staff rows; use --force to replace them", len(existing))
			}

			rows := demo.Roster()
			if err := repo.SaveRoster(ctx, rows); err != nil {
				return fmt.Errorf("saving roster: %w", err)
			}

			visits := 0
			for _, r := range rows {
				visits += len(r.Visits)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatOK(fmt.Sprintf("Seeded %d rows and %d visits", len(rows), visits)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing roster")

	return cmd
}

func (a *App) rosterCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Print the stored roster",
		Example: `  rota roster
  rota roster --filter=unallocated`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := schedule.ParseFilter(filter)
			if err != nil {
				return err
			}
			store, err := a.loadStore()
			if err != nil {
				return err
			}

			rows := store.Visible(f)
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No staff rows. Run 'rota seed' to load the demo roster.")
				return nil
			}
			printRoster(cmd.OutOrStdout(), rows, termWidth())
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "Rows to show: all, unallocated, assigned")

	return cmd
}

// loadStore reads the repository into a schedule store.
func (a *App) loadStore() (*schedule.Store, error) {
	repo, err := a.repository()
	if err != nil {
		return nil, err
	}
	rows, err := repo.LoadRoster(context.Background())
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	store, err := schedule.New(rows)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	return store, nil
}

func printRoster(out io.Writer, rows []*visit.StaffRow, width int) {
	for i, r := range rows {
		if i > 0 {
			fmt.Fprintln(out)
		}
		name := formatHeader(r.Name)
		if r.IsUnallocated() {
			name = formatPool(r.Name)
		}
		fmt.Fprintf(out, "%s %s\n", name, formatMuted("("+r.ID+")"))

		if len(r.Visits) == 0 {
			fmt.Fprintf(out, "  %s\n", formatMuted("no visits"))
			continue
		}
		for _, v := range r.Visits {
			line := fmt.Sprintf("  %s %s  %s  %s %s",
				statusSymbol(v.Status),
				timeaxis.FormatRange(v.StartHour, v.DurationHours),
				v.Subject,
				formatCategory(v.Category),
				formatMuted(v.ID),
			)
			fmt.Fprintln(out, ansi.Truncate(line, width, "…"))
		}
	}
	fmt.Fprintln(out, formatMuted(strings.Repeat("─", min(width, 40))))
	fmt.Fprintln(out, formatMuted("○ scheduled  ◐ in progress  ● completed"))
}
