package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  rota config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Run: func(cmd *cobra.Command, _ []string) {
			printConfig(cmd.OutOrStdout(), a.config)
		},
	})

	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Timeline.ViewStart = promptValue(reader, out, "View start", cfg.Timeline.ViewStart)
	cfg.Timeline.ViewEnd = promptValue(reader, out, "View end", cfg.Timeline.ViewEnd)
	cfg.Timeline.DragThreshold = promptFloat(reader, out, "Drag threshold (px)", cfg.Timeline.DragThreshold)
	cfg.Notify.DurationMS = promptInt(reader, out, "Notification duration (ms)", cfg.Notify.DurationMS)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Filter = promptValue(reader, out, "Row filter (all, unallocated, assigned)", cfg.UI.Filter)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[timeline]")
	fmt.Fprintf(out, "  pixels_per_hour  = %g\n", cfg.Timeline.PixelsPerHour)
	fmt.Fprintf(out, "  row_height       = %g\n", cfg.Timeline.RowHeight)
	fmt.Fprintf(out, "  drag_threshold   = %g\n", cfg.Timeline.DragThreshold)
	fmt.Fprintf(out, "  min_block_width  = %g\n", cfg.Timeline.MinBlockWidth)
	fmt.Fprintf(out, "  view_start       = %s\n", cfg.Timeline.ViewStart)
	fmt.Fprintf(out, "  view_end         = %s\n", cfg.Timeline.ViewEnd)
	fmt.Fprintln(out, "\n[notify]")
	fmt.Fprintf(out, "  duration_ms      = %d\n", cfg.Notify.DurationMS)
	fmt.Fprintln(out, "\n[clock]")
	fmt.Fprintf(out, "  refresh_seconds  = %d\n", cfg.Clock.RefreshSeconds)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  cells_per_hour   = %d\n", cfg.UI.CellsPerHour)
	fmt.Fprintf(out, "  row_lines        = %d\n", cfg.UI.RowLines)
	fmt.Fprintf(out, "  filter           = %s\n", cfg.UI.Filter)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  debug            = %t\n", cfg.Log.Debug)
	fmt.Fprintf(out, "  dir              = %s\n", cfg.Log.Dir)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptFloat(reader *bufio.Reader, out io.Writer, label string, current float64) float64 {
	for {
		value := promptValue(reader, out, label, strconv.FormatFloat(current, 'g', -1, 64))
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		// Out of input: keep the current theme rather than loop forever.
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
