package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
)

var errNoSettingsService = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Keys use dotted names such as server.address or chart.width. Durations are
given in whole seconds and lists are comma separated.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Long: `Change one setting and save it to config.toml.

Examples:
  permeability settings set server.address :9000
  permeability settings set server.allowed_origins https://lab.example.com
  permeability settings set chart.width 1024`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	keys := settingsService.Keys()

	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		for _, key := range keys {
			fmt.Fprintf(out, "%s = %s\n", key, values[key])
		}
		return nil
	}

	s := styles.DefaultStyles()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Theme().Border)).
		Headers("Key", "Value").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Subtitle.Padding(0, 1)
			}
			return s.Value.Padding(0, 1)
		})
	for _, key := range keys {
		t.Row(key, values[key])
	}
	fmt.Fprintln(out, t.String())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
