package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI provides a measurement form, a results table with both fitted
equations, and a settings editor.

Controls:
  ↑/k, ↓/j   Navigate
  Tab        Next field
  Enter      Select / Compute
  Esc        Back / Cancel
  ?          Help
  ctrl+c     Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(correctionService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
