// Package cli provides the cobra command tree for the permeability binary.
// It is a driving adapter: commands translate flags into calls on the
// driving ports and render the results.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driving"
	"github.com/kmikayilov/permeability-measurement-app/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services holds the driving ports the commands call into.
type Services struct {
	Corrections driving.CorrectionService
	Settings    driving.SettingsService
}

// ServiceBuilder wires services for a configuration directory.
// An empty configDir selects the default location.
type ServiceBuilder func(configDir string) (*Services, error)

var (
	correctionService driving.CorrectionService
	settingsService   driving.SettingsService
	serviceBuilder    ServiceBuilder

	verbose   bool
	configDir string
)

var errNoCorrectionService = errors.New("correction service not configured")

var rootCmd = &cobra.Command{
	Use:   "permeability",
	Short: "Gas permeametry corrections",
	Long: `Permeability computes Forchheimer and Klinkenberg corrections from
gas permeametry readings and renders the two diagnostic charts.

Run 'permeability serve' to start the HTTP API, 'permeability compute' for a
one-shot calculation, or 'permeability tui' for the interactive form.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.permeability)")
}

// setup builds services once flags are parsed so --config-dir applies.
func setup(_ *cobra.Command, _ []string) error {
	if serviceBuilder != nil {
		svc, err := serviceBuilder(configDir)
		if err != nil {
			return fmt.Errorf("initialising services: %w", err)
		}
		correctionService = svc.Corrections
		settingsService = svc.Settings
	}

	debug := verbose
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Log.Verbose {
			debug = true
		}
	}
	logger.SetVerbose(debug)
	return nil
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as serve.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceBuilder sets the function that wires services before a command runs.
func SetServiceBuilder(b ServiceBuilder) {
	serviceBuilder = b
}

// SetCorrectionService sets the correction service directly.
func SetCorrectionService(s driving.CorrectionService) {
	correctionService = s
}

// SetSettingsService sets the settings service directly.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}
