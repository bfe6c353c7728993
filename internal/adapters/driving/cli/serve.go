package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/httpapi"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
	"github.com/kmikayilov/permeability-measurement-app/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Endpoints:
  POST /plot              compute corrections and charts
  POST /api/v1/corrections  same as /plot
  GET  /healthz           liveness
  GET  /metrics           Prometheus metrics

The listen address, timeouts, CORS origins and rate limit come from the
[server] section of config.toml. --addr overrides the address.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.address)")
	rootCmd.AddCommand(serveCmd)
}

// loadSettings returns the configured settings, or the defaults when no
// settings service is wired.
func loadSettings() (domain.AppSettings, error) {
	if settingsService == nil {
		return domain.DefaultAppSettings(), nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("loading settings: %w", err)
	}
	return *settings, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	if correctionService == nil {
		return errNoCorrectionService
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr != "" {
		settings.Server.Address = addr
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	server, err := httpapi.NewServer(&httpapi.Ports{Corrections: correctionService}, settings.Server)
	if err != nil {
		return err
	}

	logger.SetTimestamps(true)
	defer logger.SetTimestamps(false)

	cmd.Printf("Serving on %s\n", settings.Server.Address)
	return server.Run(cmd.Context())
}
