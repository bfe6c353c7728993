// Command permeability computes Forchheimer and Klinkenberg corrections from
// gas permeametry readings. It serves the computation over HTTP and MCP and
// offers one-shot and interactive terminal front ends.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driven/chart"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driven/config/file"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/cli"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/services"
	"github.com/kmikayilov/permeability-measurement-app/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceBuilder(buildServices)

	if err := cli.Execute(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

// buildServices wires the driven adapters into the core services.
func buildServices(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	renderer := chart.NewRenderer()
	correctionService := services.NewCorrectionService(renderer, settings.Chart)

	return &cli.Services{
		Corrections: correctionService,
		Settings:    settingsService,
	}, nil
}
