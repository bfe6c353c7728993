package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmikayilov/permeability-measurement-app/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "permeability", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "compute", "mcp", "tui", "settings", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestSetup_UsesServiceBuilder(t *testing.T) {
	withServices(t, nil, nil)

	var gotDir string
	corrections := &mockCorrectionService{}
	SetServiceBuilder(func(dir string) (*Services, error) {
		gotDir = dir
		return &Services{Corrections: corrections, Settings: newMockSettingsService()}, nil
	})

	dir := t.TempDir()
	_, err := executeCommand(t, context.Background(), "--config-dir", dir, "compute",
		"--length", "50", "--diameter", "25", "--flow", "10,20", "--dp", "5,10")
	require.NoError(t, err)

	assert.Equal(t, dir, gotDir)
	assert.Len(t, corrections.calls(), 1)
}

func TestSetup_BuilderError(t *testing.T) {
	withServices(t, nil, nil)
	SetServiceBuilder(func(string) (*Services, error) {
		return nil, errors.New("bad config")
	})

	_, err := executeCommand(t, context.Background(), "version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialising services: bad config")
}

func TestSetup_VerboseFlag(t *testing.T) {
	withServices(t, nil, nil)
	t.Cleanup(func() { logger.SetVerbose(false) })

	_, err := executeCommand(t, context.Background(), "--verbose", "version")
	require.NoError(t, err)

	assert.True(t, logger.IsVerbose())
}

func TestSetup_VerboseFromSettings(t *testing.T) {
	settings := newMockSettingsService()
	settings.settings.Log.Verbose = true
	withServices(t, nil, settings)
	t.Cleanup(func() { logger.SetVerbose(false) })

	_, err := executeCommand(t, context.Background(), "version")
	require.NoError(t, err)

	assert.True(t, logger.IsVerbose())
}

func TestSetup_QuietByDefault(t *testing.T) {
	withServices(t, nil, newMockSettingsService())
	logger.SetVerbose(true)
	t.Cleanup(func() { logger.SetVerbose(false) })

	_, err := executeCommand(t, context.Background(), "version")
	require.NoError(t, err)

	assert.False(t, logger.IsVerbose())
}

func TestSetters(t *testing.T) {
	withServices(t, nil, nil)
	prevVersion := version
	t.Cleanup(func() { version = prevVersion })

	corrections := &mockCorrectionService{}
	settings := newMockSettingsService()
	SetCorrectionService(corrections)
	SetSettingsService(settings)
	SetVersion("1.2.3")

	assert.Equal(t, corrections, correctionService)
	assert.Equal(t, settings, settingsService)
	assert.Equal(t, "1.2.3", version)
}
