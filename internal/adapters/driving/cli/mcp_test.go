package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Structure(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	require.Len(t, mcpCmd.Commands(), 1)
	assert.Equal(t, "serve", mcpCmd.Commands()[0].Name())
	assert.NotNil(t, mcpServeCmd.Flags().Lookup("port"))
	assert.NotNil(t, mcpServeCmd.Flags().Lookup("find-port"))
}

func TestMCPServe_NoService(t *testing.T) {
	withServices(t, nil, nil)

	_, err := executeCommand(t, cancelledContext(), "mcp", "serve", "--port", "18080")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "correction service")
}

func TestMCPServe_FindPort(t *testing.T) {
	withServices(t, &mockCorrectionService{}, newMockSettingsService())

	out, err := executeCommand(t, cancelledContext(), "mcp", "serve", "--find-port")

	require.NoError(t, err)
	assert.Contains(t, out, "MCP server listening on http://localhost:")
}

func TestMCPServe_Help(t *testing.T) {
	withServices(t, &mockCorrectionService{}, nil)

	out, err := executeCommand(t, context.Background(), "mcp", "serve", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "compute_corrections")
}
