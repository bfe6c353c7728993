package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/mcp"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/services"
)

// Port range scanned by --find-port.
const (
	mcpPortRangeStart = 8080
	mcpPortRangeEnd   = 8179
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can run the
compute_corrections tool and read the resulting charts.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead, or --find-port to take the first
free port from 8080 upwards.

Examples:
  # Stdio mode (default)
  permeability mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  permeability mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "permeability": {
        "command": "/path/to/permeability",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("find-port", false, "serve HTTP on the first free port from 8080")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	findPort, err := cmd.Flags().GetBool("find-port")
	if err != nil {
		return fmt.Errorf("getting find-port flag: %w", err)
	}

	if findPort && port == 0 {
		port, err = services.FindAvailablePort(mcpPortRangeStart, mcpPortRangeEnd)
		if err != nil {
			return err
		}
	}

	ports := &mcp.Ports{
		Corrections: correctionService,
		Settings:    settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
