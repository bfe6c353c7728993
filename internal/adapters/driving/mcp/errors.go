// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// permeability tools. It lets AI assistants run Forchheimer and Klinkenberg
// corrections and read the resulting charts.
package mcp

import "errors"

// ErrMissingCorrectionService is returned when the correction service is not provided.
var ErrMissingCorrectionService = errors.New("mcp: correction service is required")
