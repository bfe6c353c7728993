// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The correction pipeline is a chain of pure functions (ParseSeries,
// Convert, CalculatePermeability, FitLine) glued together by
// CorrectionService, which is the only piece that talks to a driven port.
package services
