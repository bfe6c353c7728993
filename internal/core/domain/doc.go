// Package domain defines the core entities of the permeability service.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SampleGeometry: core plug length and diameter in millimetres
//   - MeasurementSeries: raw flow-rate / differential-pressure pairs
//   - ConvertedSeries: the same readings in SI units plus mean pressure
//   - PermeabilitySeries: apparent permeability and its derived series
//   - LinearFit: a first-order least-squares fit (Forchheimer, Klinkenberg)
//   - PlotSpec / PlotArtifact: chart description and its rendered image
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
