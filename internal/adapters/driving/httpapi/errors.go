// Package httpapi serves the correction pipeline over HTTP. POST /plot
// accepts sample geometry and comma-separated readings and answers with
// the converted series, both fitted equations and both charts as base64
// PNG.
package httpapi

import "errors"

// ErrMissingCorrectionService is returned when the correction service is not provided.
var ErrMissingCorrectionService = errors.New("httpapi: correction service is required")
