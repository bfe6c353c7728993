package tui

import "errors"

// ErrMissingCorrectionService is returned when the correction service is not provided.
var ErrMissingCorrectionService = errors.New("tui: correction service is required")
