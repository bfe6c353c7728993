package domain

import (
	"context"
	"errors"
)

// Domain errors represent failures of the correction pipeline.
// Infrastructure errors are wrapped around them, never the reverse.
var (
	// ErrParse indicates malformed numeric text or mismatched series lengths.
	ErrParse = errors.New("parse error")

	// ErrDomain indicates non-physical input: a zero denominator, a
	// non-positive sample dimension or a non-finite intermediate value.
	ErrDomain = errors.New("domain error")

	// ErrFit indicates degenerate regression input (fewer than two points
	// or fewer than two distinct x values).
	ErrFit = errors.New("fit error")

	// ErrInvalidInput indicates a malformed request envelope.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRenderFailed indicates a chart could not be rasterised.
	ErrRenderFailed = errors.New("render failed")

	// ErrNotFound indicates a requested setting or resource does not exist.
	ErrNotFound = errors.New("not found")
)

// ErrorCode is a stable, client-visible identifier for an error class.
type ErrorCode string

// Error codes surfaced by the driving adapters.
const (
	CodeInvalidRequest ErrorCode = "invalid_request"
	CodeParse          ErrorCode = "parse_error"
	CodeDomain         ErrorCode = "domain_error"
	CodeFit            ErrorCode = "fit_error"
	CodeNotFound       ErrorCode = "not_found"
	CodeRateLimited    ErrorCode = "rate_limited"
	CodeTimeout        ErrorCode = "timeout"
	CodeCanceled       ErrorCode = "canceled"
	CodeInternal       ErrorCode = "internal_error"
)

// CodeOf classifies err into a stable error code.
func CodeOf(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidRequest
	case errors.Is(err, ErrParse):
		return CodeParse
	case errors.Is(err, ErrDomain):
		return CodeDomain
	case errors.Is(err, ErrFit):
		return CodeFit
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	default:
		return CodeInternal
	}
}

// IsClientError reports whether the error was caused by the caller's input.
func (c ErrorCode) IsClientError() bool {
	switch c {
	case CodeInvalidRequest, CodeParse, CodeDomain, CodeFit, CodeNotFound, CodeRateLimited, CodeCanceled:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c ErrorCode) String() string {
	return string(c)
}
