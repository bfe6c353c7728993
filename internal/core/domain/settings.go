package domain

import (
	"fmt"
	"time"
)

// ServerSettings holds HTTP transport configuration.
type ServerSettings struct {
	// Address is the listen address, e.g. ":8000".
	Address string

	// RequestTimeout bounds a single correction request.
	RequestTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout time.Duration

	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64

	// AllowedOrigins lists CORS origins. "*" allows any origin.
	AllowedOrigins []string

	// RateLimitRPS is the sustained request rate. Zero disables limiting.
	RateLimitRPS float64

	// RateLimitBurst is the token bucket size.
	RateLimitBurst int
}

// ChartSettings holds chart rasterisation configuration.
type ChartSettings struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// DPI is the font rendering resolution.
	DPI float64
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Verbose enables debug and info output.
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Server ServerSettings
	Chart  ChartSettings
	Log    LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The chart size matches an 8×6 inch figure at 100 dpi.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Address:           ":8000",
			RequestTimeout:    30 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			MaxBodyBytes:      1 << 20,
			AllowedOrigins:    []string{"*"},
			RateLimitRPS:      20,
			RateLimitBurst:    40,
		},
		Chart: ChartSettings{
			Width:  800,
			Height: 600,
			DPI:    100,
		},
	}
}

// Validate checks the settings for values the server cannot run with.
func (s AppSettings) Validate() error {
	if s.Server.Address == "" {
		return fmt.Errorf("%w: server address is empty", ErrInvalidInput)
	}
	if s.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidInput)
	}
	if s.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max body bytes must be positive", ErrInvalidInput)
	}
	if s.Server.RateLimitRPS < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidInput)
	}
	if s.Server.RateLimitRPS > 0 && s.Server.RateLimitBurst < 1 {
		return fmt.Errorf("%w: rate limit burst must be at least 1", ErrInvalidInput)
	}
	if s.Chart.Width < 100 || s.Chart.Height < 100 {
		return fmt.Errorf("%w: chart must be at least 100x100 pixels", ErrInvalidInput)
	}
	if s.Chart.DPI <= 0 {
		return fmt.Errorf("%w: chart dpi must be positive", ErrInvalidInput)
	}
	return nil
}

// AllowsAnyOrigin reports whether CORS is unrestricted.
func (s ServerSettings) AllowsAnyOrigin() bool {
	for _, o := range s.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
