package driving

import "github.com/kmikayilov/permeability-measurement-app/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, filling defaults.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key.
	Set(key, value string) error

	// Keys returns all recognised config keys in display order.
	Keys() []string

	// Values returns the effective value of every key as text.
	Values() (map[string]string, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
