package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driven"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyServerAddress     = "server.address"
	keyRequestTimeout    = "server.request_timeout_seconds"
	keyReadHeaderTimeout = "server.read_header_timeout_seconds"
	keyMaxBodyBytes      = "server.max_body_bytes"
	keyAllowedOrigins    = "server.allowed_origins"
	keyRateLimitRPS      = "server.rate_limit_rps"
	keyRateLimitBurst    = "server.rate_limit_burst"
	keyChartWidth        = "chart.width"
	keyChartHeight       = "chart.height"
	keyChartDPI          = "chart.dpi"
	keyLogVerbose        = "log.verbose"
)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindStringList
)

var settingKinds = map[string]settingKind{
	keyServerAddress:     kindString,
	keyRequestTimeout:    kindInt,
	keyReadHeaderTimeout: kindInt,
	keyMaxBodyBytes:      kindInt,
	keyAllowedOrigins:    kindStringList,
	keyRateLimitRPS:      kindFloat,
	keyRateLimitBurst:    kindInt,
	keyChartWidth:        kindInt,
	keyChartHeight:       kindInt,
	keyChartDPI:          kindFloat,
	keyLogVerbose:        kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Keys missing from the
// store fall back to domain.DefaultAppSettings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Address:           s.getString(keyServerAddress, defaults.Server.Address),
			RequestTimeout:    s.getSeconds(keyRequestTimeout, defaults.Server.RequestTimeout),
			ReadHeaderTimeout: s.getSeconds(keyReadHeaderTimeout, defaults.Server.ReadHeaderTimeout),
			MaxBodyBytes:      int64(s.getInt(keyMaxBodyBytes, int(defaults.Server.MaxBodyBytes))),
			AllowedOrigins:    s.getStringSlice(keyAllowedOrigins, defaults.Server.AllowedOrigins),
			RateLimitRPS:      s.getFloat(keyRateLimitRPS, defaults.Server.RateLimitRPS),
			RateLimitBurst:    s.getInt(keyRateLimitBurst, defaults.Server.RateLimitBurst),
		},
		Chart: domain.ChartSettings{
			Width:  s.getInt(keyChartWidth, defaults.Chart.Width),
			Height: s.getInt(keyChartHeight, defaults.Chart.Height),
			DPI:    s.getFloat(keyChartDPI, defaults.Chart.DPI),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(keyLogVerbose, defaults.Log.Verbose),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		keyServerAddress:     settings.Server.Address,
		keyRequestTimeout:    int(settings.Server.RequestTimeout / time.Second),
		keyReadHeaderTimeout: int(settings.Server.ReadHeaderTimeout / time.Second),
		keyMaxBodyBytes:      int(settings.Server.MaxBodyBytes),
		keyAllowedOrigins:    settings.Server.AllowedOrigins,
		keyRateLimitRPS:      settings.Server.RateLimitRPS,
		keyRateLimitBurst:    settings.Server.RateLimitBurst,
		keyChartWidth:        settings.Chart.Width,
		keyChartHeight:       settings.Chart.Height,
		keyChartDPI:          settings.Chart.DPI,
		keyLogVerbose:        settings.Log.Verbose,
	}

	for _, key := range s.Keys() {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set parses value according to the type of key, checks that the
// resulting settings are still valid and persists the single key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	applySetting(settings, key, parsed)
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists every configurable key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the effective value of every key, formatted the way Set
// accepts it.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settingKinds))
	for key := range settingKinds {
		values[key] = formatSetting(settings, key)
	}
	return values, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(kind settingKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindBool:
		return strconv.ParseBool(value)
	case kindStringList:
		var list []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		return list, nil
	default:
		return value, nil
	}
}

func applySetting(settings *domain.AppSettings, key string, value any) {
	switch key {
	case keyServerAddress:
		settings.Server.Address = value.(string)
	case keyRequestTimeout:
		settings.Server.RequestTimeout = time.Duration(value.(int)) * time.Second
	case keyReadHeaderTimeout:
		settings.Server.ReadHeaderTimeout = time.Duration(value.(int)) * time.Second
	case keyMaxBodyBytes:
		settings.Server.MaxBodyBytes = int64(value.(int))
	case keyAllowedOrigins:
		settings.Server.AllowedOrigins = value.([]string)
	case keyRateLimitRPS:
		settings.Server.RateLimitRPS = value.(float64)
	case keyRateLimitBurst:
		settings.Server.RateLimitBurst = value.(int)
	case keyChartWidth:
		settings.Chart.Width = value.(int)
	case keyChartHeight:
		settings.Chart.Height = value.(int)
	case keyChartDPI:
		settings.Chart.DPI = value.(float64)
	case keyLogVerbose:
		settings.Log.Verbose = value.(bool)
	}
}

func formatSetting(settings *domain.AppSettings, key string) string {
	switch key {
	case keyServerAddress:
		return settings.Server.Address
	case keyRequestTimeout:
		return strconv.Itoa(int(settings.Server.RequestTimeout / time.Second))
	case keyReadHeaderTimeout:
		return strconv.Itoa(int(settings.Server.ReadHeaderTimeout / time.Second))
	case keyMaxBodyBytes:
		return strconv.FormatInt(settings.Server.MaxBodyBytes, 10)
	case keyAllowedOrigins:
		return strings.Join(settings.Server.AllowedOrigins, ",")
	case keyRateLimitRPS:
		return strconv.FormatFloat(settings.Server.RateLimitRPS, 'g', -1, 64)
	case keyRateLimitBurst:
		return strconv.Itoa(settings.Server.RateLimitBurst)
	case keyChartWidth:
		return strconv.Itoa(settings.Chart.Width)
	case keyChartHeight:
		return strconv.Itoa(settings.Chart.Height)
	case keyChartDPI:
		return strconv.FormatFloat(settings.Chart.DPI, 'g', -1, 64)
	case keyLogVerbose:
		return strconv.FormatBool(settings.Log.Verbose)
	}
	return ""
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}
