package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// MockCorrectionService is a mock implementation of driving.CorrectionService.
type MockCorrectionService struct {
	ComputeFunc func(ctx context.Context, req domain.CorrectionRequest) (*domain.CorrectionResult, error)
}

func (m *MockCorrectionService) Compute(ctx context.Context, req domain.CorrectionRequest) (*domain.CorrectionResult, error) {
	if m.ComputeFunc != nil {
		return m.ComputeFunc(ctx, req)
	}
	return &domain.CorrectionResult{}, nil
}

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	GetFunc    func() (*domain.AppSettings, error)
	SaveFunc   func(settings *domain.AppSettings) error
	SetFunc    func(key, value string) error
	ValuesFunc func() (map[string]string, error)
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(settings)
	}
	return nil
}

func (m *MockSettingsService) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

func (m *MockSettingsService) Keys() []string {
	return []string{"server.address"}
}

func (m *MockSettingsService) Values() (map[string]string, error) {
	if m.ValuesFunc != nil {
		return m.ValuesFunc()
	}
	return map[string]string{"server.address": ":8000"}, nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func TestNewPorts(t *testing.T) {
	corrections := &MockCorrectionService{}
	settings := &MockSettingsService{}

	ports := NewPorts(corrections, settings)

	require.NotNil(t, ports)
	assert.Equal(t, corrections, ports.Corrections)
	assert.Equal(t, settings, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:  "all ports set",
			ports: NewPorts(&MockCorrectionService{}, &MockSettingsService{}),
		},
		{
			name:  "settings optional",
			ports: NewPorts(&MockCorrectionService{}, nil),
		},
		{
			name:    "missing corrections",
			ports:   NewPorts(nil, &MockSettingsService{}),
			wantErr: ErrMissingCorrectionService,
		},
		{
			name:    "nil ports",
			ports:   nil,
			wantErr: ErrMissingCorrectionService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
