package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/messages"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) Keys() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockSettingsService) Values() (map[string]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func newLoadedView(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	svc.On("Keys").Return([]string{"chart.dpi", "chart.width", "server.address"})
	svc.On("Values").Return(map[string]string{
		"chart.dpi":      "100",
		"chart.width":    "800",
		"server.address": ":8000",
	}, nil)

	v := NewView(styles.DefaultStyles(), svc)
	msg := v.Init()()
	v.Update(msg)
	require.NoError(t, v.Err())
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.False(t, v.Editing())
}

func TestView_Init_NoService(t *testing.T) {
	v := NewView(nil, nil)

	msg := v.Init()()
	v.Update(msg)

	assert.ErrorIs(t, v.Err(), ErrNoSettingsService)
	assert.Contains(t, v.View(), "settings service not available")
}

func TestView_LoadsAndRendersValues(t *testing.T) {
	svc := &MockSettingsService{}
	v := newLoadedView(t, svc)

	out := v.View()

	assert.Contains(t, out, "> chart.dpi")
	assert.Contains(t, out, "800")
	assert.Contains(t, out, ":8000")
	svc.AssertExpectations(t)
}

func TestView_LoadError(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Keys").Return([]string{})
	svc.On("Values").Return(nil, errors.New("config unreadable"))

	v := NewView(nil, svc)
	v.Update(v.Init()())

	assert.EqualError(t, v.Err(), "config unreadable")
}

func TestView_EditAndSave(t *testing.T) {
	svc := &MockSettingsService{}
	v := newLoadedView(t, svc)
	svc.On("Set", "chart.width", "8000").Return(nil)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	require.True(t, v.Editing())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, v.Editing())

	saved := cmd()
	assert.Equal(t, messages.SettingSaved{Key: "chart.width"}, saved)

	_, reload := v.Update(saved)
	assert.NotNil(t, reload)
	assert.Contains(t, v.View(), "Saved chart.width")
	svc.AssertCalled(t, "Set", "chart.width", "8000")
}

func TestView_SaveError(t *testing.T) {
	svc := &MockSettingsService{}
	v := newLoadedView(t, svc)

	v.Update(messages.SettingSaved{Key: "chart.dpi", Err: domain.ErrInvalidInput})

	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
}

func TestView_EscCancelsEdit(t *testing.T) {
	svc := &MockSettingsService{}
	v := newLoadedView(t, svc)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Editing())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
	svc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Navigation(t *testing.T) {
	v := newLoadedView(t, &MockSettingsService{})

	for i := 0; i < 5; i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	assert.Equal(t, 2, v.selected)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, v.selected)
}

func TestView_Reset(t *testing.T) {
	v := newLoadedView(t, &MockSettingsService{})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v.Reset()

	assert.False(t, v.Editing())
	assert.NoError(t, v.Err())
}
