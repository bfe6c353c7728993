package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/keymap"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/messages"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/views/form"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/views/menu"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/views/results"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/views/settings"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView     *menu.View
	formView     *form.View
	resultsView  *results.View
	settingsView *settings.View

	currentView messages.ViewType

	// err holds the last pipeline error.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		formView:     form.NewView(s, km),
		resultsView:  results.NewView(s, km),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for computations.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("permeability")
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.routeKey(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ComputeRequested:
		return a, a.compute(msg.Request)

	case messages.ComputeCompleted:
		a.err = msg.Err
		if msg.Err != nil {
			a.formView, cmd = a.formView.Update(msg)
			return a, cmd
		}
		a.resultsView.SetResult(msg.Request, msg.Result)
		a.currentView = messages.ViewResults
		return a, nil

	case messages.EditRequested:
		a.formView.Prefill(msg.Request)
		a.currentView = messages.ViewForm
		return a, a.formView.Init()

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward anything else (cursor blinks) to the active view.
	switch a.currentView {
	case messages.ViewForm:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewMenu, messages.ViewResults, messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewForm:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view

	switch view {
	case messages.ViewForm:
		a.formView.Reset()
		return a.formView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewResults, messages.ViewHelp:
	}
	return nil
}

// compute runs the pipeline off the UI goroutine.
func (a *App) compute(req domain.CorrectionRequest) tea.Cmd {
	ctx := a.ctx
	corrections := a.ports.Corrections
	return func() tea.Msg {
		res, err := corrections.Compute(ctx, req)
		return messages.ComputeCompleted{Request: req, Result: res, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewForm:
		return a.formView.View()
	case messages.ViewResults:
		return a.resultsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc          Back to Menu
  ctrl+c       Quit

Measurement form:
  tab, ↓       Next field
  shift+tab, ↑ Previous field
  enter        Next field, or compute on the last one
  ctrl+s       Compute

Results:
  j/k, ↑/↓     Scroll readings
  n            New measurement
  e            Edit the inputs of this result

Settings:
  enter        Edit or save the selected value
  esc          Cancel edit

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last pipeline error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.formView.SetDimensions(width, height)
	a.resultsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
