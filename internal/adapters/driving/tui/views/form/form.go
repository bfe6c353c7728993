// Package form provides the measurement entry view for the TUI.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/components/input"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/components/status"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/keymap"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/messages"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// Field indexes.
const (
	FieldLength = iota
	FieldDiameter
	FieldFlowRates
	FieldPressures
	fieldCount
)

var (
	errRequired  = errors.New("a value is required")
	errNotNumber = errors.New("must be a number")
)

func requireNumber(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errRequired
	}
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return errNotNumber
	}
	return nil
}

func requireText(v string) error {
	if strings.TrimSpace(v) == "" {
		return errRequired
	}
	return nil
}

// View is the measurement form: sample geometry plus the two reading series.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    [fieldCount]*input.Field
	statusbar *status.Bar
	focused   int
	width     int
	height    int
}

// NewView creates a new form view with the length field focused.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s, km),
		width:     80,
		height:    24,
	}
	v.fields[FieldLength] = input.NewField(s, "Sample length (mm)", "50", requireNumber)
	v.fields[FieldDiameter] = input.NewField(s, "Sample diameter (mm)", "25", requireNumber)
	v.fields[FieldFlowRates] = input.NewField(s, "Gas flow rates (mL/min)", "10, 20, 30", requireText)
	v.fields[FieldPressures] = input.NewField(s, "Differential pressures (mbar)", "5, 10, 15", requireText)
	v.fields[FieldLength].Focus()
	v.statusbar.SetState(status.StateEditing)
	return v
}

// Init starts the cursor blinking.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focused].Init()
}

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ComputeCompleted:
		if msg.Err != nil {
			v.SetError(msg.Err)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(keyStr, v.keymap.NextField):
		return v, v.focus((v.focused + 1) % fieldCount)

	case keymap.Matches(keyStr, v.keymap.PrevField):
		return v, v.focus((v.focused + fieldCount - 1) % fieldCount)

	case keymap.Matches(keyStr, v.keymap.Submit):
		if keyStr == "enter" && v.focused < fieldCount-1 {
			return v, v.focus(v.focused + 1)
		}
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	v.statusbar.SetState(status.StateEditing)
	return v, cmd
}

func (v *View) focus(i int) tea.Cmd {
	v.fields[v.focused].Blur()
	v.focused = i
	return v.fields[i].Focus()
}

// submit validates every field and emits a ComputeRequested on success.
// The first invalid field receives focus.
func (v *View) submit() tea.Cmd {
	firstInvalid := -1
	for i, f := range v.fields {
		if err := f.Validate(); err != nil && firstInvalid < 0 {
			firstInvalid = i
		}
	}
	if firstInvalid >= 0 {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(fmt.Sprintf("%s: %v", v.fields[firstInvalid].Label(), v.fields[firstInvalid].Err()))
		return v.focus(firstInvalid)
	}

	req, err := v.Request()
	if err != nil {
		v.SetError(err)
		return nil
	}
	v.statusbar.SetState(status.StateComputing)
	return func() tea.Msg {
		return messages.ComputeRequested{Request: req}
	}
}

// Request builds a correction request from the current field values.
func (v *View) Request() (domain.CorrectionRequest, error) {
	length, err := strconv.ParseFloat(strings.TrimSpace(v.fields[FieldLength].Value()), 64)
	if err != nil {
		return domain.CorrectionRequest{}, fmt.Errorf("%w: sample length: %v", domain.ErrInvalidInput, err)
	}
	diameter, err := strconv.ParseFloat(strings.TrimSpace(v.fields[FieldDiameter].Value()), 64)
	if err != nil {
		return domain.CorrectionRequest{}, fmt.Errorf("%w: sample diameter: %v", domain.ErrInvalidInput, err)
	}

	return domain.CorrectionRequest{
		Geometry: domain.SampleGeometry{
			LengthMM:   length,
			DiameterMM: diameter,
		},
		FlowRates:             v.fields[FieldFlowRates].Value(),
		DifferentialPressures: v.fields[FieldPressures].Value(),
	}, nil
}

// Prefill loads a previous request into the fields.
func (v *View) Prefill(req domain.CorrectionRequest) {
	v.fields[FieldLength].SetValue(strconv.FormatFloat(req.Geometry.LengthMM, 'g', -1, 64))
	v.fields[FieldDiameter].SetValue(strconv.FormatFloat(req.Geometry.DiameterMM, 'g', -1, 64))
	v.fields[FieldFlowRates].SetValue(req.FlowRates)
	v.fields[FieldPressures].SetValue(req.DifferentialPressures)
	v.statusbar.SetState(status.StateEditing)
}

// SetError shows a pipeline or validation error in the status bar.
func (v *View) SetError(err error) {
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// Reset clears every field and focuses the first one.
func (v *View) Reset() {
	for _, f := range v.fields {
		f.Reset()
	}
	v.focus(FieldLength)
	v.statusbar.Clear()
	v.statusbar.SetState(status.StateEditing)
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("New measurement"))
	b.WriteString("\n\n")
	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Series are comma separated and must have the same number of readings."))
	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focused
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}
