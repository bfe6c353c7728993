// Package results provides the view that shows a computed correction.
package results

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/components/status"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/keymap"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/messages"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// Headers of the per-reading table.
var Headers = []string{"#", "ΔP (Pa)", "Q (m³/s)", "Pm (Pa)", "Pm·ΔP (Pa²)", "k (m²)", "1/k (1/m²)", "1/Pm (1/Pa)"}

// View shows the equations and the per-reading series of one result.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	request domain.CorrectionRequest
	result  *domain.CorrectionResult

	// offset is the first table row shown.
	offset int
	width  int
	height int
}

// NewView creates an empty results view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s, km),
		width:     80,
		height:    24,
	}
}

// SetResult replaces the shown result.
func (v *View) SetResult(req domain.CorrectionRequest, res *domain.CorrectionResult) {
	v.request = req
	v.result = res
	v.offset = 0
	v.statusbar.SetState(status.StateResults)
	if res != nil {
		v.statusbar.SetReadings(res.Converted.Len())
	}
}

// Result returns the shown result, or nil.
func (v *View) Result() *domain.CorrectionResult {
	return v.result
}

// Update handles messages for the results view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(keyStr, v.keymap.NewMeasurement):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewForm}
		}

	case keymap.Matches(keyStr, v.keymap.Edit):
		if v.result == nil {
			return v, nil
		}
		req := v.request
		return v, func() tea.Msg {
			return messages.EditRequested{Request: req}
		}

	case keymap.Matches(keyStr, v.keymap.Up):
		if v.offset > 0 {
			v.offset--
		}

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.offset < v.rowCount()-1 {
			v.offset++
		}
	}
	return v, nil
}

func (v *View) rowCount() int {
	if v.result == nil {
		return 0
	}
	return v.result.Converted.Len()
}

// Offset returns the first visible table row.
func (v *View) Offset() int {
	return v.offset
}

// View renders the results.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Results"))
	b.WriteString("\n\n")

	if v.result == nil {
		b.WriteString(v.styles.Muted.Render("No measurement computed yet. Press n to enter one."))
		b.WriteString("\n")
		return b.String()
	}

	g := v.request.Geometry
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Sample %g mm × %g mm, %d readings", g.LengthMM, g.DiameterMM, v.rowCount())))
	b.WriteString("\n\n")

	for _, fit := range []domain.LinearFit{v.result.Forchheimer, v.result.Klinkenberg} {
		b.WriteString(v.styles.Label.Render(fit.Name))
		b.WriteString(v.styles.Equation.Render(fit.Equation()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(Table(v.styles, v.result, v.offset, v.visibleRows()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Charts: %s (%d B), %s (%d B)",
		v.result.ForchheimerPlot.Title, len(v.result.ForchheimerPlot.Data),
		v.result.KlinkenbergPlot.Title, len(v.result.KlinkenbergPlot.Data))))
	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())

	return b.String()
}

// visibleRows leaves room for the header, equations and status bar.
func (v *View) visibleRows() int {
	rows := v.height - 16
	if rows < 3 {
		rows = 3
	}
	return rows
}

// Table renders rows [offset, offset+limit) of the per-reading series.
// A limit of zero or less renders every row.
func Table(s *styles.Styles, res *domain.CorrectionResult, offset, limit int) string {
	n := res.Converted.Len()
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Theme().Border)).
		Headers(Headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Subtitle.Padding(0, 1)
			}
			return s.Value.Padding(0, 1)
		})

	for i := offset; i < end; i++ {
		t.Row(
			strconv.Itoa(i+1),
			sci(res.Converted.DifferentialPressurePa[i]),
			sci(res.Converted.FlowRateM3S[i]),
			sci(res.Converted.MeanPressurePa[i]),
			sci(res.Converted.PressureProduct[i]),
			sci(res.Permeability.PermeabilityM2[i]),
			sci(res.Permeability.InversePermeability[i]),
			sci(res.Permeability.InverseMeanPressure[i]),
		)
	}
	return t.String()
}

func sci(v float64) string {
	return strconv.FormatFloat(v, 'e', 4, 64)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
}
