package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/views/results"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// Chart file names written by --out-dir.
const (
	forchheimerFile = "forchheimer.png"
	klinkenbergFile = "klinkenberg.png"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute corrections for one sample",
	Long: `Compute Forchheimer and Klinkenberg corrections for one sample.

Flow rates are in mL/min and differential pressures in mbar, given as
comma separated lists of the same length.

Examples:
  permeability compute --length 50 --diameter 25 --flow "10,20,30" --dp "5,10,15"
  permeability compute --length 50 --diameter 25 --flow "10,20,30" --dp "5,10,15" --json
  permeability compute ... --out-dir ./charts`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().Float64("length", 0, "sample length in mm")
	computeCmd.Flags().Float64("diameter", 0, "sample diameter in mm")
	computeCmd.Flags().String("flow", "", "volumetric gas flow rates in mL/min")
	computeCmd.Flags().String("dp", "", "differential pressures in mbar")
	computeCmd.Flags().Bool("json", false, "print the result as JSON")
	computeCmd.Flags().String("out-dir", "", "write both charts as PNG files to this directory")
	for _, name := range []string{"length", "diameter", "flow", "dp"} {
		_ = computeCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(computeCmd)
}

// computeJSON is the --json output.
type computeJSON struct {
	Readings               int       `json:"readings"`
	DifferentialPressurePa []float64 `json:"differential_pressure_pa"`
	FlowRateM3S            []float64 `json:"flow_rate_m3_s"`
	MeanPressurePa         []float64 `json:"mean_pressure_pa"`
	PressureProduct        []float64 `json:"pressure_product"`
	PermeabilityM2         []float64 `json:"permeability_m2"`
	InversePermeability    []float64 `json:"inverse_permeability"`
	InverseMeanPressure    []float64 `json:"inverse_mean_pressure"`
	Forchheimer            fitJSON   `json:"forchheimer"`
	Klinkenberg            fitJSON   `json:"klinkenberg"`
	Charts                 []string  `json:"charts,omitempty"`
}

type fitJSON struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Equation  string  `json:"equation"`
}

func newFitJSON(f domain.LinearFit) fitJSON {
	return fitJSON{Slope: f.Slope, Intercept: f.Intercept, Equation: f.Equation()}
}

func runCompute(cmd *cobra.Command, _ []string) error {
	if correctionService == nil {
		return errNoCorrectionService
	}

	flags := cmd.Flags()
	length, _ := flags.GetFloat64("length")
	diameter, _ := flags.GetFloat64("diameter")
	flow, _ := flags.GetString("flow")
	dp, _ := flags.GetString("dp")
	asJSON, _ := flags.GetBool("json")
	outDir, _ := flags.GetString("out-dir")

	req := domain.CorrectionRequest{
		Geometry:              domain.SampleGeometry{LengthMM: length, DiameterMM: diameter},
		FlowRates:             flow,
		DifferentialPressures: dp,
	}

	res, err := correctionService.Compute(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("%s: %w", domain.CodeOf(err), err)
	}

	var charts []string
	if outDir != "" {
		charts, err = writeCharts(outDir, res)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return printComputeJSON(out, res, charts)
	case isTerminal(out):
		printComputeStyled(out, res, charts)
	default:
		printComputePlain(out, res, charts)
	}
	return nil
}

// writeCharts stores both PNGs in dir and returns their paths.
func writeCharts(dir string, res *domain.CorrectionResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := []struct {
		name string
		plot domain.PlotArtifact
	}{
		{forchheimerFile, res.ForchheimerPlot},
		{klinkenbergFile, res.KlinkenbergPlot},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if len(f.plot.Data) == 0 {
			return nil, errors.New("result has no chart data for " + f.name)
		}
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.plot.Data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func printComputeJSON(w io.Writer, res *domain.CorrectionResult, charts []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(computeJSON{
		Readings:               res.Converted.Len(),
		DifferentialPressurePa: res.Converted.DifferentialPressurePa,
		FlowRateM3S:            res.Converted.FlowRateM3S,
		MeanPressurePa:         res.Converted.MeanPressurePa,
		PressureProduct:        res.Converted.PressureProduct,
		PermeabilityM2:         res.Permeability.PermeabilityM2,
		InversePermeability:    res.Permeability.InversePermeability,
		InverseMeanPressure:    res.Permeability.InverseMeanPressure,
		Forchheimer:            newFitJSON(res.Forchheimer),
		Klinkenberg:            newFitJSON(res.Klinkenberg),
		Charts:                 charts,
	})
}

func printComputeStyled(w io.Writer, res *domain.CorrectionResult, charts []string) {
	s := styles.DefaultStyles()

	fmt.Fprintln(w, s.Title.Render("Permeability corrections"))
	fmt.Fprintln(w, s.Label.Render("Forchheimer")+s.Equation.Render(res.Forchheimer.Equation()))
	fmt.Fprintln(w, s.Label.Render("Klinkenberg")+s.Equation.Render(res.Klinkenberg.Equation()))
	fmt.Fprintln(w, results.Table(s, res, 0, 0))
	for _, c := range charts {
		fmt.Fprintln(w, s.Muted.Render("wrote "+c))
	}
}

func printComputePlain(w io.Writer, res *domain.CorrectionResult, charts []string) {
	fmt.Fprintf(w, "forchheimer: %s\n", res.Forchheimer.Equation())
	fmt.Fprintf(w, "klinkenberg: %s\n", res.Klinkenberg.Equation())
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Join(results.Headers, "\t"))
	for i := range res.Converted.Len() {
		fields := []string{
			strconv.Itoa(i + 1),
			plainFloat(res.Converted.DifferentialPressurePa[i]),
			plainFloat(res.Converted.FlowRateM3S[i]),
			plainFloat(res.Converted.MeanPressurePa[i]),
			plainFloat(res.Converted.PressureProduct[i]),
			plainFloat(res.Permeability.PermeabilityM2[i]),
			plainFloat(res.Permeability.InversePermeability[i]),
			plainFloat(res.Permeability.InverseMeanPressure[i]),
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	for _, c := range charts {
		fmt.Fprintf(w, "wrote %s\n", c)
	}
}

func plainFloat(v float64) string {
	return strconv.FormatFloat(v, 'e', 6, 64)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
