package disp

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const defaultPlotBins = 50

// PlotDir is <outputDir>/plots/<target>_<telType>.
func PlotDir(outputDir string, target Target, telType uint64) string {
	return filepath.Join(outputDir, "plots", fmt.Sprintf("%s_%d", target, telType))
}

// PlotInputVariables writes one histogram per input variable and one for
// the target of d into dir. Used to check the quality cuts by eye.
func PlotInputVariables(dir string, d *Dataset, schema VariableSchema, bins int) ([]string, error) {
	if bins <= 0 {
		bins = defaultPlotBins
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	exprs := append(schema.VariableNames(), schema.Target.Label)
	var files []string
	for _, expr := range exprs {
		values, err := columnValues(d, expr)
		if err != nil {
			return files, err
		}
		if len(values) == 0 {
			continue
		}
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s (telescope type %d)", expr, d.TelType)
		p.X.Label.Text = expr
		p.Y.Label.Text = "entries"

		h, err := plotter.NewHist(values, bins)
		if err != nil {
			return files, fmt.Errorf("error creating histogram for %s: %w", expr, err)
		}
		p.Add(h)

		filename := filepath.Join(dir, plotFileName(expr))
		if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
			return files, fmt.Errorf("error saving %s: %w", filename, err)
		}
		files = append(files, filename)
	}
	return files, nil
}

// columnValues evaluates expr for every record, dropping non-finite values.
func columnValues(d *Dataset, expr string) (plotter.Values, error) {
	values := make(plotter.Values, 0, d.Len())
	for i := range d.Records {
		v, err := d.Records[i].Evaluate(expr)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

func plotFileName(expr string) string {
	return strings.ReplaceAll(expr, "*", "_x_") + ".png"
}
