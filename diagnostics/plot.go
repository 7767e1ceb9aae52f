// Package diagnostics draws convergence plots of IRLS fits.
package diagnostics

import (
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// Default figure size.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// DevianceTrace builds a line plot of the penalized deviance recorded at each
// IRLS pass, as returned by (*glm.Model).DevianceHistory.
func DevianceTrace(history []float64, title string) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, errors.NewModelError("diagnostics.DevianceTrace", "empty deviance history", errors.ErrEmptyData)
	}
	if err := errors.CheckNumericalStability("diagnostics.DevianceTrace", history, len(history)); err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, len(history))
	for i, d := range history {
		pts[i].X = float64(i + 1)
		pts[i].Y = d
	}

	p := plot.New()
	if title == "" {
		title = "IRLS convergence"
	}
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "penalized deviance"
	p.X.Min = 1
	p.X.Max = math.Max(2, float64(len(history)))
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics.DevianceTrace")
	}
	p.Add(line, points)
	return p, nil
}

// PlotDevianceTrace writes the deviance trace to path. The image format
// follows the file extension (png, svg, pdf, ...).
func PlotDevianceTrace(history []float64, path string) error {
	p, err := DevianceTrace(history, "")
	if err != nil {
		return err
	}
	// rendering panics are reported as errors
	return errors.SafeExecute("diagnostics.PlotDevianceTrace", func() error {
		if err := p.Save(Width, Height, path); err != nil {
			return errors.Wrapf(err, "diagnostics.PlotDevianceTrace: save %s", filepath.Base(path))
		}
		return nil
	})
}

// WriteDevianceTrace renders the deviance trace in the given format ("png",
// "svg", ...) to w.
func WriteDevianceTrace(w io.Writer, history []float64, format string) error {
	p, err := DevianceTrace(history, "")
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Width, Height, strings.ToLower(format))
	if err != nil {
		return errors.Wrap(err, "diagnostics.WriteDevianceTrace")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "diagnostics.WriteDevianceTrace")
	}
	return nil
}
