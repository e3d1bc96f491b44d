// Package bode draws magnitude and phase plots of a sweep.
package bode

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/toy-cascade/pkg/terminal"
)

var ErrNothingToPlot = errors.New("no finite points to plot")

type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

func DefaultOptions() Options {
	return Options{Title: "Bode plot", Width: 8 * vg.Inch, Height: 5 * vg.Inch}
}

// PhasePath is where Render puts the phase plot for path:
// out/lowpass.png becomes out/lowpass_phase.png.
func PhasePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_phase" + ext
}

// Render saves the magnitude plot to path and the phase plot next to it.
// results is an analysis result map: FREQ plus <name>_MAG and <name>_PHASE
// (degrees) series. The image format follows the file extension.
func Render(results map[string][]float64, variables []terminal.Variable, path string, opts Options) error {
	freqs, ok := results["FREQ"]
	if !ok || len(freqs) == 0 {
		return ErrNothingToPlot
	}

	mag := newPlot(opts.Title+" magnitude", "Magnitude (dB)")
	phase := newPlot(opts.Title+" phase", "Phase (deg)")

	plotted := 0
	for i, v := range variables {
		name := string(v)
		magnitudes, ok := results[name+"_MAG"]
		if !ok {
			return fmt.Errorf("no results for %s", name)
		}

		factor := 20.0
		if v.IsPower() {
			factor = 10.0
		}
		db := make([]float64, len(magnitudes))
		for j, m := range magnitudes {
			db[j] = factor * math.Log10(m)
		}

		added, err := addLine(mag, i, name, freqs, db)
		if err != nil {
			return err
		}
		if !added {
			continue
		}
		plotted++

		if _, err := addLine(phase, i, name, freqs, results[name+"_PHASE"]); err != nil {
			return err
		}
	}

	if plotted == 0 {
		return ErrNothingToPlot
	}

	if err := mag.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	if err := phase.Save(opts.Width, opts.Height, PhasePath(path)); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

func newPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = ylabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// addLine plots the finite (x, y) pairs. It reports false when no pair
// survives, e.g. a magnitude that is zero over the whole sweep.
func addLine(p *plot.Plot, i int, name string, xs, ys []float64) (bool, error) {
	pts := make(plotter.XYs, 0, len(xs))
	for j := range xs {
		if j >= len(ys) || !finite(xs[j]) || xs[j] <= 0 || !finite(ys[j]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[j], Y: ys[j]})
	}
	if len(pts) == 0 {
		return false, nil
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return false, fmt.Errorf("plotting %s: %w", name, err)
	}
	line.Color = plotutil.Color(i)
	line.Width = vg.Points(1.5)

	p.Add(line)
	p.Legend.Add(name, line)
	return true, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
