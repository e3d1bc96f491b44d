package analysis

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/edp1096/toy-cascade/pkg/circuit"
	"github.com/edp1096/toy-cascade/pkg/terminal"
	"github.com/edp1096/toy-cascade/pkg/twoport"
)

// Point is one solved frequency of a cascade sweep.
type Point struct {
	Frequency float64
	Result    *terminal.Result
}

// PointError locates the frequency point a sweep failed at.
type PointError struct {
	Index     int // 0-based position in the sweep
	Frequency float64
	Err       error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("point %d (f=%g Hz): %v", e.Index+1, e.Frequency, e.Err)
}

func (e *PointError) Unwrap() error { return e.Err }

// CascadeAnalysis sweeps a circuit by multiplying ABCD matrices at every
// frequency and applying the terminations to the product.
type CascadeAnalysis struct {
	BaseAnalysis
	sweep       Sweep
	term        terminal.Termination
	workers     int
	frequencies []float64
	points      []Point
}

// NewCascade creates the sweep driver. workers <= 0 uses GOMAXPROCS.
func NewCascade(sweep Sweep, term terminal.Termination, workers int) *CascadeAnalysis {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &CascadeAnalysis{
		BaseAnalysis: *NewBaseAnalysis(),
		sweep:        sweep,
		term:         term,
		workers:      workers,
	}
}

func (ca *CascadeAnalysis) Setup(ckt *circuit.Circuit) error {
	freqs, err := ca.sweep.Frequencies()
	if err != nil {
		return err
	}

	ca.Circuit = ckt
	ca.frequencies = freqs
	return nil
}

// Execute evaluates every point, in parallel up to the worker limit. Rows
// come back in sweep order; if any point fails, the lowest failing index
// is reported and no results are kept.
func (ca *CascadeAnalysis) Execute() error {
	if ca.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}

	points := make([]Point, len(ca.frequencies))
	errs := make([]error, len(ca.frequencies))

	var g errgroup.Group
	g.SetLimit(ca.workers)
	for i, freq := range ca.frequencies {
		g.Go(func() error {
			r, err := Solve(ca.Circuit, freq, ca.term)
			if err != nil {
				errs[i] = &PointError{Index: i, Frequency: freq, Err: err}
				return nil
			}
			points[i] = Point{Frequency: freq, Result: r}
			return nil
		})
	}
	_ = g.Wait()

	ca.points = nil
	ca.resetResults()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	ca.points = points
	for _, p := range points {
		solution := make(map[string]complex128, len(terminal.Variables))
		for v, value := range p.Result.Map() {
			solution[string(v)] = value
		}
		ca.StoreACResult(p.Frequency, solution)
	}

	return nil
}

// Solve runs one frequency point: element matrices, cascade, terminations.
func Solve(ckt *circuit.Circuit, freq float64, term terminal.Termination) (*terminal.Result, error) {
	matrices, err := ckt.Matrices(freq)
	if err != nil {
		return nil, err
	}

	m, err := twoport.Cascade(matrices)
	if err != nil {
		return nil, err
	}

	return terminal.Analyze(m, term)
}

func (ca *CascadeAnalysis) Frequencies() []float64 {
	return ca.frequencies
}

// Points returns the solved sweep in frequency order.
func (ca *CascadeAnalysis) Points() []Point {
	return ca.points
}
