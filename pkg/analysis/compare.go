package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/edp1096/toy-cascade/pkg/terminal"
)

var ErrCheckFailed = errors.New("cascade and nodal solutions disagree")

// Deviation is the relative difference of one quantity at one frequency.
type Deviation struct {
	Frequency float64
	Variable  terminal.Variable
	Cascade   complex128
	Nodal     complex128
	Relative  float64
}

type Report struct {
	Points    int
	Tolerance float64
	Worst     Deviation
}

func (r *Report) Passed() bool {
	return r.Worst.Relative <= r.Tolerance
}

// Compare checks the port 1 quantities (Vin, Iin, Zin) of a cascade sweep
// against the nodal solution of the same circuit. The report is returned
// even when the check fails.
func Compare(cascade []Point, nodal []NodalPoint, tol float64) (*Report, error) {
	if len(cascade) != len(nodal) {
		return nil, fmt.Errorf("comparing %d cascade points with %d nodal points", len(cascade), len(nodal))
	}

	report := &Report{Points: len(cascade), Tolerance: tol}
	for i, cp := range cascade {
		np := nodal[i]
		if cp.Frequency != np.Frequency {
			return nil, fmt.Errorf("point %d: frequency %g differs from %g", i+1, cp.Frequency, np.Frequency)
		}

		pairs := []struct {
			v    terminal.Variable
			a, b complex128
		}{
			{terminal.Vin, cp.Result.Vin, np.Vin},
			{terminal.Iin, cp.Result.Iin, np.Iin},
			{terminal.Zin, cp.Result.Zin, np.Zin},
		}
		for _, p := range pairs {
			rel := relative(p.a, p.b)
			if rel > report.Worst.Relative || report.Worst.Variable == "" {
				report.Worst = Deviation{
					Frequency: cp.Frequency,
					Variable:  p.v,
					Cascade:   p.a,
					Nodal:     p.b,
					Relative:  rel,
				}
			}
		}
	}

	if !report.Passed() {
		return report, fmt.Errorf("%w: %s at f=%g Hz deviates by %.3g (tolerance %.3g)",
			ErrCheckFailed, report.Worst.Variable, report.Worst.Frequency, report.Worst.Relative, tol)
	}
	return report, nil
}

func relative(a, b complex128) float64 {
	scale := math.Max(cmplx.Abs(a), cmplx.Abs(b))
	if scale == 0 {
		return 0
	}
	rel := cmplx.Abs(a-b) / scale
	if math.IsNaN(rel) {
		return math.Inf(1)
	}
	return rel
}
