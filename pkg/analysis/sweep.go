package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/edp1096/toy-cascade/internal/consts"
)

var ErrInvalidSweep = errors.New("invalid frequency sweep")

type Scale int

const (
	Linear Scale = iota
	Logarithmic
)

func (s Scale) String() string {
	if s == Logarithmic {
		return "log"
	}
	return "lin"
}

// Sweep describes count frequencies from Start to End inclusive.
type Sweep struct {
	Start float64
	End   float64
	Count int
	Scale Scale
}

func DefaultSweep() Sweep {
	return Sweep{
		Start: consts.SweepStart,
		End:   consts.SweepEnd,
		Count: consts.SweepCount,
		Scale: Linear,
	}
}

func (s Sweep) Validate() error {
	switch {
	case s.Count < 1:
		return fmt.Errorf("%w: count %d must be at least 1", ErrInvalidSweep, s.Count)
	case !finitePositive(s.Start) || !finitePositive(s.End):
		return fmt.Errorf("%w: bounds %g..%g must be positive", ErrInvalidSweep, s.Start, s.End)
	case s.End < s.Start:
		return fmt.Errorf("%w: end %g is below start %g", ErrInvalidSweep, s.End, s.Start)
	}
	return nil
}

// Frequencies generates the ascending sweep points. Both endpoints are
// exact; a single point sweep is just Start.
func (s Sweep) Frequencies() ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Count == 1 {
		return []float64{s.Start}, nil
	}

	freqs := make([]float64, s.Count)
	switch s.Scale {
	case Logarithmic:
		// f = start·(end/start)^t, t evenly spaced over [0, 1]
		floats.Span(freqs, 0, 1)
		ratio := s.End / s.Start
		for i, t := range freqs {
			freqs[i] = s.Start * math.Pow(ratio, t)
		}
	default:
		floats.Span(freqs, s.Start, s.End)
	}

	freqs[0] = s.Start
	freqs[s.Count-1] = s.End
	return freqs, nil
}

func (s Sweep) String() string {
	return fmt.Sprintf("%s %g..%g Hz, %d points", s.Scale, s.Start, s.End, s.Count)
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
