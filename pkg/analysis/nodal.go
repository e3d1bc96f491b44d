package analysis

import (
	"fmt"

	"github.com/edp1096/toy-cascade/pkg/circuit"
	"github.com/edp1096/toy-cascade/pkg/terminal"
)

// NodalPoint is one frequency of the nodal reference solution.
type NodalPoint struct {
	Frequency float64
	Vin       complex128 // input node voltage
	Iin       complex128 // current delivered by the source
	Zin       complex128
	Vload     complex128 // voltage across the load
}

// NodalAnalysis solves the same terminated ladder with the sparse nodal
// solver. It serves as an independent check of the cascade result.
type NodalAnalysis struct {
	BaseAnalysis
	sweep       Sweep
	term        terminal.Termination
	frequencies []float64
	points      []NodalPoint
}

func NewNodal(sweep Sweep, term terminal.Termination) *NodalAnalysis {
	return &NodalAnalysis{
		BaseAnalysis: *NewBaseAnalysis(),
		sweep:        sweep,
		term:         term,
	}
}

func (na *NodalAnalysis) Setup(ckt *circuit.Circuit) error {
	freqs, err := na.sweep.Frequencies()
	if err != nil {
		return err
	}

	na.Circuit = ckt
	na.frequencies = freqs
	return nil
}

func (na *NodalAnalysis) Execute() error {
	if na.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}

	vt := na.term.Voltage()
	rs, rl := na.term.SourceImpedance, na.term.LoadImpedance
	out := na.Circuit.OutputNode()

	na.points = make([]NodalPoint, 0, len(na.frequencies))
	na.resetResults()
	for i, freq := range na.frequencies {
		voltages, err := na.Circuit.SolveNodal(freq, vt, rs, rl)
		if err != nil {
			return &PointError{Index: i, Frequency: freq, Err: err}
		}

		v1 := voltages[1]
		iin := (vt - v1) / rs
		if iin == 0 {
			return &PointError{Index: i, Frequency: freq, Err: &terminal.DegenerateError{Quantity: "Iin"}}
		}

		p := NodalPoint{
			Frequency: freq,
			Vin:       v1,
			Iin:       iin,
			Zin:       v1 / iin,
			Vload:     voltages[out],
		}
		na.points = append(na.points, p)

		na.StoreACResult(freq, map[string]complex128{
			"Vin":   p.Vin,
			"Iin":   p.Iin,
			"Zin":   p.Zin,
			"Vload": p.Vload,
		})
	}

	return nil
}

func (na *NodalAnalysis) Points() []NodalPoint {
	return na.points
}
