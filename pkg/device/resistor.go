package device

import (
	"github.com/edp1096/toy-cascade/pkg/matrix"
)

type Resistor struct {
	BaseDevice
}

var _ Passive = (*Resistor)(nil)

func NewResistor(name string, nodes []int, value float64) *Resistor {
	return &Resistor{
		BaseDevice: BaseDevice{
			Name:  name,
			Nodes: nodes,
			Value: value,
		},
	}
}

func (r *Resistor) GetType() string { return "R" }

func (r *Resistor) Impedance(freq float64) (complex128, error) {
	if err := checkFrequency(r.Name, freq); err != nil {
		return 0, err
	}
	return complex(r.Value, 0), nil
}

func (r *Resistor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := checkNodes("resistor "+r.Name, r.Nodes); err != nil {
		return err
	}

	g := 1.0 / r.Value // Conductance. G = 1/R
	stampAdmittance(matrix, r.Nodes[0], r.Nodes[1], complex(g, 0))

	return nil
}
