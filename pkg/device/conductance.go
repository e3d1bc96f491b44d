package device

import (
	"github.com/edp1096/toy-cascade/pkg/matrix"
)

// Conductance is a resistive element given by its admittance G in siemens.
type Conductance struct {
	BaseDevice
}

var _ Passive = (*Conductance)(nil)

func NewConductance(name string, nodes []int, value float64) *Conductance {
	return &Conductance{
		BaseDevice: BaseDevice{
			Name:  name,
			Nodes: nodes,
			Value: value,
		},
	}
}

func (g *Conductance) GetType() string { return "G" }

// Impedance returns 1/G.
func (g *Conductance) Impedance(freq float64) (complex128, error) {
	if err := checkFrequency(g.Name, freq); err != nil {
		return 0, err
	}
	return complex(1/g.Value, 0), nil
}

func (g *Conductance) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := checkNodes("conductance "+g.Name, g.Nodes); err != nil {
		return err
	}

	stampAdmittance(matrix, g.Nodes[0], g.Nodes[1], complex(g.Value, 0))

	return nil
}
