package device

import (
	"github.com/edp1096/toy-cascade/pkg/matrix"
)

type Inductor struct {
	BaseDevice
}

var _ Passive = (*Inductor)(nil)

func NewInductor(name string, nodes []int, value float64) *Inductor {
	return &Inductor{
		BaseDevice: BaseDevice{
			Name:  name,
			Value: value,
			Nodes: nodes,
		},
	}
}

func (l *Inductor) GetType() string { return "L" }

// Impedance returns jωL.
func (l *Inductor) Impedance(freq float64) (complex128, error) {
	if err := checkFrequency(l.Name, freq); err != nil {
		return 0, err
	}
	return complex(0, omega(freq)*l.Value), nil
}

func (l *Inductor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := checkNodes("inductor "+l.Name, l.Nodes); err != nil {
		return err
	}
	if err := checkFrequency(l.Name, status.Frequency); err != nil {
		return err
	}

	// Y = 1/(jωL) = -j/(ωL)
	stampAdmittance(matrix, l.Nodes[0], l.Nodes[1], complex(0, -1/(omega(status.Frequency)*l.Value)))

	return nil
}
