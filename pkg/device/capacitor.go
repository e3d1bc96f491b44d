package device

import (
	"github.com/edp1096/toy-cascade/pkg/matrix"
)

type Capacitor struct {
	BaseDevice
}

var _ Passive = (*Capacitor)(nil)

func NewCapacitor(name string, nodes []int, value float64) *Capacitor {
	return &Capacitor{
		BaseDevice: BaseDevice{
			Name:  name,
			Nodes: nodes,
			Value: value,
		},
	}
}

func (c *Capacitor) GetType() string { return "C" }

// Impedance returns 1/(jωC), a pure negative reactance.
func (c *Capacitor) Impedance(freq float64) (complex128, error) {
	if err := checkFrequency(c.Name, freq); err != nil {
		return 0, err
	}
	return 1 / complex(0, omega(freq)*c.Value), nil
}

func (c *Capacitor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := checkNodes("capacitor "+c.Name, c.Nodes); err != nil {
		return err
	}
	if err := checkFrequency(c.Name, status.Frequency); err != nil {
		return err
	}

	// Y = jωC
	stampAdmittance(matrix, c.Nodes[0], c.Nodes[1], complex(0, omega(status.Frequency)*c.Value))

	return nil
}
