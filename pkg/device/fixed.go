package device

import (
	"fmt"
	"math/cmplx"

	"github.com/edp1096/toy-cascade/pkg/matrix"
)

// FixedImpedance is a frequency independent, possibly complex, impedance.
// Source and load terminations are modelled with it.
type FixedImpedance struct {
	BaseDevice
	z complex128
}

var _ Passive = (*FixedImpedance)(nil)

func NewFixedImpedance(name string, nodes []int, z complex128) *FixedImpedance {
	return &FixedImpedance{
		BaseDevice: BaseDevice{
			Name:  name,
			Nodes: nodes,
			Value: cmplx.Abs(z),
		},
		z: z,
	}
}

func (f *FixedImpedance) GetType() string { return "Z" }

func (f *FixedImpedance) Impedance(float64) (complex128, error) {
	return f.z, nil
}

func (f *FixedImpedance) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := checkNodes("impedance "+f.Name, f.Nodes); err != nil {
		return err
	}
	if f.z == 0 || cmplx.IsInf(f.z) || cmplx.IsNaN(f.z) {
		return fmt.Errorf("impedance %s: cannot stamp Z=%v", f.Name, f.z)
	}

	stampAdmittance(matrix, f.Nodes[0], f.Nodes[1], 1/f.z)

	return nil
}
