package device

import (
	"math/cmplx"

	"github.com/edp1096/toy-cascade/pkg/matrix"
)

// CurrentSource injects a phasor current into Nodes[0] and draws it from
// Nodes[1]. It drives the nodal check with the Norton form of the source.
type CurrentSource struct {
	BaseDevice
	current complex128
}

var _ Device = (*CurrentSource)(nil)

func NewCurrentSource(name string, nodes []int, current complex128) *CurrentSource {
	return &CurrentSource{
		BaseDevice: BaseDevice{
			Name:  name,
			Nodes: nodes,
			Value: cmplx.Abs(current),
		},
		current: current,
	}
}

func (i *CurrentSource) GetType() string { return "I" }

func (i *CurrentSource) Current() complex128 { return i.current }

func (i *CurrentSource) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := checkNodes("current source "+i.Name, i.Nodes); err != nil {
		return err
	}
	n1, n2 := i.Nodes[0], i.Nodes[1]

	// By KCL, current flows into n1 and out of n2
	if n1 != 0 {
		matrix.AddComplexRHS(n1, real(i.current), imag(i.current))
	}
	if n2 != 0 {
		matrix.AddComplexRHS(n2, -real(i.current), -imag(i.current))
	}

	return nil
}
