package circuit

import (
	"errors"
	"fmt"

	"github.com/edp1096/toy-cascade/pkg/device"
	"github.com/edp1096/toy-cascade/pkg/matrix"
	"github.com/edp1096/toy-cascade/pkg/twoport"
)

var ErrNoSourceImpedance = errors.New("nodal solution needs a non-zero source impedance")

// Circuit is an ordered ladder of passive devices. It is read only once
// built and may be shared by concurrent sweep workers.
type Circuit struct {
	name     string
	elements []device.Element
	devices  []device.Passive
	chain    *twoport.Chain
}

// New validates every element and the chain topology. Errors carry the
// position of the offending element.
func New(name string, elements []device.Element) (*Circuit, error) {
	c := &Circuit{
		name:     name,
		elements: elements,
		devices:  make([]device.Passive, 0, len(elements)),
	}

	chained := make([]twoport.Element, 0, len(elements))
	for i, elem := range elements {
		dev, err := device.New(fmt.Sprintf("%s%d", elem.Kind, i+1), elem)
		if err != nil {
			return nil, &device.ElementError{Index: i, Element: elem, Err: err}
		}
		c.devices = append(c.devices, dev)
		chained = append(chained, dev)
	}

	chain, err := twoport.NewChain(chained)
	if err != nil {
		return nil, err
	}
	c.chain = chain

	return c, nil
}

// Matrices returns the ABCD matrix of every element at freq, in cascade order.
func (c *Circuit) Matrices(freq float64) ([]*twoport.Matrix, error) {
	return c.chain.Matrices(freq)
}

// SolveNodal solves the terminated ladder at freq by nodal analysis. The
// source is stamped in Norton form, Vt/Rs in parallel with Rs, and the load
// sits on the output node. The returned slice is indexed by node, with
// index 0 as ground.
func (c *Circuit) SolveNodal(freq float64, vt, rs, rl complex128) ([]complex128, error) {
	if rs == 0 {
		return nil, ErrNoSourceImpedance
	}

	size := c.GetNumNodes()
	mat, err := matrix.NewMatrix(size)
	if err != nil {
		return nil, err
	}
	defer mat.Destroy()

	status := &device.CircuitStatus{Frequency: freq}
	out := c.OutputNode()

	devices := make([]device.Device, 0, len(c.devices)+3)
	devices = append(devices,
		device.NewCurrentSource("In", []int{twoport.InputNode, 0}, vt/rs),
		device.NewFixedImpedance("Rs", []int{twoport.InputNode, 0}, rs),
		device.NewFixedImpedance("Rl", []int{out, 0}, rl),
	)
	for _, dev := range c.devices {
		devices = append(devices, dev)
	}

	for _, dev := range devices {
		if err := dev.Stamp(mat, status); err != nil {
			return nil, fmt.Errorf("stamping device %s: %w", dev.GetName(), err)
		}
	}

	if err := mat.Solve(); err != nil {
		return nil, fmt.Errorf("nodal solve at f=%g: %w", freq, err)
	}

	voltages := make([]complex128, size+1)
	for i := 1; i <= size; i++ {
		re, im := mat.GetComplexSolution(i)
		voltages[i] = complex(re, im)
	}
	return voltages, nil
}

func (c *Circuit) Name() string {
	return c.name
}

func (c *Circuit) Elements() []device.Element {
	return c.elements
}

func (c *Circuit) GetDevices() []device.Passive {
	return c.devices
}

// OutputNode is the node the load is connected to.
func (c *Circuit) OutputNode() int {
	return c.chain.OutputNode()
}

// GetNumNodes counts the non-ground nodes of the ladder.
func (c *Circuit) GetNumNodes() int {
	return c.chain.OutputNode()
}
