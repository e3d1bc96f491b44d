package device

import (
	"errors"
	"fmt"
	"math"

	"github.com/edp1096/toy-cascade/pkg/matrix"
)

var (
	ErrInvalidComponentType  = errors.New("invalid component type")
	ErrInvalidComponentValue = errors.New("invalid component value")
)

type Kind int

const (
	Resistance Kind = iota
	Inductance
	Capacitance
	Conductance
)

var kindSymbols = [...]string{
	Resistance:  "R",
	Inductance:  "L",
	Capacitance: "C",
	Conductance: "G",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindSymbols) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindSymbols[k]
}

func (k Kind) valid() bool {
	return k >= Resistance && k <= Conductance
}

// ParseKind maps a netlist symbol (R, L, C, G) to its Kind.
func ParseKind(symbol string) (Kind, error) {
	for k, s := range kindSymbols {
		if s == symbol {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidComponentType, symbol)
}

// Element is one two-terminal primitive of a cascade netlist. Node2 == 0
// marks a shunt to ground; any other Node2 is a series element.
type Element struct {
	Node1 int
	Node2 int
	Kind  Kind
	Value float64
}

func (e Element) IsShunt() bool { return e.Node2 == 0 }

func (e Element) String() string {
	return fmt.Sprintf("n1=%d n2=%d %s=%g", e.Node1, e.Node2, e.Kind, e.Value)
}

// ElementError attaches the position of an element within its circuit.
type ElementError struct {
	Index   int // 0-based position in the circuit
	Element Element
	Err     error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d (%s): %v", e.Index+1, e.Element, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

type Device interface {
	GetName() string
	GetType() string
	GetNodes() []int
	GetValue() float64
	Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error
}

// Passive is a two-terminal device with a frequency dependent impedance.
type Passive interface {
	Device
	Impedance(freq float64) (complex128, error)
}

type CircuitStatus struct {
	Frequency float64 // AC frequency (Hz)
}

type BaseDevice struct {
	Name  string
	Nodes []int
	Value float64
}

func (d *BaseDevice) GetName() string {
	return d.Name
}

func (d *BaseDevice) GetNodes() []int {
	return d.Nodes
}

func (d *BaseDevice) GetValue() float64 {
	return d.Value
}

// New creates the device modelling e.
func New(name string, e Element) (Passive, error) {
	if !e.Kind.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidComponentType, e.Kind)
	}
	if !positive(e.Value) {
		return nil, fmt.Errorf("%w: %s=%g must be positive", ErrInvalidComponentValue, e.Kind, e.Value)
	}

	nodes := []int{e.Node1, e.Node2}
	switch e.Kind {
	case Resistance:
		return NewResistor(name, nodes, e.Value), nil
	case Inductance:
		return NewInductor(name, nodes, e.Value), nil
	case Capacitance:
		return NewCapacitor(name, nodes, e.Value), nil
	default:
		return NewConductance(name, nodes, e.Value), nil
	}
}

// Impedance is a shortcut for New(...).Impedance(freq).
func Impedance(e Element, freq float64) (complex128, error) {
	dev, err := New(e.Kind.String(), e)
	if err != nil {
		return 0, err
	}
	return dev.Impedance(freq)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func checkFrequency(name string, freq float64) error {
	if !positive(freq) {
		return fmt.Errorf("%w: %s at f=%g, frequency must be positive", ErrInvalidComponentValue, name, freq)
	}
	return nil
}

func omega(freq float64) float64 {
	return 2 * math.Pi * freq
}

// stampAdmittance writes y between n1 and n2 in the usual nodal pattern.
func stampAdmittance(m matrix.DeviceMatrix, n1, n2 int, y complex128) {
	g, b := real(y), imag(y)
	if n1 != 0 {
		m.AddComplexElement(n1, n1, g, b)
		if n2 != 0 {
			m.AddComplexElement(n1, n2, -g, -b)
		}
	}
	if n2 != 0 {
		if n1 != 0 {
			m.AddComplexElement(n2, n1, -g, -b)
		}
		m.AddComplexElement(n2, n2, g, b)
	}
}

func checkNodes(name string, nodes []int) error {
	if len(nodes) != 2 {
		return fmt.Errorf("%s: requires exactly 2 nodes", name)
	}
	return nil
}
