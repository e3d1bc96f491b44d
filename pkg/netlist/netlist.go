// Package netlist reads .net files. Parsing and validation happen here
// once; the returned Netlist only holds well formed records.
package netlist

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/edp1096/toy-cascade/pkg/circuit"
	"github.com/edp1096/toy-cascade/pkg/device"
	"github.com/edp1096/toy-cascade/pkg/output"
)

var ErrMissingCircuit = errors.New("missing <CIRCUIT> block")

// Error locates a validation failure in the source file.
type Error struct {
	Pos lexer.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Netlist struct {
	Elements []device.Element
	Terms    map[string]float64 // last value wins for repeated keys
	Requests []output.Request
}

func lower(file *File) (*Netlist, error) {
	n := &Netlist{Terms: make(map[string]float64)}
	hasCircuit := false

	for _, section := range file.Sections {
		switch {
		case section.Circuit != nil:
			hasCircuit = true
			for _, comp := range section.Circuit.Components {
				elem, err := lowerComponent(comp)
				if err != nil {
					return nil, &Error{Pos: comp.Pos, Err: err}
				}
				n.Elements = append(n.Elements, elem)
			}

		case section.Terms != nil:
			for _, term := range section.Terms.Terms {
				value, err := ParseValue(term.Value)
				if err != nil {
					return nil, &Error{Pos: term.Pos, Err: fmt.Errorf("%s: %w", term.Key, err)}
				}
				n.Terms[term.Key] = value
			}

		case section.Output != nil:
			for _, line := range section.Output.Lines {
				req, err := output.NewRequest(line.Variable, line.Unit)
				if err != nil {
					return nil, &Error{Pos: line.Pos, Err: err}
				}
				n.Requests = append(n.Requests, req)
			}
		}
	}

	if !hasCircuit {
		return nil, ErrMissingCircuit
	}
	return n, nil
}

func lowerComponent(comp *Component) (device.Element, error) {
	kind, err := device.ParseKind(comp.Kind)
	if err != nil {
		return device.Element{}, err
	}

	n1, err := parseNode(comp.Node1)
	if err != nil {
		return device.Element{}, err
	}
	n2, err := parseNode(comp.Node2)
	if err != nil {
		return device.Element{}, err
	}

	value, err := ParseValue(comp.Value)
	if err != nil {
		return device.Element{}, fmt.Errorf("%w: %v", device.ErrInvalidComponentValue, err)
	}

	elem := device.Element{Node1: n1, Node2: n2, Kind: kind, Value: value}
	if _, err := device.New(kind.String(), elem); err != nil {
		return device.Element{}, err
	}
	return elem, nil
}

// Circuit builds the ladder described by the CIRCUIT block.
func (n *Netlist) Circuit(name string) (*circuit.Circuit, error) {
	return circuit.New(name, n.Elements)
}
