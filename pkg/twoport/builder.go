package twoport

import (
	"errors"
	"fmt"
)

var ErrInvalidTopology = errors.New("invalid topology")

// InputNode is the node the source drives; every chain starts there.
const InputNode = 1

// Element is what the builder needs from a circuit element.
type Element interface {
	GetNodes() []int
	Impedance(freq float64) (complex128, error)
}

// Build returns the matrix of a single element at freq. An element whose
// second node is ground is a shunt [[1, 0], [1/Z, 1]], anything else is a
// series impedance [[1, Z], [0, 1]].
func Build(el Element, freq float64) (*Matrix, error) {
	nodes := el.GetNodes()
	if len(nodes) != 2 {
		return nil, fmt.Errorf("%w: element has %d nodes", ErrInvalidTopology, len(nodes))
	}

	z, err := el.Impedance(freq)
	if err != nil {
		return nil, err
	}

	var m Matrix
	if nodes[1] == 0 {
		m = Shunt(1 / z)
	} else {
		m = Series(z)
	}
	return &m, nil
}

// TopologyError reports an element that breaks the ladder pattern.
type TopologyError struct {
	Index  int // 0-based position in the chain
	Node1  int
	Node2  int
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("%v at element %d (n1=%d n2=%d): %s", ErrInvalidTopology, e.Index+1, e.Node1, e.Node2, e.Reason)
}

func (e *TopologyError) Unwrap() error { return ErrInvalidTopology }

// Chain is an ordered ladder whose connectivity has been checked once.
// Element order is cascade order: each element either shunts the current
// node to ground or steps in series from the current node to the next one.
// No other topology is solved.
type Chain struct {
	elements []Element
	output   int
}

func NewChain(elements []Element) (*Chain, error) {
	node := InputNode
	for i, el := range elements {
		nodes := el.GetNodes()
		if len(nodes) != 2 {
			return nil, &TopologyError{Index: i, Reason: fmt.Sprintf("expected 2 nodes, got %d", len(nodes))}
		}

		n1, n2 := nodes[0], nodes[1]
		if n1 != node {
			return nil, &TopologyError{Index: i, Node1: n1, Node2: n2, Reason: fmt.Sprintf("expected n1=%d", node)}
		}
		if n2 == 0 {
			continue
		}
		if n2 != node+1 {
			return nil, &TopologyError{Index: i, Node1: n1, Node2: n2, Reason: fmt.Sprintf("expected n2=0 or n2=%d", node+1)}
		}
		node = n2
	}

	return &Chain{elements: elements, output: node}, nil
}

func (c *Chain) Len() int { return len(c.elements) }

// OutputNode is the node the load is connected to.
func (c *Chain) OutputNode() int { return c.output }

// Matrices builds every element matrix at freq, in chain order.
func (c *Chain) Matrices(freq float64) ([]*Matrix, error) {
	matrices := make([]*Matrix, len(c.elements))
	for i, el := range c.elements {
		m, err := Build(el, freq)
		if err != nil {
			return nil, fmt.Errorf("element %d at f=%g: %w", i+1, freq, err)
		}
		matrices[i] = m
	}
	return matrices, nil
}
