package netlist

import (
	"errors"
	"fmt"
	"math"

	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/terminal"
)

var (
	ErrNoTermination          = errors.New("no source given: need VT or IN in <TERMS>")
	ErrConflictingTermination = errors.New("both VT and IN given in <TERMS>")
)

// Term lookups report whether the key was present.
func (n *Netlist) term(key string) (float64, bool) {
	v, ok := n.Terms[key]
	return v, ok
}

// Termination resolves the source and load. Exactly one of VT and IN must
// be given. RS (or its reciprocal GS) and RL (or ZL) fall back to rs and rl.
func (n *Netlist) Termination(rs, rl float64) (terminal.Termination, error) {
	vt, hasVT := n.term("VT")
	in, hasIN := n.term("IN")
	switch {
	case hasVT && hasIN:
		return terminal.Termination{}, ErrConflictingTermination
	case !hasVT && !hasIN:
		return terminal.Termination{}, ErrNoTermination
	}

	if v, ok := n.term("RS"); ok {
		rs = v
	} else if g, ok := n.term("GS"); ok {
		if g == 0 {
			return terminal.Termination{}, fmt.Errorf("GS must be non-zero")
		}
		rs = 1 / g
	}

	if v, ok := n.term("RL"); ok {
		rl = v
	} else if v, ok := n.term("ZL"); ok {
		rl = v
	}

	if hasIN {
		return terminal.NewNorton(complex(in, 0), complex(rs, 0), complex(rl, 0)), nil
	}
	return terminal.NewThevenin(complex(vt, 0), complex(rs, 0), complex(rl, 0)), nil
}

// Sweep resolves the frequency sweep over def. LFstart and LFend together
// select a logarithmic sweep; otherwise Fstart and Fend give a linear one.
// Nfreqs is truncated to an integer.
func (n *Netlist) Sweep(def analysis.Sweep) (analysis.Sweep, error) {
	s := def
	s.Scale = analysis.Linear

	lfStart, hasLFStart := n.term("LFstart")
	lfEnd, hasLFEnd := n.term("LFend")
	if hasLFStart && hasLFEnd {
		s.Start, s.End = lfStart, lfEnd
		s.Scale = analysis.Logarithmic
	} else {
		if v, ok := n.term("Fstart"); ok {
			s.Start = v
		}
		if v, ok := n.term("Fend"); ok {
			s.End = v
		}
	}

	if v, ok := n.term("Nfreqs"); ok {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return analysis.Sweep{}, fmt.Errorf("%w: Nfreqs=%g", analysis.ErrInvalidSweep, v)
		}
		s.Count = int(v)
	}

	if err := s.Validate(); err != nil {
		return analysis.Sweep{}, err
	}
	return s, nil
}
