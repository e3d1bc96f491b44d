package terminal

import "fmt"

type SourceKind int

const (
	Thevenin SourceKind = iota
	Norton
)

func (k SourceKind) String() string {
	if k == Norton {
		return "norton"
	}
	return "thevenin"
}

// Termination describes the source driving port 1 and the load on port 2.
// Source is a voltage for a Thevenin source and a current for a Norton one.
type Termination struct {
	Kind            SourceKind
	Source          complex128
	SourceImpedance complex128
	LoadImpedance   complex128
}

func NewThevenin(vt, rs, rl complex128) Termination {
	return Termination{Kind: Thevenin, Source: vt, SourceImpedance: rs, LoadImpedance: rl}
}

func NewNorton(in, rs, rl complex128) Termination {
	return Termination{Kind: Norton, Source: in, SourceImpedance: rs, LoadImpedance: rl}
}

// Voltage is the Thevenin equivalent source voltage, In·Rs for a Norton source.
func (t Termination) Voltage() complex128 {
	if t.Kind == Norton {
		return t.Source * t.SourceImpedance
	}
	return t.Source
}

func (t Termination) String() string {
	return fmt.Sprintf("%s source=%v rs=%v rl=%v", t.Kind, t.Source, t.SourceImpedance, t.LoadImpedance)
}
