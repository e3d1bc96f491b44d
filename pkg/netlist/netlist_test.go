package netlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/device"
	"github.com/edp1096/toy-cascade/pkg/terminal"
	"github.com/edp1096/toy-cascade/pkg/twoport"
	"gonum.org/v1/gonum/floats/scalar"
)

const lowpass = `# second order low pass
<CIRCUIT>
n1=1 n2=2 R=8.55
n1=2 n2=0 C=3.3u   # shunt
  n1 = 2 n2 = 3 L = 1.5m

n1=3 n2=0 G=20m
</CIRCUIT>

<TERMS>
VT=5 RS=50
RL=75
LFstart=10 LFend=10e6 Nfreqs=100
</TERMS>

<OUTPUT>
Vin V
Vout dBmV
Av
</OUTPUT>
`

func TestParseString(t *testing.T) {
	n, err := ParseString(lowpass)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	want := []device.Element{
		{Node1: 1, Node2: 2, Kind: device.Resistance, Value: 8.55},
		{Node1: 2, Node2: 0, Kind: device.Capacitance, Value: 3.3e-6},
		{Node1: 2, Node2: 3, Kind: device.Inductance, Value: 1.5e-3},
		{Node1: 3, Node2: 0, Kind: device.Conductance, Value: 20e-3},
	}
	if len(n.Elements) != len(want) {
		t.Fatalf("got %d elements, want %d", len(n.Elements), len(want))
	}
	for i, e := range n.Elements {
		w := want[i]
		if e.Node1 != w.Node1 || e.Node2 != w.Node2 || e.Kind != w.Kind || !approx(e.Value, w.Value) {
			t.Errorf("element %d = %v, want %v", i, e, w)
		}
	}

	if len(n.Requests) != 3 {
		t.Fatalf("got %d requests, want 3", len(n.Requests))
	}
	if r := n.Requests[1]; r.Variable != terminal.Vout || !r.Unit.Decibel || r.Unit.Scale != 1e-3 {
		t.Errorf("request 2 = %+v, want Vout in dBmV", r)
	}
	if r := n.Requests[2]; r.Variable != terminal.Av || r.Unit.Tag != "L" {
		t.Errorf("request 3 = %+v, want Av with default unit L", r)
	}

	ckt, err := n.Circuit("lowpass")
	if err != nil {
		t.Fatalf("Circuit error: %v", err)
	}
	if ckt.OutputNode() != 3 {
		t.Errorf("OutputNode = %d, want 3", ckt.OutputNode())
	}
}

func TestTermination(t *testing.T) {
	tests := []struct {
		name  string
		terms string
		want  terminal.Termination
		err   error
	}{
		{"thevenin", "VT=5 RS=50 RL=75", terminal.NewThevenin(5, 50, 75), nil},
		{"defaults", "VT=1", terminal.NewThevenin(1, 600, 1e3), nil},
		{"norton", "IN=0.1 RS=50", terminal.NewNorton(0.1, 50, 1e3), nil},
		{"conductance", "VT=1 GS=0.5 ZL=33", terminal.NewThevenin(1, 2, 33), nil},
		{"neither", "RS=50", terminal.Termination{}, ErrNoTermination},
		{"both", "VT=1 IN=1", terminal.Termination{}, ErrConflictingTermination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseString("<CIRCUIT>\n</CIRCUIT>\n<TERMS>\n" + tt.terms + "\n</TERMS>\n")
			if err != nil {
				t.Fatalf("ParseString error: %v", err)
			}
			got, err := n.Termination(600, 1e3)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("Termination error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Termination error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Termination = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNortonResolvesToFiveVolts(t *testing.T) {
	n, err := ParseString("<CIRCUIT>\n</CIRCUIT>\n<TERMS>\nIN=0.1 RS=50\n</TERMS>\n")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	term, err := n.Termination(50, 50)
	if err != nil {
		t.Fatalf("Termination error: %v", err)
	}
	if v := term.Voltage(); v != 5 {
		t.Errorf("Voltage = %v, want 5", v)
	}
}

func TestSweep(t *testing.T) {
	def := analysis.DefaultSweep()
	tests := []struct {
		name  string
		terms string
		want  analysis.Sweep
	}{
		{"defaults", "VT=1", analysis.Sweep{Start: 1, End: 1e6, Count: 10, Scale: analysis.Linear}},
		{"linear", "Fstart=1 Fend=10 Nfreqs=10", analysis.Sweep{Start: 1, End: 10, Count: 10, Scale: analysis.Linear}},
		{"log", "LFstart=10 LFend=1k Nfreqs=3", analysis.Sweep{Start: 10, End: 1e3, Count: 3, Scale: analysis.Logarithmic}},
		{"half log", "LFstart=10 Fend=100", analysis.Sweep{Start: 1, End: 100, Count: 10, Scale: analysis.Linear}},
		{"truncated count", "Nfreqs=7.9", analysis.Sweep{Start: 1, End: 1e6, Count: 7, Scale: analysis.Linear}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseString("<CIRCUIT>\n</CIRCUIT>\n<TERMS>\n" + tt.terms + "\n</TERMS>\n")
			if err != nil {
				t.Fatalf("ParseString error: %v", err)
			}
			got, err := n.Sweep(def)
			if err != nil {
				t.Fatalf("Sweep error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Sweep = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSweepErrors(t *testing.T) {
	for _, terms := range []string{"Nfreqs=0", "Fstart=100 Fend=10", "Fstart=-1"} {
		n, err := ParseString("<CIRCUIT>\n</CIRCUIT>\n<TERMS>\n" + terms + "\n</TERMS>\n")
		if err != nil {
			t.Fatalf("%s: ParseString error: %v", terms, err)
		}
		if _, err := n.Sweep(analysis.DefaultSweep()); !errors.Is(err, analysis.ErrInvalidSweep) {
			t.Errorf("%s: Sweep error = %v, want ErrInvalidSweep", terms, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  string
	}{
		{"unknown kind", "<CIRCUIT>\nn1=1 n2=2 R=1\nn1=2 n2=0 X=100\n</CIRCUIT>\n", device.ErrInvalidComponentType, "3:1"},
		{"zero value", "<CIRCUIT>\nn1=1 n2=0 C=0\n</CIRCUIT>\n", device.ErrInvalidComponentValue, "2:1"},
		{"negative value", "<CIRCUIT>\nn1=1 n2=2 R=-5\n</CIRCUIT>\n", device.ErrInvalidComponentValue, "2:1"},
		{"no circuit", "<TERMS>\nVT=1\n</TERMS>\n", ErrMissingCircuit, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseString error = %v, want %v", err, tt.want)
			}
			if tt.line != "" && !strings.HasPrefix(err.Error(), tt.line) {
				t.Errorf("error %q does not start with position %s", err, tt.line)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	for _, input := range []string{
		"<CIRCUIT>\nn1=1 R=5\n</CIRCUIT>\n",
		"<CIRCUIT>\nn1=1 n2=2 R=5\n",
		"<CIRCUIT>\n</CIRCUIT>\n<OUTPUT>\nVin V extra\n</OUTPUT>\n",
		"<CIRCUIT>\n</CIRCUIT>\n<OUTPUT>\nVx\n</OUTPUT>\n",
		"<CIRCUIT>\nn1=1.5 n2=0 R=5\n</CIRCUIT>\n",
	} {
		if _, err := ParseString(input); err == nil {
			t.Errorf("ParseString(%q) should fail", input)
		}
	}
}

func TestTopologyIsCheckedByCircuit(t *testing.T) {
	n, err := ParseString("<CIRCUIT>\nn1=1 n2=3 R=5\n</CIRCUIT>\n")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	if _, err := n.Circuit("bad"); !errors.Is(err, twoport.ErrInvalidTopology) {
		t.Errorf("Circuit error = %v, want ErrInvalidTopology", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lowpass.net")
	if err := os.WriteFile(path, []byte(lowpass), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(n.Elements) != 4 {
		t.Errorf("got %d elements, want 4", len(n.Elements))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.net")); err == nil {
		t.Error("ParseFile of a missing file should fail")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"8.55", 8.55},
		{"3.3u", 3.3e-6},
		{"1e-9", 1e-9},
		{"10e6", 10e6},
		{"2.2meg", 2.2e6},
		{"4.7k", 4.7e3},
		{"4.7K", 4.7e3},
		{"1T", 1e12},
		{"5G", 5e9},
		{"15m", 15e-3},
		{"22n", 22e-9},
		{"10p", 10e-12},
		{"3f", 3e-15},
		{".5", 0.5},
		{"-2", -2},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.in)
		if err != nil {
			t.Errorf("ParseValue(%q) error: %v", tt.in, err)
			continue
		}
		if !approx(got, tt.want) {
			t.Errorf("ParseValue(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "abc", "1x", "1..2"} {
		if _, err := ParseValue(bad); err == nil {
			t.Errorf("ParseValue(%q) should fail", bad)
		}
	}
}

func approx(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, 1e-18, 1e-12)
}
