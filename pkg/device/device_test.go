package device

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func closeTo(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol*math.Max(1, cmplx.Abs(b))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		symbol string
		want   Kind
		ok     bool
	}{
		{"R", Resistance, true},
		{"L", Inductance, true},
		{"C", Capacitance, true},
		{"G", Conductance, true},
		{"X", 0, false},
		{"r", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.symbol)
		if tt.ok {
			if err != nil {
				t.Errorf("ParseKind(%q) error: %v", tt.symbol, err)
				continue
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidComponentType) {
			t.Errorf("ParseKind(%q) error = %v, want ErrInvalidComponentType", tt.symbol, err)
		}
	}
}

func TestImpedance(t *testing.T) {
	w := 2 * math.Pi * 1e3

	tests := []struct {
		name string
		el   Element
		want complex128
	}{
		{"resistor", Element{1, 2, Resistance, 100}, 100},
		{"inductor", Element{1, 2, Inductance, 1e-3}, complex(0, w*1e-3)},
		{"capacitor", Element{1, 0, Capacitance, 1e-6}, complex(0, -1/(w*1e-6))},
		{"conductance", Element{1, 0, Conductance, 0.01}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Impedance(tt.el, 1e3)
			if err != nil {
				t.Fatalf("Impedance error: %v", err)
			}
			if !closeTo(got, tt.want, 1e-12) {
				t.Errorf("Impedance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want error
	}{
		{"zero", Element{1, 2, Resistance, 0}, ErrInvalidComponentValue},
		{"negative", Element{1, 0, Capacitance, -1e-9}, ErrInvalidComponentValue},
		{"nan", Element{1, 2, Inductance, math.NaN()}, ErrInvalidComponentValue},
		{"inf", Element{1, 2, Resistance, math.Inf(1)}, ErrInvalidComponentValue},
		{"kind", Element{1, 2, Kind(9), 1}, ErrInvalidComponentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("x", tt.el)
			if !errors.Is(err, tt.want) {
				t.Errorf("New error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReactiveNeedsFrequency(t *testing.T) {
	for _, el := range []Element{{1, 2, Inductance, 1e-3}, {1, 0, Capacitance, 1e-6}} {
		if _, err := Impedance(el, 0); !errors.Is(err, ErrInvalidComponentValue) {
			t.Errorf("%v at f=0: error = %v, want ErrInvalidComponentValue", el, err)
		}
	}
}

func TestElementError(t *testing.T) {
	el := Element{1, 2, Resistance, -5}
	_, cause := New("R1", el)
	err := error(&ElementError{Index: 2, Element: el, Err: cause})

	if !errors.Is(err, ErrInvalidComponentValue) {
		t.Errorf("ElementError does not unwrap to its cause: %v", err)
	}
	if want := "element 3 (n1=1 n2=2 R=-5): "; len(err.Error()) < len(want) || err.Error()[:len(want)] != want {
		t.Errorf("Error() = %q, want prefix %q", err.Error(), want)
	}
}

type stampRecorder struct {
	elements map[[2]int]complex128
	rhs      map[int]complex128
}

func newStampRecorder() *stampRecorder {
	return &stampRecorder{
		elements: make(map[[2]int]complex128),
		rhs:      make(map[int]complex128),
	}
}

func (s *stampRecorder) AddComplexElement(i, j int, re, im float64) {
	s.elements[[2]int{i, j}] += complex(re, im)
}

func (s *stampRecorder) AddComplexRHS(i int, re, im float64) {
	s.rhs[i] += complex(re, im)
}

func TestStampSeries(t *testing.T) {
	rec := newStampRecorder()
	r := NewResistor("R1", []int{1, 2}, 50)
	if err := r.Stamp(rec, &CircuitStatus{Frequency: 1}); err != nil {
		t.Fatalf("Stamp error: %v", err)
	}

	want := map[[2]int]complex128{
		{1, 1}: 0.02, {1, 2}: -0.02,
		{2, 1}: -0.02, {2, 2}: 0.02,
	}
	for k, v := range want {
		if !closeTo(rec.elements[k], v, 1e-12) {
			t.Errorf("element %v = %v, want %v", k, rec.elements[k], v)
		}
	}
}

func TestStampShunt(t *testing.T) {
	rec := newStampRecorder()
	c := NewCapacitor("C1", []int{2, 0}, 1e-6)
	if err := c.Stamp(rec, &CircuitStatus{Frequency: 1e3}); err != nil {
		t.Fatalf("Stamp error: %v", err)
	}

	if len(rec.elements) != 1 {
		t.Fatalf("shunt stamped %d entries, want 1", len(rec.elements))
	}
	want := complex(0, 2*math.Pi*1e3*1e-6)
	if got := rec.elements[[2]int{2, 2}]; !closeTo(got, want, 1e-12) {
		t.Errorf("Y(2,2) = %v, want %v", got, want)
	}
}

func TestStampMatchesImpedance(t *testing.T) {
	devices := []Passive{
		NewResistor("R1", []int{1, 0}, 75),
		NewInductor("L1", []int{1, 0}, 2e-3),
		NewCapacitor("C1", []int{1, 0}, 4.7e-9),
		NewConductance("G1", []int{1, 0}, 0.5),
		NewFixedImpedance("Z1", []int{1, 0}, complex(30, -40)),
	}

	for _, dev := range devices {
		rec := newStampRecorder()
		if err := dev.Stamp(rec, &CircuitStatus{Frequency: 5e4}); err != nil {
			t.Fatalf("%s: Stamp error: %v", dev.GetName(), err)
		}
		z, err := dev.Impedance(5e4)
		if err != nil {
			t.Fatalf("%s: Impedance error: %v", dev.GetName(), err)
		}
		if got := rec.elements[[2]int{1, 1}]; !closeTo(got, 1/z, 1e-12) {
			t.Errorf("%s: stamped %v, want 1/Z = %v", dev.GetName(), got, 1/z)
		}
	}
}

func TestCurrentSourceStamp(t *testing.T) {
	rec := newStampRecorder()
	src := NewCurrentSource("I1", []int{1, 0}, complex(0.1, 0))
	if err := src.Stamp(rec, &CircuitStatus{Frequency: 1}); err != nil {
		t.Fatalf("Stamp error: %v", err)
	}
	if got := rec.rhs[1]; got != 0.1 {
		t.Errorf("rhs[1] = %v, want 0.1", got)
	}
	if _, ok := rec.rhs[0]; ok {
		t.Errorf("ground row must not be stamped")
	}
}

func TestFixedImpedanceRejectsShort(t *testing.T) {
	z := NewFixedImpedance("Rs", []int{1, 0}, 0)
	if err := z.Stamp(newStampRecorder(), &CircuitStatus{Frequency: 1}); err == nil {
		t.Error("expected error stamping a zero impedance")
	}
}
