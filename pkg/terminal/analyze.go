// Package terminal derives port voltages, currents, powers and gains from a
// cascaded ABCD matrix and its source and load terminations.
package terminal

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/edp1096/toy-cascade/pkg/twoport"
)

var ErrDegenerateTermination = errors.New("degenerate termination")

// DegenerateError names the quantity that divided by zero or left the
// finite range.
type DegenerateError struct {
	Quantity string
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDegenerateTermination, e.Quantity)
}

func (e *DegenerateError) Unwrap() error { return ErrDegenerateTermination }

// Result holds the terminal quantities at one frequency.
type Result struct {
	Zin, Zout complex128
	Vin, Vout complex128
	Iin, Iout complex128
	Pin, Pout complex128
	Av, Ai    complex128
}

// Value returns the quantity named by v.
func (r *Result) Value(v Variable) (complex128, bool) {
	switch v {
	case Zin:
		return r.Zin, true
	case Zout:
		return r.Zout, true
	case Vin:
		return r.Vin, true
	case Vout:
		return r.Vout, true
	case Iin:
		return r.Iin, true
	case Iout:
		return r.Iout, true
	case Pin:
		return r.Pin, true
	case Pout:
		return r.Pout, true
	case Av:
		return r.Av, true
	case Ai:
		return r.Ai, true
	}
	return 0, false
}

func (r *Result) Map() map[Variable]complex128 {
	values := make(map[Variable]complex128, len(Variables))
	for _, v := range Variables {
		values[v], _ = r.Value(v)
	}
	return values
}

// Analyze applies the terminations to the cascaded matrix m.
//
//	Zin  = (A·Rl + B) / (C·Rl + D)
//	Zout = (D·Rs + B) / (C·Rs + A)
//	Vin  = Vt·Zin / (Zin + Rs)
//	Iin  = Vt / (Zin + Rs)
//	Vout = A·Vin + B·Iin
//	Iout = C·Vin + D·Iin
//	Pin  = Vin·conj(Iin)
//	Pout = Vout·conj(Iout)
//	Av   = Vout / Vin
//	Ai   = Iout / Iin
func Analyze(m twoport.Matrix, t Termination) (*Result, error) {
	a, b, c, d := m.A(), m.B(), m.C(), m.D()
	vt := t.Voltage()
	rs, rl := t.SourceImpedance, t.LoadImpedance

	zin, err := divide("Zin", a*rl+b, c*rl+d)
	if err != nil {
		return nil, err
	}
	zout, err := divide("Zout", d*rs+b, c*rs+a)
	if err != nil {
		return nil, err
	}

	loop := zin + rs
	if loop == 0 {
		return nil, &DegenerateError{Quantity: "Zin+Rs"}
	}

	r := &Result{Zin: zin, Zout: zout}
	r.Vin = vt * zin / loop
	r.Iin = vt / loop
	r.Vout = a*r.Vin + b*r.Iin
	r.Iout = c*r.Vin + d*r.Iin
	r.Pin = r.Vin * cmplx.Conj(r.Iin)
	r.Pout = r.Vout * cmplx.Conj(r.Iout)

	if r.Av, err = divide("Vin", r.Vout, r.Vin); err != nil {
		return nil, err
	}
	if r.Ai, err = divide("Iin", r.Iout, r.Iin); err != nil {
		return nil, err
	}

	if err := r.checkFinite(); err != nil {
		return nil, err
	}
	return r, nil
}

func divide(quantity string, num, den complex128) (complex128, error) {
	if den == 0 {
		return 0, &DegenerateError{Quantity: quantity}
	}
	return num / den, nil
}

func (r *Result) checkFinite() error {
	for _, v := range Variables {
		x, _ := r.Value(v)
		if cmplx.IsNaN(x) || cmplx.IsInf(x) {
			return &DegenerateError{Quantity: string(v)}
		}
	}
	return nil
}
