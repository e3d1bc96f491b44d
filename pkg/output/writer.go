package output

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"strings"

	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/terminal"
)

// Writer emits the header, the unit row and one row per frequency.
//
//	      Freq,    Re(Vin),    Im(Vin)
//	        Hz,          V,          V
//	 1.000e+00,  6.667e+00,  0.000e+00,
type Writer struct {
	w        io.Writer
	requests []Request
}

func NewWriter(w io.Writer, requests []Request) *Writer {
	return &Writer{w: w, requests: requests}
}

// WriteHeader writes the column titles and the unit row.
func (w *Writer) WriteHeader() error {
	headers := []string{"      Freq"}
	units := []string{"        Hz"}

	for _, req := range w.requests {
		name := string(req.Variable)
		if req.Unit.Decibel {
			headers = append(headers, column("|"+name+"|"), column("/_"+name))
			units = append(units, column(req.Unit.Label(req.Variable)), column("Rads"))
			continue
		}
		headers = append(headers, column("Re("+name+")"), column("Im("+name+")"))
		units = append(units, column(req.Unit.Tag), column(req.Unit.Tag))
	}

	_, err := fmt.Fprintf(w.w, "%s\n%s\n", strings.Join(headers, ","), strings.Join(units, ","))
	return err
}

// WriteRow writes the values at freq, ending with an empty trailing field.
func (w *Writer) WriteRow(freq float64, r *terminal.Result) error {
	row := make([]string, 0, 2*len(w.requests)+1)
	for _, req := range w.requests {
		value, ok := r.Value(req.Variable)
		if !ok {
			return fmt.Errorf("result has no %s", req.Variable)
		}
		first, second := Convert(value, req)
		row = append(row, cell(first), cell(second))
	}
	row = append(row, "")

	_, err := fmt.Fprintf(w.w, " %.3e,%s\n", freq, strings.Join(row, ","))
	return err
}

// WriteAll writes the header followed by every point in order.
func (w *Writer) WriteAll(points []analysis.Point) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, p := range points {
		if err := w.WriteRow(p.Frequency, p.Result); err != nil {
			return err
		}
	}
	return nil
}

// Convert returns the two displayed numbers for value: real and imaginary
// parts, or magnitude in dB and phase in radians.
func Convert(value complex128, req Request) (float64, float64) {
	if !req.Unit.Decibel {
		return real(value) / req.Unit.Scale, imag(value) / req.Unit.Scale
	}

	mag := cmplx.Abs(value) / req.Unit.Scale
	factor := 20.0
	if req.Variable.IsPower() {
		factor = 10.0
	}
	return factor * math.Log10(mag), cmplx.Phase(value)
}

func column(s string) string {
	return fmt.Sprintf("%11s", s)
}

func cell(v float64) string {
	return fmt.Sprintf(" %10s", fmt.Sprintf("%.3e", v))
}
