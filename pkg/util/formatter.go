package util

import (
	"fmt"
	"math"
	"math/cmplx"
)

var factors = []struct {
	scale  float64
	prefix string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "u"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// FormatValueFactor prints value with the largest SI prefix that keeps
// the mantissa at or above one: 4700 ohm is "4.700 kohm".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	if absValue == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%.3f %s", value, unit)
	}
	for _, f := range factors {
		if absValue >= f.scale {
			return fmt.Sprintf("%.3f %s%s", value/f.scale, f.prefix, unit)
		}
	}
	return fmt.Sprintf("%.3e %s", value, unit)
}

func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e9:
		return fmt.Sprintf("%7.3f GHz", freq/1e9)
	case freq >= 1e6:
		return fmt.Sprintf("%7.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%7.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%7.3f Hz ", freq)
	}
}

// FormatMagnitudePhase prints name=|x|<phase with the phase in degrees.
func FormatMagnitudePhase(name string, value, phase float64) string {
	return fmt.Sprintf("%s=%s<%sdeg", name, FormatMagnitude(value), FormatPhase(phase))
}

// FormatPhasor is FormatMagnitudePhase for a complex value.
func FormatPhasor(name string, value complex128) string {
	return FormatMagnitudePhase(name, cmplx.Abs(value), cmplx.Phase(value)*180/math.Pi)
}

func FormatMagnitude(value float64) string {
	if value >= 1000 || (value < 0.001 && value != 0) {
		return fmt.Sprintf("%8.2e", value) // "1.00e+03" or "5.43e-05"
	}
	return fmt.Sprintf("%8.3g", value) // "     732"
}

func FormatPhase(value float64) string {
	return fmt.Sprintf("%6.1f", value) // "  90.0"
}
