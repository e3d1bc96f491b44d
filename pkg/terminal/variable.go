package terminal

import "fmt"

// Variable names one terminal quantity of a Result.
type Variable string

const (
	Zin  Variable = "Zin"
	Zout Variable = "Zout"
	Vin  Variable = "Vin"
	Vout Variable = "Vout"
	Iin  Variable = "Iin"
	Iout Variable = "Iout"
	Pin  Variable = "Pin"
	Pout Variable = "Pout"
	Av   Variable = "Av"
	Ai   Variable = "Ai"
)

// Variables lists every quantity in Result field order.
var Variables = []Variable{Zin, Zout, Vin, Vout, Iin, Iout, Pin, Pout, Av, Ai}

func ParseVariable(name string) (Variable, error) {
	for _, v := range Variables {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown output variable %q", name)
}

// IsPower reports whether v is a power, which takes 10·log10 in dB.
func (v Variable) IsPower() bool {
	return v == Pin || v == Pout
}

// BaseUnit is the SI unit symbol of v, empty for the dimensionless gains.
func (v Variable) BaseUnit() string {
	switch v {
	case Vin, Vout:
		return "V"
	case Iin, Iout:
		return "A"
	case Pin, Pout:
		return "W"
	case Zin, Zout:
		return "Ohm"
	}
	return ""
}
