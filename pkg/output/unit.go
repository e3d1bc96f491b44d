// Package output renders sweep results as the fixed width, comma separated
// table the analyser writes.
package output

import (
	"fmt"
	"strings"

	"github.com/edp1096/toy-cascade/pkg/terminal"
)

// DefaultUnit is the dimensionless linear tag used when none is given.
const DefaultUnit = "L"

var prefixes = map[string]float64{
	"p": 1e-12,
	"n": 1e-9,
	"u": 1e-6,
	"m": 1e-3,
	"k": 1e3,
	"M": 1e6,
	"G": 1e9,
}

// longest first so Ohms is not read as Ohm + s
var baseUnits = []string{"Ohms", "Ohm", "V", "A", "W", "L"}

// Unit is a parsed unit tag such as V, mA, dB, dBm or dBmV.
type Unit struct {
	Tag     string
	Decibel bool
	Scale   float64 // values are divided by Scale before display
	prefix  string
	base    string // empty when the tag names no base unit (dB, dBm)
}

func ParseUnit(tag string) Unit {
	if tag == "" {
		tag = DefaultUnit
	}

	u := Unit{Tag: tag, Scale: 1}
	rest := tag
	if strings.HasPrefix(rest, "dB") {
		u.Decibel = true
		rest = rest[len("dB"):]
	}

	for _, base := range baseUnits {
		prefix, ok := strings.CutSuffix(rest, base)
		if !ok {
			continue
		}
		if scale, ok := prefixes[prefix]; ok {
			u.Scale = scale
			u.prefix = prefix
		}
		u.base = base
		return u
	}

	// dBm, dBu: the base unit comes from the variable
	if scale, ok := prefixes[rest]; ok && u.Decibel {
		u.Scale = scale
		u.prefix = rest
	}

	return u
}

// decibelBase is the unit a bare dB tag refers to for v, empty for
// quantities without one.
func decibelBase(v terminal.Variable) string {
	switch b := v.BaseUnit(); b {
	case "V", "A", "W":
		return b
	}
	return ""
}

// Label is the text shown in the unit row. A dB tag without a base unit is
// qualified by the kind of quantity: dB on a power is dBW, dBm is dBmW.
func (u Unit) Label(v terminal.Variable) string {
	if !u.Decibel || u.base != "" || (u.prefix == "" && u.Tag != "dB") {
		return u.Tag
	}
	return "dB" + u.prefix + decibelBase(v)
}

// Request is one requested output column pair.
type Request struct {
	Variable terminal.Variable
	Unit     Unit
}

func NewRequest(name, unit string) (Request, error) {
	v, err := terminal.ParseVariable(name)
	if err != nil {
		return Request{}, err
	}

	u := ParseUnit(unit)
	if u.Decibel && u.base == "" && u.prefix != "" && decibelBase(v) == "" {
		return Request{}, fmt.Errorf("unit %s needs a base unit for %s", u.Tag, v)
	}
	return Request{Variable: v, Unit: u}, nil
}
