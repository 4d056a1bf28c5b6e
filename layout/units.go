package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe lengths for caller-supplied coordinates.
// The layout engine works in canvas pixels; scripts may use physical units.

// Unit represents the original unit of a length value as specified in a script.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, taken as pixels
	UnitPX               // pixels
	UnitPT               // points
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
)

// Conversion constants at 96 pixels per inch.
const (
	PxPerIn = 96.0
	PxToPt  = 72.0 / PxPerIn
	PxToMm  = 25.4 / PxPerIn
	MmToPx  = 1.0 / PxToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPX converts the length to canvas pixels.
func (l Length) ToPX() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value / PxToPt
	case UnitMM:
		return l.Value * MmToPx
	case UnitCM:
		return l.Value * 10 * MmToPx
	case UnitIN:
		return l.Value * PxPerIn
	default:
		return l.Value
	}
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + UnitToString(l.Unit)
}

// ParseLength parses a script length such as "12", "12px", "4.5mm" or "1in".
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Length{}, fmt.Errorf("无效的长度 %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}
