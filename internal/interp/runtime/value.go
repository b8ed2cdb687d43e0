package runtime

import (
	"fmt"
	"strconv"
)

type ValueKind int

const (
	IntKind ValueKind = iota
	RealKind
	StrKind
)

// Value is a runtime scalar: a 64-bit integer, a double-precision real, or
// a string/char.
type Value struct {
	Kind ValueKind
	Int  int64
	Real float64
	Str  string
}

func IntValue(v int64) Value    { return Value{Kind: IntKind, Int: v} }
func RealValue(v float64) Value { return Value{Kind: RealKind, Real: v} }
func StrValue(v string) Value   { return Value{Kind: StrKind, Str: v} }

func (v Value) String() string {
	switch v.Kind {
	case IntKind:
		return strconv.FormatInt(v.Int, 10)
	case RealKind:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	default:
		return v.Str
	}
}

func (v Value) isNumeric() bool {
	return v.Kind == IntKind || v.Kind == RealKind
}

// asReal promotes an integer to a real; callers check isNumeric first.
func (v Value) asReal() float64 {
	if v.Kind == IntKind {
		return float64(v.Int)
	}
	return v.Real
}

// isTrue is the truthiness used by AND/OR: a numeric value is true when
// non-zero. Strings have no boolean reading.
func (v Value) isTrue() (bool, error) {
	switch v.Kind {
	case IntKind:
		return v.Int != 0, nil
	case RealKind:
		return v.Real != 0, nil
	default:
		return false, fmt.Errorf("string %q is not a valid boolean operand", v.Str)
	}
}
