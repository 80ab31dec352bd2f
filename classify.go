package structdiff

import "math"

// NumClass refines KindNumber for type-mismatch detection and the
// sign-sensitive predicates. Ordinary float equality conflates +0 and -0 and
// is unreliable for NaN, so classification inspects the bit-level sign via
// math.Signbit and NaN via self-inequality.
type NumClass uint8

const (
	NumFinite NumClass = iota
	NumNaN
	NumPosInf
	NumNegInf
	NumPosZero
	NumNegZero
)

func (n NumClass) String() string {
	switch n {
	case NumFinite:
		return "finite"
	case NumNaN:
		return "nan"
	case NumPosInf:
		return "+inf"
	case NumNegInf:
		return "-inf"
	case NumPosZero:
		return "+0"
	case NumNegZero:
		return "-0"
	default:
		return "unknown"
	}
}

// ClassifyNumber returns the numeric subkind of f.
func ClassifyNumber(f float64) NumClass {
	switch {
	case f != f:
		return NumNaN
	case math.IsInf(f, 1):
		return NumPosInf
	case math.IsInf(f, -1):
		return NumNegInf
	case f == 0 && math.Signbit(f):
		return NumNegZero
	case f == 0:
		return NumPosZero
	default:
		return NumFinite
	}
}

// IsNaN reports whether v is the NaN number.
func IsNaN(v Value) bool {
	f, ok := v.AsNumber()
	return ok && f != f
}

// IsPlusZero reports whether v is positive zero.
func IsPlusZero(v Value) bool {
	f, ok := v.AsNumber()
	return ok && f == 0 && !math.Signbit(f)
}

// IsMinusZero reports whether v is negative zero.
func IsMinusZero(v Value) bool {
	f, ok := v.AsNumber()
	return ok && f == 0 && math.Signbit(f)
}

// IsInf reports whether v is an infinity of the given sign (+1, -1, or 0 for
// either).
func IsInf(v Value, sign int) bool {
	f, ok := v.AsNumber()
	return ok && math.IsInf(f, sign)
}
