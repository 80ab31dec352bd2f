// Package structdiff implements structural equality over dynamic composite
// values, including self-referential ones, together with a positional diff
// analysis that explains where two ordered sequences diverge.
//
// Values are built with the constructors in this file (or decoded from Go
// values and YAML documents, see decode.go), compared with Equals and its
// relatives in compare.go, and rendered by pkg/difffmt.
package structdiff

import "math"

// Kind classifies a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunc
	KindOpaque
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunc:
		return "function"
	case KindOpaque:
		return "opaque"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Value is the tagged union flowing through the comparison engine.
// The zero Value is Nil.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string // string payload, and the type tag for KindOpaque
	ref  any    // underlying handle for KindFunc/KindOpaque
	comp *Composite
}

// Pair is one ordered key/value association of a Composite.
type Pair struct {
	Key Value
	Val Value
}

// Composite is an ordered association of keys to values. Its address is its
// identity: two Composite pointers are the same container iff they are equal.
// Comparison never mutates a Composite; callers must not mutate one while a
// comparison over it is in flight.
type Composite struct {
	pairs []Pair
}

// Nil returns the nil value.
func Nil() Value { return Value{kind: KindNil} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value. NaN, infinities and signed zeros are
// preserved and classified by ClassifyNumber.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric value holding an integer.
func Int(i int) Value { return Number(float64(i)) }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// FuncRef returns a function-reference value. Two FuncRef values are equal
// iff they wrap the same underlying reference.
func FuncRef(ref any) Value { return Value{kind: KindFunc, ref: ref} }

// Opaque returns an opaque-handle value with a type tag used for rendering
// (for example "userdata" or "thread"). Two Opaque values are equal iff they
// wrap the same underlying handle.
func Opaque(tag string, ref any) Value { return Value{kind: KindOpaque, str: tag, ref: ref} }

// FromComposite wraps an existing container.
func FromComposite(c *Composite) Value { return Value{kind: KindComposite, comp: c} }

// List builds a list-shaped composite with keys 1..len(elems).
func List(elems ...Value) Value {
	c := NewComposite()
	for i, e := range elems {
		c.pairs = append(c.pairs, Pair{Key: Int(i + 1), Val: e})
	}
	return FromComposite(c)
}

// Object builds a composite from the given pairs, preserving their order.
func Object(pairs ...Pair) Value {
	c := NewComposite()
	c.pairs = append(c.pairs, pairs...)
	return FromComposite(c)
}

// NewComposite returns an empty container.
func NewComposite() *Composite { return &Composite{} }

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is Nil.
func (v Value) IsNil() bool { return v.kind == KindNil }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) {
	if v.kind == KindNumber {
		return v.num, true
	}
	return 0, false
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	if v.kind == KindString {
		return v.str, true
	}
	return "", false
}

// AsComposite returns the container payload.
func (v Value) AsComposite() (*Composite, bool) {
	if v.kind == KindComposite {
		return v.comp, true
	}
	return nil, false
}

// OpaqueTag returns the type tag of an opaque-handle value.
func (v Value) OpaqueTag() (string, bool) {
	if v.kind == KindOpaque {
		return v.str, true
	}
	return "", false
}

// Set associates key with val, replacing the value of a structurally equal
// existing key or appending a new pair.
func (c *Composite) Set(key, val Value) {
	for i := range c.pairs {
		if keyMatches(c.pairs[i].Key, key) {
			c.pairs[i].Val = val
			return
		}
	}
	c.pairs = append(c.pairs, Pair{Key: key, Val: val})
}

// Append adds val under the next contiguous integer key, so that repeatedly
// appending to an empty composite yields a list shape.
func (c *Composite) Append(val Value) {
	c.pairs = append(c.pairs, Pair{Key: Int(len(c.pairs) + 1), Val: val})
}

// Get returns the value associated with a structurally equal key.
func (c *Composite) Get(key Value) (Value, bool) {
	for i := range c.pairs {
		if keyMatches(c.pairs[i].Key, key) {
			return c.pairs[i].Val, true
		}
	}
	return Value{}, false
}

// Len returns the number of pairs.
func (c *Composite) Len() int { return len(c.pairs) }

// Pairs returns the pairs in insertion order. The slice is shared; callers
// must treat it as read-only.
func (c *Composite) Pairs() []Pair { return c.pairs }

// ListLen reports whether the key set is exactly the contiguous integers
// 1..N and returns N. A gapped or non-integer key set is not list-shaped and
// reports false, which routes reporting down the generic path.
func (c *Composite) ListLen() (int, bool) {
	n := len(c.pairs)
	seen := make([]bool, n)
	for _, p := range c.pairs {
		f, ok := p.Key.AsNumber()
		if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false
		}
		i := int(f)
		if i < 1 || i > n || seen[i-1] {
			return 0, false
		}
		seen[i-1] = true
	}
	return n, true
}

// At returns the value stored under integer key i (1-based). It is only
// meaningful for list-shaped composites.
func (c *Composite) At(i int) (Value, bool) {
	return c.Get(Int(i))
}
