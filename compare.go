package structdiff

import (
	"math"
	"reflect"
)

// Reason explains a mismatch.
type Reason uint8

const (
	// TypeMismatch: the two values have different kinds.
	TypeMismatch Reason = iota
	// ScalarMismatch: same scalar kind, different value.
	ScalarMismatch
	// KeySetMismatch: a key present in one composite is missing from the other.
	KeySetMismatch
	// CycleAsymmetryMismatch: the divergence involves a back-reference on
	// one side only.
	CycleAsymmetryMismatch
)

func (r Reason) String() string {
	switch r {
	case TypeMismatch:
		return "type mismatch"
	case ScalarMismatch:
		return "value mismatch"
	case KeySetMismatch:
		return "key set mismatch"
	case CycleAsymmetryMismatch:
		return "cycle asymmetry"
	default:
		return "unknown"
	}
}

// Result is the outcome of a comparison: Equal, or the path from the root to
// the first point of divergence plus the reason for it. A mismatch is a
// normal return value, never an error.
type Result struct {
	Equal  bool
	Path   []Value
	Reason Reason
}

func equalResult() Result { return Result{Equal: true} }

// Equals compares actual against expected structurally. Composite values are
// descended recursively with a per-call visited-pair set, so self-referential
// and shared substructures terminate in time bounded by the number of
// distinct container pairs. Inputs are never mutated; callers must not
// mutate them while the comparison is in flight.
func Equals(actual, expected Value, opts ...Options) Result {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	ctx := newCompareCtx(opt)
	return ctx.compare(actual, expected)
}

// Equal reports whether actual and expected are structurally equal.
func Equal(actual, expected Value) bool {
	return Equals(actual, expected).Equal
}

// AlmostEqual reports whether actual and expected are structurally equal
// with finite numbers compared under the given margin. A margin of zero
// means the machine epsilon.
func AlmostEqual(actual, expected Value, margin float64) bool {
	return Equals(actual, expected, Options{UseMargin: true, Margin: margin}).Equal
}

// Identical reports whether a and b are the same value without descending
// into contents: scalars compare by primitive value, containers and handles
// by reference. This is strictly stronger than Equals for composites.
func Identical(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindFunc:
		return refsEqual(a.ref, b.ref)
	case KindOpaque:
		return a.str == b.str && refsEqual(a.ref, b.ref)
	case KindComposite:
		return a.comp == b.comp
	default:
		return false
	}
}

// ItemsEqual reports whether two composites hold the same multiset of
// values irrespective of keys and order. Duplicates count: each value on one
// side consumes exactly one structurally equal value on the other. Elements
// that are themselves composites are matched by whole-value structural
// equality, not flattened. Non-composite inputs fall back to Equals.
func ItemsEqual(a, b Value, opts ...Options) bool {
	ca, ok1 := a.AsComposite()
	cb, ok2 := b.AsComposite()
	if !ok1 || !ok2 {
		return Equals(a, b, opts...).Equal
	}
	if ca.Len() != cb.Len() {
		return false
	}
	used := make([]bool, cb.Len())
	for _, pa := range ca.pairs {
		found := false
		for j := range cb.pairs {
			if used[j] {
				continue
			}
			if Equals(pa.Val, cb.pairs[j].Val, opts...).Equal {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Contains reports whether any value in container is structurally equal to
// element, regardless of key. A non-composite container contains nothing.
func Contains(container, element Value, opts ...Options) bool {
	c, ok := container.AsComposite()
	if !ok {
		return false
	}
	for _, p := range c.pairs {
		if Equals(p.Val, element, opts...).Equal {
			return true
		}
	}
	return false
}

// NotContains is the negation of Contains.
func NotContains(container, element Value, opts ...Options) bool {
	return !Contains(container, element, opts...)
}

func (ctx *compareCtx) compare(a, b Value) Result {
	// Same container reference is trivially equal.
	if a.kind == KindComposite && b.kind == KindComposite && a.comp == b.comp {
		return equalResult()
	}
	if a.kind != b.kind {
		reason := TypeMismatch
		if ctx.cycleInvolved(a, b) {
			reason = CycleAsymmetryMismatch
		}
		ctx.log.Debugf("kind mismatch: %s vs %s", a.kind, b.kind)
		return ctx.unequal(reason)
	}
	switch a.kind {
	case KindNil:
		return equalResult()
	case KindBool:
		if a.b == b.b {
			return equalResult()
		}
		return ctx.unequal(ScalarMismatch)
	case KindNumber:
		if ctx.numbersEqual(a.num, b.num) {
			return equalResult()
		}
		return ctx.unequal(ScalarMismatch)
	case KindString:
		if a.str == b.str {
			return equalResult()
		}
		return ctx.unequal(ScalarMismatch)
	case KindFunc:
		if refsEqual(a.ref, b.ref) {
			return equalResult()
		}
		return ctx.unequal(ScalarMismatch)
	case KindOpaque:
		if a.str == b.str && refsEqual(a.ref, b.ref) {
			return equalResult()
		}
		return ctx.unequal(ScalarMismatch)
	case KindComposite:
		return ctx.compareComposites(a.comp, b.comp)
	default:
		return ctx.unequal(TypeMismatch)
	}
}

// numbersEqual applies exact float equality, or margin equality when
// enabled and neither side is NaN or infinite. NaN never equals NaN; +0 and
// -0 compare equal here and are told apart only by ClassifyNumber.
func (ctx *compareCtx) numbersEqual(x, y float64) bool {
	if x != x || y != y {
		return false
	}
	if ctx.opts.UseMargin && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return math.Abs(x-y) <= ctx.opts.margin()
	}
	return x == y
}

func (ctx *compareCtx) compareComposites(a, b *Composite) Result {
	if ctx.enter(a, b) {
		// Pair already in flight or finished: treating it as equal is what
		// lets two isomorphic cyclic structures compare equal.
		return equalResult()
	}
	ctx.log.Debugf("descend: %d vs %d pairs", len(a.pairs), len(b.pairs))

	for _, p := range a.pairs {
		bv, ok := lookupKey(b, p.Key)
		if !ok {
			ctx.push(p.Key)
			r := ctx.unequal(KeySetMismatch)
			ctx.pop()
			return r
		}
		ctx.push(p.Key)
		if r := ctx.compare(p.Val, bv); !r.Equal {
			ctx.pop()
			return r
		}
		ctx.pop()
	}
	for _, p := range b.pairs {
		if _, ok := lookupKey(a, p.Key); !ok {
			ctx.push(p.Key)
			r := ctx.unequal(KeySetMismatch)
			ctx.pop()
			return r
		}
	}
	return equalResult()
}

func (ctx *compareCtx) unequal(reason Reason) Result {
	return Result{Equal: false, Path: ctx.snapshotPath(), Reason: reason}
}

// lookupKey finds the value under a key structurally equal to key. Keys are
// matched exactly: margins never apply to keys, so a key's identity cannot
// drift with options.
func lookupKey(c *Composite, key Value) (Value, bool) {
	for i := range c.pairs {
		if keyMatches(c.pairs[i].Key, key) {
			return c.pairs[i].Val, true
		}
	}
	return Value{}, false
}

// keyMatches compares two keys with a scratch context so candidate probing
// never pollutes the caller's visited set.
func keyMatches(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	}
	ctx := newCompareCtx(Options{})
	return ctx.compare(a, b).Equal
}

// refsEqual compares the underlying handles of function/opaque values.
// Reference-shaped handles compare by address; other comparable handles by
// value. Uncomparable handles are never equal.
func refsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch va.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Chan, reflect.Map, reflect.Slice, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	if va.Type() != vb.Type() || !va.Type().Comparable() {
		return false
	}
	return a == b
}
