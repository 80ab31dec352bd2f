package structdiff

// Entry is one indexed element of a list-shaped composite.
type Entry struct {
	Index int
	Val   Value
}

// SuffixEntry is one element of the common suffix, carrying the index it
// occupies on each side (the tails may sit at different offsets when the
// lists have different lengths).
type SuffixEntry struct {
	AIndex int
	BIndex int
	Val    Value
}

// ListDiff is the positional decomposition of two list-shaped composites:
// a common prefix, a diverging middle on each side, and a common suffix.
type ListDiff struct {
	ActualLen   int
	ExpectedLen int
	SameLength  bool

	// FirstDiverging is the first index whose elements differ (prefix
	// length + 1). It can exceed the shorter list's length when one list is
	// a prefix of the other.
	FirstDiverging int
	// SuffixLen is the number of trailing elements that match, clamped so
	// the suffix never overlaps the prefix.
	SuffixLen int

	Prefix      []Entry
	ActualMid   []Entry
	ExpectedMid []Entry
	Suffix      []SuffixEntry
}

// ReconvergeActual returns the index in the actual list at which the common
// suffix begins, or 0 when there is no suffix.
func (d *ListDiff) ReconvergeActual() int {
	if d.SuffixLen == 0 {
		return 0
	}
	return d.ActualLen - d.SuffixLen + 1
}

// ReconvergeExpected returns the index in the expected list at which the
// common suffix begins, or 0 when there is no suffix.
func (d *ListDiff) ReconvergeExpected() int {
	if d.SuffixLen == 0 {
		return 0
	}
	return d.ExpectedLen - d.SuffixLen + 1
}

// AnalyzeLists runs the positional diff over two list-shaped composites.
// It reports ok=false when either value is not list-shaped (including gapped
// integer key sets), in which case callers fall back to generic reporting.
//
// The prefix scan walks from index 1 while elements are structurally equal;
// the suffix scan walks from the respective ends and stops before it would
// overlap the matched prefix, so no index is counted twice.
func AnalyzeLists(actual, expected Value, opts ...Options) (*ListDiff, bool) {
	ca, ok := actual.AsComposite()
	if !ok {
		return nil, false
	}
	cb, ok := expected.AsComposite()
	if !ok {
		return nil, false
	}
	alen, ok := ca.ListLen()
	if !ok {
		return nil, false
	}
	blen, ok := cb.ListLen()
	if !ok {
		return nil, false
	}

	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	eq := func(av, bv Value) bool {
		return Equals(av, bv, opt).Equal
	}
	at := func(c *Composite, i int) Value {
		v, _ := c.At(i)
		return v
	}

	prefixLen := 0
	for i := 1; i <= alen && i <= blen; i++ {
		if !eq(at(ca, i), at(cb, i)) {
			break
		}
		prefixLen = i
	}

	suffixLen := 0
	for alen-suffixLen > prefixLen && blen-suffixLen > prefixLen &&
		eq(at(ca, alen-suffixLen), at(cb, blen-suffixLen)) {
		suffixLen++
	}

	d := &ListDiff{
		ActualLen:      alen,
		ExpectedLen:    blen,
		SameLength:     alen == blen,
		FirstDiverging: prefixLen + 1,
		SuffixLen:      suffixLen,
	}
	for i := 1; i <= prefixLen; i++ {
		d.Prefix = append(d.Prefix, Entry{Index: i, Val: at(ca, i)})
	}
	for i := prefixLen + 1; i <= alen-suffixLen; i++ {
		d.ActualMid = append(d.ActualMid, Entry{Index: i, Val: at(ca, i)})
	}
	for i := prefixLen + 1; i <= blen-suffixLen; i++ {
		d.ExpectedMid = append(d.ExpectedMid, Entry{Index: i, Val: at(cb, i)})
	}
	for k := suffixLen - 1; k >= 0; k-- {
		d.Suffix = append(d.Suffix, SuffixEntry{
			AIndex: alen - k,
			BIndex: blen - k,
			Val:    at(ca, alen-k),
		})
	}
	return d, true
}
