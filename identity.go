package structdiff

// visitPair identifies one (actual, expected) pair of containers under
// comparison. Composite identity is pointer identity, so the pair of
// addresses is a stable key for the lifetime of one call.
type visitPair struct {
	a, b *Composite
}

// compareCtx holds the transient state of a single top-level comparison.
// A fresh context is allocated per call and discarded at its end; the engine
// keeps no state across calls, so concurrent comparisons need no locking.
type compareCtx struct {
	opts Options
	log  Logger

	// visited marks container pairs already descended into. A pair found
	// here is treated as equal without re-descending: this terminates
	// cyclic traversals and bounds diamond-shaped shared substructure to
	// one visit per pair.
	visited map[visitPair]struct{}

	// seenA/seenB record containers entered on each side, used to tell a
	// back-reference apart from a fresh subtree when a divergence involves
	// a cycle on only one side.
	seenA map[*Composite]struct{}
	seenB map[*Composite]struct{}

	// path is the key sequence from the comparison root to the current
	// position.
	path []Value
}

func newCompareCtx(opts Options) *compareCtx {
	return &compareCtx{
		opts:    opts,
		log:     opts.logger(),
		visited: make(map[visitPair]struct{}),
		seenA:   make(map[*Composite]struct{}),
		seenB:   make(map[*Composite]struct{}),
	}
}

func (ctx *compareCtx) enter(a, b *Composite) (alreadyVisited bool) {
	pair := visitPair{a, b}
	if _, ok := ctx.visited[pair]; ok {
		return true
	}
	ctx.visited[pair] = struct{}{}
	ctx.seenA[a] = struct{}{}
	ctx.seenB[b] = struct{}{}
	return false
}

func (ctx *compareCtx) push(key Value) { ctx.path = append(ctx.path, key) }
func (ctx *compareCtx) pop()           { ctx.path = ctx.path[:len(ctx.path)-1] }

// snapshotPath copies the current path for embedding in a Result; the
// working slice keeps mutating as traversal unwinds.
func (ctx *compareCtx) snapshotPath() []Value {
	if len(ctx.path) == 0 {
		return nil
	}
	out := make([]Value, len(ctx.path))
	copy(out, ctx.path)
	return out
}

// cycleInvolved reports whether either side of a divergence is a container
// the traversal has already entered, meaning the mismatch stems from an
// asymmetric back-reference rather than plain content.
func (ctx *compareCtx) cycleInvolved(a, b Value) bool {
	if c, ok := a.AsComposite(); ok {
		if _, seen := ctx.seenA[c]; seen {
			return true
		}
	}
	if c, ok := b.AsComposite(); ok {
		if _, seen := ctx.seenB[c]; seen {
			return true
		}
	}
	return false
}
