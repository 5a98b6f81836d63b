package filtertree

import "fmt"

// Step is an immutable pairing of a Predicate with an optional NodeCache
// prototype. The prototype, if present, is only ever used to spawn a fresh
// per-node cache instance (see NodeCache); it is never read from or written
// to directly by the tree.
type Step[O comparable, I any] struct {
	predicate      Predicate[O, I]
	cachePrototype NodeCache[O, I]
}

// NewStep builds a pipeline step from a predicate and an optional cache
// prototype. Pass NoCache[O, I]() (or a nil NodeCache) to mark this step
// uncached.
func NewStep[O comparable, I any](predicate Predicate[O, I], cachePrototype NodeCache[O, I]) Step[O, I] {
	assertThat(predicate != nil, "NewStep: predicate must not be nil")
	return Step[O, I]{predicate: predicate, cachePrototype: cachePrototype}
}

// cached reports whether this step carries a cache prototype.
func (s Step[O, I]) cached() bool {
	return s.cachePrototype != nil
}

func (s Step[O, I]) String() string {
	if s.cached() {
		return fmt.Sprintf("Step(%T, cached)", s.predicate)
	}
	return fmt.Sprintf("Step(%T, uncached)", s.predicate)
}

// equal reports whether two steps are structurally equal: same predicate
// value and same cache prototype value. Predicate and NodeCache are
// interface values, so equality here is Go's ordinary interface equality
// (same dynamic type and, if comparable, same value — e.g. the same
// pointer receiver).
func (s Step[O, I]) equal(other Step[O, I]) bool {
	return s.predicate == other.predicate && s.cachePrototype == other.cachePrototype
}
