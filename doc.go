/*
Package filtertree implements a caching decision tree for evaluating a fixed
set of candidate values against a stream of inputs through an ordered
pipeline of predicates.

Candidates are narrowed step by step: each pipeline step contributes a
Predicate that removes candidates which don't match an input, and,
optionally, a NodeCache prototype. Wherever a step carries a cache, the
subtree rooted after that step is memoized per fingerprint, so that repeated
inputs sharing the same fingerprint at every cached level converge to a
sequence of map lookups rather than re-running every predicate.

Building a tree

	pipe, err := filtertree.NewPipeline(
		filtertree.NewStep[Campaign, BidRequest](rangePredicate, memcache.New[Campaign, BidRequest]()),
		filtertree.NewStep[Campaign, BidRequest](membershipPredicate, filtertree.NoCache[Campaign, BidRequest]()),
	)
	if err != nil {
		// configuration error, see errors.go
	}
	ft, err := filtertree.New(pipe, candidates)
	matches, err := ft.Matches(request)

Caching is partial by design: a step may opt out of caching, but once one
step in the pipeline opts out, every subsequent step must too (the
"monotonic caching rule", enforced by NewPipeline). A tail of uncached
steps is evaluated as a single straight-line pass instead of being
materialized as a chain of one-shot nodes — there is nothing to memoize, so
there is nothing to build.

License

This package follows the license terms of its parent module.
*/
package filtertree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'filtertree.core'.
func tracer() tracing.Trace {
	return tracing.Select("filtertree.core")
}

// assertThat panics if the given condition does not hold. It guards internal
// invariants this package is responsible for maintaining, never user input
// (user input is rejected through the sentinel errors in errors.go instead).
func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		tracer().Errorf(msg, msgargs...)
		panic(msg)
	}
}
