package filtertree

import "strings"

// Pipeline is an ordered, finite, non-empty sequence of Steps. The order is
// load-bearing: it dictates tree shape and cache locality, so place
// high-selectivity or expensive predicates first for the best hit rates.
type Pipeline[O comparable, I any] struct {
	steps []Step[O, I]
}

// NewPipeline validates and builds a Pipeline from the given steps, in the
// order spec'd by the caching decision tree:
//
//  1. reject an empty pipeline,
//  2. reject a pipeline containing any two structurally equal steps,
//  3. enforce the monotonic caching rule: once a step appears with no
//     cache, every later step must also have no cache.
//
// A pipeline in which every step is uncached satisfies rule 3 and is valid;
// it collapses to a single straight-line evaluation at the root (see Node).
// A pipeline whose first step is uncached and any later step cached is
// rejected.
func NewPipeline[O comparable, I any](steps ...Step[O, I]) (Pipeline[O, I], error) {
	if len(steps) == 0 {
		return Pipeline[O, I]{}, ErrEmptyPipeline
	}
	for i, s := range steps {
		for j := i + 1; j < len(steps); j++ {
			if s.equal(steps[j]) {
				tracer().Errorf("duplicate pipeline step at indices %d and %d", i, j)
				return Pipeline[O, I]{}, ErrDuplicateStep
			}
		}
	}
	sawUncached := false
	for i, s := range steps {
		if !s.cached() {
			sawUncached = true
			continue
		}
		if sawUncached {
			tracer().Errorf("cached step %d follows an uncached step", i)
			return Pipeline[O, I]{}, ErrCacheAfterUncachedStep
		}
	}
	cp := make([]Step[O, I], len(steps))
	copy(cp, steps)
	return Pipeline[O, I]{steps: cp}, nil
}

// Len returns the number of steps in the pipeline.
func (p Pipeline[O, I]) Len() int {
	return len(p.steps)
}

func (p Pipeline[O, I]) String() string {
	var b strings.Builder
	b.WriteString("Pipeline[")
	for i, s := range p.steps {
		if i > 0 {
			b.WriteString(" -> ")
		}
		if s.cached() {
			b.WriteByte('C')
		} else {
			b.WriteByte('U')
		}
	}
	b.WriteByte(']')
	return b.String()
}
