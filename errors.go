package filtertree

import (
	"errors"
	"fmt"
)

// Configuration errors, raised synchronously from NewPipeline/New. They
// never occur once a FilterTree has been successfully constructed.
var (
	// ErrEmptyPipeline is returned when a Pipeline has no steps.
	ErrEmptyPipeline = errors.New("filtertree: pipeline must not be empty")
	// ErrEmptyCandidateSet is returned when the root candidate set is empty.
	ErrEmptyCandidateSet = errors.New("filtertree: candidate set must not be empty")
	// ErrDuplicateStep is returned when a pipeline contains two structurally
	// equal steps (same predicate, same cache prototype).
	ErrDuplicateStep = errors.New("filtertree: pipeline steps must be pairwise distinct")
	// ErrCacheAfterUncachedStep is returned when a cache-bearing step follows
	// a step that has no cache, violating the monotonic caching rule.
	ErrCacheAfterUncachedStep = errors.New("filtertree: a cached step may not follow an uncached step")
)

// FingerprintError is a fatal runtime error raised when a predicate fails to
// produce a fingerprint for an input at a cached node.
type FingerprintError struct {
	StepIndex int
}

func (e *FingerprintError) Error() string {
	return fmt.Sprintf("filtertree: predicate at step %d returned no fingerprint", e.StepIndex)
}

// PredicateError wraps an error returned by a predicate's Apply call during
// Matches (a missing fingerprint is reported as a FingerprintError
// instead). The tree is left consistent: no partial
// cache entry is ever committed for a build that produced this error.
type PredicateError struct {
	StepIndex int
	Cause     error
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("filtertree: predicate at step %d failed: %v", e.StepIndex, e.Cause)
}

func (e *PredicateError) Unwrap() error {
	return e.Cause
}
