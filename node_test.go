package filtertree

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// --- minimal int-based predicates, local to this white-box test file ------

// rangePred keeps candidates whose value is within [min, max] of the input.
// It counts how many times Apply/Fingerprint were called, to assert cache
// hits skip re-invocation.
type rangePred struct {
	applyCalls atomic.Int32
	fpCalls    atomic.Int32
}

type rangeInput struct {
	min, max int
}

func (p *rangePred) Apply(input rangeInput, candidates *CandidateSet[int]) error {
	p.applyCalls.Add(1)
	candidates.RemoveIf(func(c int) bool { return c >= input.min && c <= input.max })
	return nil
}

func (p *rangePred) Fingerprint(input rangeInput) (any, bool) {
	p.fpCalls.Add(1)
	return input, true
}

// evenPred keeps only even candidates; never fails, constant fingerprint
// since it ignores the input entirely.
type evenPred struct {
	applyCalls atomic.Int32
}

func (p *evenPred) Apply(_ rangeInput, candidates *CandidateSet[int]) error {
	p.applyCalls.Add(1)
	candidates.RemoveIf(func(c int) bool { return c%2 == 0 })
	return nil
}

func (p *evenPred) Fingerprint(_ rangeInput) (any, bool) {
	return "even", true
}

// absentFingerprintPred always reports it cannot produce a fingerprint.
type absentFingerprintPred struct{}

func (absentFingerprintPred) Apply(_ rangeInput, _ *CandidateSet[int]) error { return nil }
func (absentFingerprintPred) Fingerprint(_ rangeInput) (any, bool)          { return nil, false }

// failingPred always fails its Apply call.
type failingPred struct{ err error }

func (p failingPred) Apply(_ rangeInput, _ *CandidateSet[int]) error { return p.err }
func (failingPred) Fingerprint(_ rangeInput) (any, bool)             { return "k", true }

func newMemCache() NodeCache[int, rangeInput] {
	return &testCache[int, rangeInput]{data: make(map[any]*Node[int, rangeInput])}
}

// testCache is a minimal insert-if-absent NodeCache local to this file,
// mirroring memcache.Cache's contract without importing the memcache
// package (importing it here would be an import cycle, since memcache
// imports filtertree).
type testCache[O comparable, I any] struct {
	mu   sync.RWMutex
	data map[any]*Node[O, I]
}

func (c *testCache[O, I]) Spawn() NodeCache[O, I] {
	return &testCache[O, I]{data: make(map[any]*Node[O, I])}
}

func (c *testCache[O, I]) Get(key any) (*Node[O, I], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.data[key]
	return n, ok
}

func (c *testCache[O, I]) Put(key any, node *Node[O, I]) *Node[O, I] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if incumbent, ok := c.data[key]; ok {
		return incumbent
	}
	c.data[key] = node
	return node
}

func (c *testCache[O, I]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// --- tests ------------------------------------------------------------

func TestLeafNodeReturnsFrameDirectly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filtertree.core")
	defer teardown()

	n := newNode[int, rangeInput](nil, newFrame([]int{1, 2, 3}), 0)
	frame, err := n.matches(rangeInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Len() != 3 {
		t.Errorf("expected leaf to return frame unchanged, got len=%d", frame.Len())
	}
}

func TestEmptyFrameIsTerminal(t *testing.T) {
	pred := &rangePred{}
	steps := []Step[int, rangeInput]{NewStep[int, rangeInput](pred, newMemCache())}
	n := newNode(steps, newFrame[int](nil), 0)
	frame, err := n.matches(rangeInput{min: 0, max: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Len() != 0 {
		t.Errorf("expected empty frame to stay empty, got len=%d", frame.Len())
	}
	if pred.applyCalls.Load() != 0 {
		t.Errorf("predicate should never be consulted on an empty frame")
	}
}

func TestCachedNodeMissThenHit(t *testing.T) {
	pred := &rangePred{}
	steps := []Step[int, rangeInput]{NewStep[int, rangeInput](pred, newMemCache())}
	n := newNode(steps, newFrame([]int{1, 4, 5, 10, 11}), 0)

	frame, err := n.matches(rangeInput{min: 4, max: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Len() != 3 { // 4, 5, 10
		t.Errorf("expected 3 survivors, got %d", frame.Len())
	}
	if pred.applyCalls.Load() != 1 || pred.fpCalls.Load() != 1 {
		t.Errorf("expected exactly one Apply/Fingerprint call on miss, got %d/%d",
			pred.applyCalls.Load(), pred.fpCalls.Load())
	}

	// Second call with the same fingerprint must hit the cache: Apply must
	// not run again.
	frame2, err := n.matches(rangeInput{min: 4, max: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame2.Len() != frame.Len() {
		t.Errorf("cache hit returned a different frame: %d vs %d", frame2.Len(), frame.Len())
	}
	if pred.applyCalls.Load() != 1 {
		t.Errorf("expected Apply to not be called again on cache hit, count=%d", pred.applyCalls.Load())
	}
	if pred.fpCalls.Load() != 2 {
		t.Errorf("expected Fingerprint to be called again on cache hit, count=%d", pred.fpCalls.Load())
	}
}

func TestUncachedTailCollapsesToStraightLine(t *testing.T) {
	rp := &rangePred{}
	ep := &evenPred{}
	steps := []Step[int, rangeInput]{
		NewStep[int, rangeInput](rp, newMemCache()),
		NewStep[int, rangeInput](ep, NoCache[int, rangeInput]()),
	}
	root := newNode(steps, newFrame([]int{2, 3, 4, 5, 6, 7, 8}), 0)

	frame, err := root.matches(rangeInput{min: 2, max: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// range keeps 2..7, even keeps 2,4,6
	want := map[int]bool{2: true, 4: true, 6: true}
	if frame.Len() != len(want) {
		t.Fatalf("expected %d survivors, got %d (%v)", len(want), frame.Len(), frame.Slice())
	}
	for _, c := range frame.Slice() {
		if !want[c] {
			t.Errorf("unexpected survivor %d", c)
		}
	}
	if ep.applyCalls.Load() != 1 {
		t.Errorf("expected the uncached predicate to run exactly once per Matches call, got %d", ep.applyCalls.Load())
	}
}

func TestFullyUncachedPipelineCollapsesAtRoot(t *testing.T) {
	// A pipeline in which every step is uncached satisfies the monotonic
	// caching rule (no cached step follows an uncached one); it is valid
	// and collapses at the root.
	ep := &evenPred{}
	steps := []Step[int, rangeInput]{NewStep[int, rangeInput](ep, NoCache[int, rangeInput]())}
	root := newNode(steps, newFrame([]int{1, 2, 3, 4}), 0)
	if root.cache != nil {
		t.Fatalf("root of a fully uncached pipeline must have no cache")
	}
	frame, err := root.matches(rangeInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Len() != 2 {
		t.Errorf("expected 2 even survivors, got %d", frame.Len())
	}
}

func TestAbsentFingerprintIsFatal(t *testing.T) {
	steps := []Step[int, rangeInput]{NewStep[int, rangeInput](absentFingerprintPred{}, newMemCache())}
	root := newNode(steps, newFrame([]int{1, 2}), 0)
	_, err := root.matches(rangeInput{})
	if _, ok := err.(*FingerprintError); !ok {
		t.Fatalf("expected a *FingerprintError, got %v (%T)", err, err)
	}
}

func TestPredicateFailureLeavesNoCacheEntry(t *testing.T) {
	cache := newMemCache().(*testCache[int, rangeInput])
	boom := failingPred{err: errBoom}
	steps := []Step[int, rangeInput]{NewStep[int, rangeInput](boom, cache)}
	root := newNode(steps, newFrame([]int{1, 2, 3}), 0)

	_, err := root.matches(rangeInput{})
	if err == nil {
		t.Fatalf("expected an error")
	}
	predErr, ok := err.(*PredicateError)
	if !ok {
		t.Fatalf("expected a *PredicateError, got %T", err)
	}
	if predErr.Cause != errBoom {
		t.Errorf("expected wrapped cause to be errBoom, got %v", predErr.Cause)
	}
	if n := root.cache.(*testCache[int, rangeInput]).len(); n != 0 {
		t.Errorf("expected no cache entry to be committed after a failed build, len=%d", n)
	}
}

func TestNodeMatchesDoesNotMutateParentFrame(t *testing.T) {
	pred := &rangePred{}
	steps := []Step[int, rangeInput]{NewStep[int, rangeInput](pred, newMemCache())}
	original := []int{1, 2, 3, 4, 5}
	n := newNode(steps, newFrame(original), 0)

	_, err := n.matches(rangeInput{min: 2, max: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.frame.Len() != len(original) {
		t.Errorf("node's own frame was mutated: len=%d, want %d", n.frame.Len(), len(original))
	}
}
