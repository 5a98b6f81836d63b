package filtertree

// Node is the recursive heart of a FilterTree. Every field is set once at
// construction and never mutated afterwards — the only mutable state
// reachable from a Node is inside its cache instance, and that instance's
// thread-safety is entirely the cache implementation's responsibility.
//
// A Node is built either by FilterTree's constructor (the root) or lazily by
// a parent on a cache miss (see matchesCached). It lives as long as whatever
// holds a reference to it: the FilterTree itself for the root, or a cache
// entry for everyone else.
type Node[O comparable, I any] struct {
	frame     Frame[O]
	predicate Predicate[O, I] // nil iff leaf
	cache     NodeCache[O, I] // nil iff this node has no cache
	steps     []Step[O, I]    // remaining pipeline, consumed by children
	index     int             // this node's position in the original pipeline
	leaf      bool
}

// newNode constructs a Node for the given remaining pipeline steps and
// candidate frame, at the given pipeline index (used only to annotate
// errors). If steps is empty the node is a leaf. Otherwise the head step's
// predicate becomes this node's predicate, and — if the head step carries a
// cache prototype — a fresh cache instance is spawned for this node alone.
func newNode[O comparable, I any](steps []Step[O, I], frame Frame[O], index int) *Node[O, I] {
	if len(steps) == 0 {
		return &Node[O, I]{frame: frame, leaf: true, index: index}
	}
	head := steps[0]
	n := &Node[O, I]{
		frame:     frame,
		predicate: head.predicate,
		steps:     steps[1:],
		index:     index,
	}
	if head.cached() {
		n.cache = head.cachePrototype.Spawn()
	}
	return n
}

// matches evaluates input against this node and everything beneath it,
// returning the surviving candidates. It never mutates the frame stored in
// this node, or any ancestor's frame.
func (n *Node[O, I]) matches(input I) (Frame[O], error) {
	if n.leaf || n.frame.Len() == 0 {
		return n.frame, nil
	}
	if n.cache != nil {
		return n.matchesCached(input)
	}
	return n.matchesCollapsed(input)
}

// matchesCached computes the fingerprint, looks up (or builds and
// race-resolves) the child node for it, and delegates to that child.
func (n *Node[O, I]) matchesCached(input I) (Frame[O], error) {
	key, ok := n.predicate.Fingerprint(input)
	if !ok {
		return Frame[O]{}, &FingerprintError{StepIndex: n.index}
	}
	if child, found := n.cache.Get(key); found {
		tracer().Debugf("cache hit for key %v", key)
		return child.matches(input)
	}
	tracer().Debugf("cache miss for key %v, building child", key)
	child, err := n.build(input)
	if err != nil {
		return Frame[O]{}, err
	}
	winner := n.cache.Put(key, child)
	return winner.matches(input)
}

// build narrows a copy of this node's frame by this node's predicate and
// constructs the (not-yet-visible) child node for the remaining pipeline.
// No cache entry is committed here; the caller is responsible for that,
// and for resolving the race against concurrent builders.
func (n *Node[O, I]) build(input I) (*Node[O, I], error) {
	working := n.frame.mutable()
	if err := n.predicate.Apply(input, working); err != nil {
		return nil, &PredicateError{StepIndex: n.index, Cause: err}
	}
	return newNode(n.steps, working.freeze(), n.index+1), nil
}

// matchesCollapsed handles the case where this node has no cache, so by the
// monotonic caching rule none of its descendants do either. Instead of
// materializing a one-shot chain of nodes that will never be consulted
// again, apply every remaining predicate in order to a single working set
// and return it directly.
func (n *Node[O, I]) matchesCollapsed(input I) (Frame[O], error) {
	working := n.frame.mutable()
	if err := n.predicate.Apply(input, working); err != nil {
		return Frame[O]{}, &PredicateError{StepIndex: n.index, Cause: err}
	}
	for i, step := range n.steps {
		if working.Len() == 0 {
			break
		}
		if err := step.predicate.Apply(input, working); err != nil {
			return Frame[O]{}, &PredicateError{StepIndex: n.index + 1 + i, Cause: err}
		}
	}
	return working.freeze(), nil
}
