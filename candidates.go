package filtertree

// Frame is an immutable, read-only view of the candidates alive at a given
// node's depth. Its contents never change once a Node stores it — narrowing
// always clones into a fresh CandidateSet first, a clone-before-mutate
// discipline applied here to candidate frames instead of child slices.
type Frame[O comparable] struct {
	members map[O]struct{}
}

// newFrame builds a Frame by copying the given slice of candidates. The
// caller's slice is never retained or mutated afterwards.
func newFrame[O comparable](candidates []O) Frame[O] {
	m := make(map[O]struct{}, len(candidates))
	for _, c := range candidates {
		m[c] = struct{}{}
	}
	return Frame[O]{members: m}
}

// Len returns the number of candidates alive in this frame.
func (f Frame[O]) Len() int {
	return len(f.members)
}

// Contains reports whether a candidate is alive in this frame.
func (f Frame[O]) Contains(c O) bool {
	_, ok := f.members[c]
	return ok
}

// Slice returns the frame's members as a freshly allocated slice. Mutating
// the returned slice does not affect the frame.
func (f Frame[O]) Slice() []O {
	out := make([]O, 0, len(f.members))
	for c := range f.members {
		out = append(out, c)
	}
	return out
}

// mutable returns a CandidateSet seeded with a copy of this frame's members,
// ready for a predicate to narrow in place.
func (f Frame[O]) mutable() *CandidateSet[O] {
	m := make(map[O]struct{}, len(f.members))
	for c := range f.members {
		m[c] = struct{}{}
	}
	return &CandidateSet[O]{members: m}
}

// freeze converts a CandidateSet into a read-only Frame. The CandidateSet
// must not be used again afterwards by the caller that froze it.
func (s *CandidateSet[O]) freeze() Frame[O] {
	return Frame[O]{members: s.members}
}

// NewCandidateSet builds a standalone CandidateSet seeded with the given
// candidates. It exists so Predicate implementations can be unit-tested
// outside of a FilterTree; the tree itself always derives CandidateSets from
// a Frame via mutable().
func NewCandidateSet[O comparable](candidates []O) *CandidateSet[O] {
	m := make(map[O]struct{}, len(candidates))
	for _, c := range candidates {
		m[c] = struct{}{}
	}
	return &CandidateSet[O]{members: m}
}

// CandidateSet is the mutable working set a Predicate narrows in place
// during Apply. Inside the tree it always starts life as a copy of a parent
// Frame (NewCandidateSet builds a standalone one for tests) and is
// discarded (frozen into a new Frame) once narrowing completes — it is
// never shared between goroutines and never outlives a single Apply call
// plus the construction step that follows it.
type CandidateSet[O comparable] struct {
	members map[O]struct{}
}

// Remove deletes a candidate from the set. Removing an absent candidate is
// a no-op.
func (s *CandidateSet[O]) Remove(c O) {
	delete(s.members, c)
}

// RemoveIf removes every candidate for which keep returns false.
func (s *CandidateSet[O]) RemoveIf(keep func(O) bool) {
	for c := range s.members {
		if !keep(c) {
			delete(s.members, c)
		}
	}
}

// Contains reports whether a candidate is still present in the set.
func (s *CandidateSet[O]) Contains(c O) bool {
	_, ok := s.members[c]
	return ok
}

// Len returns the number of candidates currently in the set.
func (s *CandidateSet[O]) Len() int {
	return len(s.members)
}

// Each calls fn once for every candidate currently in the set. fn must not
// mutate the set while iterating; use RemoveIf or Remove after Each returns.
func (s *CandidateSet[O]) Each(fn func(O)) {
	for c := range s.members {
		fn(c)
	}
}
