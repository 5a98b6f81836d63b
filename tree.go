package filtertree

// FilterTree is the user-facing façade: it validates a Pipeline, owns the
// root Node seeded with the full candidate set, and forwards match queries
// to it.
type FilterTree[O comparable, I any] struct {
	root     *Node[O, I]
	pipeline Pipeline[O, I]
}

// New validates pipe against candidates and constructs a FilterTree.
// Validation runs in the order spec'd for the caching decision tree:
// pipeline non-empty, candidate set non-empty, pipeline already validated
// by NewPipeline (duplicate steps, monotonic caching rule). The root Node is
// then seeded with candidates verbatim.
func New[O comparable, I any](pipe Pipeline[O, I], candidates []O) (*FilterTree[O, I], error) {
	if pipe.Len() == 0 {
		return nil, ErrEmptyPipeline
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyCandidateSet
	}
	frame := newFrame(candidates)
	tracer().Debugf("constructing filter tree: %s, %d candidates", pipe, frame.Len())
	root := newNode(pipe.steps, frame, 0)
	return &FilterTree[O, I]{root: root, pipeline: pipe}, nil
}

// Matches evaluates input against the tree and returns the surviving
// candidates as a read-only Frame. The result is empty if no candidate
// survives. Two calls with the same input always return equal frames; the
// order candidates are iterated in (via Frame.Slice) is unspecified.
func (ft *FilterTree[O, I]) Matches(input I) (Frame[O], error) {
	return ft.root.matches(input)
}

// Describe returns a short, log-friendly summary of the tree's pipeline
// shape (step count and per-step cache/no-cache markers), mirroring the
// teacher's Node.String() convention.
func (ft *FilterTree[O, I]) Describe() string {
	return ft.pipeline.String()
}
