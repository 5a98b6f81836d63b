package predicates

import (
	"fmt"

	"github.com/go-cftree/filtertree"
)

// RangeLookup keeps only campaigns whose RangeVal falls within the
// request's [RangeMin, RangeMax] bounds (spec.md's S1 "range-filter").
// Its fingerprint is the (min, max) pair, so requests sharing bounds reuse
// the same materialized subtree.
type RangeLookup struct{}

// Apply removes every candidate outside [input.RangeMin, input.RangeMax].
func (RangeLookup) Apply(input BidRequest, candidates *filtertree.CandidateSet[Campaign]) error {
	candidates.RemoveIf(func(c Campaign) bool {
		return c.RangeVal >= input.RangeMin && c.RangeVal <= input.RangeMax
	})
	return nil
}

// Fingerprint returns the (min, max) bound pair. It never fails.
func (RangeLookup) Fingerprint(input BidRequest) (any, bool) {
	return rangeKey{min: input.RangeMin, max: input.RangeMax}, true
}

type rangeKey struct {
	min, max int
}

// MembershipLookup keeps only campaigns whose Const value appears in the
// request's AcceptedConsts list (spec.md's S1 "const-filter"). Its
// fingerprint is a compound value covering the whole accepted list, per
// spec.md §6's guidance that a predicate "should return a compound value
// when multiple input fields participate, so that one lookup covers the
// whole compound".
type MembershipLookup struct{}

// Apply removes every candidate whose Const isn't in input.AcceptedConsts.
func (MembershipLookup) Apply(input BidRequest, candidates *filtertree.CandidateSet[Campaign]) error {
	accepted := make(map[Creative]struct{}, len(input.AcceptedConsts))
	for _, c := range input.AcceptedConsts {
		accepted[c] = struct{}{}
	}
	candidates.RemoveIf(func(c Campaign) bool {
		_, ok := accepted[c.Const]
		return ok
	})
	return nil
}

// Fingerprint returns a uint64 bitmask with one bit set per accepted
// constant, so that two requests with the same accepted set (regardless of
// slice order or repetition) share a fingerprint. It reports ok=false if a
// constant lies outside 0..63. The input's Key is not part of the
// fingerprint: it identifies the request, not the constants it accepts.
func (MembershipLookup) Fingerprint(input BidRequest) (any, bool) {
	var mask uint64
	for _, c := range input.AcceptedConsts {
		if c < 0 || c > 63 {
			return nil, false
		}
		mask |= 1 << uint(c)
	}
	return mask, true
}

func (c Creative) String() string {
	switch c {
	case CreativeOne:
		return "ONE"
	case CreativeTwo:
		return "TWO"
	case CreativeThree:
		return "THREE"
	case CreativeFour:
		return "FOUR"
	default:
		return fmt.Sprintf("Creative(%d)", int(c))
	}
}
