// Package constraint holds the two kinds of fact the solver accumulates
// before a solve: outlives Constraints and deferred TypeTests, plus the
// RegionTest algebra type tests are checked against.
package constraint

import (
	"github.com/nllgo/regioninfer/diagnostic"
	"github.com/nllgo/regioninfer/mir"
	"github.com/nllgo/regioninfer/region"
	"github.com/nllgo/regioninfer/typekind"
)

// Constraint asserts that everything in Sub's value reachable from Point
// in the CFG must also belong to Sup's value.
type Constraint struct {
	Sup   region.Vid
	Sub   region.Vid
	Point mir.Location
	Span  diagnostic.Span
}

// Less gives constraints their natural ordering, used to break ties when
// more than one constraint is an equally good blame candidate.
func (c Constraint) Less(o Constraint) bool {
	if c.Sup != o.Sup {
		return c.Sup < o.Sup
	}
	if c.Sub != o.Sub {
		return c.Sub < o.Sub
	}
	return c.Point.Less(o.Point)
}

// RegionTest is the disjunctive/conjunctive algebra a TypeTest's test tree
// is built from.
type RegionTest interface {
	// Eval reports whether the test holds, given a probe for whether sup
	// outlives sub at a given point (eval_outlives's read-only DFS).
	Eval(outlives func(sup region.Vid) bool) bool
	String() string
}

// IsOutlivedByAllRegionsIn holds iff every region in Regions outlives the
// test's lower bound.
type IsOutlivedByAllRegionsIn struct {
	Regions []region.Vid
}

func (t IsOutlivedByAllRegionsIn) Eval(outlives func(region.Vid) bool) bool {
	for _, r := range t.Regions {
		if !outlives(r) {
			return false
		}
	}
	return true
}

func (t IsOutlivedByAllRegionsIn) String() string { return "IsOutlivedByAllRegionsIn" }

// IsOutlivedByAnyRegionIn holds iff some region in Regions outlives the
// test's lower bound.
type IsOutlivedByAnyRegionIn struct {
	Regions []region.Vid
}

func (t IsOutlivedByAnyRegionIn) Eval(outlives func(region.Vid) bool) bool {
	for _, r := range t.Regions {
		if outlives(r) {
			return true
		}
	}
	return false
}

func (t IsOutlivedByAnyRegionIn) String() string { return "IsOutlivedByAnyRegionIn" }

// All is the conjunction of its children.
type All struct {
	Children []RegionTest
}

func (t All) Eval(outlives func(region.Vid) bool) bool {
	for _, c := range t.Children {
		if !c.Eval(outlives) {
			return false
		}
	}
	return true
}

func (t All) String() string { return "All" }

// Any is the disjunction of its children.
type Any struct {
	Children []RegionTest
}

func (t Any) Eval(outlives func(region.Vid) bool) bool {
	for _, c := range t.Children {
		if c.Eval(outlives) {
			return true
		}
	}
	return false
}

func (t Any) String() string { return "Any" }

// TypeTest is a deferred outlives obligation involving a generic type,
// checked only after propagation has reached its fixed point.
type TypeTest struct {
	GenericKind typekind.Kind
	LowerBound  region.Vid
	Point       mir.Location
	Span        diagnostic.Span
	Test        RegionTest
}
