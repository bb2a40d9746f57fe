// Package infer is the region inference engine: a fixed-point solver that
// grows every region variable's value until all outlives constraints are
// satisfied, then checks the result against the type-test obligations and
// the universal-region declarations.
package infer

import (
	"fmt"

	"github.com/nllgo/regioninfer/closurereq"
	"github.com/nllgo/regioninfer/constraint"
	"github.com/nllgo/regioninfer/diagnostic"
	"github.com/nllgo/regioninfer/mir"
	"github.com/nllgo/regioninfer/region"
	"github.com/nllgo/regioninfer/universalregions"
)

// Context owns one region variable space over one CFG. It is mutated by
// AddLivePoint/AddOutlives/AddTypeTest until Solve is called exactly once,
// after which it is read-only.
type Context struct {
	elements  *region.Elements
	universal universalregions.Regions
	values    *region.Values

	constraints []constraint.Constraint
	typeTests   []constraint.TypeTest

	solved bool
}

// New constructs a Context over body's CFG with numVars region variables,
// the first universal.Len() of which are universal. Every universal
// region's value is seeded per spec: every CFG point, plus its own
// end(R).
func New(elements *region.Elements, universal universalregions.Regions, numVars int) (*Context, error) {
	if numVars < universal.Len() {
		return nil, fmt.Errorf("infer: numVars (%d) smaller than universal region count (%d)", numVars, universal.Len())
	}
	if elements.NumUniversal() != universal.Len() {
		return nil, fmt.Errorf("infer: elements has %d universal slots, universal region catalogue has %d", elements.NumUniversal(), universal.Len())
	}

	values := region.NewValues(elements, numVars)
	points := elements.AllPointIndices()
	for u := 0; u < universal.Len(); u++ {
		v := region.Vid(u)
		for _, p := range points {
			values.Add(v, p)
		}
		values.Add(v, elements.IndexOfUniversal(v))
	}

	return &Context{
		elements:  elements,
		universal: universal,
		values:    values,
	}, nil
}

// AddLivePoint records that v must be live at p. It returns whether this
// grew v's value, matching add_live_point's documented result.
func (c *Context) AddLivePoint(v region.Vid, p mir.Location) bool {
	if c.solved {
		panic("infer: AddLivePoint called after Solve")
	}
	return c.values.Add(v, c.elements.Index(p))
}

// AddOutlives records sup: sub @ point. It also satisfies closurereq.OuterSink,
// letting a closure's applied requirements feed straight back into a fresh
// constraint here.
func (c *Context) AddOutlives(span diagnostic.Span, sup, sub region.Vid, point mir.Location) {
	if c.solved {
		panic("infer: AddOutlives called after Solve")
	}
	c.constraints = append(c.constraints, constraint.Constraint{Sup: sup, Sub: sub, Point: point, Span: span})
}

// AddTypeTest defers tt until after propagation.
func (c *Context) AddTypeTest(tt constraint.TypeTest) error {
	if c.solved {
		return fmt.Errorf("infer: AddTypeTest called after Solve")
	}
	c.typeTests = append(c.typeTests, tt)
	return nil
}

// RegionContainsPoint reports whether p is a member of v's solved value. It
// panics if Solve has not run.
func (c *Context) RegionContainsPoint(v region.Vid, p mir.Location) bool {
	if !c.solved {
		panic("infer: RegionContainsPoint called before Solve")
	}
	return c.values.Contains(v, c.elements.Index(p))
}

// RegionValueStr renders v's solved value for debugging.
func (c *Context) RegionValueStr(v region.Vid) string {
	return c.values.RegionValueStr(v)
}

// Elements returns the element table this context was constructed over,
// for callers (dump, visualization) that need to enumerate its CFG shape.
func (c *Context) Elements() *region.Elements {
	return c.elements
}

// Solve runs propagation to its fixed point, then evaluates type tests and
// checks universal regions. isClosure selects the propagation policy: when
// true, violations that would otherwise be errors are instead encoded as
// ClosureRegionRequirements for the caller to discharge, indexed against
// numExternalVids external regions. Solve may be called exactly once.
func (c *Context) Solve(isClosure bool, numExternalVids int) (*closurereq.Requirements, *diagnostic.Log) {
	if c.solved {
		panic("infer: Solve called twice")
	}

	c.propagateConstraints()
	c.solved = true

	req := &closurereq.Requirements{NumExternalVids: numExternalVids}
	log := diagnostic.NewLog()

	c.checkTypeTests(isClosure, req, log)
	c.checkUniversalRegions(isClosure, req, log)

	return req, log
}
