package infer

import (
	"fmt"

	"github.com/nllgo/regioninfer/closurereq"
	"github.com/nllgo/regioninfer/constraint"
	"github.com/nllgo/regioninfer/diagnostic"
	"github.com/nllgo/regioninfer/region"
	"github.com/nllgo/regioninfer/typekind"
)

// checkTypeTests evaluates every deferred TypeTest against the solved
// values. A failing test is promoted to a requirement when isClosure, and
// reported as an error otherwise (or if promotion also fails).
func (c *Context) checkTypeTests(isClosure bool, req *closurereq.Requirements, log *diagnostic.Log) {
	for _, tt := range c.typeTests {
		tt := tt
		outlivesProbe := func(r region.Vid) bool {
			ok, _ := c.evalOutlives(r, tt.LowerBound, tt.Point)
			return ok
		}
		if tt.Test.Eval(outlivesProbe) {
			continue
		}

		if isClosure && c.tryPromote(tt, req) {
			continue
		}

		log.Add(diagnostic.Error,
			fmt.Sprintf("%s does not satisfy %s (lower bound '_%d)", tt.GenericKind, tt.Test, tt.LowerBound),
			tt.Span)
	}
}

// tryPromote implements §4.8: rewrite generic_kind's free regions to
// closure-bound placeholders (each indexed by a non-local universal
// region's Vid), lift the result, and
// push a type-subject requirement. It returns false wherever the original
// spec aborts promotion.
func (c *Context) tryPromote(tt constraint.TypeTest, req *closurereq.Requirements) bool {
	ok := true
	rewritten := tt.GenericKind.MapRegions(func(r typekind.Region) typekind.Region {
		if !ok {
			return r
		}
		if r.ClosureBound {
			return r
		}
		rPlus := c.nonLocalUniversalUpperBound(r.Vid)
		if !c.values.Contains(r.Vid, c.elements.IndexOfUniversal(rPlus)) {
			ok = false
			return r
		}
		return typekind.RClosureBound(int(rPlus))
	})
	if !ok {
		return false
	}

	lifted, liftedOK := typekind.Lift(rewritten, c.universal.IsUniversal)
	if !liftedOK {
		return false
	}

	lbPlus := c.nonLocalUniversalUpperBound(tt.LowerBound)
	if !c.universal.IsUniversal(lbPlus) || c.universal.IsLocalFree(lbPlus) {
		return false
	}

	req.Items = append(req.Items, closurereq.Requirement{
		Subject:            closurereq.TypeSubject{Kind: lifted},
		OutlivedFreeRegion: int(lbPlus),
		BlameSpan:          tt.Span,
	})
	return true
}

// nonLocalUniversalUpperBound describes r using only regions the enclosing
// scope can name: start at the function-body region, fold in every
// universal region whose end() is a member of r's value via
// PostdomUpperBound, then take the result's non-local upper bound.
func (c *Context) nonLocalUniversalUpperBound(r region.Vid) region.Vid {
	acc := c.universal.FrFnBody()
	for u := 0; u < c.universal.Len(); u++ {
		rv := region.Vid(u)
		if c.values.Contains(r, c.elements.IndexOfUniversal(rv)) {
			acc = c.universal.PostdomUpperBound(acc, rv)
		}
	}
	return c.universal.NonLocalUpperBound(acc)
}
