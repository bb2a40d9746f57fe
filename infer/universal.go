package infer

import (
	"fmt"
	"math"

	"github.com/nllgo/regioninfer/closurereq"
	"github.com/nllgo/regioninfer/diagnostic"
	"github.com/nllgo/regioninfer/region"
)

// checkUniversalRegions implements §4.7: every universal region's solved
// value may only contain the ends of universal regions it declaratively
// outlives. A violation becomes a requirement in a closure body, or an
// error otherwise.
func (c *Context) checkUniversalRegions(isClosure bool, req *closurereq.Requirements, log *diagnostic.Log) {
	for u := 0; u < c.universal.Len(); u++ {
		long := region.Vid(u)
		for _, short := range c.values.UniversalRegionsOutlivedBy(long) {
			if short == long {
				continue
			}
			if c.universal.Outlives(long, short) {
				continue
			}

			span := c.blameSpan(long, short)

			if isClosure {
				if longMinus, ok := c.universal.NonLocalLowerBound(long); ok {
					shortPlus := c.universal.NonLocalUpperBound(short)
					req.Items = append(req.Items, closurereq.Requirement{
						Subject:            closurereq.RegionSubject{Index: int(longMinus)},
						OutlivedFreeRegion: int(shortPlus),
						BlameSpan:          span,
					})
					continue
				}
			}

			log.Add(diagnostic.Error,
				fmt.Sprintf("%s does not outlive %s", c.regionName(long), c.regionName(short)),
				span)
		}
	}
}

func (c *Context) regionName(v region.Vid) string {
	for _, n := range c.universal.Named() {
		if n.Vid == v {
			return n.Name
		}
	}
	return fmt.Sprintf("'_%d", v)
}

// blameSpan implements §4.9: BFS-style distance relaxation over the
// constraint multigraph (sup -> sub edges) from fr1, then among the
// constraints asserting sub = fr2, picks the one whose sup is closest.
func (c *Context) blameSpan(fr1, fr2 region.Vid) diagnostic.Span {
	dep := map[region.Vid]int{fr1: 0}
	changed := true
	for changed {
		changed = false
		for _, ct := range c.constraints {
			d, ok := dep[ct.Sup]
			if !ok {
				continue
			}
			if cur, ok := dep[ct.Sub]; !ok || d+1 < cur {
				dep[ct.Sub] = d + 1
				changed = true
			}
		}
	}

	bestIdx := -1
	bestDist := math.MaxInt
	for i, ct := range c.constraints {
		if ct.Sub != fr2 {
			continue
		}
		d, ok := dep[ct.Sup]
		if !ok {
			continue
		}
		if bestIdx < 0 || d < bestDist || (d == bestDist && ct.Less(c.constraints[bestIdx])) {
			bestDist = d
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		panic(fmt.Sprintf("infer: blame span invariant violated: no constraint explains '_%d : '_%d", fr1, fr2))
	}
	return c.constraints[bestIdx].Span
}
