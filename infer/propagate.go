package infer

import (
	"github.com/nllgo/regioninfer/mir"
	"github.com/nllgo/regioninfer/region"
)

// propagateConstraints reaches the least fixed point: for every constraint
// sup: sub @ p, every element of sub reachable from p belongs to sup.
func (c *Context) propagateConstraints() {
	changed := true
	for changed {
		changed = false
		for _, ct := range c.constraints {
			if c.dfsCopy(ct.Sup, ct.Sub, ct.Point) {
				changed = true
			}
		}
	}
}

// dfsCopy walks every CFG point reachable from start exactly once. At each
// visited point that belongs to sub's value, it adds that point to sup's
// value and unions sub's universal-endpoint bits into sup's -- end(R)
// elements are not CFG vertices, so they "stick" to every point visited
// this way rather than being walked themselves. Reachability itself is
// unconditional: the walk does not stop or skip a branch because a point
// is absent from sub, since sub's eventual value is the union of many
// separately propagated constraints and is not known to be downward-closed
// along any given path mid-fixpoint.
func (c *Context) dfsCopy(sup, sub region.Vid, start mir.Location) bool {
	startIdx := c.elements.Index(start)
	visited := map[region.ElementIndex]bool{startIdx: true}
	stack := []region.ElementIndex{startIdx}
	changed := false

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.values.Contains(sub, idx) {
			if c.values.Add(sup, idx) {
				changed = true
			}
			if c.values.MergeUniversalPortion(sup, sub) {
				changed = true
			}
		}

		for _, succ := range c.elements.Successors(idx) {
			if !visited[succ] {
				visited[succ] = true
				stack = append(stack, succ)
			}
		}
	}
	return changed
}

// evalOutlives is eval_outlives: a read-only probe mirroring dfsCopy's
// traversal, but checking that every reachable element of sub is already
// present in sup instead of copying it. It returns the first missing
// element as a witness, for diagnostics.
func (c *Context) evalOutlives(sup, sub region.Vid, point mir.Location) (bool, region.Element) {
	startIdx := c.elements.Index(point)
	visited := map[region.ElementIndex]bool{startIdx: true}
	stack := []region.ElementIndex{startIdx}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.values.Contains(sub, idx) {
			if !c.values.Contains(sup, idx) {
				return false, c.elements.ToElement(idx)
			}
			for u := 0; u < c.elements.NumUniversal(); u++ {
				endIdx := c.elements.IndexOfUniversal(region.Vid(u))
				if c.values.Contains(sub, endIdx) && !c.values.Contains(sup, endIdx) {
					return false, c.elements.ToElement(endIdx)
				}
			}
		}

		for _, succ := range c.elements.Successors(idx) {
			if !visited[succ] {
				visited[succ] = true
				stack = append(stack, succ)
			}
		}
	}
	return true, region.Element{}
}
