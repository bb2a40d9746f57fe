package universalregions

import (
	"fmt"
	"math"

	"github.com/nllgo/regioninfer/region"
)

// Catalog is a reference Regions implementation built from an explicit list
// of universal regions and declared outlives edges. It exists for tests and
// the fixture loader; a real compiler's universal-region catalogue is
// derived from a function's actual signature instead, but exposes the same
// surface.
type Catalog struct {
	names    []string
	nameToID map[string]region.Vid
	local    []bool
	forward  [][]region.Vid // forward[sup] = declared subs (sup outlives sub)
	reverse  [][]region.Vid // reverse[sub] = declared sups
	fnBody   region.Vid
}

// Builder assembles a Catalog.
type Builder struct {
	names  []string
	local  []bool
	edges  [][2]region.Vid
	fnBody region.Vid
	hasFn  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddRegion registers a universal region and returns its Vid. local marks a
// region that cannot be named by the enclosing body's caller (e.g. a
// closure's own body region).
func (b *Builder) AddRegion(name string, local bool) region.Vid {
	v := region.Vid(len(b.names))
	b.names = append(b.names, name)
	b.local = append(b.local, local)
	return v
}

// AddOutlives declares sup: sub.
func (b *Builder) AddOutlives(sup, sub region.Vid) *Builder {
	b.edges = append(b.edges, [2]region.Vid{sup, sub})
	return b
}

// SetFnBody designates the region representing the analyzed body's own
// extent, the starting point for non-local upper bound computations.
func (b *Builder) SetFnBody(v region.Vid) *Builder {
	b.fnBody = v
	b.hasFn = true
	return b
}

// Build validates and returns the assembled Catalog.
func (b *Builder) Build() (*Catalog, error) {
	n := len(b.names)
	if !b.hasFn {
		return nil, fmt.Errorf("universalregions: no fn-body region set")
	}
	if int(b.fnBody) >= n {
		return nil, fmt.Errorf("universalregions: fn-body region %d out of range", b.fnBody)
	}

	forward := make([][]region.Vid, n)
	reverse := make([][]region.Vid, n)
	for _, e := range b.edges {
		sup, sub := e[0], e[1]
		if int(sup) >= n || int(sub) >= n {
			return nil, fmt.Errorf("universalregions: outlives edge (%d:%d) out of range", sup, sub)
		}
		forward[sup] = append(forward[sup], sub)
		reverse[sub] = append(reverse[sub], sup)
	}

	nameToID := make(map[string]region.Vid, n)
	for i, name := range b.names {
		if name != "" {
			nameToID[name] = region.Vid(i)
		}
	}

	return &Catalog{
		names:    append([]string(nil), b.names...),
		nameToID: nameToID,
		local:    append([]bool(nil), b.local...),
		forward:  forward,
		reverse:  reverse,
		fnBody:   b.fnBody,
	}, nil
}

func (c *Catalog) Len() int { return len(c.names) }

func (c *Catalog) Universal() []region.Vid {
	out := make([]region.Vid, len(c.names))
	for i := range out {
		out[i] = region.Vid(i)
	}
	return out
}

func (c *Catalog) Named() []Named {
	var out []Named
	for i, name := range c.names {
		if name != "" {
			out = append(out, Named{Name: name, Vid: region.Vid(i)})
		}
	}
	return out
}

func (c *Catalog) ToVid(name string) (region.Vid, bool) {
	v, ok := c.nameToID[name]
	return v, ok
}

func (c *Catalog) IsUniversal(v region.Vid) bool {
	return int(v) >= 0 && int(v) < len(c.names)
}

func (c *Catalog) IsLocalFree(v region.Vid) bool {
	return c.local[v]
}

func (c *Catalog) FrFnBody() region.Vid { return c.fnBody }

func (c *Catalog) NumGlobalAndExternal() int {
	n := 0
	for _, local := range c.local {
		if !local {
			n++
		}
	}
	return n
}

// Outlives reports whether sup:sub holds, directly or transitively, via
// the declared edges.
func (c *Catalog) Outlives(sup, sub region.Vid) bool {
	if sup == sub {
		return true
	}
	_, ok := c.ancestorsByDistance(sub)[sup]
	return ok
}

// PostdomUpperBound returns the nearest common ancestor of a and b in the
// outlives order -- the universal region outliving both with the smallest
// combined distance, ties broken toward the smaller Vid for determinism.
// Falls back to the fn-body region if a and b share no declared ancestor.
func (c *Catalog) PostdomUpperBound(a, b region.Vid) region.Vid {
	da := c.ancestorsByDistance(a)
	db := c.ancestorsByDistance(b)
	best := region.Vid(-1)
	bestSum := math.MaxInt
	for cand, d1 := range da {
		if d2, ok := db[cand]; ok {
			sum := d1 + d2
			if sum < bestSum || (sum == bestSum && cand < best) {
				bestSum = sum
				best = cand
			}
		}
	}
	if best < 0 {
		return c.fnBody
	}
	return best
}

// NonLocalUpperBound returns the nearest non-local ancestor of v (v itself
// if it is already non-local), falling back to the fn-body region if none
// is declared.
func (c *Catalog) NonLocalUpperBound(v region.Vid) region.Vid {
	if !c.local[v] {
		return v
	}
	dist := c.ancestorsByDistance(v)
	best := region.Vid(-1)
	bestD := math.MaxInt
	for cand, d := range dist {
		if c.local[cand] {
			continue
		}
		if d < bestD || (d == bestD && cand < best) {
			bestD = d
			best = cand
		}
	}
	if best < 0 {
		return c.fnBody
	}
	return best
}

// NonLocalLowerBound returns the nearest non-local region v is known to
// outlive (v itself if already non-local), or false if v has no non-local
// descendant.
func (c *Catalog) NonLocalLowerBound(v region.Vid) (region.Vid, bool) {
	if !c.local[v] {
		return v, true
	}
	dist := c.descendantsByDistance(v)
	best := region.Vid(-1)
	bestD := math.MaxInt
	for cand, d := range dist {
		if c.local[cand] {
			continue
		}
		if d < bestD || (d == bestD && cand < best) {
			bestD = d
			best = cand
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// ancestorsByDistance BFS-explores every region known to outlive v,
// including v itself at distance 0.
func (c *Catalog) ancestorsByDistance(v region.Vid) map[region.Vid]int {
	return bfsDistances(v, c.reverse)
}

// descendantsByDistance BFS-explores every region v is known to outlive,
// including v itself at distance 0.
func (c *Catalog) descendantsByDistance(v region.Vid) map[region.Vid]int {
	return bfsDistances(v, c.forward)
}

func bfsDistances(start region.Vid, adj [][]region.Vid) map[region.Vid]int {
	dist := map[region.Vid]int{start: 0}
	queue := []region.Vid{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, seen := dist[next]; !seen {
				dist[next] = dist[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}
