package region

import (
	"fmt"

	"github.com/nllgo/regioninfer/mir"
)

// ElementIndex is a dense index into the [0, N) space backing every
// region's bitset, where N = (number of CFG points) + (number of
// universal regions).
type ElementIndex uint

// Element is exactly one of a CFG point or the "end" of a universal
// region's extent. It is the decoded form of an ElementIndex; the index
// itself is what actually gets stored in bitsets, per the Design Notes'
// preference for a compact encoding over a tagged struct on the hot path.
type Element struct {
	IsPoint bool
	Point   mir.Location
	End     Vid
}

func (e Element) String() string {
	if e.IsPoint {
		return e.Point.String()
	}
	return fmt.Sprintf("end(%d)", e.End)
}

// Elements is the bijection between (CFG points ⊎ universal regions) and
// [0, N). It is built once from a body and a universal-region count and is
// immutable afterward, so it is safe to share a single *Elements between
// a Values and every copy Values.Clone makes of it -- the
// sharing the Design Notes describe as "any number of readers, lifetime
// equals the longest holder".
type Elements struct {
	body         mir.Body
	locations    []mir.Location
	indexOfLoc   map[mir.Location]ElementIndex
	numPoints    int
	numUniversal int
}

// NewElements indexes every point in body and reserves numUniversal slots
// for universal-region endpoints immediately after the point block.
func NewElements(body mir.Body, numUniversal int) *Elements {
	locs := mir.AllLocations(body)
	idx := make(map[mir.Location]ElementIndex, len(locs))
	for i, l := range locs {
		idx[l] = ElementIndex(i)
	}
	return &Elements{
		body:         body,
		locations:    locs,
		indexOfLoc:   idx,
		numPoints:    len(locs),
		numUniversal: numUniversal,
	}
}

// Body returns the underlying CFG.
func (e *Elements) Body() mir.Body { return e.body }

// NumElements returns N, the total width every region's bitset must have.
func (e *Elements) NumElements() int { return e.numPoints + e.numUniversal }

// NumUniversal returns the count of universal regions (U).
func (e *Elements) NumUniversal() int { return e.numUniversal }

// Index maps a CFG point to its dense index.
func (e *Elements) Index(loc mir.Location) ElementIndex {
	idx, ok := e.indexOfLoc[loc]
	if !ok {
		panic(fmt.Sprintf("region: location %v is not part of this body", loc))
	}
	return idx
}

// IndexOfUniversal maps a universal region to the index of its end(R)
// element.
func (e *Elements) IndexOfUniversal(r Vid) ElementIndex {
	if int(r) >= e.numUniversal {
		panic(fmt.Sprintf("region: %d is not a universal region index (< %d)", r, e.numUniversal))
	}
	return ElementIndex(e.numPoints + int(r))
}

// ToElement decodes an index back into a point or a universal endpoint.
func (e *Elements) ToElement(idx ElementIndex) Element {
	if int(idx) < e.numPoints {
		return Element{IsPoint: true, Point: e.locations[idx]}
	}
	return Element{End: Vid(int(idx) - e.numPoints)}
}

// AllPointIndices iterates every point's dense index.
func (e *Elements) AllPointIndices() []ElementIndex {
	out := make([]ElementIndex, e.numPoints)
	for i := range out {
		out[i] = ElementIndex(i)
	}
	return out
}

// Successors returns the dense indices directly reachable, in one CFG
// step, from the point at idx. Calling it on a universal-region element
// is a programmer error: those are not CFG vertices.
func (e *Elements) Successors(idx ElementIndex) []ElementIndex {
	if int(idx) >= e.numPoints {
		panic("region: Successors called on a universal-region element")
	}
	next := mir.Successors(e.body, e.locations[idx])
	out := make([]ElementIndex, len(next))
	for i, n := range next {
		out[i] = e.Index(n)
	}
	return out
}
