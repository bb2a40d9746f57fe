package region

import (
	"bytes"

	"github.com/bits-and-blooms/bitset"
)

// Values is a mapping from region variable to its value, one dense bitset
// of width elements.NumElements() per variable -- the same "bitset per
// fact" layout analysis/dataflow's live-variables and reaching-definitions
// passes use via github.com/bits-and-blooms/bitset, just keyed by RegionVid
// instead of a basic block.
type Values struct {
	elements *Elements
	sets     []*bitset.BitSet
}

// NewValues allocates an empty value for each of the first numRegions
// variables.
func NewValues(elements *Elements, numRegions int) *Values {
	sets := make([]*bitset.BitSet, numRegions)
	for i := range sets {
		sets[i] = bitset.New(uint(elements.NumElements()))
	}
	return &Values{elements: elements, sets: sets}
}

// Elements returns the shared element table this value set is indexed
// against.
func (v *Values) Elements() *Elements { return v.elements }

// NumRegions returns the number of region variables this value set covers.
func (v *Values) NumRegions() int { return len(v.sets) }

// Add inserts elem into vid's value. It reports whether the bit was
// previously unset (i.e. whether this call actually grew the value).
func (v *Values) Add(vid Vid, elem ElementIndex) bool {
	bs := v.sets[vid]
	if bs.Test(uint(elem)) {
		return false
	}
	bs.Set(uint(elem))
	return true
}

// Contains reports whether elem is a member of vid's value.
func (v *Values) Contains(vid Vid, elem ElementIndex) bool {
	return v.sets[vid].Test(uint(elem))
}

// MergeUniversalPortion ORs the universal-endpoint portion of src's value
// into dst's value, leaving the point portion untouched. This is the
// "end(R) sticks to every visited vertex" step of constraint propagation
// (spec. reachability semantics): whenever any point of src is reachable
// from a constraint's origin, every end(R) already in src becomes visible
// to dst too. It reports whether dst's value grew.
func (v *Values) MergeUniversalPortion(dst, src Vid) bool {
	changed := false
	for u := 0; u < v.elements.numUniversal; u++ {
		idx := v.elements.IndexOfUniversal(Vid(u))
		if v.sets[src].Test(uint(idx)) && !v.sets[dst].Test(uint(idx)) {
			v.sets[dst].Set(uint(idx))
			changed = true
		}
	}
	return changed
}

// UniversalRegionsOutlivedBy enumerates every universal region R such that
// end(R) is a member of vid's value -- i.e. every universal region vid is
// known (so far) to outlive.
func (v *Values) UniversalRegionsOutlivedBy(vid Vid) []Vid {
	var out []Vid
	for u := 0; u < v.elements.numUniversal; u++ {
		if v.sets[vid].Test(uint(v.elements.IndexOfUniversal(Vid(u)))) {
			out = append(out, Vid(u))
		}
	}
	return out
}

// Clone returns an independent copy of v that shares its element table.
// infer.Context does not call it: Solve propagates into its values in place.
func (v *Values) Clone() *Values {
	sets := make([]*bitset.BitSet, len(v.sets))
	for i, bs := range v.sets {
		sets[i] = bs.Clone()
	}
	return &Values{elements: v.elements, sets: sets}
}

// RegionValueStr renders vid's value for debugging: CFG points by location,
// universal endpoints as end(R).
func (v *Values) RegionValueStr(vid Vid) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(s string) {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		buf.WriteString(s)
	}
	for i, ok := uint(0), true; ok; i++ {
		if i, ok = v.sets[vid].NextSet(i); ok {
			write(v.elements.ToElement(ElementIndex(i)).String())
		}
	}
	buf.WriteByte('}')
	return buf.String()
}
