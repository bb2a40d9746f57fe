// Package universalregions describes the UniversalRegions collaborator:
// the catalogue of universally quantified regions a function signature
// declares, and the partial order ("R outlives R'") known about them
// independent of anything the solver infers.
package universalregions

import "github.com/nllgo/regioninfer/region"

// Named pairs a universal region with its user-visible name.
type Named struct {
	Name string
	Vid  region.Vid
}

// Regions is everything the engine needs from the host's universal-region
// catalogue. A concrete function signature's lifetime parameters, their
// declared outlives facts, and the notion of which regions are "local" to
// the body being analyzed (and hence cannot be named by its caller) all
// live behind this interface; Catalog below is a reference implementation
// used by tests and the fixture loader.
type Regions interface {
	// Len returns the number of universal regions (U); they occupy
	// region.Vid [0, Len()).
	Len() int

	// Universal iterates every universal region's Vid.
	Universal() []region.Vid

	// Named iterates the universal regions that have a user-visible
	// name ('static, a named lifetime parameter, ...).
	Named() []Named

	// ToVid resolves a named region to its Vid.
	ToVid(name string) (region.Vid, bool)

	// IsUniversal reports whether v is one of the universal regions.
	IsUniversal(v region.Vid) bool

	// IsLocalFree reports whether v is a universal region that cannot
	// be named outside the body being analyzed (e.g. a closure's
	// upvar-only region).
	IsLocalFree(v region.Vid) bool

	// Outlives reports whether the signature declares sup: sub
	// (independent of anything inferred).
	Outlives(sup, sub region.Vid) bool

	// PostdomUpperBound returns the smallest known universal region
	// that outlives both a and b.
	PostdomUpperBound(a, b region.Vid) region.Vid

	// NonLocalUpperBound returns the smallest non-local universal
	// region known to outlive v. If v is already non-local, that is v
	// itself.
	NonLocalUpperBound(v region.Vid) region.Vid

	// NonLocalLowerBound returns the largest non-local universal
	// region that v is known to outlive, if any such region exists.
	NonLocalLowerBound(v region.Vid) (region.Vid, bool)

	// NumGlobalAndExternal returns the number of universal regions
	// nameable outside the body -- the width of a closure's requirement
	// vector.
	NumGlobalAndExternal() int

	// FrFnBody returns the region representing the body's own extent,
	// used as the starting point when computing a non-local universal
	// upper bound.
	FrFnBody() region.Vid
}
