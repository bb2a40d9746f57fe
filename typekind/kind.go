// Package typekind models generic_kind: the minimal type/lifetime shape a
// TypeTest's subject and a closure requirement's rewritten type need, with
// just enough structure to enumerate and rewrite the region variables
// appearing free in it. It deliberately does not model a full type system;
// callers outside this engine supply richer kinds that satisfy Kind.
package typekind

import (
	"fmt"
	"strings"

	"github.com/nllgo/regioninfer/region"
)

// Region is a region variable as it appears inside a Kind. It is either a
// live region.Vid (an existential or universal region the solver tracks) or
// a closure-bound placeholder carrying the external index it stands for,
// produced when try-promoting a type test out of a closure (spec's
// ReClosureBound).
type Region struct {
	ClosureBound bool
	Vid          region.Vid
	Index        int
}

// RVar wraps a live region variable.
func RVar(v region.Vid) Region { return Region{Vid: v} }

// RClosureBound wraps a closure-bound placeholder index.
func RClosureBound(idx int) Region { return Region{ClosureBound: true, Index: idx} }

func (r Region) String() string {
	if r.ClosureBound {
		return fmt.Sprintf("'<closure:%d>", r.Index)
	}
	return fmt.Sprintf("'_%d", r.Vid)
}

// Kind is a generic_kind: either a bare lifetime or a type built from named
// constructors, references, and type parameters, with region variables
// embedded at the leaves.
type Kind interface {
	// FreeRegions appends every region variable appearing in this kind,
	// in a deterministic left-to-right order, possibly with duplicates.
	FreeRegions(out []Region) []Region

	// MapRegions returns a copy of this kind with every region variable
	// rewritten by f.
	MapRegions(f func(Region) Region) Kind

	String() string
}

// Param is an opaque type parameter; it carries no regions.
type Param struct {
	Name string
}

func (p Param) FreeRegions(out []Region) []Region  { return out }
func (p Param) MapRegions(f func(Region) Region) Kind { return p }
func (p Param) String() string                        { return p.Name }

// Lifetime is generic_kind when the subject of a type test is a bare region
// rather than a structured type (rustc's GenericKind::Lifetime).
type Lifetime struct {
	Region Region
}

func (l Lifetime) FreeRegions(out []Region) []Region { return append(out, l.Region) }
func (l Lifetime) MapRegions(f func(Region) Region) Kind {
	return Lifetime{Region: f(l.Region)}
}
func (l Lifetime) String() string { return l.Region.String() }

// Ref is a reference type &'r Elem.
type Ref struct {
	Region Region
	Elem   Kind
}

func (r Ref) FreeRegions(out []Region) []Region {
	out = append(out, r.Region)
	return r.Elem.FreeRegions(out)
}
func (r Ref) MapRegions(f func(Region) Region) Kind {
	return Ref{Region: f(r.Region), Elem: r.Elem.MapRegions(f)}
}
func (r Ref) String() string { return fmt.Sprintf("&%s %s", r.Region, r.Elem) }

// Named is a generic named type applied to arguments, each of which may
// itself carry free regions (e.g. Vec<&'a T>).
type Named struct {
	Name string
	Args []Kind
}

func (n Named) FreeRegions(out []Region) []Region {
	for _, a := range n.Args {
		out = a.FreeRegions(out)
	}
	return out
}

func (n Named) MapRegions(f func(Region) Region) Kind {
	args := make([]Kind, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.MapRegions(f)
	}
	return Named{Name: n.Name, Args: args}
}

func (n Named) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", n.Name, strings.Join(parts, ", "))
}

// Lift confirms that k carries no region variable other than closure-bound
// placeholders or universal regions -- the check spec's try-promotion step
// performs before handing a rewritten kind to the outer context. universal
// reports whether a given non-closure-bound region.Vid is universal.
func Lift(k Kind, universal func(region.Vid) bool) (Kind, bool) {
	for _, r := range k.FreeRegions(nil) {
		if r.ClosureBound {
			continue
		}
		if !universal(r.Vid) {
			return nil, false
		}
	}
	return k, true
}
