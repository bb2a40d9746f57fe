// Package closurereq models ClosureRegionRequirements: the obligations a
// closure body's solve leaves for its enclosing body to discharge, and
// their re-instantiation against the caller's own regions at a call site.
package closurereq

import (
	"fmt"

	"github.com/nllgo/regioninfer/diagnostic"
	"github.com/nllgo/regioninfer/mir"
	"github.com/nllgo/regioninfer/region"
	"github.com/nllgo/regioninfer/typekind"
)

// Subject is the obligation a Requirement asserts: either a concrete
// universal region (by its external index) or a generic type with its
// free regions recoded as closure-bound placeholders.
type Subject interface {
	subject()
}

// RegionSubject is Subject when the obligation names a bare region.
type RegionSubject struct {
	// Index is the region's position in the closure's external region
	// list, the same numbering typekind.RClosureBound placeholders use.
	Index int
}

func (RegionSubject) subject() {}

// TypeSubject is Subject when the obligation names a generic type; every
// free region in Kind is a closure-bound placeholder awaiting translation.
type TypeSubject struct {
	Kind typekind.Kind
}

func (TypeSubject) subject() {}

// Requirement is one obligation: Subject must outlive OutlivedFreeRegion.
type Requirement struct {
	Subject            Subject
	OutlivedFreeRegion int
	BlameSpan          diagnostic.Span
}

// Requirements is the output of solving a closure body: every obligation
// the closure could not discharge itself, indexed against a
// caller-supplied closure_mapping of width NumExternalVids.
type Requirements struct {
	NumExternalVids int
	Items           []Requirement
}

// OuterSink is the minimal surface Apply needs from the caller's own
// inference context: the ability to register a fresh outlives constraint.
// infer.Context satisfies this structurally, without closurereq ever
// importing infer.
type OuterSink interface {
	AddOutlives(span diagnostic.Span, sup, sub region.Vid, point mir.Location)
}

// Apply re-instantiates every requirement against the caller's regions,
// pushing the resulting outlives constraints into sink. mapping translates
// an external index (closure_mapping) into a concrete region.Vid in the
// caller's scope; it must have exactly NumExternalVids entries.
func (r *Requirements) Apply(sink OuterSink, mapping []region.Vid, point mir.Location) error {
	if len(mapping) != r.NumExternalVids {
		return fmt.Errorf("closurereq: closure_mapping has %d entries, want %d", len(mapping), r.NumExternalVids)
	}
	for _, req := range r.Items {
		if req.OutlivedFreeRegion < 0 || req.OutlivedFreeRegion >= len(mapping) {
			return fmt.Errorf("closurereq: outlived_free_region index %d out of range", req.OutlivedFreeRegion)
		}
		rOut := mapping[req.OutlivedFreeRegion]

		switch subj := req.Subject.(type) {
		case RegionSubject:
			if subj.Index < 0 || subj.Index >= len(mapping) {
				return fmt.Errorf("closurereq: region subject index %d out of range", subj.Index)
			}
			rIn := mapping[subj.Index]
			sink.AddOutlives(req.BlameSpan, rIn, rOut, point)

		case TypeSubject:
			var translateErr error
			rewritten := subj.Kind.MapRegions(func(placeholder typekind.Region) typekind.Region {
				if !placeholder.ClosureBound {
					translateErr = fmt.Errorf("closurereq: type subject carries a free region %s that is not closure-bound", placeholder)
					return placeholder
				}
				if placeholder.Index < 0 || placeholder.Index >= len(mapping) {
					translateErr = fmt.Errorf("closurereq: closure-bound index %d out of range", placeholder.Index)
					return placeholder
				}
				return typekind.RVar(mapping[placeholder.Index])
			})
			if translateErr != nil {
				return translateErr
			}
			for _, fr := range rewritten.FreeRegions(nil) {
				sink.AddOutlives(req.BlameSpan, fr.Vid, rOut, point)
			}

		default:
			return fmt.Errorf("closurereq: unknown subject type %T", req.Subject)
		}
	}
	return nil
}
