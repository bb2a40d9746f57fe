package infer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nllgo/regioninfer/closurereq"
	"github.com/nllgo/regioninfer/constraint"
	"github.com/nllgo/regioninfer/diagnostic"
	"github.com/nllgo/regioninfer/mir"
	"github.com/nllgo/regioninfer/region"
	"github.com/nllgo/regioninfer/typekind"
	"github.com/nllgo/regioninfer/universalregions"
)

// TestTypeTestPromotionSucceedsInClosure is spec scenario 5: a failing type
// test in a closure body is promoted to a requirement instead of reported.
func TestTypeTestPromotionSucceedsInClosure(t *testing.T) {
	body := linearBody(t)
	ub := universalregions.NewBuilder()
	a := ub.AddRegion("'a", false)
	fnBody := ub.AddRegion("", true)
	ub.AddOutlives(a, fnBody)
	ub.SetFnBody(fnBody)
	universal, err := ub.Build()
	if err != nil {
		t.Fatalf("Build universal regions: %v", err)
	}
	elements := region.NewElements(body, universal.Len())

	ctx, err := New(elements, universal, universal.Len()+2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r0 := region.Vid(universal.Len())
	fresh := region.Vid(universal.Len() + 1)
	p := mir.Location{Block: 0, Stmt: 0}
	ctx.AddOutlives(diagnostic.Span{Label: "r0 outlives a"}, r0, a, p)

	test := constraint.IsOutlivedByAllRegionsIn{Regions: []region.Vid{fresh}}
	if err := ctx.AddTypeTest(constraint.TypeTest{
		GenericKind: typekind.Lifetime{Region: typekind.RVar(r0)},
		LowerBound:  r0,
		Point:       p,
		Span:        diagnostic.Span{Label: "type test"},
		Test:        test,
	}); err != nil {
		t.Fatalf("AddTypeTest: %v", err)
	}

	req, log := ctx.Solve(true, universal.NumGlobalAndExternal())
	if log.ContainsErrors() {
		t.Fatalf("expected the failed test to be promoted, not reported: %v", log)
	}
	if len(req.Items) != 1 {
		t.Fatalf("expected exactly one closure requirement, got %v", req.Items)
	}

	got := req.Items[0]
	ts, ok := got.Subject.(closurereq.TypeSubject)
	if !ok {
		t.Fatalf("expected a TypeSubject requirement, got %#v", got.Subject)
	}
	want := typekind.Lifetime{Region: typekind.RClosureBound(int(a))}
	if diff := cmp.Diff(want, ts.Kind); diff != "" {
		t.Fatalf("unexpected promoted kind (-want +got):\n%s", diff)
	}
	if got.OutlivedFreeRegion != int(a) {
		t.Fatalf("expected the requirement to name 'a as the outlived free region, got %d", got.OutlivedFreeRegion)
	}
}

// TestTypeTestPromotionAbortsWhenRewriteFails exercises §4.8 step 1: a free
// region whose value does not already contain its candidate upper bound's
// endpoint aborts promotion, so the closure still gets a diagnostic.
func TestTypeTestPromotionAbortsWhenRewriteFails(t *testing.T) {
	body := linearBody(t)
	ub := universalregions.NewBuilder()
	a := ub.AddRegion("'a", false)
	fnBody := ub.AddRegion("", true)
	ub.AddOutlives(a, fnBody)
	ub.SetFnBody(fnBody)
	universal, err := ub.Build()
	if err != nil {
		t.Fatalf("Build universal regions: %v", err)
	}
	elements := region.NewElements(body, universal.Len())

	ctx, err := New(elements, universal, universal.Len()+2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r0 := region.Vid(universal.Len())
	fresh := region.Vid(universal.Len() + 1)
	p := mir.Location{Block: 0, Stmt: 0}
	// r0 picks up real content so it can serve as the always-failing test's
	// lower bound; fresh never gains any constraint, so its value never
	// contains the endpoint tryPromote needs to find.
	ctx.AddOutlives(diagnostic.Span{Label: "r0 outlives a"}, r0, a, p)

	test := constraint.IsOutlivedByAllRegionsIn{Regions: []region.Vid{fresh}}
	if err := ctx.AddTypeTest(constraint.TypeTest{
		GenericKind: typekind.Lifetime{Region: typekind.RVar(fresh)},
		LowerBound:  r0,
		Point:       p,
		Span:        diagnostic.Span{Label: "type test"},
		Test:        test,
	}); err != nil {
		t.Fatalf("AddTypeTest: %v", err)
	}

	req, log := ctx.Solve(true, universal.NumGlobalAndExternal())
	if !log.ContainsErrors() {
		t.Fatalf("expected promotion to abort and fall through to a diagnostic")
	}
	if len(req.Items) != 0 {
		t.Fatalf("expected no requirements when promotion aborts, got %v", req.Items)
	}
}

// TestTypeTestPromotionAbortsWhenLowerBoundIsLocal exercises §4.8 step 3:
// the rewrite succeeds, but the lower bound's non-local universal upper
// bound resolves to a local-only region, so promotion still aborts.
func TestTypeTestPromotionAbortsWhenLowerBoundIsLocal(t *testing.T) {
	body := linearBody(t)
	elements, universal := noUniversal(t, body)

	ctx, err := New(elements, universal, universal.Len()+2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r0 := region.Vid(universal.Len())
	fresh := region.Vid(universal.Len() + 1)
	p := mir.Location{Block: 0, Stmt: 0}
	ctx.AddOutlives(diagnostic.Span{Label: "r0 outlives fn_body"}, r0, universal.FrFnBody(), p)

	test := constraint.IsOutlivedByAllRegionsIn{Regions: []region.Vid{fresh}}
	if err := ctx.AddTypeTest(constraint.TypeTest{
		GenericKind: typekind.Lifetime{Region: typekind.RVar(r0)},
		LowerBound:  r0,
		Point:       p,
		Span:        diagnostic.Span{Label: "type test"},
		Test:        test,
	}); err != nil {
		t.Fatalf("AddTypeTest: %v", err)
	}

	req, log := ctx.Solve(true, universal.NumGlobalAndExternal())
	if !log.ContainsErrors() {
		t.Fatalf("expected promotion to abort because the lower bound has no non-local upper bound")
	}
	if len(req.Items) != 0 {
		t.Fatalf("expected no requirements when promotion aborts, got %v", req.Items)
	}
}

// TestTypeTestFailureNonClosureReportsDiagnostic covers §7's "type test
// failed" error kind outside a closure body, where no promotion is ever
// attempted.
func TestTypeTestFailureNonClosureReportsDiagnostic(t *testing.T) {
	body := linearBody(t)
	ub := universalregions.NewBuilder()
	a := ub.AddRegion("'a", false)
	fnBody := ub.AddRegion("", true)
	ub.AddOutlives(a, fnBody)
	ub.SetFnBody(fnBody)
	universal, err := ub.Build()
	if err != nil {
		t.Fatalf("Build universal regions: %v", err)
	}
	elements := region.NewElements(body, universal.Len())

	ctx, err := New(elements, universal, universal.Len()+2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r0 := region.Vid(universal.Len())
	fresh := region.Vid(universal.Len() + 1)
	p := mir.Location{Block: 0, Stmt: 0}
	ctx.AddLivePoint(r0, p)

	test := constraint.IsOutlivedByAllRegionsIn{Regions: []region.Vid{fresh}}
	if err := ctx.AddTypeTest(constraint.TypeTest{
		GenericKind: typekind.Lifetime{Region: typekind.RVar(r0)},
		LowerBound:  r0,
		Point:       p,
		Span:        diagnostic.Span{Label: "type test"},
		Test:        test,
	}); err != nil {
		t.Fatalf("AddTypeTest: %v", err)
	}

	req, log := ctx.Solve(false, 0)
	if !log.ContainsErrors() {
		t.Fatalf("expected a diagnostic for the failed, unpromotable type test")
	}
	if len(req.Items) != 0 {
		t.Fatalf("expected no requirements outside a closure body, got %v", req.Items)
	}
	if !strings.Contains(log.String(), "does not satisfy") {
		t.Fatalf("expected the standard type-test failure message, got %q", log.String())
	}
}
