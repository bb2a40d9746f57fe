package region

import (
	"testing"

	"github.com/nllgo/regioninfer/mir"
)

func smallBody(t *testing.T) mir.Body {
	t.Helper()
	b := mir.NewBuilder()
	bb0 := b.AddBlock(1)
	bb1 := b.AddBlock(1)
	b.AddEdge(bb0, bb1)
	body, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return body
}

func TestAddIsIdempotent(t *testing.T) {
	body := smallBody(t)
	elements := NewElements(body, 1)
	values := NewValues(elements, 2)

	p := elements.Index(mir.Location{Block: 0, Stmt: 0})
	if !values.Add(0, p) {
		t.Fatalf("expected first Add to report growth")
	}
	if values.Add(0, p) {
		t.Fatalf("expected second Add to report no growth")
	}
	if !values.Contains(0, p) {
		t.Fatalf("expected point to be contained after Add")
	}
}

func TestUniversalRegionsOutlivedBy(t *testing.T) {
	body := smallBody(t)
	elements := NewElements(body, 2)
	values := NewValues(elements, 2)

	values.Add(0, elements.IndexOfUniversal(1))
	outlived := values.UniversalRegionsOutlivedBy(0)
	if len(outlived) != 1 || outlived[0] != 1 {
		t.Fatalf("expected [1], got %v", outlived)
	}
	if len(values.UniversalRegionsOutlivedBy(1)) != 0 {
		t.Fatalf("expected region 1 to outlive nothing yet")
	}
}

func TestMergeUniversalPortion(t *testing.T) {
	body := smallBody(t)
	elements := NewElements(body, 2)
	values := NewValues(elements, 2)

	values.Add(1, elements.IndexOfUniversal(0))
	if !values.MergeUniversalPortion(0, 1) {
		t.Fatalf("expected merge to report growth")
	}
	if !values.Contains(0, elements.IndexOfUniversal(0)) {
		t.Fatalf("expected end(0) to have propagated into region 0")
	}
	if values.MergeUniversalPortion(0, 1) {
		t.Fatalf("expected second merge to be a no-op")
	}
}

func TestClone(t *testing.T) {
	body := smallBody(t)
	elements := NewElements(body, 1)
	values := NewValues(elements, 1)
	p := elements.Index(mir.Location{Block: 0, Stmt: 0})
	values.Add(0, p)

	clone := values.Clone()
	clone.Add(0, elements.Index(mir.Location{Block: 1, Stmt: 0}))

	if values.Contains(0, elements.Index(mir.Location{Block: 1, Stmt: 0})) {
		t.Fatalf("mutating clone should not affect original")
	}
	if !clone.Contains(0, p) {
		t.Fatalf("clone should retain original's elements")
	}
}
