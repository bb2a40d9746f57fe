package universalregions

import "testing"

func TestCatalogOutlivesTransitive(t *testing.T) {
	b := NewBuilder()
	static := b.AddRegion("'static", false)
	a := b.AddRegion("'a", false)
	fnBody := b.AddRegion("", true)
	b.AddOutlives(static, a)
	b.AddOutlives(a, fnBody)
	b.SetFnBody(fnBody)

	cat, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !cat.Outlives(static, fnBody) {
		t.Fatalf("expected 'static to transitively outlive fn body")
	}
	if cat.Outlives(fnBody, static) {
		t.Fatalf("did not expect fn body to outlive 'static")
	}
	if !cat.Outlives(a, a) {
		t.Fatalf("expected reflexive outlives")
	}
}

func TestCatalogNamedAndToVid(t *testing.T) {
	b := NewBuilder()
	static := b.AddRegion("'static", false)
	fnBody := b.AddRegion("", true)
	b.AddOutlives(static, fnBody)
	b.SetFnBody(fnBody)
	cat, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, ok := cat.ToVid("'b"); ok {
		t.Fatalf("expected lookup of unknown name to fail")
	}
	v, ok := cat.ToVid("'static")
	if !ok || v != static {
		t.Fatalf("expected 'static to resolve to its Vid")
	}
	named := cat.Named()
	if len(named) != 1 || named[0].Name != "'static" {
		t.Fatalf("expected exactly one named region, got %v", named)
	}
}

func TestCatalogNonLocalUpperBound(t *testing.T) {
	b := NewBuilder()
	static := b.AddRegion("'static", false)
	a := b.AddRegion("'a", true)
	fnBody := b.AddRegion("", true)
	b.AddOutlives(static, a)
	b.AddOutlives(a, fnBody)
	b.SetFnBody(fnBody)
	cat, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := cat.NonLocalUpperBound(a); got != static {
		t.Fatalf("expected non-local upper bound of 'a to be 'static, got %v", got)
	}
	if got := cat.NonLocalUpperBound(static); got != static {
		t.Fatalf("expected non-local region's upper bound to be itself")
	}
}

func TestCatalogNonLocalLowerBound(t *testing.T) {
	b := NewBuilder()
	static := b.AddRegion("'static", false)
	local := b.AddRegion("", true)
	fnBody := b.AddRegion("", true)
	b.AddOutlives(static, local)
	b.AddOutlives(local, fnBody)
	b.SetFnBody(fnBody)
	cat, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, ok := cat.NonLocalLowerBound(static)
	if !ok || got != static {
		t.Fatalf("expected non-local region's lower bound to be itself")
	}
	if _, ok := cat.NonLocalLowerBound(fnBody); ok {
		t.Fatalf("expected fn body, which outlives nothing non-local, to have no lower bound")
	}
}

func TestCatalogPostdomUpperBound(t *testing.T) {
	b := NewBuilder()
	static := b.AddRegion("'static", false)
	a := b.AddRegion("'a", false)
	c := b.AddRegion("'c", false)
	fnBody := b.AddRegion("", true)
	b.AddOutlives(static, a)
	b.AddOutlives(static, c)
	b.AddOutlives(a, fnBody)
	b.SetFnBody(fnBody)
	cat, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := cat.PostdomUpperBound(a, c); got != static {
		t.Fatalf("expected common ancestor of 'a and 'c to be 'static, got %v", got)
	}
	if got := cat.PostdomUpperBound(a, a); got != a {
		t.Fatalf("expected PostdomUpperBound(a, a) == a, got %v", got)
	}
}

func TestBuilderRejectsMissingFnBody(t *testing.T) {
	b := NewBuilder()
	b.AddRegion("'static", false)
	if _, err := b.Build(); err == nil {
		t.Fatalf("expected error when no fn-body region is set")
	}
}
