package diagnostic

import "testing"

func TestContainsErrors(t *testing.T) {
	log := NewLog()
	if log.ContainsErrors() {
		t.Fatalf("empty log should not contain errors")
	}
	log.Add(Info, "starting", Span{})
	if log.ContainsErrors() {
		t.Fatalf("info-only log should not contain errors")
	}
	log.Add(Error, "universal region over-grew", Span{Label: "bb1[2]"})
	if !log.ContainsErrors() {
		t.Fatalf("expected log to contain an error")
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{Severity: Error, Message: "mismatch", Span: Span{Label: "bb0[0]"}}
	if got, want := e.String(), "error: mismatch (bb0[0])"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
