// Package diagnostic collects informational messages, and the errors the
// solver's final checks produce, into a Log -- the same "every pass
// appends to a shared log, inspect it when done" shape as doctor/log.go,
// generalized from file-offset positions to CFG locations and constraint
// spans.
package diagnostic

import "bytes"

// Severity classifies a log entry, ordered so that >= ERROR reliably picks
// out anything that should block treating the inference result as sound.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	FatalError
)

func (s Severity) String() string {
	switch s {
	case Info:
		return ""
	case Warning:
		return "warning: "
	case Error:
		return "error: "
	case FatalError:
		return "fatal error: "
	default:
		return "?: "
	}
}

// Span is a source-location handle attached to a constraint or type test,
// carried through solving purely so a failed check can point back at why
// it was asserted. Label is a human-readable description ("return value
// at bb2[0]"); the engine itself never interprets it.
type Span struct {
	Label string
}

func (s Span) String() string { return s.Label }

// Entry is one message in a Log.
type Entry struct {
	Severity Severity
	Message  string
	Span     Span
}

func (e Entry) String() string {
	var buf bytes.Buffer
	buf.WriteString(e.Severity.String())
	buf.WriteString(e.Message)
	if e.Span.Label != "" {
		buf.WriteString(" (")
		buf.WriteString(e.Span.Label)
		buf.WriteByte(')')
	}
	return buf.String()
}

// Log accumulates every diagnostic the solver's final checks produce.
type Log struct {
	Entries []Entry
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Add appends an entry.
func (l *Log) Add(severity Severity, message string, span Span) {
	l.Entries = append(l.Entries, Entry{Severity: severity, Message: message, Span: span})
}

// ContainsErrors reports whether the log holds at least one Error or
// FatalError entry.
func (l *Log) ContainsErrors() bool {
	for _, e := range l.Entries {
		if e.Severity >= Error {
			return true
		}
	}
	return false
}

func (l *Log) String() string {
	var buf bytes.Buffer
	for _, e := range l.Entries {
		buf.WriteString(e.String())
		buf.WriteByte('\n')
	}
	return buf.String()
}
