package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
	KindHeartbeat                 // periodic liveness signal
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command, whole run
	ScopePass                    // config load, file walk, render
	ScopeFile                    // one document
	ScopeRegion                  // embedded regions and tokenizer internals
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeRegion:
		return "region"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global sequence number (monotonic)
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 if root
	GID      uint64 // goroutine ID
	Name     string // e.g. "lint", "config.load", "file:docs/a.md"
	Detail   string
	Extra    map[string]string
}
