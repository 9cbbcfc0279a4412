package argv

import (
	"fmt"
)

// Span identifies a byte range inside a single raw argument.
// Arg is the index into the argv slice (program name excluded),
// Start/End are byte offsets within that argument, end-exclusive.
type Span struct {
	Arg   uint32
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Arg, s.Start, s.End)
}

// Cover extends the span to include other. Spans in different
// arguments cannot be merged; the receiver wins.
func (s Span) Cover(other Span) Span {
	if s.Arg != other.Arg {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
