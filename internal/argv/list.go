package argv

import (
	"fmt"

	"fortio.org/safecast"
)

// List wraps the raw argument vector (program name excluded) so spans
// can be resolved back to the text they point at. The underlying slice
// is never mutated.
type List struct {
	args []string
}

func New(args []string) List {
	return List{args: args}
}

func (l List) Len() int {
	return len(l.args)
}

// At returns the raw argument at index i.
func (l List) At(i int) string {
	return l.args[i]
}

// Args returns the underlying slice. Callers must not modify it.
func (l List) Args() []string {
	return l.args
}

// SpanOf covers the whole argument at index i.
func (l List) SpanOf(i int) Span {
	idx, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("argv index overflow: %w", err))
	}
	end, err := safecast.Conv[uint32](len(l.args[i]))
	if err != nil {
		panic(fmt.Errorf("argv length overflow: %w", err))
	}
	return Span{Arg: idx, Start: 0, End: end}
}

// SpanWithin covers the byte range [start, end) inside argument i.
func (l List) SpanWithin(i, start, end int) Span {
	s := l.SpanOf(i)
	s.Start = uint32(start)
	s.End = uint32(end)
	return s
}

// Text resolves a span back to the text it covers. Out-of-range spans
// resolve to the empty string rather than panicking, so diagnostics
// built from synthetic spans (end of input) stay printable.
func (l List) Text(s Span) string {
	if int(s.Arg) >= len(l.args) {
		return ""
	}
	arg := l.args[s.Arg]
	if int(s.End) > len(arg) || s.Start > s.End {
		return ""
	}
	return arg[s.Start:s.End]
}

// EndSpan is an empty span one past the last argument, used for
// "expected more input" diagnostics.
func (l List) EndSpan() Span {
	idx, err := safecast.Conv[uint32](len(l.args))
	if err != nil {
		panic(fmt.Errorf("argv index overflow: %w", err))
	}
	return Span{Arg: idx, Start: 0, End: 0}
}
