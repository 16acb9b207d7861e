package token

import "fmt"

// Span is a half-open byte range over a source buffer. It carries no
// semantic weight; it exists purely so diagnostics can point back at
// source text.
type Span struct {
	Index uint32
	Len   uint16
}

// NewSpan builds a span covering [index, index+length).
func NewSpan(index uint32, length uint16) Span {
	return Span{Index: index, Len: length}
}

// End returns the offset one past the last byte covered by the span.
func (s Span) End() uint32 {
	return s.Index + uint32(s.Len)
}

// Concat returns the smallest span covering both s and other. Spans are
// expected to come from the same source buffer; the result runs from the
// lower start to the higher end regardless of which argument is which.
func (s Span) Concat(other Span) Span {
	start := s.Index
	if other.Index < start {
		start = other.Index
	}
	end := s.End()
	if other.End() > end {
		end = other.End()
	}
	return Span{Index: start, Len: uint16(end - start)}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Index, s.End())
}
