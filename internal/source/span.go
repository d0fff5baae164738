package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into a single file's content.
// Invariant: Start <= End.
type Span struct {
	File  FileID
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
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether other lies fully inside s (same file).
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// ContainsOffset reports whether off lies inside the half-open range.
func (s Span) ContainsOffset(off uint32) bool {
	return s.Start <= off && off < s.End
}

// Intersects reports whether the two spans share at least one byte, or touch
// when one of them is empty. The empty-touch case matters for walk windows:
// a zero-length request at an element boundary still selects that element.
func (s Span) Intersects(other Span) bool {
	if s.File != other.File {
		return false
	}
	lo := max(s.Start, other.Start)
	hi := min(s.End, other.End)
	return lo <= hi
}

// Intersect clips s to other. The returned bool is false when the spans do
// not overlap at all.
func (s Span) Intersect(other Span) (Span, bool) {
	if !s.Intersects(other) {
		return Span{}, false
	}
	return Span{
		File:  s.File,
		Start: max(s.Start, other.Start),
		End:   min(s.End, other.End),
	}, true
}

// Cover extends s to include other. Spans from different files are returned
// unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
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

// ShiftRight moves both ends of the span forward by n bytes.
func (s Span) ShiftRight(n uint32) Span {
	return Span{
		File:  s.File,
		Start: s.Start + n,
		End:   s.End + n,
	}
}
