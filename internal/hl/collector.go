package hl

import (
	"sort"

	"shine/internal/source"
)

// HighlightedRange is one classified span. BindingHash is zero unless the
// span is a local binding that needs shadow disambiguation.
type HighlightedRange struct {
	Span        source.Span
	Highlight   Highlight
	BindingHash uint64
}

// Collector accumulates classified spans and maintains the output invariant:
// spans are sorted by start, pairwise non-overlapping, and clipped to the
// collector's bounds.
//
// Overlap policy: a span lying strictly inside an existing one refines it,
// regardless of add order; an equal span overrides in add order; a wider span
// fills only the parts its narrower predecessors left uncovered. Doc-comment
// injection therefore overrides the default comment highlight it follows,
// while escape and format-specifier spans survive the enclosing string
// literal's highlight added after them.
type Collector struct {
	bounds source.Span
	segs   []HighlightedRange
}

// NewCollector creates an empty collector scoped to bounds.
func NewCollector(bounds source.Span) *Collector {
	return &Collector{bounds: bounds, segs: make([]HighlightedRange, 0, 64)}
}

// Bounds returns the collector's window.
func (c *Collector) Bounds() source.Span { return c.bounds }

// Add records a classification for span, clipped to the collector's bounds.
// Spans outside the bounds, empty spans, and spans from other files are
// dropped.
func (c *Collector) Add(span source.Span, h Highlight, bindingHash uint64) {
	if span.File != c.bounds.File {
		return
	}
	clipped, ok := span.Intersect(c.bounds)
	if !ok || clipped.Empty() {
		return
	}
	c.insert(HighlightedRange{Span: clipped, Highlight: h, BindingHash: bindingHash})
}

// AddRange records an already-built range, applying the same clipping rules.
func (c *Collector) AddRange(r HighlightedRange) {
	c.Add(r.Span, r.Highlight, r.BindingHash)
}

func (c *Collector) insert(add HighlightedRange) {
	s, e := add.Span.Start, add.Span.End

	// First existing segment that ends after the new start.
	lo := sort.Search(len(c.segs), func(i int) bool { return c.segs[i].Span.End > s })

	out := make([]HighlightedRange, 0, len(c.segs)+3)
	out = append(out, c.segs[:lo]...)

	cur := s
	i := lo
	for i < len(c.segs) && c.segs[i].Span.Start < e {
		seg := c.segs[i]

		// Gap before this segment belongs to the new range.
		if cur < seg.Span.Start {
			out = append(out, piece(add, cur, seg.Span.Start))
			cur = seg.Span.Start
		}

		overlapEnd := min(seg.Span.End, e)
		if c.newWins(seg.Span, add.Span) {
			// Keep the segment's leading remainder, give the overlap
			// to the new range (emitted below as one run), keep the
			// trailing remainder.
			if seg.Span.Start < cur {
				out = append(out, piece(seg, seg.Span.Start, cur))
			}
			if cur < overlapEnd {
				out = append(out, piece(add, cur, overlapEnd))
			}
			if e < seg.Span.End {
				out = append(out, piece(seg, e, seg.Span.End))
			}
		} else {
			// The narrower earlier segment survives inside the new
			// wider range.
			out = append(out, seg)
		}
		cur = max(cur, overlapEnd)
		i++
	}
	if cur < e {
		out = append(out, piece(add, cur, e))
	}

	out = append(out, c.segs[i:]...)
	c.segs = coalesce(out)
}

// newWins decides the overlap winner between an existing segment and a newly
// added span: the new span wins unless it strictly contains the existing one.
func (c *Collector) newWins(existing, added source.Span) bool {
	strictlyContains := added.Start <= existing.Start && existing.End <= added.End &&
		(added.Start != existing.Start || added.End != existing.End)
	return !strictlyContains
}

func piece(r HighlightedRange, start, end uint32) HighlightedRange {
	r.Span.Start = start
	r.Span.End = end
	return r
}

// coalesce merges adjacent pieces that carry the identical classification,
// which the splitting above can produce.
func coalesce(segs []HighlightedRange) []HighlightedRange {
	out := segs[:0]
	for _, seg := range segs {
		if seg.Span.Empty() {
			continue
		}
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.Span.End == seg.Span.Start &&
				last.Highlight == seg.Highlight &&
				last.BindingHash == seg.BindingHash {
				last.Span.End = seg.Span.End
				continue
			}
		}
		out = append(out, seg)
	}
	return out
}

// Finalize returns the sorted, non-overlapping sequence. The collector keeps
// the invariant incrementally, so this is a copy, not a recomputation.
func (c *Collector) Finalize() []HighlightedRange {
	out := make([]HighlightedRange, len(c.segs))
	copy(out, c.segs)
	return out
}
