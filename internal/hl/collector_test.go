package hl_test

import (
	"testing"

	"shine/internal/hl"
	"shine/internal/source"
)

func wholeFile() source.Span {
	return source.Span{File: 0, Start: 0, End: 1000}
}

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

// checkInvariant verifies the collector's output contract: sorted by start,
// pairwise non-overlapping, no empty spans.
func checkInvariant(t *testing.T, ranges []hl.HighlightedRange) {
	t.Helper()
	for i, r := range ranges {
		if r.Span.Empty() {
			t.Errorf("range %d is empty: %v", i, r.Span)
		}
		if i == 0 {
			continue
		}
		prev := ranges[i-1]
		if prev.Span.End > r.Span.Start {
			t.Errorf("ranges %d and %d overlap: %v then %v", i-1, i, prev.Span, r.Span)
		}
	}
}

func TestCollectorSortedNonOverlapping(t *testing.T) {
	c := hl.NewCollector(wholeFile())
	c.Add(span(20, 30), hl.H(hl.TagKeyword), 0)
	c.Add(span(0, 10), hl.H(hl.TagComment), 0)
	c.Add(span(40, 50), hl.H(hl.TagString), 0)

	got := c.Finalize()
	checkInvariant(t, got)
	if len(got) != 3 {
		t.Fatalf("expected 3 ranges, got %d: %v", len(got), got)
	}
	if got[0].Span != span(0, 10) || got[1].Span != span(20, 30) || got[2].Span != span(40, 50) {
		t.Errorf("ranges not sorted by start: %v", got)
	}
}

func TestCollectorClipsToBounds(t *testing.T) {
	c := hl.NewCollector(span(10, 20))
	c.Add(span(5, 15), hl.H(hl.TagString), 0)
	c.Add(span(18, 25), hl.H(hl.TagNumber), 0)
	c.Add(span(0, 5), hl.H(hl.TagComment), 0)

	got := c.Finalize()
	checkInvariant(t, got)
	if len(got) != 2 {
		t.Fatalf("expected 2 ranges, got %d: %v", len(got), got)
	}
	if got[0].Span != span(10, 15) {
		t.Errorf("leading range not clipped: %v", got[0].Span)
	}
	if got[1].Span != span(18, 20) {
		t.Errorf("trailing range not clipped: %v", got[1].Span)
	}
}

func TestCollectorDropsOtherFiles(t *testing.T) {
	c := hl.NewCollector(wholeFile())
	c.Add(source.Span{File: 1, Start: 0, End: 10}, hl.H(hl.TagString), 0)
	if got := c.Finalize(); len(got) != 0 {
		t.Errorf("span from another file not dropped: %v", got)
	}
}

func TestCollectorDropsEmptySpans(t *testing.T) {
	c := hl.NewCollector(wholeFile())
	c.Add(span(5, 5), hl.H(hl.TagString), 0)
	if got := c.Finalize(); len(got) != 0 {
		t.Errorf("empty span not dropped: %v", got)
	}
}

func TestCollectorContainedSpanRefinesEarlier(t *testing.T) {
	// An escape added inside an existing string highlight splits it.
	c := hl.NewCollector(wholeFile())
	c.Add(span(0, 20), hl.H(hl.TagString), 0)
	c.Add(span(5, 8), hl.H(hl.TagEscape), 0)

	got := c.Finalize()
	checkInvariant(t, got)
	if len(got) != 3 {
		t.Fatalf("expected 3 ranges, got %d: %v", len(got), got)
	}
	if got[0].Span != span(0, 5) || got[0].Highlight.Tag != hl.TagString {
		t.Errorf("leading remainder wrong: %+v", got[0])
	}
	if got[1].Span != span(5, 8) || got[1].Highlight.Tag != hl.TagEscape {
		t.Errorf("contained span lost: %+v", got[1])
	}
	if got[2].Span != span(8, 20) || got[2].Highlight.Tag != hl.TagString {
		t.Errorf("trailing remainder wrong: %+v", got[2])
	}
}

func TestCollectorContainedSpanSurvivesLaterWider(t *testing.T) {
	// Escapes go in first; the enclosing string highlight arrives later and
	// must fill only the gaps.
	c := hl.NewCollector(wholeFile())
	c.Add(span(5, 8), hl.H(hl.TagEscape), 0)
	c.Add(span(12, 14), hl.H(hl.TagFormatSpec), 0)
	c.Add(span(0, 20), hl.H(hl.TagString), 0)

	got := c.Finalize()
	checkInvariant(t, got)
	want := []struct {
		span source.Span
		tag  hl.Tag
	}{
		{span(0, 5), hl.TagString},
		{span(5, 8), hl.TagEscape},
		{span(8, 12), hl.TagString},
		{span(12, 14), hl.TagFormatSpec},
		{span(14, 20), hl.TagString},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d ranges, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Span != w.span || got[i].Highlight.Tag != w.tag {
			t.Errorf("range %d: got %v %s, want %v %s",
				i, got[i].Span, got[i].Highlight.Tag, w.span, w.tag)
		}
	}
}

func TestCollectorEqualSpanLaterWins(t *testing.T) {
	// Doc-comment injection re-adds the comment's exact span with the
	// documentation modifier and must replace the earlier plain highlight.
	c := hl.NewCollector(wholeFile())
	c.Add(span(0, 10), hl.H(hl.TagComment), 0)
	c.Add(span(0, 10), hl.H(hl.TagComment).With(hl.ModDocumentation), 0)

	got := c.Finalize()
	checkInvariant(t, got)
	if len(got) != 1 {
		t.Fatalf("expected 1 range, got %d: %v", len(got), got)
	}
	if !got[0].Highlight.Mods.Has(hl.ModDocumentation) {
		t.Errorf("later equal span did not override: %+v", got[0])
	}
}

func TestCollectorPartialOverlapNewWins(t *testing.T) {
	c := hl.NewCollector(wholeFile())
	c.Add(span(0, 10), hl.H(hl.TagString), 0)
	c.Add(span(5, 15), hl.H(hl.TagNumber), 0)

	got := c.Finalize()
	checkInvariant(t, got)
	if len(got) != 2 {
		t.Fatalf("expected 2 ranges, got %d: %v", len(got), got)
	}
	if got[0].Span != span(0, 5) || got[0].Highlight.Tag != hl.TagString {
		t.Errorf("existing remainder wrong: %+v", got[0])
	}
	if got[1].Span != span(5, 15) || got[1].Highlight.Tag != hl.TagNumber {
		t.Errorf("new span did not win overlap: %+v", got[1])
	}
}

func TestCollectorCoalescesAdjacentIdentical(t *testing.T) {
	c := hl.NewCollector(wholeFile())
	c.Add(span(0, 5), hl.H(hl.TagString), 0)
	c.Add(span(5, 10), hl.H(hl.TagString), 0)

	got := c.Finalize()
	if len(got) != 1 {
		t.Fatalf("adjacent identical ranges not merged: %v", got)
	}
	if got[0].Span != span(0, 10) {
		t.Errorf("merged span wrong: %v", got[0].Span)
	}
}

func TestCollectorKeepsDistinctBindingHashes(t *testing.T) {
	c := hl.NewCollector(wholeFile())
	c.Add(span(0, 5), hl.H(hl.TagVariable), 7)
	c.Add(span(5, 10), hl.H(hl.TagVariable), 8)

	got := c.Finalize()
	if len(got) != 2 {
		t.Fatalf("ranges with different hashes merged: %v", got)
	}
}
