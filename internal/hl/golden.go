package hl

import (
	"fmt"
	"strings"

	"shine/internal/source"
)

// FormatGoldenRanges renders highlighted ranges into a stable one-line-per-
// entry representation for golden files and test assertions: position, the
// covered text, the classification, and the binding hash when present.
func FormatGoldenRanges(ranges []HighlightedRange, fs *source.FileSet) string {
	if fs == nil || len(ranges) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range ranges {
		start, end := fs.Resolve(r.Span)
		text := spanText(fs, r.Span)
		fmt.Fprintf(&b, "%d:%d-%d:%d %q %s", start.Line, start.Col, end.Line, end.Col, text, r.Highlight)
		if r.BindingHash != 0 {
			fmt.Fprintf(&b, " #%x", r.BindingHash)
		}
		if i < len(ranges)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func spanText(fs *source.FileSet, span source.Span) string {
	f := fs.Get(span.File)
	content := f.Content
	if int(span.End) > len(content) {
		return ""
	}
	return string(content[span.Start:span.End])
}
