// Package lsp exposes highlighting results in the Language Server Protocol
// semanticTokens wire shape: a legend of types and modifiers plus the
// delta-encoded integer stream.
package lsp

import (
	"bytes"

	"shine/internal/hl"
	"shine/internal/source"
)

// Legend declares the token types and modifier bit order used by the
// encoding. Index positions are stable across runs: both lists come straight
// from the tag and modifier declaration order.
type Legend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

// NewLegend builds the legend for this build of the highlighter.
func NewLegend() Legend {
	return Legend{TokenTypes: hl.Tags(), TokenModifiers: hl.Modifiers()}
}

// SemanticTokens is the response payload: groups of five integers per token
// (deltaLine, deltaStart, length, tokenType, tokenModifiers).
type SemanticTokens struct {
	Data []uint32 `json:"data"`
}

// Encode converts highlighted ranges into the LSP delta encoding. Protocol
// tokens cannot span lines, so multi-line ranges are split at newlines.
// Columns are byte offsets within the line.
func Encode(fs *source.FileSet, ranges []hl.HighlightedRange) SemanticTokens {
	data := make([]uint32, 0, len(ranges)*5)
	var prevLine, prevCol uint32

	for _, r := range ranges {
		f := fs.Get(r.Span.File)
		for _, seg := range splitLines(f.Content, r.Span) {
			start, _ := fs.Resolve(seg)
			line := start.Line - 1
			col := start.Col - 1

			deltaLine := line - prevLine
			deltaCol := col
			if deltaLine == 0 {
				deltaCol = col - prevCol
			}
			data = append(data,
				deltaLine,
				deltaCol,
				seg.Len(),
				uint32(r.Highlight.Tag),
				uint32(r.Highlight.Mods),
			)
			prevLine, prevCol = line, col
		}
	}
	return SemanticTokens{Data: data}
}

// splitLines cuts a span at newline boundaries.
func splitLines(content []byte, span source.Span) []source.Span {
	text := content[span.Start:span.End]
	if !bytes.ContainsRune(text, '\n') {
		return []source.Span{span}
	}
	var out []source.Span
	start := span.Start
	for {
		rel := bytes.IndexByte(content[start:span.End], '\n')
		if rel < 0 {
			if start < span.End {
				out = append(out, source.Span{File: span.File, Start: start, End: span.End})
			}
			return out
		}
		end := start + uint32(rel) //nolint:gosec // offset fits uint32
		if end > start {
			out = append(out, source.Span{File: span.File, Start: start, End: end})
		}
		start = end + 1
	}
}
