package hl

import (
	"strings"

	"shine/internal/source"
	"shine/internal/syntax"
	"shine/internal/token"
)

// injectFixture recognizes raw string literals holding an embedded test
// fixture and highlights the fixture body as a file of its own, splicing the
// results back at the literal's position. Returns true when the literal was
// consumed; the caller then skips the normal string highlight.
func (h *highlighter) injectFixture(tok token.Token, _ syntax.TokenID) bool {
	if h.depth >= maxInjectionDepth {
		return false
	}
	if tok.Kind != token.RawStringLit {
		return false
	}
	start, end, ok := literalBody(tok)
	if !ok || start >= end {
		return false
	}
	body := tok.Text[start:end]
	if !isFixture(body) {
		return false
	}

	fileID, ok := h.model.AddFixtureFile([]byte(body))
	if !ok {
		return false
	}
	ranges, err := highlightDepth(h.model, fileID, nil, h.cfg, h.depth+1)
	if err != nil {
		return false
	}

	base := tok.Span.Start + start
	for _, r := range ranges {
		span := source.Span{
			File:  tok.Span.File,
			Start: base + r.Span.Start,
			End:   base + r.Span.End,
		}
		hl := r.Highlight
		hl.Mods = hl.Mods.Union(NewModifierSet(ModInjected))
		h.emit(span, hl, r.BindingHash)
	}
	return true
}

// isFixture reports whether a literal body is a fixture document: its first
// non-empty line is a file header, "//- /path/to/file". The headers lex as
// ordinary line comments, so the body parses without special casing.
func isFixture(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, "//- ")
	}
	return false
}
