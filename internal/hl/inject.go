package hl

import (
	"bytes"
	"strings"

	"shine/internal/source"
	"shine/internal/syntax"
	"shine/internal/token"
)

// injectDocComments upgrades an item's doc comments on node exit. Each doc
// token gets the documentation modifier over its full span, intra-doc links
// are marked inside it, and fenced code blocks are extracted, highlighted as
// a virtual file, and mapped back line by line.
func (h *highlighter) injectDocComments(item syntax.NodeID) {
	var docs []token.Token
	for _, child := range h.tree.Children(item) {
		if !child.IsToken() {
			continue
		}
		tok := h.tree.Token(child.Token)
		if tok.IsDocComment() && tok.Span.Intersects(h.window) {
			docs = append(docs, tok)
		}
	}
	if len(docs) == 0 {
		return
	}

	for _, tok := range docs {
		// Same span as the plain comment highlight added during the token
		// visit, so this replaces it.
		h.emit(tok.Span, H(TagComment).With(ModDocumentation), 0)
		h.markIntraDocLinks(tok)
	}

	if h.depth < maxInjectionDepth {
		h.injectDocCode(docs)
	}
}

// markIntraDocLinks finds [`path`] references inside one doc comment and
// marks the backticked path.
func (h *highlighter) markIntraDocLinks(tok token.Token) {
	text := tok.Text
	for i := 0; i+1 < len(text); {
		if text[i] != '[' || text[i+1] != '`' {
			i++
			continue
		}
		rest := text[i+2:]
		j := strings.Index(rest, "`]")
		if j < 0 {
			return
		}
		span := source.Span{
			File:  tok.Span.File,
			Start: tok.Span.Start + uint32(i+2),     //nolint:gosec // token length fits uint32
			End:   tok.Span.Start + uint32(i+2+j),   //nolint:gosec // token length fits uint32
		}
		h.emit(span, H(TagComment).With(ModDocumentation, ModInjected, ModIntraDocLink), 0)
		i += 2 + j + 2
	}
}

// docLine maps one extracted code line back to its source position.
type docLine struct {
	srcStart uint32
	vStart   uint32
	length   uint32
}

// injectDocCode extracts fenced code blocks from a run of doc comments,
// highlights the joined code as a virtual file, and splices the results over
// the original comment text.
func (h *highlighter) injectDocCode(docs []token.Token) {
	var (
		buf     bytes.Buffer
		lines   []docLine
		inFence bool
	)
	for _, tok := range docs {
		content, skip, ok := docContent(tok)
		if !ok {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(content), "```") {
			inFence = !inFence
			continue
		}
		if !inFence {
			continue
		}
		lines = append(lines, docLine{
			srcStart: tok.Span.Start + skip,
			vStart:   uint32(buf.Len()), //nolint:gosec // doc body fits uint32
			length:   uint32(len(content)),
		})
		buf.WriteString(content)
		buf.WriteByte('\n')
	}
	if len(lines) == 0 {
		return
	}

	fileID, ok := h.model.AddFixtureFile(buf.Bytes())
	if !ok {
		return
	}
	ranges, err := highlightDepth(h.model, fileID, nil, h.cfg, h.depth+1)
	if err != nil {
		return
	}

	for _, r := range ranges {
		for _, ln := range lines {
			lo := max(r.Span.Start, ln.vStart)
			hi := min(r.Span.End, ln.vStart+ln.length)
			if lo >= hi {
				continue
			}
			span := source.Span{
				File:  docs[0].Span.File,
				Start: ln.srcStart + (lo - ln.vStart),
				End:   ln.srcStart + (hi - ln.vStart),
			}
			hl := r.Highlight
			hl.Mods = hl.Mods.Union(NewModifierSet(ModInjected, ModDocumentation))
			h.emit(span, hl, r.BindingHash)
		}
	}
}

// docContent strips the doc marker and one optional following space,
// returning the text and how many bytes were skipped.
func docContent(tok token.Token) (content string, skip uint32, ok bool) {
	text := tok.Text
	if len(text) < 3 {
		return "", 0, false
	}
	content = text[3:]
	skip = 3
	if strings.HasPrefix(content, " ") {
		content = content[1:]
		skip++
	}
	return content, skip, true
}
