package hl

import (
	"fmt"

	"shine/internal/diag"
	"shine/internal/observ"
	"shine/internal/sem"
	"shine/internal/source"
	"shine/internal/syntax"
	"shine/internal/token"
)

// maxInjectionDepth bounds recursive highlighting of injected content so a
// fixture containing a fixture cannot recurse without end.
const maxInjectionDepth = 3

// Config tunes one highlighting run.
type Config struct {
	// SyntacticNameRefs enables shape-based guesses for name references the
	// model cannot resolve, instead of tagging them unresolved.
	SyntacticNameRefs bool
	// Reporter receives recoverable consistency warnings. Nil drops them.
	Reporter diag.Reporter
	// Timer, when set, records the run as a phase.
	Timer *observ.Timer
}

// Run classifies every meaningful token of the file and returns the sorted,
// non-overlapping highlighted ranges. A nil window means the whole file;
// otherwise only ranges intersecting the window are produced.
func Run(model sem.Model, file source.FileID, window *source.Span, cfg Config) ([]HighlightedRange, error) {
	if cfg.Timer != nil {
		idx := cfg.Timer.Begin(observ.PhaseHighlight)
		defer func() { cfg.Timer.End(idx, fmt.Sprintf("file %d", file)) }()
	}
	return highlightDepth(model, file, window, cfg, 0)
}

func highlightDepth(model sem.Model, file source.FileID, window *source.Span, cfg Config, depth int) ([]HighlightedRange, error) {
	if model == nil {
		return nil, fmt.Errorf("highlight: nil model")
	}
	tree, err := model.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("highlight: parse %d: %w", file, err)
	}

	bounds := source.Span{File: file, Start: 0, End: ^uint32(0)}
	if window != nil {
		if window.File != file {
			return nil, fmt.Errorf("highlight: window targets file %d, not %d", window.File, file)
		}
		bounds = *window
	}

	h := &highlighter{
		model:    model,
		cfg:      cfg,
		tree:     tree,
		window:   bounds,
		out:      NewCollector(bounds),
		unlinked: !model.IsFileLinked(file),
		depth:    depth,
		shadow:   make(map[string]uint32),
		declIdx:  make(map[sem.LocalID]uint32),
	}
	if unit, ok := model.ContainingUnit(tree); ok {
		h.unit = unit
	}
	h.famous = sem.Famous{Model: model, Perspective: h.unit}

	h.visitNode(tree.Root())
	return h.out.Finalize(), nil
}

// highlighter carries the traversal context for one file. The context node
// slots (macroCall, macroDef, attrCall, deriveCall) track which enclosing
// construct the tokens currently visited belong to; each is set on entering
// its node and cleared on leaving it.
type highlighter struct {
	model  sem.Model
	cfg    Config
	tree   *syntax.Tree
	window source.Span
	out    *Collector

	unit     sem.UnitID
	famous   sem.Famous
	unlinked bool
	depth    int

	macroCall  syntax.NodeID
	macroDef   syntax.NodeID
	attrCall   syntax.NodeID
	deriveCall syntax.NodeID
	macroHl    MacroHighlighter
	insideAttr bool

	// Local binding scope for the innermost body. Entering a body-bearing
	// item pushes a fresh scope so sibling bodies never share hashes.
	shadow  map[string]uint32
	declIdx map[sem.LocalID]uint32
	scopes  []scopeFrame
}

type scopeFrame struct {
	shadow  map[string]uint32
	declIdx map[sem.LocalID]uint32
}

func (h *highlighter) visitNode(id syntax.NodeID) {
	span := h.tree.NodeSpan(id)
	if !span.Empty() && !span.Intersects(h.window) {
		return
	}
	h.enterNode(id)
	for _, child := range h.tree.Children(id) {
		if child.IsNode() {
			h.visitNode(child.Node)
		} else {
			h.visitToken(child.Token)
		}
	}
	h.leaveNode(id)
}

func (h *highlighter) enterNode(id syntax.NodeID) {
	kind := h.tree.Kind(id)
	switch {
	case kind == syntax.NodeMacroCall:
		if h.macroCall.IsValid() {
			h.violation(diag.HlNestedMacroCall, id, "macro call context entered twice")
		}
		h.macroCall = id
	case kind.IsMacroDefinition():
		if h.macroDef.IsValid() {
			h.violation(diag.HlNestedMacroDef, id, "macro definition context entered twice")
		}
		h.macroDef = id
		h.macroHl.Init()
	case kind == syntax.NodeAttr:
		h.insideAttr = true
	}

	if kind.IsItem() {
		ref := sem.NodeRef{Tree: h.tree, ID: id}
		// The attribute-macro and derive slots keep the outermost item;
		// a nested instance is reported and ignored.
		if h.model.IsAttrMacroCall(ref) {
			if h.attrCall.IsValid() {
				h.violation(diag.HlAttrContextMismatch, id, "attribute macro context entered twice")
			} else {
				h.attrCall = id
			}
		}
		if kind.IsTypeDef() && h.model.IsDeriveAnnotated(ref) {
			if h.deriveCall.IsValid() {
				h.violation(diag.HlDeriveContextMismatch, id, "derive context entered twice")
			} else {
				h.deriveCall = id
			}
		}
	}

	if hasOwnBindingScope(kind) {
		h.pushScope()
	}
}

func (h *highlighter) leaveNode(id syntax.NodeID) {
	kind := h.tree.Kind(id)
	switch {
	case kind == syntax.NodeMacroCall:
		if h.macroCall != id && h.macroCall.IsValid() {
			h.violation(diag.HlMacroCallMismatch, id, "macro call context out of sync")
		}
		h.macroCall = syntax.NoNode
	case kind.IsMacroDefinition():
		if h.macroDef != id && h.macroDef.IsValid() {
			h.violation(diag.HlMacroDefMismatch, id, "macro definition context out of sync")
		}
		h.macroDef = syntax.NoNode
	case kind == syntax.NodeAttr:
		h.insideAttr = false
	}

	if kind.IsItem() {
		// Only the slot owner clears its slot.
		if h.attrCall == id {
			h.attrCall = syntax.NoNode
		}
		if h.deriveCall == id {
			h.deriveCall = syntax.NoNode
		}
		h.injectDocComments(id)
	}

	if hasOwnBindingScope(kind) {
		h.popScope()
	}
}

// violation reports a recoverable traversal inconsistency. The caller resets
// the offending context slot and keeps going; highlighting a file must never
// abort over bookkeeping.
func (h *highlighter) violation(code diag.Code, at syntax.NodeID, msg string) {
	diag.ReportWarning(h.cfg.Reporter, code, h.tree.NodeSpan(at), msg)
}

func hasOwnBindingScope(kind syntax.NodeKind) bool {
	switch kind {
	case syntax.NodeFn, syntax.NodeConst, syntax.NodeStatic:
		return true
	default:
		return false
	}
}

func (h *highlighter) pushScope() {
	h.scopes = append(h.scopes, scopeFrame{shadow: h.shadow, declIdx: h.declIdx})
	h.shadow = make(map[string]uint32)
	h.declIdx = make(map[sem.LocalID]uint32)
}

func (h *highlighter) popScope() {
	n := len(h.scopes)
	if n == 0 {
		return
	}
	frame := h.scopes[n-1]
	h.scopes = h.scopes[:n-1]
	h.shadow = frame.shadow
	h.declIdx = frame.declIdx
}

func (h *highlighter) visitToken(id syntax.TokenID) {
	tok := h.tree.Token(id)
	if tok.Kind == token.Whitespace || tok.Kind == token.EOF || tok.Kind == token.Invalid {
		return
	}

	// Inside a macro definition body the automaton sees every token, even
	// ones outside the window, so repetition state stays consistent.
	if h.macroDef.IsValid() {
		h.macroHl.Advance(tok)
		if marker, ok := h.macroHl.Classify(tok); ok {
			if marker == MarkerPunct && tok.Span.Intersects(h.window) {
				h.emit(tok.Span, H(TagPunct), 0)
			}
			// Metavariables must not be classified as the keywords or
			// identifiers they happen to spell.
			return
		}
	}

	if !tok.Span.Intersects(h.window) {
		return
	}

	ref := sem.TokenRef{Tree: h.tree, ID: id}
	desc := ref
	if h.macroCall.IsValid() || h.attrCall.IsValid() || h.deriveCall.IsValid() {
		if d := h.model.DescendIntoMacro(ref); d.IsValid() {
			desc = d
		}
	}

	if nameLike, ok := nameLikeFor(desc, desc != ref); ok {
		hl, hash, ok := h.nameLikeHighlight(nameLike)
		if !ok {
			return
		}
		if hl.Tag == TagUnresolved && h.unlinked {
			// Unlinked files resolve nothing; flagging every reference
			// would drown the file in noise.
			return
		}
		h.emit(tok.Span, hl, hash)
		return
	}

	hl, ok := tokenHighlight(desc.Tree, desc.ID)
	if !ok {
		return
	}

	if tok.IsString() {
		if h.injectFixture(tok, id) {
			return
		}
		h.highlightStringContents(tok, desc)
	}

	h.emit(tok.Span, hl, 0)
}

// emit adds a range, unioning in modifiers implied by the current context.
func (h *highlighter) emit(span source.Span, hl Highlight, hash uint64) {
	if h.insideAttr {
		hl = hl.With(ModAttribute)
	}
	h.out.Add(span, hl, hash)
}

// nameLikeFor finds the name-like node classifying a token. For descended
// tokens whose immediate parent in the expansion is not name-like, one extra
// parent step is allowed for the token kinds that legitimately end up nested
// one level deeper after expansion.
func nameLikeFor(ref sem.TokenRef, descended bool) (sem.NodeRef, bool) {
	tree := ref.Tree
	if parent, ok := tree.NameLikeParent(ref.ID); ok {
		return sem.NodeRef{Tree: tree, ID: parent}, true
	}
	if !descended {
		return sem.NodeRef{}, false
	}
	parent := tree.TokenParent(ref.ID)
	grand := tree.Parent(parent)
	if grand.IsValid() && promotable(tree.Token(ref.ID).Kind, tree.Kind(grand)) {
		return sem.NodeRef{Tree: tree, ID: grand}, true
	}
	return sem.NodeRef{}, false
}

func promotable(tok token.Kind, target syntax.NodeKind) bool {
	switch tok {
	case token.Ident:
		return target == syntax.NodeName || target == syntax.NodeNameRef
	case token.KwSelfValue, token.KwSuper, token.KwCrate, token.KwSelfType, token.IntNumber:
		return target == syntax.NodeNameRef
	case token.LifetimeIdent:
		return target == syntax.NodeLifetime
	default:
		return false
	}
}

// highlightStringContents adds escape and format-specifier ranges for a
// string literal. They go in before the literal's own highlight; the
// collector keeps the narrower contained pieces.
func (h *highlighter) highlightStringContents(tok token.Token, desc sem.TokenRef) {
	start, end, ok := literalBody(tok)
	if !ok || start >= end {
		return
	}
	body := tok.Text[start:end]
	base := tok.Span.Start + start

	if tok.Kind == token.StringLit {
		forEachEscape(body, func(off, length uint32, valid bool) {
			if !valid {
				return
			}
			span := source.Span{File: tok.Span.File, Start: base + off, End: base + off + length}
			h.emit(span, H(TagEscape), 0)
		})
	}

	if h.model.IsFormatStringArg(desc) {
		forEachFormatSpecifier(body, func(off, length uint32) {
			span := source.Span{File: tok.Span.File, Start: base + off, End: base + off + length}
			h.emit(span, H(TagFormatSpec), 0)
		})
	}
}
