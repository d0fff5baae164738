package hl

import (
	"encoding/binary"
	"hash/fnv"

	"shine/internal/sem"
	"shine/internal/syntax"
	"shine/internal/token"
)

// tokenHighlight classifies a bare token with no semantic resolution. The
// second result is false for tokens that produce no highlighting of their own
// (whitespace, bare identifiers inside token trees).
func tokenHighlight(tree *syntax.Tree, id syntax.TokenID) (Highlight, bool) {
	tok := tree.Token(id)

	switch {
	case tok.Kind == token.Whitespace || tok.Kind == token.EOF || tok.Kind == token.Invalid:
		return Highlight{}, false
	case tok.IsComment():
		return H(TagComment), true
	case tok.IsKeyword():
		return keywordHighlight(tok.Kind), true
	case tok.IsLiteral():
		return literalHighlight(tok.Kind), true
	case tok.Kind == token.LifetimeIdent:
		return H(TagLifetime), true
	case tok.IsPunctOrOp():
		return punctHighlight(tree, id, tok.Kind), true
	default:
		// Bare identifiers carry no meaning on their own; their
		// wrapping name-like node classifies them when one exists.
		return Highlight{}, false
	}
}

func keywordHighlight(kind token.Kind) Highlight {
	switch kind {
	case token.KwSelfValue:
		return H(TagSelfValue)
	case token.KwSelfType:
		return H(TagSelfType)
	case token.KwTrue, token.KwFalse:
		return H(TagBool)
	case token.KwUnsafe:
		return H(TagKeyword).With(ModUnsafe)
	case token.KwAsync:
		return H(TagKeyword).With(ModAsync)
	case token.KwAwait:
		return H(TagKeyword).With(ModAsync, ModControlFlow)
	case token.KwCrate, token.KwSuper:
		return H(TagKeyword).With(ModCrateRoot)
	default:
		if token.IsControlFlowKeyword(kind) {
			return H(TagKeyword).With(ModControlFlow)
		}
		return H(TagKeyword)
	}
}

func literalHighlight(kind token.Kind) Highlight {
	switch kind {
	case token.IntNumber, token.FloatNumber:
		return H(TagNumber)
	case token.CharLit:
		return H(TagChar)
	case token.StringLit, token.RawStringLit:
		return H(TagString)
	case token.KwTrue, token.KwFalse:
		return H(TagBool)
	default:
		return H(TagNumber)
	}
}

func punctHighlight(tree *syntax.Tree, id syntax.TokenID, kind token.Kind) Highlight {
	switch kind {
	case token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket:
		return H(TagPunctBracket)
	case token.Pound:
		// '#' only occurs as the attribute opener.
		return H(TagPunctBracket)
	case token.Colon, token.PathSep:
		return H(TagPunctColon)
	case token.Comma:
		return H(TagPunctComma)
	case token.Dot:
		return H(TagPunctDot)
	case token.Semi:
		return H(TagPunctSemi)
	case token.Bang:
		if tree.Kind(tree.TokenParent(id)) == syntax.NodeMacroCall {
			return H(TagPunctMacroBang)
		}
		return H(TagOpLogical)
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.PercentEq:
		return H(TagOpArith)
	case token.Amp, token.Pipe, token.Caret, token.Shl, token.Shr,
		token.AmpEq, token.PipeEq, token.CaretEq, token.ShlEq, token.ShrEq:
		return H(TagOpBitwise)
	case token.EqEq, token.Ne, token.Lt, token.Gt, token.Le, token.Ge:
		return H(TagOpCompare)
	case token.AndAnd, token.OrOr:
		return H(TagOpLogical)
	case token.Question:
		return H(TagOperator).With(ModControlFlow)
	case token.Eq, token.Arrow, token.FatArrow, token.DotDot, token.DotDotDot, token.DotDotEq:
		return H(TagOperator)
	default:
		return H(TagPunct)
	}
}

// nameLikeHighlight classifies a name-like node, consulting the semantic
// model. The uint64 result is the binding hash for shadow-disambiguated
// locals, zero otherwise.
func (h *highlighter) nameLikeHighlight(ref sem.NodeRef) (Highlight, uint64, bool) {
	kind := ref.Tree.Kind(ref.ID)
	name := ref.Tree.NameText(ref.ID)

	def, resolved := h.model.Resolve(ref)

	switch kind {
	case syntax.NodeName:
		if !resolved {
			// Declarations keep a sensible tag even without
			// resolution, derived from the declared item's shape.
			hl, ok := nameByParentSyntax(ref.Tree, ref.ID)
			return hl, 0, ok
		}
		hl := h.defHighlight(def).With(ModDeclaration)
		var hash uint64
		if def.Kind == sem.DefLocal {
			hash = h.declareBinding(name, def.Local)
		}
		return hl, hash, true

	case syntax.NodeNameRef:
		if !resolved {
			if h.cfg.SyntacticNameRefs {
				hl, ok := nameRefBySyntax(ref.Tree, ref.ID)
				return hl, 0, ok
			}
			return H(TagUnresolved), 0, true
		}
		hl := h.defHighlight(def)
		var hash uint64
		if def.Kind == sem.DefLocal {
			hash = h.referenceBinding(name, def.Local)
		}
		return hl, hash, true

	case syntax.NodeLifetime:
		hl := H(TagLifetime)
		if resolved {
			if def.Kind == sem.DefLabel {
				hl = H(TagLabel)
			}
			if def.DeclarationSite {
				hl = hl.With(ModDeclaration)
			}
		}
		return hl, 0, true

	case syntax.NodeLabel:
		return H(TagLabel).With(ModDeclaration), 0, true

	default:
		return Highlight{}, 0, false
	}
}

// defHighlight derives tag and modifiers from a resolved definition.
func (h *highlighter) defHighlight(def sem.Definition) Highlight {
	var hl Highlight
	switch def.Kind {
	case sem.DefFunc:
		hl = H(TagFn)
	case sem.DefMethod:
		hl = H(TagMethod)
	case sem.DefStruct:
		hl = H(TagStruct)
	case sem.DefEnum:
		hl = H(TagEnum)
	case sem.DefEnumMember:
		hl = H(TagEnumMember)
	case sem.DefUnion:
		hl = H(TagUnion)
	case sem.DefTrait:
		hl = H(TagTrait)
	case sem.DefTypeAlias:
		hl = H(TagTypeAlias)
	case sem.DefModule:
		hl = H(TagModule)
		if def.UnitRoot {
			hl = hl.With(ModCrateRoot)
		}
	case sem.DefBuiltinType:
		hl = H(TagBuiltinType)
	case sem.DefLocal:
		hl = H(TagVariable)
		if def.Callable {
			hl = hl.With(ModCallable)
		}
	case sem.DefConst:
		hl = H(TagVariable).With(ModConstant, ModStatic)
	case sem.DefStatic:
		hl = H(TagVariable).With(ModStatic)
	case sem.DefParam:
		hl = H(TagParam)
	case sem.DefSelfParam:
		hl = H(TagSelfValue)
	case sem.DefTypeParam:
		hl = H(TagTypeParam)
	case sem.DefConstParam:
		hl = H(TagConstParam)
	case sem.DefLabel:
		hl = H(TagLabel)
	case sem.DefLifetime:
		hl = H(TagLifetime)
	case sem.DefField:
		hl = H(TagField)
	case sem.DefMacro:
		hl = H(TagMacro)
	case sem.DefAttrMacro:
		hl = H(TagAttrMacro)
	case sem.DefDeriveMacro:
		hl = H(TagDeriveMacro)
	case sem.DefBuiltinAttr:
		hl = H(TagBuiltinAttr)
	case sem.DefToolModule:
		hl = H(TagToolModule)
	case sem.DefSelfType:
		hl = H(TagSelfType)
	default:
		hl = H(TagUnresolved)
	}

	if def.Mutable {
		hl = hl.With(ModMutable)
	}
	if def.Reference {
		hl = hl.With(ModReference)
	}
	if def.Consuming {
		hl = hl.With(ModConsuming)
	}
	if def.Public {
		hl = hl.With(ModPublic)
	}
	if def.TraitItem {
		hl = hl.With(ModTraitItem)
	}
	if def.Async {
		hl = hl.With(ModAsync)
	}
	if def.Unsafe {
		hl = hl.With(ModUnsafe)
	}
	if def.NoSelf && (def.Kind == sem.DefFunc || def.Kind == sem.DefMethod) {
		hl = hl.With(ModStatic)
	}
	if def.Unit.IsValid() && h.unit.IsValid() && def.Unit != h.unit {
		hl = hl.With(ModLibrary)
	}
	if h.famous.IsDefaultLibrary(def.Unit) {
		hl = hl.With(ModDefaultLibrary)
	}
	return hl
}

// nameByParentSyntax derives a declaration tag from the shape of the declared
// item when resolution is unavailable.
func nameByParentSyntax(tree *syntax.Tree, id syntax.NodeID) (Highlight, bool) {
	switch tree.Kind(tree.Parent(id)) {
	case syntax.NodeFn:
		return H(TagFn).With(ModDeclaration), true
	case syntax.NodeStruct:
		return H(TagStruct).With(ModDeclaration), true
	case syntax.NodeEnum:
		return H(TagEnum).With(ModDeclaration), true
	case syntax.NodeUnion:
		return H(TagUnion).With(ModDeclaration), true
	case syntax.NodeTrait:
		return H(TagTrait).With(ModDeclaration), true
	case syntax.NodeModule:
		return H(TagModule).With(ModDeclaration), true
	case syntax.NodeTypeAlias:
		return H(TagTypeAlias).With(ModDeclaration), true
	case syntax.NodeConst:
		return H(TagVariable).With(ModDeclaration, ModConstant, ModStatic), true
	case syntax.NodeStatic:
		return H(TagVariable).With(ModDeclaration, ModStatic), true
	case syntax.NodeMacroRules, syntax.NodeMacroDef:
		return H(TagMacro).With(ModDeclaration), true
	case syntax.NodeParam:
		return H(TagParam).With(ModDeclaration), true
	case syntax.NodeSelfParam:
		return H(TagSelfValue).With(ModDeclaration), true
	case syntax.NodeLetStmt:
		return H(TagVariable).With(ModDeclaration), true
	default:
		return Highlight{}, false
	}
}

// nameRefBySyntax classifies an unresolved name reference from syntactic
// shape alone: call position implies function-like, field position implies
// field access.
func nameRefBySyntax(tree *syntax.Tree, id syntax.NodeID) (Highlight, bool) {
	dotted := prevSiblingTokenKind(tree, id) == token.Dot
	called := followedByCall(tree, id)

	switch {
	case dotted && called:
		return H(TagMethod), true
	case dotted:
		return H(TagField), true
	case called:
		return H(TagFn), true
	default:
		return Highlight{}, false
	}
}

// followedByCall reports whether the reference, or the path it terminates, is
// immediately followed by an opening parenthesis.
func followedByCall(tree *syntax.Tree, id syntax.NodeID) bool {
	node := id
	for {
		if nextSiblingTokenKind(tree, node) == token.LParen {
			return true
		}
		parent := tree.Parent(node)
		switch tree.Kind(parent) {
		case syntax.NodePathSegment, syntax.NodePath:
			node = parent
		default:
			return false
		}
	}
}

func nextSiblingTokenKind(tree *syntax.Tree, id syntax.NodeID) token.Kind {
	return siblingTokenKind(tree, id, +1)
}

func prevSiblingTokenKind(tree *syntax.Tree, id syntax.NodeID) token.Kind {
	return siblingTokenKind(tree, id, -1)
}

// siblingTokenKind returns the kind of the nearest non-trivia sibling token
// in the given direction, or Invalid.
func siblingTokenKind(tree *syntax.Tree, id syntax.NodeID, dir int) token.Kind {
	parent := tree.Parent(id)
	if !parent.IsValid() {
		return token.Invalid
	}
	children := tree.Children(parent)
	at := -1
	for i, child := range children {
		if child.Node == id {
			at = i
			break
		}
	}
	if at < 0 {
		return token.Invalid
	}
	for i := at + dir; i >= 0 && i < len(children); i += dir {
		child := children[i]
		if child.IsNode() {
			return token.Invalid
		}
		tok := tree.Token(child.Token)
		if tok.IsTrivia() {
			continue
		}
		return tok.Kind
	}
	return token.Invalid
}

// declareBinding registers a new local binding in the current scope and
// returns its hash. Each same-named declaration bumps the shadow counter so
// shadowing bindings hash differently.
func (h *highlighter) declareBinding(name string, local sem.LocalID) uint64 {
	h.shadow[name]++
	idx := h.shadow[name]
	if local.IsValid() {
		h.declIdx[local] = idx
	}
	return bindingHash(name, idx)
}

// referenceBinding returns the hash of the declaration a use site resolves
// to. Uses whose declaration was outside the highlighting window fall back to
// the current counter value.
func (h *highlighter) referenceBinding(name string, local sem.LocalID) uint64 {
	idx, ok := h.declIdx[local]
	if !ok {
		idx = h.shadow[name]
	}
	return bindingHash(name, idx)
}

// bindingHash combines a binding's name with its shadow index into a stable
// 64-bit identity. Never zero: zero means "no hash" in HighlightedRange.
func bindingHash(name string, idx uint32) uint64 {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(name))
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], idx)
	_, _ = hasher.Write(buf[:])
	sum := hasher.Sum64()
	if sum == 0 {
		return 1
	}
	return sum
}
