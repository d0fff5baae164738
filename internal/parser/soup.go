package parser

import (
	"slices"

	"shine/internal/diag"
	"shine/internal/syntax"
	"shine/internal/token"
)

// parseBlock parses '{ ... }'. Blocks host nested items, let statements and
// free-form expression tokens, so this doubles as the body parser for fns,
// traits, impls and modules.
func (p *Parser) parseBlock() {
	p.b.Start(syntax.NodeBlock)
	p.bump() // '{'
	for !p.atEOF() && !p.at(token.RBrace) {
		switch kind := p.itemKindAhead(); kind {
		case syntax.NodeInvalid:
			p.soupStep()
		case syntax.NodeLetStmt:
			p.parseLet()
		default:
			p.parseItem(kind)
		}
	}
	if !p.bumpIf(token.RBrace) {
		p.err(diag.SynUnclosedDelimiter, "unclosed block")
	}
	p.b.Finish()
}

func (p *Parser) parseLet() {
	p.b.Start(syntax.NodeLetStmt)
	p.bump() // 'let'
	p.bumpIf(token.KwRef)
	p.bumpIf(token.KwMut)

	switch p.kind() {
	case token.Ident:
		if k := p.peekKind(1); k == token.PathSep || k == token.LParen || k == token.LBrace {
			// Enum variant or struct pattern; names inside are references.
			p.soupUntil(token.Eq, token.Colon, token.Semi)
		} else {
			p.b.Start(syntax.NodeName)
			p.bump()
			p.b.Finish()
		}
	case token.Underscore:
		p.bump()
	default:
		p.soupUntil(token.Eq, token.Colon, token.Semi)
	}

	if p.bumpIf(token.Colon) {
		p.parseTypeUntil(token.Eq, token.Semi)
	}
	if p.bumpIf(token.Eq) {
		p.soupUntil(token.Semi)
	}
	p.bumpIf(token.Semi)
	p.b.Finish()
}

// parseTypeUntil parses a type position. Types and expressions share the same
// recognizer: paths become references, everything else stays raw.
func (p *Parser) parseTypeUntil(stops ...token.Kind) {
	p.soupUntil(stops...)
}

// soupUntil consumes constructs until a stop token or an unbalanced closing
// delimiter, leaving the stop for the caller.
func (p *Parser) soupUntil(stops ...token.Kind) {
	for !p.atEOF() {
		k := p.kind()
		if slices.Contains(stops, k) {
			return
		}
		switch k {
		case token.RBrace, token.RParen, token.RBracket:
			return
		}
		p.soupStep()
	}
}

// soupStep consumes exactly one construct: a nested block or delimiter run, a
// path (possibly a macro invocation), a lifetime, or a single raw token.
func (p *Parser) soupStep() {
	switch p.kind() {
	case token.LBrace:
		p.parseBlock()
	case token.LParen:
		p.bump()
		p.soupUntil(token.RParen)
		if !p.bumpIf(token.RParen) {
			p.err(diag.SynUnclosedDelimiter, "unclosed parenthesis")
		}
	case token.LBracket:
		p.bump()
		p.soupUntil(token.RBracket)
		if !p.bumpIf(token.RBracket) {
			p.err(diag.SynUnclosedDelimiter, "unclosed bracket")
		}
	case token.Pound:
		p.parseAttr()
	case token.LifetimeIdent:
		p.parseLifetimeOrLabel()
	case token.Ident, token.KwCrate, token.KwSelfValue, token.KwSuper, token.KwSelfType, token.PathSep:
		p.parsePathOrMacroCall()
	default:
		p.bump()
	}
}

// parseLifetimeOrLabel wraps a lifetime token. A lifetime followed by ':' and
// a loop keyword declares a label.
func (p *Parser) parseLifetimeOrLabel() {
	if p.peekKind(1) == token.Colon {
		switch p.peekKind(2) {
		case token.KwLoop, token.KwWhile, token.KwFor:
			p.b.Start(syntax.NodeLabel)
			p.bump()
			p.b.Finish()
			return
		}
	}
	p.b.Start(syntax.NodeLifetime)
	p.bump()
	p.b.Finish()
}

// parsePathOrMacroCall parses a (possibly qualified) path in reference
// position, upgrading it to a macro call node when a '!' plus delimiter
// follows.
func (p *Parser) parsePathOrMacroCall() {
	if p.macroCallAhead(p.pos) == syntax.NodeMacroCall {
		p.b.Start(syntax.NodeMacroCall)
		p.parseMacroCallTail()
		p.b.Finish()
		return
	}
	p.parsePath()
}

// parseMacroCallTail fills an already-open macro call node: path, bang, raw
// argument tree.
func (p *Parser) parseMacroCallTail() {
	p.parsePath()
	p.expect(token.Bang, diag.SynUnexpectedToken, "expected '!'")
	switch p.kind() {
	case token.LParen, token.LBracket, token.LBrace:
		p.parseRawBody()
	default:
		p.err(diag.SynUnexpectedToken, "expected macro arguments")
	}
}

// parsePath parses one or more '::'-separated segments. A bare segment stays
// a plain name reference without a path wrapper.
func (p *Parser) parsePath() {
	multi := p.peekKind(0) == token.PathSep
	if !multi && isSegmentStart(p.peekKind(0)) {
		multi = p.peekKind(1) == token.PathSep
	}

	if !multi {
		p.parseNameRefSegment()
		return
	}

	p.b.Start(syntax.NodePath)
	p.bumpIf(token.PathSep)
	for {
		if !isSegmentStart(p.kind()) {
			break
		}
		p.b.Start(syntax.NodePathSegment)
		p.parseNameRefSegment()
		p.b.Finish()
		if !p.bumpIf(token.PathSep) {
			break
		}
	}
	p.b.Finish()
}

func (p *Parser) parseNameRefSegment() {
	p.b.Start(syntax.NodeNameRef)
	p.bump()
	p.b.Finish()
}

func isSegmentStart(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwCrate, token.KwSelfValue, token.KwSuper, token.KwSelfType:
		return true
	default:
		return false
	}
}
