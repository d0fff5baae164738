package parser

import (
	"shine/internal/diag"
	"shine/internal/syntax"
	"shine/internal/token"
)

// parseItemsUntil parses items until the stop token (EOF at the top level,
// '}' inside bodies). Tokens that start no recognizable item become error
// nodes so the loop always advances.
func (p *Parser) parseItemsUntil(stop token.Kind) {
	for !p.atEOF() && !p.at(stop) {
		switch kind := p.itemKindAhead(); kind {
		case syntax.NodeInvalid:
			p.parseErrorToken()
		case syntax.NodeLetStmt:
			p.parseLet()
		default:
			p.parseItem(kind)
		}
	}
}

// itemKindAhead decides what construct starts at the cursor by scanning past
// attributes and modifiers without consuming anything.
func (p *Parser) itemKindAhead() syntax.NodeKind {
	i := p.pos
	next := func() token.Token {
		for i < len(p.toks) {
			if p.toks[i].IsTrivia() {
				i++
				continue
			}
			t := p.toks[i]
			i++
			return t
		}
		return token.Token{Kind: token.EOF}
	}
	peek := func() token.Kind {
		j := i
		for j < len(p.toks) && p.toks[j].IsTrivia() {
			j++
		}
		if j < len(p.toks) {
			return p.toks[j].Kind
		}
		return token.EOF
	}
	skipBalanced := func(open, close token.Kind) {
		depth := 0
		for {
			t := next()
			switch t.Kind {
			case open:
				depth++
			case close:
				depth--
			case token.EOF:
				return
			}
			if depth == 0 {
				return
			}
		}
	}

	for {
		t := next()
		switch t.Kind {
		case token.Pound:
			if peek() == token.Bang {
				next()
			}
			if peek() == token.LBracket {
				skipBalanced(token.LBracket, token.RBracket)
			}
		case token.KwPub:
			if peek() == token.LParen {
				skipBalanced(token.LParen, token.RParen)
			}
		case token.KwUnsafe, token.KwAsync, token.KwExtern:
			// Modifier position; 'extern "C"' carries a literal.
			if t.Kind == token.KwExtern && peek() == token.StringLit {
				next()
			}
		case token.KwConst:
			if peek() == token.KwFn {
				return syntax.NodeFn
			}
			return syntax.NodeConst
		case token.KwFn:
			return syntax.NodeFn
		case token.KwStruct:
			return syntax.NodeStruct
		case token.KwEnum:
			return syntax.NodeEnum
		case token.KwTrait:
			return syntax.NodeTrait
		case token.KwImpl:
			return syntax.NodeImpl
		case token.KwMod:
			return syntax.NodeModule
		case token.KwType:
			return syntax.NodeTypeAlias
		case token.KwStatic:
			return syntax.NodeStatic
		case token.KwUse:
			return syntax.NodeUse
		case token.KwLet:
			return syntax.NodeLetStmt
		case token.Ident:
			switch t.Text {
			case "macro_rules":
				if peek() == token.Bang {
					return syntax.NodeMacroRules
				}
			case "union":
				if peek() == token.Ident {
					return syntax.NodeUnion
				}
			case "macro":
				if peek() == token.Ident {
					return syntax.NodeMacroDef
				}
			}
			return p.macroCallAhead(i - 1)
		case token.KwCrate, token.KwSelfValue, token.KwSuper, token.KwSelfType, token.PathSep:
			return p.macroCallAhead(i - 1)
		default:
			return syntax.NodeInvalid
		}
	}
}

// macroCallAhead checks whether a path starting at index from is a macro
// invocation, 'path!(...)'.
func (p *Parser) macroCallAhead(from int) syntax.NodeKind {
	i := from
	nextKind := func() token.Kind {
		for i < len(p.toks) {
			if p.toks[i].IsTrivia() {
				i++
				continue
			}
			k := p.toks[i].Kind
			i++
			return k
		}
		return token.EOF
	}
	k := nextKind()
	for {
		switch k {
		case token.Ident, token.KwCrate, token.KwSelfValue, token.KwSuper, token.KwSelfType:
			k = nextKind()
			if k != token.PathSep {
				goto done
			}
			k = nextKind()
		case token.PathSep:
			k = nextKind()
		default:
			goto done
		}
	}
done:
	if k == token.Bang {
		switch nextKind() {
		case token.LParen, token.LBracket, token.LBrace:
			return syntax.NodeMacroCall
		}
	}
	return syntax.NodeInvalid
}

func (p *Parser) parseErrorToken() {
	p.err(diag.SynUnexpectedToken, "expected an item")
	p.b.Start(syntax.NodeError)
	p.bump()
	p.b.Finish()
}

func (p *Parser) parseItem(kind syntax.NodeKind) {
	p.b.Start(kind)
	p.parseAttrsAndMods()

	switch kind {
	case syntax.NodeFn:
		p.parseFnTail()
	case syntax.NodeStruct, syntax.NodeUnion:
		p.parseStructTail()
	case syntax.NodeEnum:
		p.parseEnumTail()
	case syntax.NodeTrait, syntax.NodeImpl:
		p.parseTraitOrImplTail(kind)
	case syntax.NodeModule:
		p.parseModuleTail()
	case syntax.NodeTypeAlias:
		p.parseTypeAliasTail()
	case syntax.NodeConst, syntax.NodeStatic:
		p.parseConstTail()
	case syntax.NodeUse:
		p.parseUseTail()
	case syntax.NodeMacroRules:
		p.parseMacroRulesTail()
	case syntax.NodeMacroDef:
		p.parseMacroDefTail()
	case syntax.NodeMacroCall:
		p.parseMacroCallTail()
		p.bumpIf(token.Semi)
	default:
		p.bump()
	}
	p.b.Finish()
}

// parseAttrsAndMods consumes leading attributes and item modifiers into the
// open item node.
func (p *Parser) parseAttrsAndMods() {
	for {
		switch p.kind() {
		case token.Pound:
			p.parseAttr()
		case token.KwPub:
			p.bump()
			if p.at(token.LParen) {
				p.bumpBalanced(token.LParen, token.RParen)
			}
		case token.KwUnsafe, token.KwAsync:
			p.bump()
		case token.KwExtern:
			p.bump()
			p.bumpIf(token.StringLit)
		case token.KwConst:
			// Only 'const fn' reaches here; const items handle their own
			// keyword in parseConstTail.
			if p.peekKind(1) == token.KwFn {
				p.bump()
				continue
			}
			return
		default:
			return
		}
	}
}

// parseAttr parses '#[...]' or '#![...]'. Identifiers inside become name
// references so attribute and derive paths resolve like any other name.
func (p *Parser) parseAttr() {
	p.b.Start(syntax.NodeAttr)
	p.bump() // '#'
	p.bumpIf(token.Bang)
	if p.at(token.LBracket) {
		p.b.Start(syntax.NodeTokenTree)
		p.bump() // '['
		depth := 1
		for !p.atEOF() && depth > 0 {
			switch p.kind() {
			case token.LBracket:
				depth++
				p.bump()
			case token.RBracket:
				depth--
				p.bump()
			case token.Ident:
				p.b.Start(syntax.NodeNameRef)
				p.bump()
				p.b.Finish()
			case token.StringLit, token.RawStringLit:
				p.bump()
			default:
				p.bump()
			}
		}
		if depth > 0 {
			p.err(diag.SynUnclosedDelimiter, "unclosed attribute")
		}
		p.b.Finish()
	} else {
		p.err(diag.SynUnexpectedToken, "expected '[' after '#'")
	}
	p.b.Finish()
}

func (p *Parser) parseFnTail() {
	p.expect(token.KwFn, diag.SynUnexpectedToken, "expected 'fn'")
	p.parseName()
	if p.at(token.Lt) {
		p.parseGenericParams()
	}
	if p.at(token.LParen) {
		p.parseParamList()
	} else {
		p.err(diag.SynUnexpectedToken, "expected parameter list")
	}
	if p.bumpIf(token.Arrow) {
		p.parseTypeUntil(token.LBrace, token.Semi, token.KwWhere)
	}
	if p.at(token.KwWhere) {
		p.bump()
		p.parseTypeUntil(token.LBrace, token.Semi)
	}
	if p.at(token.LBrace) {
		p.parseBlock()
	} else {
		p.bumpIf(token.Semi)
	}
}

// parseGenericParams parses '<...>', wrapping type parameter identifiers as
// declaration names and lifetimes as lifetime nodes.
func (p *Parser) parseGenericParams() {
	p.bump() // '<'
	depth := 1
	declare := true
	for !p.atEOF() && depth > 0 {
		switch p.kind() {
		case token.Lt:
			depth++
			p.bump()
		case token.Gt:
			depth--
			p.bump()
		case token.Shr:
			depth -= 2
			p.bump()
		case token.Ident:
			if declare {
				p.b.Start(syntax.NodeName)
				p.bump()
				p.b.Finish()
				declare = false
			} else {
				p.parsePathOrMacroCall()
			}
		case token.LifetimeIdent:
			p.b.Start(syntax.NodeLifetime)
			p.bump()
			p.b.Finish()
			if declare {
				declare = false
			}
		case token.Comma:
			declare = true
			p.bump()
		case token.Colon:
			declare = false
			p.bump()
		default:
			p.bump()
		}
	}
	if depth > 0 {
		p.err(diag.SynUnclosedDelimiter, "unclosed generic parameter list")
	}
}

func (p *Parser) parseParamList() {
	p.b.Start(syntax.NodeParamList)
	p.bump() // '('
	for !p.atEOF() && !p.at(token.RParen) {
		switch p.kind() {
		case token.Pound:
			p.parseAttr()
		case token.Comma:
			p.bump()
		default:
			p.parseParam()
		}
	}
	if !p.bumpIf(token.RParen) {
		p.err(diag.SynUnclosedDelimiter, "unclosed parameter list")
	}
	p.b.Finish()
}

func (p *Parser) parseParam() {
	if p.selfParamAhead() {
		p.b.Start(syntax.NodeSelfParam)
		for p.at(token.Amp) || p.at(token.LifetimeIdent) || p.at(token.KwMut) {
			if p.at(token.LifetimeIdent) {
				p.b.Start(syntax.NodeLifetime)
				p.bump()
				p.b.Finish()
				continue
			}
			p.bump()
		}
		p.bump() // 'self'
		p.b.Finish()
		return
	}

	p.b.Start(syntax.NodeParam)
	p.bumpIf(token.KwMut)
	switch p.kind() {
	case token.Ident:
		p.b.Start(syntax.NodeName)
		p.bump()
		p.b.Finish()
	case token.Underscore:
		p.bump()
	}
	if p.bumpIf(token.Colon) {
		p.parseTypeUntil(token.Comma, token.RParen)
	}
	p.b.Finish()
}

// selfParamAhead recognizes 'self', '&self', '&mut self', "&'a self" and
// "&'a mut self".
func (p *Parser) selfParamAhead() bool {
	n := 0
	if p.peekKind(n) == token.Amp {
		n++
		if p.peekKind(n) == token.LifetimeIdent {
			n++
		}
	}
	if p.peekKind(n) == token.KwMut {
		n++
	}
	return p.peekKind(n) == token.KwSelfValue
}

func (p *Parser) parseStructTail() {
	p.bump() // 'struct' or the 'union' identifier
	p.parseName()
	if p.at(token.Lt) {
		p.parseGenericParams()
	}
	switch p.kind() {
	case token.LBrace:
		p.parseFieldList()
	case token.LParen:
		// Tuple struct.
		p.bump()
		p.parseTypeUntil(token.RParen)
		if !p.bumpIf(token.RParen) {
			p.err(diag.SynUnclosedDelimiter, "unclosed tuple struct")
		}
		p.bumpIf(token.Semi)
	default:
		p.bumpIf(token.Semi)
	}
}

// parseFieldList parses '{ name: Type, ... }'. Field names are declarations.
func (p *Parser) parseFieldList() {
	p.bump() // '{'
	for !p.atEOF() && !p.at(token.RBrace) {
		switch p.kind() {
		case token.Pound:
			p.parseAttr()
		case token.KwPub:
			p.bump()
			if p.at(token.LParen) {
				p.bumpBalanced(token.LParen, token.RParen)
			}
		case token.Ident:
			if p.peekKind(1) == token.Colon {
				p.b.Start(syntax.NodeName)
				p.bump()
				p.b.Finish()
				p.bump() // ':'
				p.parseTypeUntil(token.Comma, token.RBrace)
				continue
			}
			p.bump()
		case token.Comma:
			p.bump()
		default:
			p.bump()
		}
	}
	if !p.bumpIf(token.RBrace) {
		p.err(diag.SynUnclosedDelimiter, "unclosed field list")
	}
}

func (p *Parser) parseEnumTail() {
	p.bump() // 'enum'
	p.parseName()
	if p.at(token.Lt) {
		p.parseGenericParams()
	}
	if !p.at(token.LBrace) {
		p.bumpIf(token.Semi)
		return
	}
	p.bump() // '{'
	for !p.atEOF() && !p.at(token.RBrace) {
		switch p.kind() {
		case token.Pound:
			p.parseAttr()
		case token.Ident:
			p.b.Start(syntax.NodeName)
			p.bump()
			p.b.Finish()
			switch p.kind() {
			case token.LParen:
				p.bump()
				p.parseTypeUntil(token.RParen)
				p.bumpIf(token.RParen)
			case token.LBrace:
				p.parseFieldList()
			case token.Eq:
				p.bump()
				p.soupUntil(token.Comma, token.RBrace)
			}
		case token.Comma:
			p.bump()
		default:
			p.bump()
		}
	}
	if !p.bumpIf(token.RBrace) {
		p.err(diag.SynUnclosedDelimiter, "unclosed enum body")
	}
}

func (p *Parser) parseTraitOrImplTail(kind syntax.NodeKind) {
	p.bump() // 'trait' or 'impl'
	if kind == syntax.NodeTrait {
		p.parseName()
	}
	p.parseTypeUntil(token.LBrace, token.Semi)
	if p.at(token.LBrace) {
		p.parseBlock()
	} else {
		p.bumpIf(token.Semi)
	}
}

func (p *Parser) parseModuleTail() {
	p.bump() // 'mod'
	p.parseName()
	if p.at(token.LBrace) {
		p.parseBlock()
	} else {
		p.bumpIf(token.Semi)
	}
}

func (p *Parser) parseTypeAliasTail() {
	p.bump() // 'type'
	p.parseName()
	if p.at(token.Lt) {
		p.parseGenericParams()
	}
	if p.bumpIf(token.Eq) {
		p.parseTypeUntil(token.Semi)
	}
	p.bumpIf(token.Semi)
}

func (p *Parser) parseConstTail() {
	p.bump() // 'const' or 'static'
	p.bumpIf(token.KwMut)
	switch p.kind() {
	case token.Ident, token.Underscore:
		p.b.Start(syntax.NodeName)
		p.bump()
		p.b.Finish()
	}
	if p.bumpIf(token.Colon) {
		p.parseTypeUntil(token.Eq, token.Semi)
	}
	if p.bumpIf(token.Eq) {
		p.soupUntil(token.Semi)
	}
	p.bumpIf(token.Semi)
}

func (p *Parser) parseUseTail() {
	p.bump() // 'use'
	p.soupUntil(token.Semi)
	p.bumpIf(token.Semi)
}

func (p *Parser) parseMacroRulesTail() {
	p.bump() // 'macro_rules'
	p.expect(token.Bang, diag.SynUnexpectedToken, "expected '!' after macro_rules")
	p.parseName()
	p.parseRawBody()
}

func (p *Parser) parseMacroDefTail() {
	p.bump() // 'macro'
	p.parseName()
	if p.at(token.LParen) {
		p.parseRawBody()
	}
	if p.at(token.LBrace) {
		p.parseRawBody()
	}
}

// parseRawBody consumes one balanced delimiter run as a raw token tree. Macro
// bodies stay unstructured; the macro-body scanner classifies their tokens.
func (p *Parser) parseRawBody() {
	open := p.kind()
	var close token.Kind
	switch open {
	case token.LParen:
		close = token.RParen
	case token.LBracket:
		close = token.RBracket
	case token.LBrace:
		close = token.RBrace
	default:
		p.err(diag.SynUnexpectedToken, "expected macro body")
		return
	}
	p.b.Start(syntax.NodeTokenTree)
	p.bumpBalanced(open, close)
	p.b.Finish()
	if open != token.LBrace {
		p.bumpIf(token.Semi)
	}
}

// bumpBalanced consumes from the opening delimiter at the cursor through its
// matching closer, emitting everything as raw tokens.
func (p *Parser) bumpBalanced(open, close token.Kind) {
	depth := 0
	for !p.atEOF() {
		switch p.kind() {
		case open:
			depth++
		case close:
			depth--
		}
		p.bump()
		if depth == 0 {
			return
		}
	}
	p.err(diag.SynUnclosedDelimiter, "unclosed delimiter")
}
