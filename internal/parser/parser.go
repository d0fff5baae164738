// Package parser builds a full-fidelity syntax tree from the token stream.
// It is a recognizing parser, not a validating one: every token of the file
// ends up in the tree, misparsed regions degrade to raw tokens or error
// nodes, and diagnostics are advisory.
package parser

import (
	"shine/internal/diag"
	"shine/internal/lexer"
	"shine/internal/source"
	"shine/internal/syntax"
	"shine/internal/token"
)

type Parser struct {
	toks     []token.Token
	pos      int
	b        *syntax.Builder
	reporter diag.Reporter

	// pending buffers trivia so leading comments attach inside the node of
	// the construct they precede, where doc processing expects them.
	pending []token.Token
}

// ParseFile lexes and parses one file. The returned tree always covers the
// whole input, whatever the error count.
func ParseFile(file *source.File, reporter diag.Reporter) *syntax.Tree {
	toks := lexer.Tokenize(file, reporter)
	p := &Parser{toks: toks, b: syntax.NewBuilder(file.ID), reporter: reporter}

	p.b.Start(syntax.NodeSourceFile)
	p.parseItemsUntil(token.EOF)

	p.collect()
	p.flush()
	if p.pos < len(p.toks) {
		p.b.Token(p.toks[p.pos]) // EOF
	}
	return p.b.Build()
}

// collect moves trivia at the cursor into the pending buffer.
func (p *Parser) collect() {
	for p.pos < len(p.toks) && p.toks[p.pos].IsTrivia() {
		p.pending = append(p.pending, p.toks[p.pos])
		p.pos++
	}
}

// flush emits buffered trivia into the innermost open node.
func (p *Parser) flush() {
	for _, t := range p.pending {
		p.b.Token(t)
	}
	p.pending = p.pending[:0]
}

// cur returns the significant token at the cursor.
func (p *Parser) cur() token.Token {
	p.collect()
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) kind() token.Kind { return p.cur().Kind }

func (p *Parser) at(k token.Kind) bool { return p.kind() == k }

func (p *Parser) atEOF() bool { return p.kind() == token.EOF }

// bump emits the significant token at the cursor, flushing trivia first.
func (p *Parser) bump() token.Token {
	tok := p.cur()
	if tok.Kind == token.EOF {
		return tok
	}
	p.flush()
	p.b.Token(tok)
	p.pos++
	return tok
}

func (p *Parser) bumpIf(k token.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) bool {
	if p.bumpIf(k) {
		return true
	}
	p.err(code, msg)
	return false
}

func (p *Parser) err(code diag.Code, msg string) {
	diag.ReportError(p.reporter, code, p.cur().Span, msg)
}

// peekKind returns the kind of the n-th significant token after the cursor,
// without consuming anything. peekKind(0) is the current token.
func (p *Parser) peekKind(n int) token.Kind {
	i := p.pos
	for i < len(p.toks) {
		if p.toks[i].IsTrivia() {
			i++
			continue
		}
		if n == 0 {
			return p.toks[i].Kind
		}
		n--
		i++
	}
	return token.EOF
}

// peekText returns the text of the n-th significant token after the cursor.
func (p *Parser) peekText(n int) string {
	i := p.pos
	for i < len(p.toks) {
		if p.toks[i].IsTrivia() {
			i++
			continue
		}
		if n == 0 {
			return p.toks[i].Text
		}
		n--
		i++
	}
	return ""
}

// parseName wraps the identifier at the cursor into a declaration-site name
// node. Missing identifiers are reported but not invented.
func (p *Parser) parseName() {
	switch p.kind() {
	case token.Ident, token.Underscore, token.KwSelfType:
		p.b.Start(syntax.NodeName)
		p.bump()
		p.b.Finish()
	default:
		p.err(diag.SynExpectIdentifier, "expected a name")
	}
}
