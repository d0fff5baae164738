// Package lexer turns file content into a flat token stream. Trivia
// (whitespace and comments) are emitted as ordinary tokens so the syntax tree
// covers every byte of the file.
package lexer

import (
	"shine/internal/diag"
	"shine/internal/source"
	"shine/internal/token"
)

type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
}

// New creates a lexer over the file. A nil reporter drops lexical errors but
// lexing still continues.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), reporter: reporter}
}

// Tokenize lexes the whole file, including the trailing EOF token.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, reporter)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
		return lx.scanWhitespace()

	case ch == '/' && lx.isCommentStart():
		return lx.scanComment()

	case ch == '\'':
		return lx.scanLifetimeOrChar()

	case ch == 'r' && lx.isRawStringStart():
		return lx.scanRawString()

	case ch == '_':
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '"':
		return lx.scanString()

	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.reporter, code, sp, msg)
}

func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, start)
}

func (lx *Lexer) isCommentStart() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}

func (lx *Lexer) isRawStringStart() bool {
	// r"..." or r#"..."#, with any number of hashes.
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != 'r' {
		return false
	}
	if b1 == '"' {
		return true
	}
	n := uint32(1)
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return n > 1 && lx.cursor.PeekAt(n) == '"'
}
