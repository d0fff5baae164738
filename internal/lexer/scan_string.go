package lexer

import (
	"shine/internal/diag"
	"shine/internal/token"
)

// scanString lexes a plain "..." literal. Escapes are consumed but not
// validated here; the highlighter parses them again for finer spans.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

// scanRawString lexes r"..." and r#"..."# with any number of hashes. Raw
// strings may span lines and contain no escapes.
func (lx *Lexer) scanRawString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // 'r'
	hashes := 0
	for lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
		hashes++
	}
	lx.cursor.Bump() // opening '"'

	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		closing := 0
		for closing < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			closing++
		}
		if closing == hashes {
			return lx.emit(token.RawStringLit, start)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedRawString, sp, "unterminated raw string literal")
	return lx.emit(token.Invalid, start)
}

// scanLifetimeOrChar disambiguates 'a (lifetime) from 'a' (char literal) by
// looking for the closing quote after the identifier run.
func (lx *Lexer) scanLifetimeOrChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\''

	if isIdentStartByte(lx.cursor.Peek()) && !lx.charCloses() {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(token.LifetimeIdent, start)
	}

	// Char literal.
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\'' {
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return lx.emit(token.Invalid, start)
}

// charCloses reports whether the quote at the cursor starts a one-character
// literal like 'a' rather than a lifetime.
func (lx *Lexer) charCloses() bool {
	n := uint32(0)
	for isIdentContinueByte(lx.cursor.PeekAt(n)) {
		n++
	}
	return n == 1 && lx.cursor.PeekAt(n) == '\''
}
