package lexer

import (
	"shine/internal/diag"
	"shine/internal/token"
)

// scanNumber lexes integer and float literals: 0b/0o/0x bases, decimal
// fractions, exponents, and trailing type suffixes (u8, f64, ...), which stay
// inside Token.Text.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntNumber

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' })
			return lx.finishNumber(kind, start)
		case 'o', 'O':
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			return lx.finishNumber(kind, start)
		case 'x', 'X':
			lx.cursor.Bump()
			lx.eatDigits(isHex)
			return lx.finishNumber(kind, start)
		}
	}

	lx.eatDigits(isDec)

	// Fraction. '..' and '..=' after a number are range operators, and
	// '1.foo' is a field access, not a float.
	if lx.cursor.Peek() == '.' {
		after := lx.cursor.PeekAt(1)
		if isDec(after) {
			lx.cursor.Bump()
			kind = token.FloatNumber
			lx.eatDigits(isDec)
		} else if after != '.' && after != '=' && !isIdentStartByte(after) {
			lx.cursor.Bump()
			kind = token.FloatNumber
		}
	}

	// Exponent.
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		after := lx.cursor.PeekAt(1)
		second := lx.cursor.PeekAt(2)
		if isDec(after) || ((after == '+' || after == '-') && isDec(second)) {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.report(diag.LexBadNumber, sp, "expected digit after exponent")
				return lx.emit(token.Invalid, start)
			}
			kind = token.FloatNumber
			lx.eatDigits(isDec)
		}
	}

	return lx.finishNumber(kind, start)
}

func (lx *Lexer) eatDigits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if !ok(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

// finishNumber consumes a trailing type suffix, upgrading the kind for float
// suffixes on an integer-shaped literal.
func (lx *Lexer) finishNumber(kind token.Kind, start Mark) token.Token {
	suffixStart := lx.cursor.Off
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	suffix := string(lx.file.Content[suffixStart:lx.cursor.Off])
	if suffix == "f32" || suffix == "f64" {
		kind = token.FloatNumber
	}
	return lx.emit(kind, start)
}
