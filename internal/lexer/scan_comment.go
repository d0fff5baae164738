package lexer

import (
	"shine/internal/diag"
	"shine/internal/token"
)

// scanComment lexes '//' and '/* */' comments, classifying documentation
// variants: '///' and '/** */' are outer doc comments, '//!' and '/*! */' are
// inner ones. Four or more slashes make a plain comment again.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	if lx.cursor.Peek() == '/' {
		lx.cursor.Bump()
		kind := token.LineComment
		switch lx.cursor.Peek() {
		case '/':
			slashes := 0
			for lx.cursor.Peek() == '/' {
				lx.cursor.Bump()
				slashes++
			}
			if slashes == 1 {
				kind = token.DocComment
			}
		case '!':
			lx.cursor.Bump()
			kind = token.InnerDocComment
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.emit(kind, start)
	}

	// Block comment, with nesting.
	lx.cursor.Bump() // '*'
	kind := token.BlockComment
	switch lx.cursor.Peek() {
	case '*':
		// '/**/' is empty and plain; '/**x' opens a doc comment.
		if lx.cursor.PeekAt(1) != '/' {
			kind = token.DocComment
		}
	case '!':
		kind = token.InnerDocComment
	}

	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if depth > 0 {
		lx.report(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	return lx.emit(kind, start)
}
