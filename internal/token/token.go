package token

import (
	"shine/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case Whitespace, LineComment, BlockComment, DocComment, InnerDocComment:
		return true
	default:
		return false
	}
}

// IsComment reports whether the token is any comment kind.
func (t Token) IsComment() bool {
	switch t.Kind {
	case LineComment, BlockComment, DocComment, InnerDocComment:
		return true
	default:
		return false
	}
}

// IsDocComment reports whether the token is a documentation comment.
func (t Token) IsDocComment() bool {
	return t.Kind == DocComment || t.Kind == InnerDocComment
}

// IsLiteral reports whether the token is a numeric, boolean, char, or string
// literal. true and false are keywords lexically but classify as literals.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntNumber, FloatNumber, CharLit, StringLit, RawStringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsString reports whether the token is a plain or raw string literal.
func (t Token) IsString() bool {
	return t.Kind == StringLit || t.Kind == RawStringLit
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAs && t.Kind <= KwWhile
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
