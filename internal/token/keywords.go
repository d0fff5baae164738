package token

// keywords maps keyword lexemes to their token kinds.
var keywords = map[string]Kind{
	"as":       KwAs,
	"async":    KwAsync,
	"await":    KwAwait,
	"break":    KwBreak,
	"const":    KwConst,
	"continue": KwContinue,
	"crate":    KwCrate,
	"dyn":      KwDyn,
	"else":     KwElse,
	"enum":     KwEnum,
	"extern":   KwExtern,
	"false":    KwFalse,
	"fn":       KwFn,
	"for":      KwFor,
	"if":       KwIf,
	"impl":     KwImpl,
	"in":       KwIn,
	"let":      KwLet,
	"loop":     KwLoop,
	"match":    KwMatch,
	"mod":      KwMod,
	"move":     KwMove,
	"mut":      KwMut,
	"pub":      KwPub,
	"ref":      KwRef,
	"return":   KwReturn,
	"self":     KwSelfValue,
	"Self":     KwSelfType,
	"static":   KwStatic,
	"struct":   KwStruct,
	"super":    KwSuper,
	"trait":    KwTrait,
	"true":     KwTrue,
	"type":     KwType,
	"unsafe":   KwUnsafe,
	"use":      KwUse,
	"where":    KwWhere,
	"while":    KwWhile,
}

// LookupKeyword returns the keyword kind for text, or Ident if text is not a
// keyword.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}

// KeywordLexeme returns the lexeme for a keyword kind, or "" for non-keywords.
func KeywordLexeme(kind Kind) string {
	for text, k := range keywords {
		if k == kind {
			return text
		}
	}
	return ""
}

// IsControlFlowKeyword reports whether the keyword steers control flow.
// The highlighter attaches the control-flow modifier to these.
func IsControlFlowKeyword(kind Kind) bool {
	switch kind {
	case KwBreak, KwContinue, KwElse, KwFor, KwIf, KwIn, KwLoop, KwMatch, KwReturn, KwWhile, KwAwait:
		return true
	default:
		return false
	}
}
