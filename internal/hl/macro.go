package hl

import (
	"shine/internal/token"
)

// MacroMarker is the automaton's verdict for one token inside a macro
// definition body.
type MacroMarker uint8

const (
	// MarkerMetavariable flags a metavariable binder or use, '$x'.
	MarkerMetavariable MacroMarker = iota
	// MarkerPunct flags punctuation that only exists in the definition
	// grammar: the '$' sigil, repetition group delimiters, separators and
	// repeat operators.
	MarkerPunct
)

// MacroHighlighter scans tokens inside a macro-definition body and flags
// metavariables and definition-only punctuation so they are never mistaken
// for keywords or ordinary identifiers. The traversal must feed every visited
// token to Advance before calling Classify for it.
type MacroHighlighter struct {
	afterDollar   bool
	pendingRepeat bool
	// parens tracks open parentheses; true entries were opened by '$('.
	parens []bool

	hasMarker bool
	marker    MacroMarker
}

// Init resets the automaton to its start state.
func (m *MacroHighlighter) Init() {
	m.afterDollar = false
	m.pendingRepeat = false
	m.parens = m.parens[:0]
	m.hasMarker = false
}

// Advance consumes one token and records the marker, if any, for it.
// Trivia tokens are ignored and keep the current state.
func (m *MacroHighlighter) Advance(tok token.Token) {
	if tok.IsTrivia() {
		return
	}
	m.hasMarker = false

	if m.afterDollar {
		m.afterDollar = false
		switch tok.Kind {
		case token.Ident, token.KwCrate, token.Underscore:
			m.set(MarkerMetavariable)
			m.pendingRepeat = false
			return
		case token.LParen:
			m.parens = append(m.parens, true)
			m.set(MarkerPunct)
			return
		}
	}

	switch tok.Kind {
	case token.Dollar:
		m.set(MarkerPunct)
		m.afterDollar = true
		return
	case token.LParen:
		m.parens = append(m.parens, false)
	case token.RParen:
		if n := len(m.parens); n > 0 {
			repetition := m.parens[n-1]
			m.parens = m.parens[:n-1]
			if repetition {
				m.set(MarkerPunct)
				m.pendingRepeat = true
				return
			}
		}
	}

	if m.pendingRepeat {
		switch {
		case tok.Kind == token.Star || tok.Kind == token.Plus || tok.Kind == token.Question:
			m.set(MarkerPunct)
			m.pendingRepeat = false
			return
		case tok.IsPunctOrOp() && !isBracket(tok.Kind):
			// Separator between the group and its repeat operator,
			// e.g. the comma in '$(x),*'.
			m.set(MarkerPunct)
			return
		default:
			m.pendingRepeat = false
		}
	}
}

// Classify reports the marker recorded for the most recently advanced token.
func (m *MacroHighlighter) Classify(tok token.Token) (MacroMarker, bool) {
	if tok.IsTrivia() {
		return 0, false
	}
	if !m.hasMarker {
		return 0, false
	}
	return m.marker, true
}

func (m *MacroHighlighter) set(marker MacroMarker) {
	m.hasMarker = true
	m.marker = marker
}

func isBracket(kind token.Kind) bool {
	switch kind {
	case token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket:
		return true
	default:
		return false
	}
}
