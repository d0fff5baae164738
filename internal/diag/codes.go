package diag

import (
	"fmt"
)

// Code identifies a diagnostic category.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexUnterminatedRawString    Code = 1006

	// Syntactic.
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectIdentifier  Code = 2003
	SynStrayCloser       Code = 2004

	// Highlighting. These are internal consistency checks: the traversal
	// recovers from them by resetting the offending context slot.
	HlInfo                  Code = 3000
	HlNestedMacroCall       Code = 3001
	HlNestedMacroDef        Code = 3002
	HlMacroCallMismatch     Code = 3003
	HlMacroDefMismatch      Code = 3004
	HlAttrContextMismatch   Code = 3005
	HlDeriveContextMismatch Code = 3006
)

// ID returns the stable textual identifier of the code, e.g. "HL3001".
func (c Code) ID() string {
	switch {
	case c >= 3000:
		return fmt.Sprintf("HL%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("SYN%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	default:
		return fmt.Sprintf("UNK%04d", uint16(c))
	}
}

func (c Code) String() string { return c.ID() }
