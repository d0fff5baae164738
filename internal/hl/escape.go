package hl

import (
	"strings"

	"shine/internal/token"
)

// literalBody returns the byte range of a string literal's contents relative
// to the token start, excluding quotes and raw-string fences.
func literalBody(tok token.Token) (start, end uint32, ok bool) {
	text := tok.Text
	switch tok.Kind {
	case token.StringLit:
		if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
			return 0, 0, false
		}
		return 1, uint32(len(text) - 1), true //nolint:gosec // token length fits uint32
	case token.RawStringLit:
		// r###"..."###
		if len(text) < 2 || text[0] != 'r' {
			return 0, 0, false
		}
		hashes := 0
		for hashes+1 < len(text) && text[hashes+1] == '#' {
			hashes++
		}
		open := hashes + 1
		if open >= len(text) || text[open] != '"' {
			return 0, 0, false
		}
		close := len(text) - hashes - 1
		if close <= open || text[close] != '"' {
			return 0, 0, false
		}
		return uint32(open + 1), uint32(close), true //nolint:gosec // token length fits uint32
	default:
		return 0, 0, false
	}
}

// forEachEscape parses the escape grammar of a plain string body and calls fn
// for every escape unit, well-formed or not. Offsets are relative to the body
// start. Raw strings have no escapes; callers skip them.
func forEachEscape(body string, fn func(off, length uint32, ok bool)) {
	i := 0
	for {
		j := strings.IndexByte(body[i:], '\\')
		if j < 0 {
			return
		}
		i += j
		length, ok := parseEscape(body[i:])
		fn(uint32(i), length, ok) //nolint:gosec // body length fits uint32
		i += int(length)
	}
}

// parseEscape measures one escape unit starting at the backslash. The
// returned length always consumes at least the backslash so scanning makes
// progress on malformed input.
func parseEscape(s string) (length uint32, ok bool) {
	if len(s) < 2 {
		return 1, false
	}
	switch s[1] {
	case 'n', 'r', 't', '\\', '\'', '"', '0':
		return 2, true
	case '\n':
		// Line continuation: the backslash, the newline and any leading
		// whitespace on the next line form one unit.
		n := 2
		for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
			n++
		}
		return uint32(n), true //nolint:gosec // escape length fits uint32
	case 'x':
		if len(s) >= 4 && isHexDigit(s[2]) && isHexDigit(s[3]) {
			return 4, true
		}
		return 2, false
	case 'u':
		if len(s) < 3 || s[2] != '{' {
			return 2, false
		}
		n := 3
		digits := 0
		for n < len(s) && s[n] != '}' {
			if !isHexDigit(s[n]) {
				return uint32(n), false //nolint:gosec // escape length fits uint32
			}
			digits++
			n++
		}
		if n >= len(s) || digits == 0 || digits > 6 {
			return uint32(n), false //nolint:gosec // escape length fits uint32
		}
		return uint32(n + 1), true //nolint:gosec // escape length fits uint32
	default:
		return 2, false
	}
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}
