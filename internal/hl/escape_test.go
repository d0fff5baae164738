package hl

import (
	"testing"

	"shine/internal/source"
	"shine/internal/token"
)

func TestParseEscape(t *testing.T) {
	tests := []struct {
		input  string
		length uint32
		ok     bool
	}{
		{`\n`, 2, true},
		{`\r`, 2, true},
		{`\t`, 2, true},
		{`\\`, 2, true},
		{`\'`, 2, true},
		{`\"`, 2, true},
		{`\0`, 2, true},
		{`\nrest`, 2, true},
		{`\x41`, 4, true},
		{`\x4`, 2, false},
		{`\xzz`, 2, false},
		{`\u{7f}`, 6, true},
		{`\u{10FFFF}`, 10, true},
		{`\u{}`, 3, false},
		{`\u{12345678}`, 11, false},
		{`\u{12`, 5, false},
		{`\u{zz}`, 3, false},
		{`\uA`, 2, false},
		{`\q`, 2, false},
		{`\`, 1, false},
		{"\\\nx", 2, true},
		{"\\\n  \tx", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			length, ok := parseEscape(tt.input)
			if length != tt.length || ok != tt.ok {
				t.Errorf("parseEscape(%q) = (%d, %v), want (%d, %v)",
					tt.input, length, ok, tt.length, tt.ok)
			}
		})
	}
}

func TestForEachEscape(t *testing.T) {
	type unit struct {
		off    uint32
		length uint32
		ok     bool
	}
	tests := []struct {
		name string
		body string
		want []unit
	}{
		{
			name: "no escapes",
			body: "plain text",
			want: nil,
		},
		{
			name: "single escape",
			body: `a\nb`,
			want: []unit{{1, 2, true}},
		},
		{
			name: "several escapes",
			body: `\t\x41\u{1F600}`,
			want: []unit{{0, 2, true}, {2, 4, true}, {6, 9, true}},
		},
		{
			name: "malformed still advances",
			body: `\q\n`,
			want: []unit{{0, 2, false}, {2, 2, true}},
		},
		{
			name: "trailing backslash",
			body: `end\`,
			want: []unit{{3, 1, false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []unit
			forEachEscape(tt.body, func(off, length uint32, ok bool) {
				got = append(got, unit{off, length, ok})
			})
			if len(got) != len(tt.want) {
				t.Fatalf("unit count: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("unit %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLiteralBody(t *testing.T) {
	sp := source.Span{File: 0, Start: 0, End: 0}
	tests := []struct {
		name  string
		tok   token.Token
		start uint32
		end   uint32
		ok    bool
	}{
		{
			name:  "plain string",
			tok:   token.Token{Kind: token.StringLit, Span: sp, Text: `"abc"`},
			start: 1, end: 4, ok: true,
		},
		{
			name:  "empty string",
			tok:   token.Token{Kind: token.StringLit, Span: sp, Text: `""`},
			start: 1, end: 1, ok: true,
		},
		{
			name: "unterminated string",
			tok:  token.Token{Kind: token.StringLit, Span: sp, Text: `"abc`},
			ok:   false,
		},
		{
			name:  "raw string no hashes",
			tok:   token.Token{Kind: token.RawStringLit, Span: sp, Text: `r"abc"`},
			start: 2, end: 5, ok: true,
		},
		{
			name:  "raw string with hashes",
			tok:   token.Token{Kind: token.RawStringLit, Span: sp, Text: `r##"abc"##`},
			start: 4, end: 7, ok: true,
		},
		{
			name: "unterminated raw string",
			tok:  token.Token{Kind: token.RawStringLit, Span: sp, Text: `r#"abc`},
			ok:   false,
		},
		{
			name: "char literal is not a string",
			tok:  token.Token{Kind: token.CharLit, Span: sp, Text: `'a'`},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := literalBody(tt.tok)
			if ok != tt.ok {
				t.Fatalf("literalBody(%q) ok = %v, want %v", tt.tok.Text, ok, tt.ok)
			}
			if ok && (start != tt.start || end != tt.end) {
				t.Errorf("literalBody(%q) = (%d, %d), want (%d, %d)",
					tt.tok.Text, start, end, tt.start, tt.end)
			}
		})
	}
}
