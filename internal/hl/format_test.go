package hl

import "testing"

func TestForEachFormatSpecifier(t *testing.T) {
	type spec struct {
		off    uint32
		length uint32
	}
	tests := []struct {
		name string
		body string
		want []spec
	}{
		{
			name: "no specifiers",
			body: "plain text",
			want: nil,
		},
		{
			name: "empty specifier",
			body: "a {} b",
			want: []spec{{2, 2}},
		},
		{
			name: "named specifier",
			body: "value: {name}",
			want: []spec{{7, 6}},
		},
		{
			name: "positional with format",
			body: "{0:>8.2}",
			want: []spec{{0, 8}},
		},
		{
			name: "several specifiers",
			body: "{a} and {b}",
			want: []spec{{0, 3}, {8, 3}},
		},
		{
			name: "doubled braces are literal",
			body: "{{literal}}",
			want: nil,
		},
		{
			name: "doubled then real",
			body: "{{x}} {y}",
			want: []spec{{6, 3}},
		},
		{
			name: "unclosed aborts the scan",
			body: "a {b and {c}",
			want: nil,
		},
		{
			name: "newline inside aborts that specifier",
			body: "{a\nb}",
			want: nil,
		},
		{
			name: "stray close brace ignored",
			body: "a } b {c}",
			want: []spec{{6, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []spec
			forEachFormatSpecifier(tt.body, func(off, length uint32) {
				got = append(got, spec{off, length})
			})
			if len(got) != len(tt.want) {
				t.Fatalf("specifier count: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("specifier %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
