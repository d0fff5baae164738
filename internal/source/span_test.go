package source_test

import (
	"testing"

	"shine/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestSpanIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b source.Span
		want bool
	}{
		{"overlap", sp(0, 10), sp(5, 15), true},
		{"disjoint", sp(0, 5), sp(6, 10), false},
		{"touching", sp(0, 5), sp(5, 10), true},
		{"contained", sp(0, 10), sp(3, 7), true},
		{"empty at boundary", sp(0, 5), sp(5, 5), true},
		{"empty inside", sp(0, 5), sp(3, 3), true},
		{"empty outside", sp(0, 5), sp(7, 7), false},
		{"other file", sp(0, 10), source.Span{File: 1, Start: 0, End: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects is not symmetric for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestSpanIntersect(t *testing.T) {
	got, ok := sp(0, 10).Intersect(sp(5, 15))
	if !ok || got != sp(5, 10) {
		t.Errorf("Intersect = %v, %v", got, ok)
	}
	if _, ok := sp(0, 5).Intersect(sp(6, 10)); ok {
		t.Errorf("disjoint spans intersected")
	}
}

func TestSpanContains(t *testing.T) {
	if !sp(0, 10).Contains(sp(3, 7)) {
		t.Errorf("containment of inner span")
	}
	if !sp(0, 10).Contains(sp(0, 10)) {
		t.Errorf("span must contain itself")
	}
	if sp(3, 7).Contains(sp(0, 10)) {
		t.Errorf("inner span contains outer")
	}
	if sp(0, 10).Contains(source.Span{File: 1, Start: 3, End: 7}) {
		t.Errorf("containment across files")
	}
}

func TestSpanCoverAndShift(t *testing.T) {
	if got := sp(5, 10).Cover(sp(0, 7)); got != sp(0, 10) {
		t.Errorf("Cover = %v", got)
	}
	if got := sp(5, 10).ShiftRight(3); got != sp(8, 13) {
		t.Errorf("ShiftRight = %v", got)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("fn a() {}\nfn b() {}\n"))

	tests := []struct {
		off  uint32
		want source.LineCol
	}{
		{0, source.LineCol{Line: 1, Col: 1}},
		{3, source.LineCol{Line: 1, Col: 4}},
		{10, source.LineCol{Line: 2, Col: 1}},
		{13, source.LineCol{Line: 2, Col: 4}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(source.Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileSetGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{0, ""},
		{9, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFileSetVirtualFlag(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("fixture://1", []byte("x"))
	if fs.Get(id).Flags&source.FileVirtual == 0 {
		t.Errorf("virtual file missing the virtual flag")
	}
}

func TestFileSetFullSpan(t *testing.T) {
	fs := source.NewFileSet()
	content := "fn main() {}"
	id := fs.AddVirtual("test.rs", []byte(content))
	full := fs.FullSpan(id)
	if full.Start != 0 || full.End != uint32(len(content)) || full.File != id {
		t.Errorf("FullSpan = %v", full)
	}
}

func TestFileSetDistinctIDs(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("a.rs", []byte("a"))
	b := fs.AddVirtual("b.rs", []byte("b"))
	if a == b {
		t.Errorf("two files share an ID")
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
	if fs.Get(a).Hash == fs.Get(b).Hash {
		t.Errorf("different contents share a hash")
	}
}
