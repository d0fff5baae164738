package hl_test

import (
	"strings"
	"testing"

	"shine/internal/diag"
	"shine/internal/hl"
	"shine/internal/sem"
	"shine/internal/source"
	"shine/internal/syntax"
	"shine/internal/token"
)

// highlightSource runs the full pipeline over one virtual file.
func highlightSource(t *testing.T, src string, cfg hl.Config) (*source.FileSet, []hl.HighlightedRange) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	model := sem.NewSyntacticModel(fs, cfg.Reporter)
	ranges, err := hl.Run(model, id, nil, cfg)
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	return fs, ranges
}

// offsetOf returns the byte offset of the nth occurrence (0-based) of needle.
func offsetOf(t *testing.T, src, needle string, nth int) uint32 {
	t.Helper()
	from := 0
	for {
		i := strings.Index(src[from:], needle)
		if i < 0 {
			t.Fatalf("occurrence %d of %q not found in %q", nth, needle, src)
		}
		if nth == 0 {
			return uint32(from + i)
		}
		nth--
		from += i + len(needle)
	}
}

// rangeAt finds the range whose span exactly matches [start, start+len(text)).
func rangeAt(ranges []hl.HighlightedRange, start uint32, text string) (hl.HighlightedRange, bool) {
	end := start + uint32(len(text))
	for _, r := range ranges {
		if r.Span.Start == start && r.Span.End == end {
			return r, true
		}
	}
	return hl.HighlightedRange{}, false
}

// rangeCovering finds the range containing the byte offset.
func rangeCovering(ranges []hl.HighlightedRange, off uint32) (hl.HighlightedRange, bool) {
	for _, r := range ranges {
		if r.Span.ContainsOffset(off) {
			return r, true
		}
	}
	return hl.HighlightedRange{}, false
}

func expectTag(t *testing.T, ranges []hl.HighlightedRange, src, needle string, nth int, tag hl.Tag) hl.HighlightedRange {
	t.Helper()
	start := offsetOf(t, src, needle, nth)
	r, ok := rangeAt(ranges, start, needle)
	if !ok {
		t.Fatalf("no range over %q (occurrence %d, offset %d)", needle, nth, start)
	}
	if r.Highlight.Tag != tag {
		t.Errorf("%q classified %s, want %s", needle, r.Highlight, hl.H(tag))
	}
	return r
}

func expectNoRange(t *testing.T, ranges []hl.HighlightedRange, src, needle string, nth int) {
	t.Helper()
	start := offsetOf(t, src, needle, nth)
	if r, ok := rangeAt(ranges, start, needle); ok {
		t.Errorf("unexpected range over %q: %s", needle, r.Highlight)
	}
}

func TestHighlightSimpleFunction(t *testing.T) {
	src := "fn main() { let count = 1; }"
	_, ranges := highlightSource(t, src, hl.Config{SyntacticNameRefs: true})

	expectTag(t, ranges, src, "fn", 0, hl.TagKeyword)
	name := expectTag(t, ranges, src, "main", 0, hl.TagFn)
	if !name.Highlight.Mods.Has(hl.ModDeclaration) {
		t.Errorf("function name missing declaration modifier: %s", name.Highlight)
	}
	expectTag(t, ranges, src, "let", 0, hl.TagKeyword)
	local := expectTag(t, ranges, src, "count", 0, hl.TagVariable)
	if !local.Highlight.Mods.Has(hl.ModDeclaration) {
		t.Errorf("let binding missing declaration modifier: %s", local.Highlight)
	}
	expectTag(t, ranges, src, "=", 0, hl.TagOperator)
	expectTag(t, ranges, src, "1", 0, hl.TagNumber)
	expectTag(t, ranges, src, ";", 0, hl.TagPunctSemi)

	// Adjacent identical punctuation coalesces, so check by coverage.
	paren, ok := rangeCovering(ranges, offsetOf(t, src, "(", 0))
	if !ok || paren.Highlight.Tag != hl.TagPunctBracket {
		t.Errorf("parenthesis classified %v", paren.Highlight)
	}
	brace, ok := rangeCovering(ranges, offsetOf(t, src, "{", 0))
	if !ok || brace.Highlight.Tag != hl.TagPunctBracket {
		t.Errorf("brace classified %v", brace.Highlight)
	}
}

func TestHighlightItemDeclarations(t *testing.T) {
	tests := []struct {
		src    string
		needle string
		tag    hl.Tag
	}{
		{"struct Point { x: i32 }", "Point", hl.TagStruct},
		{"enum Shape { Circle }", "Shape", hl.TagEnum},
		{"union Bits { a: u32 }", "Bits", hl.TagUnion},
		{"trait Draw {}", "Draw", hl.TagTrait},
		{"mod geometry {}", "geometry", hl.TagModule},
		{"type Alias = u8;", "Alias", hl.TagTypeAlias},
		{"const LIMIT: u32 = 8;", "LIMIT", hl.TagVariable},
		{"static GLOBAL: u8 = 0;", "GLOBAL", hl.TagVariable},
		{"macro_rules! emit { () => {}; }", "emit", hl.TagMacro},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			_, ranges := highlightSource(t, tt.src, hl.Config{})
			r := expectTag(t, ranges, tt.src, tt.needle, 0, tt.tag)
			if !r.Highlight.Mods.Has(hl.ModDeclaration) {
				t.Errorf("%q missing declaration modifier: %s", tt.needle, r.Highlight)
			}
		})
	}
}

func TestHighlightConstStaticModifiers(t *testing.T) {
	src := "const LIMIT: u32 = 8;"
	_, ranges := highlightSource(t, src, hl.Config{})
	r := expectTag(t, ranges, src, "LIMIT", 0, hl.TagVariable)
	if !r.Highlight.Mods.Has(hl.ModConstant) || !r.Highlight.Mods.Has(hl.ModStatic) {
		t.Errorf("const declaration modifiers wrong: %s", r.Highlight)
	}
}

func TestHighlightFormatSpecifierInMacroArg(t *testing.T) {
	src := `fn main() { println!("a {x} b"); }`
	_, ranges := highlightSource(t, src, hl.Config{})

	specStart := offsetOf(t, src, "{x}", 0)
	spec, ok := rangeAt(ranges, specStart, "{x}")
	if !ok {
		t.Fatalf("no range over the format specifier")
	}
	if spec.Highlight.Tag != hl.TagFormatSpec {
		t.Errorf("specifier classified %s, want %s", spec.Highlight, hl.H(hl.TagFormatSpec))
	}

	// The surrounding literal text stays a string.
	before, ok := rangeCovering(ranges, offsetOf(t, src, `"a `, 0))
	if !ok || before.Highlight.Tag != hl.TagString {
		t.Errorf("string text before specifier: got %v", before.Highlight)
	}

	expectTag(t, ranges, src, "!", 0, hl.TagPunctMacroBang)
}

func TestHighlightNonFormatMacroHasNoSpecifiers(t *testing.T) {
	src := `fn main() { custom!("a {x} b"); }`
	_, ranges := highlightSource(t, src, hl.Config{})

	specStart := offsetOf(t, src, "{x}", 0)
	r, ok := rangeCovering(ranges, specStart)
	if !ok {
		t.Fatalf("string literal not highlighted")
	}
	if r.Highlight.Tag != hl.TagString {
		t.Errorf("literal classified %s, want %s", r.Highlight, hl.H(hl.TagString))
	}
}

func TestHighlightStringEscapes(t *testing.T) {
	src := `fn main() { let s = "a\nb\q"; }`
	_, ranges := highlightSource(t, src, hl.Config{})

	escStart := offsetOf(t, src, `\n`, 0)
	esc, ok := rangeAt(ranges, escStart, `\n`)
	if !ok {
		t.Fatalf("no range over the escape")
	}
	if esc.Highlight.Tag != hl.TagEscape {
		t.Errorf("escape classified %s, want %s", esc.Highlight, hl.H(hl.TagEscape))
	}

	// The malformed \q stays plain string text.
	badStart := offsetOf(t, src, `\q`, 0)
	bad, ok := rangeCovering(ranges, badStart)
	if !ok || bad.Highlight.Tag != hl.TagString {
		t.Errorf("malformed escape should stay string text: %v", bad.Highlight)
	}
}

func TestHighlightRawStringHasNoEscapes(t *testing.T) {
	src := `fn main() { let s = r"a\nb"; }`
	_, ranges := highlightSource(t, src, hl.Config{})

	escStart := offsetOf(t, src, `\n`, 0)
	r, ok := rangeCovering(ranges, escStart)
	if !ok {
		t.Fatalf("raw string not highlighted")
	}
	if r.Highlight.Tag != hl.TagString {
		t.Errorf("raw string contents classified %s, want %s", r.Highlight, hl.H(hl.TagString))
	}
}

func TestHighlightAttributeModifierUnion(t *testing.T) {
	src := "#[derive(Debug)]\nstruct S;"
	_, ranges := highlightSource(t, src, hl.Config{})

	pound, ok := rangeCovering(ranges, offsetOf(t, src, "#", 0))
	if !ok || pound.Highlight.Tag != hl.TagPunctBracket {
		t.Fatalf("attribute opener classified %v", pound.Highlight)
	}
	if !pound.Highlight.Mods.Has(hl.ModAttribute) {
		t.Errorf("token inside attribute missing attribute modifier: %s", pound.Highlight)
	}
	closer, ok := rangeCovering(ranges, offsetOf(t, src, "]", 0))
	if !ok || !closer.Highlight.Mods.Has(hl.ModAttribute) {
		t.Errorf("attribute closer missing attribute modifier: %v", closer.Highlight)
	}

	// Outside the attribute the modifier must not stick.
	kw := expectTag(t, ranges, src, "struct", 0, hl.TagKeyword)
	if kw.Highlight.Mods.Has(hl.ModAttribute) {
		t.Errorf("attribute modifier leaked past the attribute: %s", kw.Highlight)
	}
}

func TestHighlightMacroDefinitionBody(t *testing.T) {
	src := "macro_rules! emit { ($x:expr) => { $x + 1 }; }"
	_, ranges := highlightSource(t, src, hl.Config{})

	expectTag(t, ranges, src, "emit", 0, hl.TagMacro)

	// Both '$' sigils are definition punctuation.
	expectTag(t, ranges, src, "$", 0, hl.TagPunct)
	expectTag(t, ranges, src, "$", 1, hl.TagPunct)

	// Metavariables are suppressed entirely, at the binder and at the use.
	expectNoRange(t, ranges, src, "x", 0)
	expectNoRange(t, ranges, src, "x", 1)

	expectTag(t, ranges, src, "+", 0, hl.TagOpArith)
	expectTag(t, ranges, src, "1", 0, hl.TagNumber)
}

func TestHighlightMetavariableSpellingKeyword(t *testing.T) {
	// A metavariable named like a keyword must not classify as one.
	src := "macro_rules! m { ($crate:expr) => {}; }"
	_, ranges := highlightSource(t, src, hl.Config{})
	expectNoRange(t, ranges, src, "crate", 0)
}

func TestHighlightSyntacticNameRefGuesses(t *testing.T) {
	src := "fn t() { foo(); bar.baz(); bar.qux; }"
	_, ranges := highlightSource(t, src, hl.Config{SyntacticNameRefs: true})

	expectTag(t, ranges, src, "foo", 0, hl.TagFn)
	expectTag(t, ranges, src, "baz", 0, hl.TagMethod)
	expectTag(t, ranges, src, "qux", 0, hl.TagField)
}

func TestHighlightUnlinkedSuppression(t *testing.T) {
	src := "fn t() { mystery; }"

	// The purely syntactic model reports every file unlinked, so without
	// shape guesses the unresolvable reference stays unhighlighted.
	_, ranges := highlightSource(t, src, hl.Config{SyntacticNameRefs: false})
	expectNoRange(t, ranges, src, "mystery", 0)
}

func TestHighlightLinkedUnresolvedReference(t *testing.T) {
	src := "fn t() { mystery; }"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	model := &linkedModel{SyntacticModel: sem.NewSyntacticModel(fs, nil)}

	ranges, err := hl.Run(model, id, nil, hl.Config{SyntacticNameRefs: false})
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	r := expectTag(t, ranges, src, "mystery", 0, hl.TagUnresolved)
	if r.BindingHash != 0 {
		t.Errorf("unresolved reference carries a binding hash: %#x", r.BindingHash)
	}
}

// linkedModel reports every file as linked, so unresolved references surface.
type linkedModel struct {
	*sem.SyntacticModel
}

func (m *linkedModel) IsFileLinked(source.FileID) bool { return true }

func TestHighlightShadowedBindingHashes(t *testing.T) {
	src := "fn f() { let x = 1; let x = 2; x; }"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))

	first := offsetOf(t, src, "x", 0)
	second := offsetOf(t, src, "x", 1)
	use := offsetOf(t, src, "x", 2)
	model := &localsModel{
		SyntacticModel: sem.NewSyntacticModel(fs, nil),
		locals: map[uint32]sem.Definition{
			first:  {Kind: sem.DefLocal, Name: "x", Local: 1},
			second: {Kind: sem.DefLocal, Name: "x", Local: 2},
			use:    {Kind: sem.DefLocal, Name: "x", Local: 2},
		},
	}

	ranges, err := hl.Run(model, id, nil, hl.Config{})
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}

	declA, ok := rangeAt(ranges, first, "x")
	if !ok {
		t.Fatalf("no range for first declaration")
	}
	declB, ok := rangeAt(ranges, second, "x")
	if !ok {
		t.Fatalf("no range for shadowing declaration")
	}
	useR, ok := rangeAt(ranges, use, "x")
	if !ok {
		t.Fatalf("no range for use site")
	}

	if declA.BindingHash == 0 || declB.BindingHash == 0 || useR.BindingHash == 0 {
		t.Fatalf("local bindings must carry hashes: %#x %#x %#x",
			declA.BindingHash, declB.BindingHash, useR.BindingHash)
	}
	if declA.BindingHash == declB.BindingHash {
		t.Errorf("shadowing declaration shares the hash of the shadowed one")
	}
	if useR.BindingHash != declB.BindingHash {
		t.Errorf("use site hash %#x does not match its declaration %#x",
			useR.BindingHash, declB.BindingHash)
	}
	if declA.Highlight.Tag != hl.TagVariable || !declA.Highlight.Mods.Has(hl.ModDeclaration) {
		t.Errorf("local declaration classified %s", declA.Highlight)
	}
	if useR.Highlight.Mods.Has(hl.ModDeclaration) {
		t.Errorf("use site carries the declaration modifier: %s", useR.Highlight)
	}
}

// localsModel resolves name-like nodes by the byte offset of their identifier
// token, simulating local-variable resolution.
type localsModel struct {
	*sem.SyntacticModel
	locals map[uint32]sem.Definition
}

func (m *localsModel) Resolve(ref sem.NodeRef) (sem.Definition, bool) {
	for _, child := range ref.Tree.Children(ref.ID) {
		if !child.IsToken() {
			continue
		}
		tok := ref.Tree.Token(child.Token)
		if tok.IsTrivia() {
			continue
		}
		def, ok := m.locals[tok.Span.Start]
		return def, ok
	}
	return sem.Definition{}, false
}

func TestHighlightDocCommentInjection(t *testing.T) {
	src := "/// Does [`Widget`] things.\nfn f() {}"
	_, ranges := highlightSource(t, src, hl.Config{})

	// The doc text around the link keeps the documentation modifier.
	lead, ok := rangeCovering(ranges, offsetOf(t, src, "Does", 0))
	if !ok {
		t.Fatalf("doc comment not highlighted")
	}
	if lead.Highlight.Tag != hl.TagComment || !lead.Highlight.Mods.Has(hl.ModDocumentation) {
		t.Errorf("doc comment classified %s", lead.Highlight)
	}

	// The backticked path is marked as an intra-doc link.
	link, ok := rangeAt(ranges, offsetOf(t, src, "Widget", 0), "Widget")
	if !ok {
		t.Fatalf("intra-doc link not marked")
	}
	if !link.Highlight.Mods.Has(hl.ModIntraDocLink) {
		t.Errorf("link missing intra-doc-link modifier: %s", link.Highlight)
	}
}

func TestHighlightPlainCommentStaysPlain(t *testing.T) {
	src := "// just a note\nfn f() {}"
	_, ranges := highlightSource(t, src, hl.Config{})

	r, ok := rangeCovering(ranges, offsetOf(t, src, "note", 0))
	if !ok {
		t.Fatalf("comment not highlighted")
	}
	if r.Highlight.Tag != hl.TagComment {
		t.Errorf("comment classified %s", r.Highlight)
	}
	if r.Highlight.Mods.Has(hl.ModDocumentation) {
		t.Errorf("plain comment gained the documentation modifier: %s", r.Highlight)
	}
}

func TestHighlightDocCodeBlock(t *testing.T) {
	src := "/// ```\n/// let x = 1;\n/// ```\nfn f() {}"
	_, ranges := highlightSource(t, src, hl.Config{})

	kw, ok := rangeAt(ranges, offsetOf(t, src, "let", 0), "let")
	if !ok {
		t.Fatalf("code inside the doc fence not highlighted")
	}
	if kw.Highlight.Tag != hl.TagKeyword {
		t.Errorf("doc code keyword classified %s", kw.Highlight)
	}
	if !kw.Highlight.Mods.Has(hl.ModInjected) || !kw.Highlight.Mods.Has(hl.ModDocumentation) {
		t.Errorf("doc code missing injection modifiers: %s", kw.Highlight)
	}
}

func TestHighlightFixtureInjection(t *testing.T) {
	src := "fn t() { let f = r#\"\n//- /main.rs\nfn main() {}\n\"#; }"
	_, ranges := highlightSource(t, src, hl.Config{})

	inner, ok := rangeAt(ranges, offsetOf(t, src, "fn", 1), "fn")
	if !ok {
		t.Fatalf("fixture body not highlighted")
	}
	if inner.Highlight.Tag != hl.TagKeyword || !inner.Highlight.Mods.Has(hl.ModInjected) {
		t.Errorf("fixture keyword classified %s", inner.Highlight)
	}

	// The first "main" in the source is part of the header path.
	name, ok := rangeAt(ranges, offsetOf(t, src, "main", 1), "main")
	if !ok {
		t.Fatalf("fixture function name not highlighted")
	}
	if name.Highlight.Tag != hl.TagFn || !name.Highlight.Mods.Has(hl.ModInjected) {
		t.Errorf("fixture function name classified %s", name.Highlight)
	}

	header, ok := rangeCovering(ranges, offsetOf(t, src, "//- /main.rs", 0))
	if !ok || header.Highlight.Tag != hl.TagComment || !header.Highlight.Mods.Has(hl.ModInjected) {
		t.Errorf("fixture header should highlight as an injected comment: %v", header.Highlight)
	}
}

func TestHighlightPlainRawStringIsNotFixture(t *testing.T) {
	src := "fn t() { let f = r#\"no header here\"#; }"
	_, ranges := highlightSource(t, src, hl.Config{})

	r, ok := rangeCovering(ranges, offsetOf(t, src, "header", 0))
	if !ok || r.Highlight.Tag != hl.TagString {
		t.Errorf("ordinary raw string classified %v", r.Highlight)
	}
}

func TestHighlightWindow(t *testing.T) {
	src := "fn alpha() {}\nfn beta() {}"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	model := sem.NewSyntacticModel(fs, nil)

	window := source.Span{File: id, Start: offsetOf(t, src, "fn", 1), End: uint32(len(src))}
	ranges, err := hl.Run(model, id, &window, hl.Config{})
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if len(ranges) == 0 {
		t.Fatalf("windowed highlight produced nothing")
	}
	for _, r := range ranges {
		if r.Span.Start < window.Start || r.Span.End > window.End {
			t.Errorf("range %v escapes the window %v", r.Span, window)
		}
	}
	if _, ok := rangeAt(ranges, offsetOf(t, src, "alpha", 0), "alpha"); ok {
		t.Errorf("range before the window was produced")
	}
	if _, ok := rangeAt(ranges, offsetOf(t, src, "beta", 0), "beta"); !ok {
		t.Errorf("range inside the window is missing")
	}
}

func TestHighlightWindowWrongFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("fn f() {}"))
	other := fs.AddVirtual("other.rs", []byte("fn g() {}"))
	model := sem.NewSyntacticModel(fs, nil)

	window := source.Span{File: other, Start: 0, End: 5}
	if _, err := hl.Run(model, id, &window, hl.Config{}); err == nil {
		t.Fatalf("window for a different file must be rejected")
	}
}

func TestHighlightNilModel(t *testing.T) {
	if _, err := hl.Run(nil, 0, nil, hl.Config{}); err == nil {
		t.Fatalf("nil model must be rejected")
	}
}

func TestHighlightOutputInvariant(t *testing.T) {
	src := "/// Doc with [`Link`].\nfn main() { println!(\"v = {x}\\n\"); let s = \"a\\tb\"; }"
	_, ranges := highlightSource(t, src, hl.Config{SyntacticNameRefs: true})

	for i := 1; i < len(ranges); i++ {
		if ranges[i-1].Span.End > ranges[i].Span.Start {
			t.Errorf("overlapping output: %v then %v", ranges[i-1].Span, ranges[i].Span)
		}
	}
	for _, r := range ranges {
		if r.Span.Empty() {
			t.Errorf("empty span in output: %v", r.Span)
		}
	}
}

// nestedCallModel serves a hand-built tree with an inconsistent nesting of
// macro-call nodes to drive the traversal's recovery path.
type nestedCallModel struct {
	*sem.SyntacticModel
	tree *syntax.Tree
}

func (m *nestedCallModel) Parse(source.FileID) (*syntax.Tree, error) { return m.tree, nil }

func TestHighlightRecoversFromNestedMacroCall(t *testing.T) {
	src := "foo!bar!"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))

	b := syntax.NewBuilder(id)
	b.Start(syntax.NodeSourceFile)
	b.Start(syntax.NodeMacroCall)
	b.Token(token.Token{Kind: token.Ident, Text: "foo", Span: source.Span{File: id, Start: 0, End: 3}})
	b.Token(token.Token{Kind: token.Bang, Text: "!", Span: source.Span{File: id, Start: 3, End: 4}})
	b.Start(syntax.NodeMacroCall)
	b.Token(token.Token{Kind: token.Ident, Text: "bar", Span: source.Span{File: id, Start: 4, End: 7}})
	b.Token(token.Token{Kind: token.Bang, Text: "!", Span: source.Span{File: id, Start: 7, End: 8}})
	b.Finish()
	b.Finish()
	tree := b.Build()

	bag := diag.NewBag(8)
	model := &nestedCallModel{SyntacticModel: sem.NewSyntacticModel(fs, nil), tree: tree}
	ranges, err := hl.Run(model, id, nil, hl.Config{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("recoverable violation aborted highlighting: %v", err)
	}
	if len(ranges) == 0 {
		t.Fatalf("no output despite recovery")
	}

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.HlNestedMacroCall {
			found = true
			if d.Severity != diag.SevWarning {
				t.Errorf("violation severity %v, want warning", d.Severity)
			}
		}
	}
	if !found {
		t.Errorf("nested macro-call violation not reported; got %d diagnostics", bag.Len())
	}
}

// attrItemModel marks whole item kinds as attribute-macro calls and records
// every token offered for macro descent.
type attrItemModel struct {
	*sem.SyntacticModel
	attrKinds map[syntax.NodeKind]bool
	descended map[string]bool
}

func (m *attrItemModel) IsAttrMacroCall(ref sem.NodeRef) bool {
	return m.attrKinds[ref.Tree.Kind(ref.ID)]
}

func (m *attrItemModel) DescendIntoMacro(ref sem.TokenRef) sem.TokenRef {
	m.descended[ref.Tree.Token(ref.ID).Text] = true
	return ref
}

func TestHighlightNestedAttrMacroKeepsOuterContext(t *testing.T) {
	src := "mod outer { fn inner() {} trailing; }"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	model := &attrItemModel{
		SyntacticModel: sem.NewSyntacticModel(fs, nil),
		attrKinds:      map[syntax.NodeKind]bool{syntax.NodeModule: true, syntax.NodeFn: true},
		descended:      map[string]bool{},
	}

	bag := diag.NewBag(16)
	if _, err := hl.Run(model, id, nil, hl.Config{Reporter: diag.BagReporter{Bag: bag}}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	violations := 0
	for _, d := range bag.Items() {
		if d.Code == diag.HlAttrContextMismatch {
			violations++
			if d.Severity != diag.SevWarning {
				t.Errorf("violation severity %v, want warning", d.Severity)
			}
		}
	}
	if violations != 1 {
		t.Errorf("got %d attribute context violations, want 1", violations)
	}

	// The module's context must survive the inner item: tokens after it
	// still go through macro descent.
	if !model.descended["trailing"] {
		t.Errorf("token after the inner item was not offered for macro descent")
	}
}

func TestHighlightSequentialAttrMacroItems(t *testing.T) {
	src := "fn a() {} fn b() {}"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	model := &attrItemModel{
		SyntacticModel: sem.NewSyntacticModel(fs, nil),
		attrKinds:      map[syntax.NodeKind]bool{syntax.NodeFn: true},
		descended:      map[string]bool{},
	}

	bag := diag.NewBag(16)
	if _, err := hl.Run(model, id, nil, hl.Config{Reporter: diag.BagReporter{Bag: bag}}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, d := range bag.Items() {
		if d.Code == diag.HlAttrContextMismatch {
			t.Errorf("sibling items reported a context violation: %s", d.Message)
		}
	}
	if !model.descended["a"] || !model.descended["b"] {
		t.Errorf("both sibling items must carry the context: %v", model.descended)
	}
}

// expansionModel redirects chosen tokens into a hand-built expansion tree and
// resolves that tree's name-like nodes, simulating macro descent.
type expansionModel struct {
	*sem.SyntacticModel
	exp    *syntax.Tree
	mapped map[string]syntax.TokenID
	defs   map[syntax.NodeID]sem.Definition
}

func (m *expansionModel) DescendIntoMacro(ref sem.TokenRef) sem.TokenRef {
	if id, ok := m.mapped[ref.Tree.Token(ref.ID).Text]; ok {
		return sem.TokenRef{Tree: m.exp, ID: id}
	}
	return ref
}

func (m *expansionModel) Resolve(ref sem.NodeRef) (sem.Definition, bool) {
	if ref.Tree == m.exp {
		def, ok := m.defs[ref.ID]
		return def, ok
	}
	return sem.Definition{}, false
}

func tokenByText(t *testing.T, tree *syntax.Tree, text string) syntax.TokenID {
	t.Helper()
	found := syntax.NoToken
	tree.Walk(func(ev syntax.WalkEvent) bool {
		if ev.Enter && ev.Elem.IsToken() && tree.Token(ev.Elem.Token).Text == text {
			found = ev.Elem.Token
			return false
		}
		return true
	})
	if !found.IsValid() {
		t.Fatalf("token %q not in tree", text)
	}
	return found
}

func TestHighlightMacroDescentParentPromotion(t *testing.T) {
	src := "fn f() { m!(callee + 0 + 'a); }"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	expID := fs.AddVirtual("expansion.rs", []byte("callee 0 'a"))

	// In the expansion each token sits one level below its name-like
	// node, so classification must step past the immediate parent.
	b := syntax.NewBuilder(expID)
	b.Start(syntax.NodeSourceFile)
	b.Start(syntax.NodeNameRef)
	b.Start(syntax.NodePathSegment)
	b.Token(token.Token{Kind: token.Ident, Text: "callee", Span: source.Span{File: expID, Start: 0, End: 6}})
	b.Finish()
	b.Finish()
	b.Start(syntax.NodeNameRef)
	b.Start(syntax.NodePathSegment)
	b.Token(token.Token{Kind: token.IntNumber, Text: "0", Span: source.Span{File: expID, Start: 7, End: 8}})
	b.Finish()
	b.Finish()
	b.Start(syntax.NodeLifetime)
	b.Start(syntax.NodeTokenTree)
	b.Token(token.Token{Kind: token.LifetimeIdent, Text: "'a", Span: source.Span{File: expID, Start: 9, End: 11}})
	b.Finish()
	b.Finish()
	exp := b.Build()

	calleeTok := tokenByText(t, exp, "callee")
	fieldTok := tokenByText(t, exp, "0")
	lifetimeTok := tokenByText(t, exp, "'a")
	nameRefOf := func(tok syntax.TokenID) syntax.NodeID {
		return exp.Parent(exp.TokenParent(tok))
	}

	model := &expansionModel{
		SyntacticModel: sem.NewSyntacticModel(fs, nil),
		exp:            exp,
		mapped: map[string]syntax.TokenID{
			"callee": calleeTok,
			"0":      fieldTok,
			"'a":     lifetimeTok,
		},
		defs: map[syntax.NodeID]sem.Definition{
			nameRefOf(calleeTok):   {Kind: sem.DefMethod},
			nameRefOf(fieldTok):    {Kind: sem.DefField},
			nameRefOf(lifetimeTok): {Kind: sem.DefLabel},
		},
	}

	ranges, err := hl.Run(model, id, nil, hl.Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectTag(t, ranges, src, "callee", 0, hl.TagMethod)
	expectTag(t, ranges, src, "0", 0, hl.TagField)
	expectTag(t, ranges, src, "'a", 0, hl.TagLabel)
}
