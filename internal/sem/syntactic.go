package sem

import (
	"fmt"
	"sync"

	"shine/internal/diag"
	"shine/internal/parser"
	"shine/internal/source"
	"shine/internal/syntax"
)

// formatMacros are the well-known macros whose first string argument is a
// format string.
var formatMacros = map[string]bool{
	"format":      true,
	"format_args": true,
	"print":       true,
	"println":     true,
	"eprint":      true,
	"eprintln":    true,
	"write":       true,
	"writeln":     true,
	"panic":       true,
	"assert":      true,
	"todo":        true,
	"unreachable": true,
}

// SyntacticModel is a Model backed by nothing but the parser. It resolves no
// names, expands no macros, and links no files; what it does answer, it
// answers from tree shape alone. The standalone tool runs on it.
type SyntacticModel struct {
	fs       *source.FileSet
	reporter diag.Reporter

	mu       sync.Mutex
	trees    map[source.FileID]*syntax.Tree
	fixtures int
}

// NewSyntacticModel creates a model over the file set. The reporter receives
// lex and parse diagnostics from on-demand parses; nil drops them.
func NewSyntacticModel(fs *source.FileSet, reporter diag.Reporter) *SyntacticModel {
	return &SyntacticModel{
		fs:       fs,
		reporter: reporter,
		trees:    make(map[source.FileID]*syntax.Tree),
	}
}

// Parse returns the cached tree for the file, parsing on first use.
func (m *SyntacticModel) Parse(id source.FileID) (*syntax.Tree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tree, ok := m.trees[id]; ok {
		return tree, nil
	}
	if int(id) >= m.fs.Len() {
		return nil, fmt.Errorf("unknown file %d", id)
	}
	tree := parser.ParseFile(m.fs.Get(id), m.reporter)
	m.trees[id] = tree
	return tree, nil
}

// IsFileLinked always reports false: without resolution every reference would
// be unresolved, and flagging them all would be noise, not signal.
func (m *SyntacticModel) IsFileLinked(source.FileID) bool { return false }

// ContainingUnit reports no unit; the model has no crate graph.
func (m *SyntacticModel) ContainingUnit(*syntax.Tree) (UnitID, bool) { return NoUnit, false }

// UnitName returns "" for every unit.
func (m *SyntacticModel) UnitName(UnitID) string { return "" }

// DependencyUnit resolves nothing.
func (m *SyntacticModel) DependencyUnit(UnitID, string) (UnitID, bool) { return NoUnit, false }

// IsAttrMacroCall always reports false: telling an attribute macro from an
// inert attribute takes name resolution.
func (m *SyntacticModel) IsAttrMacroCall(NodeRef) bool { return false }

// IsDeriveAnnotated answers from shape: a type definition carrying a
// '#[derive(...)]' attribute.
func (m *SyntacticModel) IsDeriveAnnotated(typeDef NodeRef) bool {
	tree := typeDef.Tree
	if tree == nil || !tree.Kind(typeDef.ID).IsTypeDef() {
		return false
	}
	for _, child := range tree.Children(typeDef.ID) {
		if !child.IsNode() || tree.Kind(child.Node) != syntax.NodeAttr {
			continue
		}
		if attrPathText(tree, child.Node) == "derive" {
			return true
		}
	}
	return false
}

// attrPathText returns the first name inside an attribute's brackets.
func attrPathText(tree *syntax.Tree, attr syntax.NodeID) string {
	for _, child := range tree.Children(attr) {
		if !child.IsNode() || tree.Kind(child.Node) != syntax.NodeTokenTree {
			continue
		}
		for _, inner := range tree.Children(child.Node) {
			if inner.IsNode() && tree.Kind(inner.Node) == syntax.NodeNameRef {
				return tree.NameText(inner.Node)
			}
		}
	}
	return ""
}

// DescendIntoMacro is the identity: no expansion happens here.
func (m *SyntacticModel) DescendIntoMacro(tok TokenRef) TokenRef { return tok }

// Resolve fails for every name. Callers fall back to syntactic
// classification.
func (m *SyntacticModel) Resolve(NodeRef) (Definition, bool) { return Definition{}, false }

// IsFormatStringArg walks to the enclosing macro call and checks its name
// against the well-known format macros.
func (m *SyntacticModel) IsFormatStringArg(tok TokenRef) bool {
	tree := tok.Tree
	if tree == nil {
		return false
	}
	node := tree.TokenParent(tok.ID)
	for node.IsValid() && tree.Kind(node) != syntax.NodeMacroCall {
		node = tree.Parent(node)
	}
	if !node.IsValid() {
		return false
	}
	return formatMacros[macroCallName(tree, node)]
}

// macroCallName returns the last path segment of a macro call's path.
func macroCallName(tree *syntax.Tree, call syntax.NodeID) string {
	name := ""
	for _, child := range tree.Children(call) {
		if !child.IsNode() {
			continue
		}
		switch tree.Kind(child.Node) {
		case syntax.NodeNameRef:
			name = tree.NameText(child.Node)
		case syntax.NodePath:
			for _, seg := range tree.Children(child.Node) {
				if seg.IsNode() && tree.Kind(seg.Node) == syntax.NodePathSegment {
					for _, ref := range tree.Children(seg.Node) {
						if ref.IsNode() && tree.Kind(ref.Node) == syntax.NodeNameRef {
							name = tree.NameText(ref.Node)
						}
					}
				}
			}
		}
	}
	return name
}

// AddFixtureFile registers the body as a virtual file in the shared set.
func (m *SyntacticModel) AddFixtureFile(body []byte) (source.FileID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixtures++
	name := fmt.Sprintf("fixture://%d", m.fixtures)
	return m.fs.AddVirtual(name, body), true
}
