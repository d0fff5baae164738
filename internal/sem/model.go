// Package sem defines the read-only semantic model the highlighting engine
// queries: parsing, name resolution, macro expansion, and compilation-unit
// topology. The engine never mutates a model, so one model snapshot may be
// shared by concurrent highlighting calls for different files.
package sem

import (
	"shine/internal/source"
	"shine/internal/syntax"
)

// TokenRef addresses a token inside a specific tree. Macro descent may hand
// back a token from a different (expansion) tree than the one passed in.
type TokenRef struct {
	Tree *syntax.Tree
	ID   syntax.TokenID
}

func (r TokenRef) IsValid() bool { return r.Tree != nil && r.ID.IsValid() }

// NodeRef addresses a node inside a specific tree.
type NodeRef struct {
	Tree *syntax.Tree
	ID   syntax.NodeID
}

func (r NodeRef) IsValid() bool { return r.Tree != nil && r.ID.IsValid() }

// Model is the query surface the traversal engine requires. Implementations
// must be safe for concurrent read-only use.
type Model interface {
	// Parse returns the syntax tree for a file.
	Parse(id source.FileID) (*syntax.Tree, error)

	// IsFileLinked reports whether the file is reachable from any known
	// compilation unit. Unresolved-reference reporting is suppressed for
	// unlinked files.
	IsFileLinked(id source.FileID) bool

	// ContainingUnit returns the compilation unit owning the tree's file.
	ContainingUnit(tree *syntax.Tree) (UnitID, bool)

	// UnitName returns the name of a compilation unit, or "".
	UnitName(unit UnitID) string

	// DependencyUnit resolves a dependency of from by name.
	DependencyUnit(from UnitID, name string) (UnitID, bool)

	// IsAttrMacroCall reports whether the item is an attribute-macro
	// invocation that rewrites the item's tokens.
	IsAttrMacroCall(item NodeRef) bool

	// IsDeriveAnnotated reports whether the type definition carries derive
	// macros.
	IsDeriveAnnotated(typeDef NodeRef) bool

	// DescendIntoMacro maps a token inside a macro invocation's input to
	// its counterpart in the expansion. Identity when not applicable.
	DescendIntoMacro(tok TokenRef) TokenRef

	// Resolve resolves a name-like node to its definition.
	Resolve(nameLike NodeRef) (Definition, bool)

	// IsFormatStringArg reports whether the (possibly expanded) string
	// token is positioned as an argument to a format-style macro.
	IsFormatStringArg(tok TokenRef) bool

	// AddFixtureFile registers a virtual document extracted from a string
	// literal body so it can be parsed and highlighted recursively.
	AddFixtureFile(body []byte) (source.FileID, bool)
}
