package syntax

import (
	"shine/internal/source"
	"shine/internal/token"
)

type (
	// NodeID addresses a node in a Tree's arena. Zero means "no node".
	NodeID uint32
	// TokenID addresses a token in a Tree's arena. Zero means "no token".
	TokenID uint32
)

const (
	NoNode  NodeID  = 0
	NoToken TokenID = 0
)

func (id NodeID) IsValid() bool  { return id != NoNode }
func (id TokenID) IsValid() bool { return id != NoToken }

// Elem refers to either a node or a token child. Exactly one field is set in
// a valid element; the zero Elem is invalid.
type Elem struct {
	Node  NodeID
	Token TokenID
}

func NodeElem(id NodeID) Elem   { return Elem{Node: id} }
func TokenElem(id TokenID) Elem { return Elem{Token: id} }

func (e Elem) IsNode() bool  { return e.Node.IsValid() }
func (e Elem) IsToken() bool { return e.Token.IsValid() }
func (e Elem) IsValid() bool { return e.IsNode() || e.IsToken() }

// Node is one arena slot. Parent and children are index-based back-references;
// the tree owns all storage.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	Parent   NodeID
	children []Elem
}

// Tree is an index-addressed syntax tree for a single file. Nodes and tokens
// live in 1-based arenas so the zero ID stays an explicit "absent" marker.
type Tree struct {
	file        source.FileID
	nodes       []Node
	tokens      []token.Token
	tokenParent []NodeID
	root        NodeID
}

// File returns the file this tree was parsed from.
func (t *Tree) File() source.FileID { return t.file }

// Root returns the root node ID.
func (t *Tree) Root() NodeID { return t.root }

// NumNodes returns the number of allocated nodes.
func (t *Tree) NumNodes() int { return len(t.nodes) - 1 }

// NumTokens returns the number of allocated tokens.
func (t *Tree) NumTokens() int { return len(t.tokens) - 1 }

func (t *Tree) node(id NodeID) *Node {
	if !id.IsValid() {
		return nil
	}
	return &t.nodes[id]
}

// Kind returns the node's kind, or NodeInvalid for the zero ID.
func (t *Tree) Kind(id NodeID) NodeKind {
	n := t.node(id)
	if n == nil {
		return NodeInvalid
	}
	return n.Kind
}

// Parent returns the node's parent, or NoNode at the root.
func (t *Tree) Parent(id NodeID) NodeID {
	n := t.node(id)
	if n == nil {
		return NoNode
	}
	return n.Parent
}

// Children returns the node's child elements in source order. The returned
// slice is owned by the tree and must not be modified.
func (t *Tree) Children(id NodeID) []Elem {
	n := t.node(id)
	if n == nil {
		return nil
	}
	return n.children
}

// Token returns the token for id. The zero ID yields a zero token.
func (t *Tree) Token(id TokenID) token.Token {
	if !id.IsValid() {
		return token.Token{}
	}
	return t.tokens[id]
}

// TokenParent returns the node that directly contains the token.
func (t *Tree) TokenParent(id TokenID) NodeID {
	if !id.IsValid() {
		return NoNode
	}
	return t.tokenParent[id]
}

// NodeSpan returns the node's source span.
func (t *Tree) NodeSpan(id NodeID) source.Span {
	n := t.node(id)
	if n == nil {
		return source.Span{File: t.file}
	}
	return n.Span
}

// ElemSpan returns the span of a node or token element.
func (t *Tree) ElemSpan(e Elem) source.Span {
	if e.IsNode() {
		return t.NodeSpan(e.Node)
	}
	return t.Token(e.Token).Span
}

// NameLikeParent checks whether the token's immediate parent is a name-like
// node and returns it.
func (t *Tree) NameLikeParent(id TokenID) (NodeID, bool) {
	parent := t.TokenParent(id)
	if parent.IsValid() && t.Kind(parent).IsNameLike() {
		return parent, true
	}
	return NoNode, false
}

// FirstToken returns the first token under the node, in source order.
func (t *Tree) FirstToken(id NodeID) (token.Token, bool) {
	for _, child := range t.Children(id) {
		if child.IsToken() {
			return t.Token(child.Token), true
		}
		if tok, ok := t.FirstToken(child.Node); ok {
			return tok, true
		}
	}
	return token.Token{}, false
}

// NameText returns the text of the single identifier token under a name-like
// node, or "" when the node has no identifier.
func (t *Tree) NameText(id NodeID) string {
	for _, child := range t.Children(id) {
		if !child.IsToken() {
			continue
		}
		tok := t.Token(child.Token)
		switch tok.Kind {
		case token.Ident, token.LifetimeIdent, token.KwSelfValue, token.KwSelfType,
			token.KwCrate, token.KwSuper, token.IntNumber:
			return tok.Text
		}
	}
	return ""
}
