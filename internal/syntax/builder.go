package syntax

import (
	"fmt"

	"shine/internal/source"
	"shine/internal/token"
)

// Builder constructs a Tree incrementally. Start opens a node, Token appends
// a token to the innermost open node, Finish closes it. Node spans are the
// cover of their children, so callers never set spans by hand.
type Builder struct {
	tree  *Tree
	stack []NodeID
}

// NewBuilder creates a builder for a tree over the given file.
func NewBuilder(file source.FileID) *Builder {
	t := &Tree{
		file:        file,
		nodes:       make([]Node, 1, 64), // slot 0 reserved for NoNode
		tokens:      make([]token.Token, 1, 256),
		tokenParent: make([]NodeID, 1, 256),
	}
	return &Builder{tree: t, stack: make([]NodeID, 0, 16)}
}

// Start opens a new node of the given kind under the innermost open node and
// returns its ID.
func (b *Builder) Start(kind NodeKind) NodeID {
	id := NodeID(len(b.tree.nodes)) //nolint:gosec // arena size fits uint32
	node := Node{Kind: kind, Span: source.Span{File: b.tree.file}}
	if len(b.stack) > 0 {
		parent := b.stack[len(b.stack)-1]
		node.Parent = parent
		b.tree.nodes[parent].children = append(b.tree.nodes[parent].children, NodeElem(id))
	} else if b.tree.root.IsValid() {
		panic(fmt.Errorf("second root node of kind %s", kind))
	} else {
		b.tree.root = id
	}
	b.tree.nodes = append(b.tree.nodes, node)
	b.stack = append(b.stack, id)
	return id
}

// Token appends a token to the innermost open node and returns its ID.
func (b *Builder) Token(tok token.Token) TokenID {
	if len(b.stack) == 0 {
		panic(fmt.Errorf("token %q outside any node", tok.Text))
	}
	id := TokenID(len(b.tree.tokens)) //nolint:gosec // arena size fits uint32
	parent := b.stack[len(b.stack)-1]
	b.tree.tokens = append(b.tree.tokens, tok)
	b.tree.tokenParent = append(b.tree.tokenParent, parent)
	b.tree.nodes[parent].children = append(b.tree.nodes[parent].children, TokenElem(id))
	return id
}

// Finish closes the innermost open node, computes its span from its children,
// and returns its ID.
func (b *Builder) Finish() NodeID {
	if len(b.stack) == 0 {
		panic(fmt.Errorf("finish without open node"))
	}
	id := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	node := &b.tree.nodes[id]
	span := source.Span{File: b.tree.file}
	first := true
	for _, child := range node.children {
		childSpan := b.tree.ElemSpan(child)
		if first {
			span = childSpan
			first = false
		} else {
			span = span.Cover(childSpan)
		}
	}
	node.Span = span

	// Keep ancestors covering their children even when a child extends
	// past tokens appended to the parent directly.
	if node.Parent.IsValid() && !first {
		parent := &b.tree.nodes[node.Parent]
		if !parent.Span.Empty() {
			parent.Span = parent.Span.Cover(span)
		}
	}
	return id
}

// Build closes any still-open nodes and returns the finished tree.
func (b *Builder) Build() *Tree {
	for len(b.stack) > 0 {
		b.Finish()
	}
	return b.tree
}
