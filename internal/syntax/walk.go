package syntax

// WalkEvent is one step of a combined pre/post-order traversal. Every node is
// visited once on entry and once on exit; tokens produce an entry and an exit
// event back to back.
type WalkEvent struct {
	Enter bool
	Elem  Elem
}

// Walk traverses the whole tree starting at the root, calling visit for every
// event in order. Traversal stops early when visit returns false.
func (t *Tree) Walk(visit func(WalkEvent) bool) {
	t.WalkFrom(t.root, visit)
}

// WalkFrom traverses the subtree rooted at id.
func (t *Tree) WalkFrom(id NodeID, visit func(WalkEvent) bool) {
	if !id.IsValid() {
		return
	}
	t.walkNode(id, visit)
}

func (t *Tree) walkNode(id NodeID, visit func(WalkEvent) bool) bool {
	if !visit(WalkEvent{Enter: true, Elem: NodeElem(id)}) {
		return false
	}
	for _, child := range t.Children(id) {
		if child.IsNode() {
			if !t.walkNode(child.Node, visit) {
				return false
			}
			continue
		}
		if !visit(WalkEvent{Enter: true, Elem: child}) {
			return false
		}
		if !visit(WalkEvent{Enter: false, Elem: child}) {
			return false
		}
	}
	return visit(WalkEvent{Enter: false, Elem: NodeElem(id)})
}

// CoveringNode returns the innermost node whose span contains the given
// range.
func (t *Tree) CoveringNode(start, end uint32) NodeID {
	best := t.root
	for {
		descended := false
		for _, child := range t.Children(best) {
			if !child.IsNode() {
				continue
			}
			span := t.NodeSpan(child.Node)
			if span.Start <= start && end <= span.End {
				best = child.Node
				descended = true
				break
			}
		}
		if !descended {
			return best
		}
	}
}
