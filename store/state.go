package store

import "github.com/goliatone/go-statemod/internal/clone"

// stateNode is one mount point in the nested state tree. Child state is keyed
// by the child's module key regardless of namespacing.
type stateNode struct {
	value    any
	children map[string]*stateNode
}

func newStateNode(value any) *stateNode {
	return &stateNode{
		value:    value,
		children: map[string]*stateNode{},
	}
}

func (n *stateNode) get(path []string) (*stateNode, bool) {
	node := n
	for _, segment := range path {
		child, ok := node.children[segment]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// StateTree is a deep-cloned snapshot of a store's state at one point in
// time, detached from the live tree.
type StateTree struct {
	Value    any
	Children map[string]StateTree
}

func (n *stateNode) snapshot() StateTree {
	tree := StateTree{Value: clone.Value(n.value)}
	if len(n.children) > 0 {
		tree.Children = make(map[string]StateTree, len(n.children))
		for key, child := range n.children {
			tree.Children[key] = child.snapshot()
		}
	}
	return tree
}
