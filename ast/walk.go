// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"iter"

	"github.com/creachadair/mds/mapset"
)

// Walk visits n and its descendants in depth-first pre-order, which is source
// order. If f returns false for a node, the children of that node are not
// visited.
func Walk(n *Node, f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, f)
	}
}

// All returns an iterator over n and its descendants in depth-first
// pre-order.
func All(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) { all(n, yield) }
}

func all(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	} else if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !all(c, yield) {
			return false
		}
	}
	return true
}

// Find returns the nodes of the given kinds among n and its descendants, in
// depth-first pre-order.
func Find(n *Node, kinds ...Kind) []*Node {
	want := mapset.New(kinds...)
	var out []*Node
	for c := range All(n) {
		if want.Has(c.Kind) {
			out = append(out, c)
		}
	}
	return out
}
