// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package astutil implements queries over Python syntax trees.
//
// The functions in this package examine trees constructed by ast.Parse and do
// not modify them.
package astutil

import (
	"github.com/creachadair/astatine/ast"
)

// IsTypeChecking reports whether n is a guard whose body is only evaluated by
// static type checkers. If n is an If or Elif, its condition is examined;
// otherwise n is treated as the condition itself.
//
// A condition is a guard if it is the constant False, the name TYPE_CHECKING,
// an attribute named TYPE_CHECKING (such as typing.TYPE_CHECKING), or a
// boolean operation any of whose operands is a guard.
func IsTypeChecking(n *ast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.If, ast.Elif:
		return IsTypeChecking(n.Child("test"))
	case ast.Constant:
		return n.Text == "False"
	case ast.Name, ast.Attribute:
		return n.Name == "TYPE_CHECKING"
	case ast.BoolOp:
		for _, v := range n.Children {
			if IsTypeChecking(v) {
				return true
			}
		}
	}
	return false
}

// TypeCheckingBlocks returns the if statements among root and its
// descendants whose conditions are type-checking guards, in source order.
func TypeCheckingBlocks(root *ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, n := range ast.Find(root, ast.If) {
		if IsTypeChecking(n) {
			out = append(out, n)
		}
	}
	return out
}
