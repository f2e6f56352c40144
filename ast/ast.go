// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for Python source, and a parser that
// constructs syntax trees from source text.
//
// A tree is made of *Node values. Every node has a Kind, and its children are
// stored in source order. The role of a child within its parent is given by
// its Field, for example:
//
//	Kind         | Fields of children
//	------------ | ------------------------------------------------
//	Module       | body
//	Decorated    | decorators, definition
//	FunctionDef  | name, args, returns, body
//	ClassDef     | name, bases, keywords, body
//	If, Elif     | test, body, orelse
//	For          | target, iter, body, orelse
//	With         | items, body
//	WithItem     | context_expr, optional_vars
//	Assign       | targets, value
//	AnnAssign    | target, annotation, value
//	Call         | func, args, keywords
//	Keyword      | arg, value
//	Attribute    | value, attr
//	ExprStmt     | value
//
// Nodes carry the start position reported by the parser, but not an end
// position. Use package textrange to compute complete source ranges.
package ast

import (
	"fmt"

	"github.com/creachadair/astatine"
)

// A Position is the start position of a node in source text.
type Position struct {
	Offset int // byte offset, 0-based
	astatine.LineCol
}

func (p Position) String() string { return p.LineCol.String() }

// A Node is a single node of a syntax tree.
type Node struct {
	Kind  Kind
	Field string // role of this node within its parent

	// Name is the name bound or referenced by the node, if any: the name of a
	// definition, the identifier of a Name, the attribute of an Attribute, the
	// keyword of a Keyword, or the operator of an operator expression.
	Name string

	// Text is the source text of a leaf node (Name, Identifier, Constant,
	// String). It is empty for other nodes.
	Text string

	// Implicit reports whether the node was synthesized by the parser and has
	// no text in the source.
	Implicit bool

	// Start is the start position reported by the parser, or nil if the
	// parser did not report one.
	Start *Position

	Children []*Node
}

// Line returns the 1-based line number where n starts, or 0 if n has no
// reported start.
func (n *Node) Line() int {
	if n == nil || n.Start == nil {
		return 0
	}
	return n.Start.Line
}

// Child returns the first child of n with the given field, or nil.
func (n *Node) Child(field string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildrenOf returns the children of n with the given field, in order.
func (n *Node) ChildrenOf(field string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out
}

// Body returns the statements of the body of n. For a Module or Block this is
// its children. For a definition or clause, it is the contents of the Block
// in its body field. For a Decorated node, it is the body of the definition.
// Otherwise Body returns nil.
func (n *Node) Body() []*Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case Module, Block:
		return n.Children
	case Decorated:
		return n.Child("definition").Body()
	}
	if b := n.Child("body"); b != nil && b.Kind == Block {
		return b.Children
	}
	return nil
}

// Definition returns the function or class definition of n if n is a
// definition or a decorated definition, otherwise nil.
func (n *Node) Definition() *Node {
	if n == nil {
		return nil
	} else if n.Kind == Decorated {
		n = n.Child("definition")
	}
	if n != nil && n.Kind.IsDefinition() {
		return n
	}
	return nil
}

func (n *Node) String() string {
	switch {
	case n == nil:
		return "<nil>"
	case n.Text != "":
		return fmt.Sprintf("%v(%s)", n.Kind, n.Text)
	case n.Name != "":
		return fmt.Sprintf("%v(%s)", n.Kind, n.Name)
	}
	return n.Kind.String()
}
