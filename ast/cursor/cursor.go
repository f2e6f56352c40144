// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over a Python syntax tree.
package cursor

import (
	"fmt"

	"github.com/creachadair/astatine/ast"
)

// Path traverses a sequential path into the structure of n where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving its
// value.
func Path(n *ast.Node, path ...any) (*ast.Node, error) {
	c := New(n).Down(path...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of an *ast.Node.
type Cursor struct {
	org *ast.Node
	stk []*ast.Node
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *ast.Node) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin node of c.
func (c *Cursor) Origin() *ast.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current node under the cursor.
func (c *Cursor) Value() *ast.Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of nodes from the origin to the current
// location in c.
func (c *Cursor) Path() []*ast.Node {
	return append([]*ast.Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current node, where path elements are strings (denoting fields), integers
// (denoting offsets into the children), kinds, or functions (see below). If
// the path is valid, the node reached is returned. If the path cannot be
// completely consumed, traversal stops and an error is recorded. Use Err to
// recover the error.
//
// If a path element is a string, it resolves to the first child of the
// current node in the field with that name.
//
// If a path element is an integer, it resolves to the child of the current
// node at that index. Negative indices count backward from the end (-1 is
// last, -2 second last). An error is reported if the index is out of bounds.
// For example, Down("body", 0) selects the first statement of a function.
//
// If a path element is an ast.Kind, it resolves to the first child of the
// current node with that kind.
//
// If a path element is a function, the function is executed and its result
// becomes the next node in the sequence. The function must have a signature
//
//	func(*ast.Node) (*ast.Node, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		if cur == nil {
			return c.setErrorf("cannot traverse nil node with %v", elt)
		}
		switch t := elt.(type) {
		case string:
			next := cur.Child(t)
			if next == nil {
				return c.setErrorf("field %q not found in %v", t, cur)
			}
			cur = c.push(next)

		case int:
			kids := cur.Children
			i, ok := fixBound(len(kids), t)
			if !ok {
				return c.setErrorf("child index %d out of bounds (n=%d)", i, len(kids))
			}
			cur = c.push(kids[i])

		case ast.Kind:
			var next *ast.Node
			for _, k := range cur.Children {
				if k.Kind == t {
					next = k
					break
				}
			}
			if next == nil {
				return c.setErrorf("no %v child in %v", t, cur)
			}
			cur = c.push(next)

		case func(*ast.Node) (*ast.Node, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(n *ast.Node) *ast.Node { c.stk = append(c.stk, n); return n }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
