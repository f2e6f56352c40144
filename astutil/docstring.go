// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astutil

import (
	"errors"
	"strings"

	"github.com/creachadair/astatine"
	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/astatine/ast/cursor"
)

// DocstringLine returns the 1-based line number where the docstring of n
// begins, and reports whether n has a docstring. The node must be a module,
// a class or function definition, or a decorated definition.
func DocstringLine(n *ast.Node) (int, bool) {
	doc := docstringNode(n)
	if doc == nil {
		return 0, false
	}
	return doc.Line(), true
}

// Docstring returns the decoded text of the docstring of n, and reports
// whether n has one. The node must be as described for DocstringLine.
func Docstring(n *ast.Node) (string, bool) {
	doc := docstringNode(n)
	if doc == nil {
		return "", false
	}
	var sb strings.Builder
	for _, s := range stringParts(doc) {
		text, err := astatine.Unquote(s.Text)
		if err != nil {
			return "", false
		}
		sb.Write(text)
	}
	return sb.String(), true
}

var errNoDocstring = errors.New("no docstring")

// docstringNode returns the string literal that is the docstring of n, or
// nil if there is none.
func docstringNode(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	} else if n.Kind != ast.Module {
		if n = n.Definition(); n == nil {
			return nil
		}
	}
	doc, err := cursor.Path(n, leadingExpr, "value", isDocstring)
	if err != nil {
		return nil
	}
	return doc
}

// leadingExpr returns the first statement of the body of n, if it is an
// expression statement.
func leadingExpr(n *ast.Node) (*ast.Node, error) {
	body := n.Body()
	if len(body) == 0 || body[0].Kind != ast.ExprStmt {
		return nil, errNoDocstring
	}
	return body[0], nil
}

// isDocstring returns n if it is a plain string literal, or a concatenation
// of plain string literals. Bytes and formatted strings are not docstrings.
func isDocstring(n *ast.Node) (*ast.Node, error) {
	parts := stringParts(n)
	if len(parts) == 0 {
		return nil, errNoDocstring
	}
	for _, s := range parts {
		if strings.ContainsAny(astatine.Prefix(s.Text), "bft") {
			return nil, errNoDocstring
		}
	}
	return n, nil
}

// stringParts returns the string literals comprising n, or nil if n is not a
// string literal or a concatenation of string literals.
func stringParts(n *ast.Node) []*ast.Node {
	switch n.Kind {
	case ast.String:
		return []*ast.Node{n}
	case ast.Concat:
		for _, c := range n.Children {
			if c.Kind != ast.String {
				return nil
			}
		}
		return n.Children
	}
	return nil
}
