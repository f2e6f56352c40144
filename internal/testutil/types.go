// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/creachadair/astatine/ast"
)

// MustParse parses src as a Python module, or fails t.
func MustParse(t testing.TB, src string) *ast.Node {
	t.Helper()
	root, err := ast.ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("Parse %q: %v", src, err)
	}
	return root
}

// MustFind returns the first node of the given kind in root, or fails t.
func MustFind(t testing.TB, root *ast.Node, kind ast.Kind) *ast.Node {
	t.Helper()
	for n := range ast.All(root) {
		if n.Kind == kind {
			return n
		}
	}
	t.Fatalf("No %v node found in tree", kind)
	return nil
}

// Shape renders the structure of n as a compact string for comparison in
// tests. Each node is rendered as its String, followed by its children in
// brackets, with the field of each child as a prefix:
//
//	Module[body=ExprStmt[value=Call[func=Name(f) args=Constant(1)]]]
func Shape(n *ast.Node) string {
	var sb strings.Builder
	shape(&sb, n)
	return sb.String()
}

func shape(sb *strings.Builder, n *ast.Node) {
	sb.WriteString(n.String())
	if len(n.Children) == 0 {
		return
	}
	sb.WriteByte('[')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if c.Field != "" {
			sb.WriteString(c.Field)
			sb.WriteByte('=')
		}
		shape(sb, c)
	}
	sb.WriteByte(']')
}
