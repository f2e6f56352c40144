// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/astatine/ast/cursor"
	"github.com/creachadair/astatine/internal/testutil"
)

const testSource = `import os

def f(a, b):
    """Docstring."""
    return g(a, key=b)

x = [1, 2, 3]
`

func TestCursor(t *testing.T) {
	root := testutil.MustParse(t, testSource)
	def := root.Children[1]
	ret := def.Body()[1]
	list := root.Children[2].Child("value")

	tests := []struct {
		name string
		path []any
		want *ast.Node
		fail bool
	}{
		{"NilInput", nil, root, false},
		{"NoMatch", []any{"nonesuch"}, root, true},
		{"WrongType", []any{1.5}, root, true},

		{"IndexPos", []any{1}, def, false},
		{"IndexNeg", []any{-1, "value", -1}, list.Children[2], false},
		{"IndexRange", []any{2, "value", 25}, list, true},
		{"FieldPath", []any{1, "body", 1}, ret, false},
		{"KindPath", []any{ast.FunctionDef, "body", ast.Return, "value", "func"},
			ret.Child("value").Child("func"), false},
		{"KindMissing", []any{ast.ClassDef}, root, true},

		{"Func", []any{1, testPathFunc}, def.Child("body").Children[0].Child("value"), false},
		{"FuncWrong", []any{0, testPathFunc}, root.Children[0], true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(root).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got %v, want error", tc.path, c.Value())
			}
			if got := c.Value(); got != tc.want {
				t.Errorf("Down %+v: got %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestCursorNavigation(t *testing.T) {
	root := testutil.MustParse(t, testSource)
	c := cursor.New(root)
	if !c.AtOrigin() || c.Origin() != root {
		t.Fatal("New cursor is not at its origin")
	}

	c.Down(1, "args", 0)
	if c.Err() != nil {
		t.Fatalf("Down: unexpected error: %v", c.Err())
	}
	if got := c.Value(); got.Kind != ast.Arg || got.Name != "a" {
		t.Errorf("Value: got %v, want Arg(a)", got)
	}
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path: got %d nodes, want 4", got)
	}
	if got := c.Up().Value(); got.Kind != ast.Parameters {
		t.Errorf("Up: got %v, want Parameters", got)
	}

	c.Down("nonesuch")
	if c.Err() == nil {
		t.Error("Down: got nil, want error")
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("Reset: at origin %v, error %v", c.AtOrigin(), c.Err())
	}
	if got := c.Up().Value(); got != root {
		t.Errorf("Up at origin: got %v, want %v", got, root)
	}
}

func TestPath(t *testing.T) {
	root := testutil.MustParse(t, testSource)
	got, err := cursor.Path(root, 0, "names", "name")
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	if got.Kind != ast.Dotted || got.Name != "os" {
		t.Errorf("Path: got %v, want Dotted(os)", got)
	}
	if _, err := cursor.Path(root, 7); err == nil {
		t.Error("Path: got nil, want error")
	}
}

// testPathFunc returns the value of the first statement of a definition if it
// is an expression statement.
func testPathFunc(n *ast.Node) (*ast.Node, error) {
	body := n.Body()
	if len(body) == 0 || body[0].Kind != ast.ExprStmt {
		return nil, errors.New("no leading expression")
	}
	return body[0].Child("value"), nil
}
