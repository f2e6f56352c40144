// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astutil

import (
	"iter"
	"slices"
	"strings"

	"github.com/creachadair/astatine/ast"
)

// AttributeName returns an iterator over the names of the attribute chain
// denoted by n, outermost first. For example, for the expression a.b.c it
// yields "a", "b", "c". The chain stops at the first component that is not a
// name or an attribute, so for f().b it yields only "b".
func AttributeName(n *ast.Node) iter.Seq[string] {
	return func(yield func(string) bool) { attrName(n, yield) }
}

func attrName(n *ast.Node, yield func(string) bool) bool {
	switch {
	case n == nil:
		return true
	case n.Kind == ast.Name:
		return yield(n.Name)
	case n.Kind == ast.Attribute:
		return attrName(n.Child("value"), yield) && yield(n.Name)
	}
	return true
}

// DottedName returns the attribute chain of n joined with periods, for
// example "os.path.join". It returns "" if n has no attribute chain.
func DottedName(n *ast.Node) string {
	return strings.Join(slices.Collect(AttributeName(n)), ".")
}

// A ContextManager is a context manager used by a with statement.
type ContextManager struct {
	Name []string  // the attribute chain of the context manager
	Item *ast.Node // the WithItem that uses it
}

// String returns the dotted name of the context manager.
func (c ContextManager) String() string { return strings.Join(c.Name, ".") }

// Managers is an ordered collection of context managers.
type Managers []ContextManager

// Lookup returns the with-item of the context manager with the given dotted
// name, or nil if there is none.
func (cs Managers) Lookup(name string) *ast.Node {
	for _, c := range cs {
		if c.String() == name {
			return c.Item
		}
	}
	return nil
}

// Names returns the dotted names of the context managers in cs.
func (cs Managers) Names() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

// ContextManagers returns the context managers used by the items of with,
// which must be a With node, in order. An item whose context expression is a
// call is attributed to the callee, so that for
//
//	with open(path) as f, lock:
//
// the names are "open" and "lock". Items whose context expression is not a
// call, a name, or an attribute are omitted. If the same name is used more
// than once, it is reported at the position of its first use, with the item
// of its last use.
func ContextManagers(with *ast.Node) Managers {
	if with == nil || with.Kind != ast.With {
		return nil
	}
	var out Managers
	for _, item := range with.ChildrenOf("items") {
		expr := item.Child("context_expr")
		if expr == nil {
			continue
		}
		switch expr.Kind {
		case ast.Call:
			expr = expr.Child("func")
		case ast.Name, ast.Attribute:
		default:
			continue
		}
		cm := ContextManager{Name: slices.Collect(AttributeName(expr)), Item: item}
		if i := slices.IndexFunc(out, func(c ContextManager) bool {
			return slices.Equal(c.Name, cm.Name)
		}); i >= 0 {
			out[i] = cm
		} else {
			out = append(out, cm)
		}
	}
	return out
}
