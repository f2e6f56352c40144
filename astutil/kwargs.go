// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astutil

import (
	"fmt"

	"github.com/creachadair/astatine/ast"
)

// PosargNames supplies the names of the positional parameters of a callable,
// for use with KwargsFromCall. Use Names for an explicit list of names, or
// ParamsOf to take the names from a function definition.
type PosargNames interface {
	posargNames() ([]string, error)
}

// Names is a PosargNames that lists the parameter names in order.
type Names []string

func (n Names) posargNames() ([]string, error) { return n, nil }

// ParamsOf returns a PosargNames that reports the positional parameters of
// def, which must be a function definition, a decorated function definition,
// or a lambda. The positional parameters are those that can be passed by
// position: positional-only parameters and ordinary parameters preceding any
// *args, bare *, or **kwargs.
func ParamsOf(def *ast.Node) PosargNames { return paramsOf{def: def} }

// BoundParamsOf is like ParamsOf, but reports the positional parameters of a
// method called through an instance or class. The first parameter, which is
// bound to the receiver, is omitted unless def is decorated as a staticmethod.
func BoundParamsOf(def *ast.Node) PosargNames { return paramsOf{def: def, bound: true} }

type paramsOf struct {
	def   *ast.Node
	bound bool
}

func (p paramsOf) posargNames() ([]string, error) {
	def := p.def
	if def != nil && def.Kind != ast.Lambda {
		def = def.Definition()
	}
	if def == nil || def.Kind == ast.ClassDef {
		return nil, fmt.Errorf("node %v is not a function", p.def)
	}
	names := positional(def)
	if p.bound && !isStatic(p.def) && len(names) != 0 {
		names = names[1:]
	}
	return names, nil
}

// isStatic reports whether n is a definition decorated with staticmethod.
func isStatic(n *ast.Node) bool {
	if n.Kind != ast.Decorated {
		return false
	}
	for _, d := range n.ChildrenOf("decorators") {
		if DottedName(d.Child("value")) == "staticmethod" {
			return true
		}
	}
	return false
}

// positional returns the names of the positional parameters of def.
func positional(def *ast.Node) []string {
	var names []string
	for _, arg := range def.Child("args").ChildrenOf("args") {
		switch arg.Kind {
		case ast.Arg:
			names = append(names, arg.Name)
		case ast.Separator:
			if arg.Name == "*" {
				return names
			}
		case ast.StarArg, ast.KwArg:
			return names
		}
	}
	return names
}

// KwargsFromCall returns a map from parameter names to the argument values of
// call, which must be a Call node.
//
// Keyword arguments are mapped by their keywords. Positional arguments are
// paired in order with the names reported by names, and an argument passed by
// position takes precedence over a keyword argument of the same name. Extra
// positional arguments with no corresponding name, and arguments passed by
// **mapping unpacking, are omitted.
func KwargsFromCall(call *ast.Node, names PosargNames) (map[string]*ast.Node, error) {
	if call == nil || call.Kind != ast.Call {
		return nil, fmt.Errorf("node %v is not a call", call)
	}
	pos, err := names.posargNames()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*ast.Node)
	for _, kw := range call.ChildrenOf("keywords") {
		if kw.Name != "" {
			out[kw.Name] = kw.Child("value")
		}
	}
	for i, arg := range call.ChildrenOf("args") {
		if i >= len(pos) {
			break
		}
		out[pos[i]] = arg
	}
	return out, nil
}
