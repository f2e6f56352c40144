// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package literal

import (
	"fmt"
	"strings"

	"github.com/creachadair/astatine/ast"
)

// Constants returns the values of the constants assigned at the top level of
// module, keyed by name. A constant is a name assigned a literal value:
//
//	NAME = <literal>
//	NAME: <type> = <literal>
//	A = B = <literal>
//
// Assignments to other targets, such as attributes or tuples, are ignored, as
// are statements other than assignments. If an assignment to a name has a
// value that is not a literal, Constants reports an error wrapping
// ErrMalformed. Later assignments replace earlier ones.
func Constants(module *ast.Node) (map[string]any, error) {
	out := make(map[string]any)
	for _, stmt := range module.Body() {
		var names []string
		switch stmt.Kind {
		case ast.Assign:
			for _, t := range stmt.ChildrenOf("targets") {
				if t.Kind == ast.Name {
					names = append(names, t.Name)
				}
			}
		case ast.AnnAssign:
			if t := stmt.Child("target"); t != nil && t.Kind == ast.Name && stmt.Child("value") != nil {
				names = append(names, t.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		v, err := Eval(stmt.Child("value"))
		if err != nil {
			return nil, fmt.Errorf("constant %s: %w", strings.Join(names, ", "), err)
		}
		for _, name := range names {
			out[name] = v
		}
	}
	return out, nil
}
