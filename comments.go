// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astatine

import "bytes"

// ToplevelComments returns the text of the comments that precede the first
// token of code in src, in order of occurrence. This includes shebang and
// coding declarations, but not comments following a module docstring.
// Blank lines between the comments are ignored.
//
// If src contains a lexical error before the first token of code, the
// comments read up to that point are returned.
func ToplevelComments(src []byte) []string {
	var out []string
	s := NewScanner(bytes.NewReader(src))
	s.AllowComments(true)
	for s.Next() == nil && s.Token() == Comment {
		out = append(out, string(s.Text()))
	}
	return out
}
