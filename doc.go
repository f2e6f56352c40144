// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package astatine implements helpers for introspecting Python syntax trees.
//
// The packages of this module are layered over the tree-sitter Python
// grammar. Package ast converts a parse into a tree of *ast.Node values
// carrying start positions; the other packages operate on that tree:
//
//	Package   | Description
//	--------- | ---------------------------------------------------------
//	ast       | node model, parser adapter, and traversal
//	cursor    | path navigation within a node tree
//	textrange | source text ranges (start and end) for every node
//	astutil   | type-checking guards, docstrings, call arguments, names
//	literal   | evaluation of literal expressions and top-level constants
//
// The astatine command (cmd/astatine) exposes these helpers on source files.
//
// This package defines the location types shared by the others, a lexical
// scanner for Python source, and helpers for string literals.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for Python. Construct a
// scanner from an io.Reader and call its Next method to iterate over the
// stream. Next advances to the next input token and returns nil, or reports
// an error:
//
//	s := astatine.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v %q", s.Token(), s.Text())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// The scanner does not report line breaks or indentation: it reports only the
// tokens that carry text. Comments are discarded unless AllowComments is
// enabled. A string literal is a single token, including its prefix and all
// of its quotation marks.
//
// # Literals
//
// Use Unquote to decode a string or bytes literal as written in source, and
// Quote or QuoteBytes to encode a value as a literal:
//
//	v, err := astatine.Unquote(`rb'\d+'`) // v == []byte(`\d+`)
//	q := astatine.Quote("it's")           // q == `"it's"`
//
// # Comments
//
// ToplevelComments returns the comments at the head of a source file, before
// the first line of code.
package astatine
