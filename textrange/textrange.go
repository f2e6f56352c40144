// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package textrange computes the source text ranges of the nodes of a syntax
// tree.
//
// The parser reports only where each node starts. Mark completes the picture
// by scanning the source text alongside the tree, and records the start and
// end of each node in an Index:
//
//	root, err := ast.Parse(ctx, src)
//	// ...
//	idx := textrange.Mark(root, src)
//	for n, loc := range idx.All() {
//	   fmt.Println(n, loc)
//	}
//
// The tree itself is not modified, and Mark never fails: if the tree and the
// source text do not correspond, the ranges are computed on a best-effort
// basis but still satisfy the structural invariants described for Mark.
package textrange

import (
	"iter"
	"slices"

	"github.com/creachadair/astatine"
	"github.com/creachadair/astatine/ast"
)

// An Index records the source locations of the nodes of a syntax tree.
// A zero Index is empty and ready for use.
type Index struct {
	src   []byte
	root  *ast.Node
	lines []int // offsets of the start of each line
	locs  map[*ast.Node]astatine.Location
	order []*ast.Node // document order
}

// Get returns the location of n, and reports whether n has a location.
// Implicit nodes, parameter list separators, and nodes not belonging to the
// tree have no location.
func (x *Index) Get(n *ast.Node) (astatine.Location, bool) {
	loc, ok := x.locs[n]
	return loc, ok
}

// Len reports the number of nodes that have locations in x.
func (x *Index) Len() int { return len(x.order) }

// All returns an iterator over the nodes of x and their locations, in
// document order.
func (x *Index) All() iter.Seq2[*ast.Node, astatine.Location] {
	return func(yield func(*ast.Node, astatine.Location) bool) {
		for _, n := range x.order {
			if !yield(n, x.locs[n]) {
				return
			}
		}
	}
}

// Text returns the source text spanned by n, or "" if n has no location.
func (x *Index) Text(n *ast.Node) string {
	loc, ok := x.locs[n]
	if !ok {
		return ""
	}
	return string(x.src[loc.Pos:loc.End])
}

// LineCol returns the line and column of the given byte offset in the source
// text of x. Offsets outside the source are clamped to its bounds.
func (x *Index) LineCol(offset int) astatine.LineCol {
	offset = max(0, min(offset, len(x.src)))
	if len(x.lines) == 0 {
		return astatine.LineCol{Line: 1, Column: offset}
	}
	i, ok := slices.BinarySearch(x.lines, offset)
	if !ok {
		i--
	}
	return astatine.LineCol{Line: i + 1, Column: offset - x.lines[i]}
}

// Bounds returns the lines spanned by the root of the tree, and reports
// whether the root has a location.
func (x *Index) Bounds() (Bounds, bool) {
	loc, ok := x.locs[x.root]
	if !ok {
		return Bounds{}, false
	}
	return Bounds{First: loc.First.Line, Last: loc.Last.Line}, true
}

// Innermost returns the deepest node of x whose location contains the given
// byte offset, or nil if there is none.
func (x *Index) Innermost(offset int) *ast.Node {
	var best *ast.Node
	for _, n := range x.order {
		loc := x.locs[n]
		if loc.Pos > offset {
			break // document order: later nodes start later
		}
		if offset < loc.End || (loc.Pos == loc.End && offset == loc.Pos) {
			best = n
		}
	}
	return best
}

// Bounds records the first and last lines (1-based, inclusive) of a unit of
// source text.
type Bounds struct {
	First, Last int
}

// Contains reports whether line lies within b.
func (b Bounds) Contains(line int) bool { return b.First <= line && line <= b.Last }

// lineStarts returns the offsets of the start of each line of src.
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
