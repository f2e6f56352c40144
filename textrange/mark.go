// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package textrange

import (
	"bytes"

	"github.com/creachadair/astatine"
	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/mds/stack"
)

// Mark computes the source locations of tree, whose source text is src, and
// returns an index of the results.
//
// Mark visits the nodes of the tree in document order, scanning the tokens of
// src with a single forward pass. Each node starts at its reported start
// position, and ends according to its kind:
//
//   - A node without children, such as a name, number, or string literal,
//     ends at the end of the token at its start.
//
//   - A compound statement (def, class, if, for, while, with, try, match, and
//     their clauses) ends where its last child ends.
//
//   - Any other node ends where its last child ends, extended to cover the
//     closing brackets of any brackets opened within the node. For example, a
//     call ends at its closing parenthesis. A tuple also covers a trailing
//     comma, and a slice its trailing colons, as in "1," and "1:".
//
// Implicit nodes and their descendants are skipped, as are the * and /
// separators of a parameter list. A node without a reported start begins at
// the next token of the input.
//
// The resulting locations satisfy these invariants:
//
//   - Each location ends at or after it starts.
//   - The location of a node contains the locations of its children.
//   - The locations of sibling nodes do not overlap.
//
// Comments and blank lines between nodes do not belong to either node.
// If the input ends before all the brackets opened by a node are closed, the
// node ends at the end of the input.
func Mark(tree *ast.Node, src []byte) *Index {
	x := &Index{
		src:   src,
		root:  tree,
		lines: lineStarts(src),
		locs:  make(map[*ast.Node]astatine.Location),
	}
	if tree == nil {
		return x
	}
	m := &marker{
		idx:  x,
		sc:   astatine.NewScanner(bytes.NewReader(src)),
		open: stack.New[astatine.Token](),
	}
	m.visit(tree, 0, len(src))
	return x
}

// A class groups node kinds by how their ends are found.
type class byte

const (
	wrapped   class = iota // ends after closing any brackets it opened
	compound               // ends with its last child
	separator              // consumes its token, but has no location
)

var classOf = [...]class{
	ast.Module:           compound,
	ast.Block:            compound,
	ast.FunctionDef:      compound,
	ast.AsyncFunctionDef: compound,
	ast.ClassDef:         compound,
	ast.Decorated:        compound,
	ast.If:               compound,
	ast.Elif:             compound,
	ast.Else:             compound,
	ast.For:              compound,
	ast.While:            compound,
	ast.With:             compound,
	ast.Try:              compound,
	ast.Except:           compound,
	ast.Finally:          compound,
	ast.Match:            compound,
	ast.Case:             compound,
	ast.Separator:        separator,
}

func classify(k ast.Kind) class {
	if int(k) < len(classOf) {
		return classOf[k]
	}
	return wrapped
}

// A token is a lexical token of the input.
type token struct {
	tok astatine.Token
	astatine.Span
}

// A marker holds the state of the scan of the input.
type marker struct {
	idx *Index
	sc  *astatine.Scanner

	next token // lookahead, valid if have is true
	have bool
	eof  bool

	at   int                          // end offset of the last token consumed
	open *stack.Stack[astatine.Token] // brackets open at the current position
}

// peek returns the next token of the input without consuming it. It reports
// false at the end of the input. A lexical error also ends the input.
func (m *marker) peek() (token, bool) {
	if !m.have && !m.eof {
		if m.sc.Next() != nil {
			m.eof = true
		} else {
			m.next = token{tok: m.sc.Token(), Span: m.sc.Span()}
			m.have = true
		}
	}
	return m.next, m.have
}

// advance consumes the next token, which must exist, and updates the stack of
// open brackets.
func (m *marker) advance() {
	t := m.next
	m.have = false
	m.at = max(m.at, t.End)
	switch {
	case t.tok.Opens():
		m.open.Push(t.tok)
	case t.tok.Closes():
		if top, ok := m.open.Peek(0); ok && top.Closer() == t.tok {
			m.open.Pop()
		}
	}
}

// seek consumes tokens that start before pos and before limit.
func (m *marker) seek(pos, limit int) {
	for {
		t, ok := m.peek()
		if !ok || t.Pos >= pos || t.Pos >= limit {
			return
		}
		m.advance()
	}
}

// consume consumes the next token if it starts before limit, and reports
// whether it did so.
func (m *marker) consume(limit int) bool {
	if t, ok := m.peek(); ok && t.Pos < limit {
		m.advance()
		return true
	}
	return false
}

// closeTo consumes tokens before limit until the number of open brackets is
// at most depth. It reports false if the input ended first.
func (m *marker) closeTo(depth, limit int) bool {
	for m.open.Len() > depth {
		if _, ok := m.peek(); !ok {
			return false
		} else if !m.consume(limit) {
			break
		}
	}
	return true
}

// trailer consumes punctuation after the last child of a node of kind k that
// still belongs to the node: the trailing comma of a tuple, or the trailing
// colons of a slice. Only tokens at bracket depth and before limit qualify.
func (m *marker) trailer(k ast.Kind, depth, limit int) {
	var want astatine.Token
	switch k {
	case ast.Tuple:
		want = astatine.Comma
	case ast.Slice:
		want = astatine.Colon
	default:
		return
	}
	for m.open.Len() == depth {
		t, ok := m.peek()
		if !ok || t.tok != want || t.Pos >= limit {
			return
		}
		m.advance()
		if k == ast.Tuple {
			return // at most one trailing comma
		}
	}
}

// visit computes the location of n and its descendants. The location of n
// must start at or after floor, and end at or before limit.
func (m *marker) visit(n *ast.Node, floor, limit int) (astatine.Span, bool) {
	if n.Implicit {
		// Tokens before the reported start of an implicit node still belong to
		// its parent.
		if n.Start != nil {
			m.seek(n.Start.Offset, limit)
		}
		return astatine.Span{}, false
	}
	var start int
	if n.Start != nil {
		m.seek(n.Start.Offset, limit)
		start = max(n.Start.Offset, m.at)
	} else if t, ok := m.peek(); ok && t.Pos < limit {
		start = t.Pos
	} else {
		start = m.at
	}
	start = min(max(start, floor), limit)

	cls := classify(n.Kind)
	if cls == separator {
		m.consume(limit)
		return astatine.Span{}, false
	}

	// Reserve the position of n in document order before its descendants.
	m.idx.order = append(m.idx.order, n)
	depth := m.open.Len()

	var last astatine.Span
	spanned := false
	lo := start // each child starts after its predecessor ends
	for i, c := range n.Children {
		climit := limit
		for _, s := range n.Children[i+1:] {
			if s.Start != nil && !s.Implicit {
				climit = min(climit, s.Start.Offset)
				break
			}
		}
		if sp, ok := m.visit(c, lo, max(climit, lo)); ok {
			last, spanned = sp, true
			lo = sp.End
		}
	}

	var end int
	if cls == compound && spanned {
		end = last.End
	} else {
		if !spanned {
			m.consume(limit) // the token at the start of n
		} else {
			m.trailer(n.Kind, depth, limit)
		}
		if m.closeTo(depth, limit) {
			end = max(m.at, last.End)
		} else {
			end = len(m.idx.src) // ran out of input with brackets open
		}
		end = min(end, limit)
	}
	end = max(end, start)

	// Brackets opened within n that are still open belong to n.
	for m.open.Len() > depth {
		m.open.Pop()
	}

	sp := astatine.Span{Pos: start, End: end}
	m.idx.locs[n] = astatine.Location{
		Span:  sp,
		First: m.idx.LineCol(start),
		Last:  m.idx.LineCol(end),
	}
	return sp, true
}
