// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astatine

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

// String renders loc as "L:C-C" if it lies on a single line, otherwise
// "L:C-L:C".
func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%v-%d", loc.First, loc.Last.Column)
	}
	return fmt.Sprintf("%v-%v", loc.First, loc.Last)
}

// Contains reports whether the range of o lies entirely within loc.
func (loc Location) Contains(o Location) bool {
	return loc.Pos <= o.Pos && o.End <= loc.End
}

// Before reports whether loc ends at or before the start of o.
func (loc Location) Before(o Location) bool { return loc.End <= o.Pos }

// HasLine reports whether line is one of the lines spanned by loc.
func (loc Location) HasLine(line int) bool {
	return loc.First.Line <= line && line <= loc.Last.Line
}
