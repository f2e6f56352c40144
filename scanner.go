// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astatine

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go4.org/mem"
)

// Token is the type of a lexical token in the Python grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid   Token = iota // invalid token
	Name                   // identifier or keyword
	Number                 // integer, float, or imaginary literal
	String                 // string or bytes literal, including its prefix
	LParen                 // left parenthesis "("
	RParen                 // right parenthesis ")"
	LSquare                // left square bracket "["
	RSquare                // right square bracket "]"
	LBrace                 // left brace "{"
	RBrace                 // right brace "}"
	Comma                  // comma ","
	Colon                  // colon ":"
	Semicolon              // semicolon ";"
	Dot                    // period "."
	Operator               // any other operator or delimiter
	Comment                // comment: # ... (excluding the line break)
)

var tokenStr = [...]string{
	Invalid:   "invalid token",
	Name:      "name",
	Number:    "number",
	String:    "string",
	LParen:    `"("`,
	RParen:    `")"`,
	LSquare:   `"["`,
	RSquare:   `"]"`,
	LBrace:    `"{"`,
	RBrace:    `"}"`,
	Comma:     `","`,
	Colon:     `":"`,
	Semicolon: `";"`,
	Dot:       `"."`,
	Operator:  "operator",
	Comment:   "comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// Opens reports whether t is an opening bracket.
func (t Token) Opens() bool { return t == LParen || t == LSquare || t == LBrace }

// Closes reports whether t is a closing bracket.
func (t Token) Closes() bool { return t == RParen || t == RSquare || t == RBrace }

// Closer returns the closing bracket matching t, or Invalid if t is not an
// opening bracket.
func (t Token) Closer() Token {
	switch t {
	case LParen:
		return RParen
	case LSquare:
		return RSquare
	case LBrace:
		return RBrace
	}
	return Invalid
}

// A Scanner reads lexical tokens from an input stream.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// Line breaks, indentation, and backslash continuations are treated as white
// space: the scanner reports only the tokens that carry text.
type Scanner struct {
	r        *bufio.Reader
	comments bool         // report comments
	buf      bytes.Buffer // current token
	tbuf     [][]byte     // allocation pool
	tok      Token
	err      error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
	lline, lcol int // position before the last-read rune
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// AllowComments configures the scanner to report (true) or discard (false)
// comment tokens. By default comments are discarded.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid
	s.mark()

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return s.fail(err)
		}

		// Discard whitespace, including explicit line joins.
		if isSpace(ch) {
			s.mark()
			continue
		}
		if ch == '\\' {
			if s.lineJoin() {
				s.mark()
				continue
			}
			s.buf.WriteRune(ch)
			s.tok = Operator
			return nil
		}

		// Handle comments.
		if ch == '#' {
			if err := s.scanComment(ch); err != nil {
				return err
			}
			if s.comments {
				return nil
			}
			s.buf.Reset()
			s.mark()
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}
		if ch == '.' {
			return s.scanDot(ch)
		}

		// Handle numbers.
		if isDigit(ch) {
			return s.scanNumber(ch)
		}

		// Handle string literals without a prefix.
		if isQuote(ch) {
			return s.scanString(ch)
		}

		// Handle names, and string literals with a prefix.
		if isNameStart(ch) {
			return s.scanName(ch)
		}

		return s.scanOperator(ch)
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// only valid until the next call of Next. The caller must copy the contents of
// the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return s.copyOf(s.buf.Bytes()) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// mark records the current end position as the start of the next token.
func (s *Scanner) mark() { s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol }

// lineJoin reports whether the backslash just read begins an explicit line
// join, and if so consumes the line break.
func (s *Scanner) lineJoin() bool {
	ch, ok := s.peek()
	if ok && ch == '\r' {
		s.rune()
		ch, ok = s.peek()
	}
	if ok && ch == '\n' {
		s.rune()
		return true
	}
	return false
}

func (s *Scanner) scanComment(first rune) error {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNotEOL)
	if err == io.EOF {
		s.tok = Comment
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune() // leave the line break for the whitespace rule
	s.tok = Comment
	return nil
}

func (s *Scanner) scanDot(first rune) error {
	s.buf.WriteRune(first)
	next, err := s.r.Peek(2)
	if len(next) > 0 && isDigit(rune(next[0])) {
		s.buf.Reset()
		return s.scanNumber(first)
	}
	if err == nil && mem.B(next).EqualString("..") {
		s.rune()
		s.rune()
		s.buf.WriteString("..")
		s.tok = Operator // ellipsis
		return nil
	}
	s.tok = Dot
	return nil
}

func (s *Scanner) scanName(first rune) error {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		s.tok = Name
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()

	// A short run of prefix letters followed by a quotation mark begins a
	// string literal, e.g., rb"..." or f'...'.
	if ch, ok := s.peek(); ok && isQuote(ch) && isStringPrefix(mem.B(s.buf.Bytes())) {
		s.rune()
		return s.scanString(ch)
	}
	s.tok = Name
	return nil
}

// scanString scans the body of a string literal whose opening quotation mark
// open has just been read. Any prefix is already in the buffer.
func (s *Scanner) scanString(open rune) error {
	pfx := strings.ToLower(s.buf.String())
	s.buf.WriteRune(open)

	// Check for a triple-quoted string, or an empty string.
	triple := false
	if ch, ok := s.peek(); ok && ch == open {
		s.rune()
		s.buf.WriteRune(ch)
		if ch, ok := s.peek(); ok && ch == open {
			s.rune()
			s.buf.WriteRune(ch)
			triple = true
		} else {
			s.tok = String // empty
			return nil
		}
	}

	format := strings.ContainsAny(pfx, "ft")
	var depth, run int // replacement field depth, closing quote run
	for {
		ch, err := s.rune()
		if err != nil {
			return s.failf("unterminated string: %w", err)
		}
		s.buf.WriteRune(ch)

		switch {
		case ch == '\\':
			// Escapes (even in raw strings) cannot end the literal.
			next, err := s.rune()
			if err != nil {
				return s.failf("unterminated string: %w", err)
			}
			s.buf.WriteRune(next)
			run = 0
			continue

		case ch == '\n' && !triple:
			return s.failf("unterminated string")

		case format && ch == '{':
			if next, ok := s.peek(); ok && next == '{' && depth == 0 {
				s.rune()
				s.buf.WriteRune(next)
			} else {
				depth++
			}

		case format && ch == '}' && depth > 0:
			depth--

		case depth > 0 && isQuote(ch):
			// A string nested inside a replacement field.
			if err := s.skipNested(ch); err != nil {
				return err
			}

		case ch == open:
			run++
			if !triple || run == 3 {
				s.tok = String
				return nil
			}
			continue
		}
		run = 0
	}
}

// skipNested consumes a single-line quoted string nested in a replacement
// field of a formatted string literal.
func (s *Scanner) skipNested(open rune) error {
	for {
		ch, err := s.rune()
		if err != nil || ch == '\n' {
			return s.failf("unterminated string in replacement field")
		}
		s.buf.WriteRune(ch)
		if ch == '\\' {
			next, err := s.rune()
			if err != nil {
				return s.failf("unterminated string in replacement field")
			}
			s.buf.WriteRune(next)
		} else if ch == open {
			return nil
		}
	}
}

func (s *Scanner) scanNumber(first rune) error {
	s.buf.WriteRune(first)
	s.tok = Number

	if first == '.' {
		s.digits(isDigit, false)
		s.exponent()
		return nil
	}
	if first == '0' {
		if ch, ok := s.peek(); ok && strings.ContainsRune("xXoObB", ch) {
			s.rune()
			s.buf.WriteRune(ch)
			s.digits(isHexDigit, true) // 0x_ff is valid
			return nil
		}
	}
	s.digits(isDigit, true)
	if ch, ok := s.peek(); ok && ch == '.' {
		s.rune()
		s.buf.WriteRune(ch)
		s.digits(isDigit, false)
	}
	s.exponent()
	return nil
}

// exponent consumes an optional exponent and imaginary suffix of a number.
func (s *Scanner) exponent() {
	if ch, ok := s.peek(); ok && (ch == 'e' || ch == 'E') {
		s.rune()
		s.buf.WriteRune(ch)
		if sign, ok := s.peek(); ok && (sign == '+' || sign == '-') {
			s.rune()
			s.buf.WriteRune(sign)
		}
		s.digits(isDigit, false)
	}
	if ch, ok := s.peek(); ok && (ch == 'j' || ch == 'J') {
		s.rune()
		s.buf.WriteRune(ch)
	}
}

// digits consumes a run of runes matching f, with single underscores allowed
// between them. If prev is true, the run may begin with an underscore.
func (s *Scanner) digits(f func(rune) bool, prev bool) {
	for {
		ch, ok := s.peek()
		if !ok || !(f(ch) || (ch == '_' && prev)) {
			return
		}
		s.rune()
		s.buf.WriteRune(ch)
		prev = ch != '_'
	}
}

func (s *Scanner) scanOperator(first rune) error {
	s.buf.WriteRune(first)
	if first == ':' {
		s.tok = Colon
		if ch, ok := s.peek(); ok && ch == '=' {
			s.rune()
			s.buf.WriteRune(ch)
			s.tok = Operator
		}
		return nil
	}
	s.tok = Operator
	for {
		ch, ok := s.peek()
		if !ok || !isOperator(s.buf.String()+string(ch)) {
			return nil
		}
		s.rune()
		s.buf.WriteRune(ch)
	}
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.lline, s.lcol = s.eline, s.ecol
	s.end += nb
	if err == nil && ch == '\n' {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol += nb
	}
	return ch, err
}

func (s *Scanner) unrune() {
	s.end -= s.last
	s.eline, s.ecol = s.lline, s.lcol
	s.last = 0
	s.r.UnreadRune()
}

// peek returns the next rune of the input without consuming it.  It reports
// false if no further input is available.
func (s *Scanner) peek() (rune, bool) {
	ch, err := s.rune()
	if err != nil {
		return 0, false
	}
	s.unrune()
	return ch, true
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(err error) error {
	return s.setErr(posError{s.end, err})
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(posError{s.end, fmt.Errorf(msg, args...)})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t' || ch == '\f'
}

func isNotEOL(ch rune) bool { return ch != '\n' && ch != '\r' }
func isDigit(ch rune) bool  { return '0' <= ch && ch <= '9' }
func isQuote(ch rune) bool  { return ch == '"' || ch == '\'' }

func isNameStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || (ch > unicode.MaxASCII && unicode.Is(unicode.Nl, ch))
}

func isNameRune(ch rune) bool {
	return isNameStart(ch) || unicode.IsDigit(ch) || unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Pc)
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// stringPrefixes are the (case-insensitive) prefixes of string literals.
var stringPrefixes = []string{"r", "u", "b", "f", "t", "br", "rb", "fr", "rf", "tr", "rt"}

func isStringPrefix(m mem.RO) bool {
	if m.Len() > 2 {
		return false
	}
	for _, p := range stringPrefixes {
		if mem.EqualFold(m, mem.S(p)) {
			return true
		}
	}
	return false
}

var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "@": true,
	"&": true, "|": true, "^": true, "~": true, "<": true, ">": true, "=": true,
	"!": true,

	"**": true, "//": true, "<<": true, ">>": true, "<=": true, ">=": true,
	"==": true, "!=": true, "->": true, "+=": true, "-=": true, "*=": true,
	"/=": true, "%=": true, "@=": true, "&=": true, "|=": true, "^=": true,

	"**=": true, "//=": true, "<<=": true, ">>=": true,
}

func isOperator(s string) bool { return operators[s] }

var self = [...]Token{LParen, RParen, LSquare, RSquare, LBrace, RBrace, Comma, Semicolon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("()[]{},;", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}

func (s *Scanner) copyOf(text []byte) []byte {
	const minBlockSlop = 4
	const smallSizeFraction = 16
	const bufBlockBytes = 16384

	// For values bigger than smallSizeFraction of the block size, don't bother
	// batching, make an outright copy.
	if len(text) >= bufBlockBytes/smallSizeFraction {
		return append([]byte(nil), text...)
	}

	// Look for a block with space enough to hold a copy of text.
	i := 0
	for i < len(s.tbuf) {
		if n := len(s.tbuf[i]) + len(text); n < cap(s.tbuf[i]) {
			// There is room in this block.
			break
		} else if cap(s.tbuf[i])-len(text) < minBlockSlop {
			// There is no room in this block, but it is nearly-enough full.
			// Allocate a fresh block at this location and release the old one.
			// The old block will be retained until all its tokens are released.
			s.tbuf[i] = make([]byte, 0, bufBlockBytes)
			break
		}
		i++
	}
	if i == len(s.tbuf) {
		// No block had room; add a new empty one to the arena.
		s.tbuf = append(s.tbuf, make([]byte, 0, bufBlockBytes))
	}
	p := len(s.tbuf[i])
	s.tbuf[i] = append(s.tbuf[i], text...)
	return s.tbuf[i][p : p+len(text)]
}
