// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of Python string literals.
package escape

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"go4.org/mem"
	"golang.org/x/text/unicode/runenames"
)

// Unquote decodes the body of a Python string literal. The input must have
// the prefix and enclosing quotation marks already removed. If bytes is true,
// src is the body of a bytes literal: \u, \U, and \N are not escapes, and the
// octal and hexadecimal escapes denote bytes rather than code points.
//
// Escape sequences are replaced with their unescaped equivalents.
// Unrecognized escapes are kept verbatim, backslash included. Unquote reports
// an error for an incomplete or out-of-range escape sequence, an unknown
// character name, or a surrogate code point, which has no UTF-8 encoding.
func Unquote(src mem.RO, bytes bool) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		dec = mem.Append(dec, src)
		return dec, nil
	}

	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	putCode := func(v int64) {
		if bytes {
			putByte(byte(v))
		} else {
			dec = utf8.AppendRune(dec, rune(v))
		}
	}
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		// Decode the next rune after the escape to figure out what to
		// substitute.
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch r {
		case '\n':
			// A backslash-newline is elided.
		case '\r':
			if src.Len() > 0 && src.At(0) == '\n' {
				src = src.SliceFrom(1)
			}
		case '\\', '\'', '"':
			putByte(byte(r))
		case 'a':
			putByte('\a')
		case 'b':
			putByte('\b')
		case 'f':
			putByte('\f')
		case 'n':
			putByte('\n')
		case 'r':
			putByte('\r')
		case 't':
			putByte('\t')
		case 'v':
			putByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int64(r - '0')
			for k := 0; k < 2 && src.Len() > 0 && isOctal(src.At(0)); k++ {
				v = v*8 + int64(src.At(0)-'0')
				src = src.SliceFrom(1)
			}
			if bytes && v > 0xff {
				return nil, fmt.Errorf("octal escape value %#o out of range", v)
			}
			putCode(v)
		case 'x':
			v, err := fixedHex(src, 2)
			if err != nil {
				return nil, fmt.Errorf("invalid \\x escape: %w", err)
			}
			putCode(v)
			src = src.SliceFrom(2)
		case 'u', 'U':
			if bytes {
				putByte('\\', byte(r))
				break
			}
			width := 4
			if r == 'U' {
				width = 8
			}
			v, err := fixedHex(src, width)
			if err != nil {
				return nil, fmt.Errorf("invalid \\%c escape: %w", r, err)
			} else if v > utf8.MaxRune {
				return nil, fmt.Errorf("escape value %#x out of range", v)
			} else if isSurrogate(v) {
				return nil, fmt.Errorf("surrogate escape %#x is not supported", v)
			}
			putCode(v)
			src = src.SliceFrom(width)
		case 'N':
			if bytes {
				putByte('\\', 'N')
				break
			}
			v, width, err := namedRune(src)
			if err != nil {
				return nil, fmt.Errorf("invalid \\N escape: %w", err)
			}
			putCode(int64(v))
			src = src.SliceFrom(width)
		default:
			putByte('\\')
			dec = utf8.AppendRune(dec, r)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// namedRune parses a character name in braces from the front of src, as in
// {BULLET}, and returns the rune it names and the length of the name in bytes
// including braces. Names are matched without regard to case.
func namedRune(src mem.RO) (rune, int, error) {
	if src.Len() == 0 || src.At(0) != '{' {
		return 0, 0, errors.New("missing {")
	}
	end := mem.IndexByte(src, '}')
	if end < 0 {
		return 0, 0, errors.New("missing }")
	}
	name := strings.ToUpper(src.SliceFrom(1).SliceTo(end - 1).StringCopy())
	r, ok := runeByName()[name]
	if !ok {
		return 0, 0, fmt.Errorf("unknown character name %q", name)
	}
	return r, end + 1, nil
}

// runeByName maps Unicode character names to runes. It is built on first use.
var runeByName = sync.OnceValue(func() map[string]rune {
	m := make(map[string]rune)
	for r := rune(0); r <= unicode.MaxRune; r++ {
		if isSurrogate(int64(r)) {
			continue
		}
		if name := runenames.Name(r); name != "" && !strings.HasPrefix(name, "<") {
			m[name] = r
		}
	}
	return m
})

func isSurrogate(v int64) bool { return 0xd800 <= v && v <= 0xdfff }

// fixedHex parses exactly n hexadecimal digits from the front of src.
func fixedHex(src mem.RO, n int) (int64, error) {
	if src.Len() < n {
		return 0, errors.New("truncated")
	}
	return parseHex(src.SliceTo(n))
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}

func isOctal(b byte) bool { return '0' <= b && b <= '7' }
