// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\t': 't',
	'\n': 'n',
	'\r': 'r',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as a Python string literal in the style of repr: single
// quotation marks are preferred, unless src contains a single quote and no
// double quotes.
func Quote(src mem.RO) []byte {
	q := byte('\'')
	if mem.IndexByte(src, '\'') >= 0 && mem.IndexByte(src, '"') < 0 {
		q = '"'
	}
	buf := make([]byte, 0, src.Len()+2)
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	putByte(q)
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r == utf8.RuneError && n <= 1:
			putByte('\\', 'x', hexDigit[0xf], hexDigit[0xd])
		case r < ' ' || r == 0x7f:
			if b := controlEsc[r&0x1f]; b != 0 && r != 0x7f {
				putByte('\\', b)
			} else {
				putByte('\\', 'x', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '\\' || r == rune(q):
			putByte('\\', byte(r))
		case r < utf8.RuneSelf:
			putByte(byte(r))
		case !unicode.IsPrint(r):
			if r > 0xffff {
				putByte('\\', 'U')
				putHex(&buf, uint32(r), 8)
			} else {
				putByte('\\', 'u')
				putHex(&buf, uint32(r), 4)
			}
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	putByte(q)
	return buf
}

// QuoteBytes encodes src as a Python bytes literal in the style of repr.
func QuoteBytes(src []byte) []byte {
	q := byte('\'')
	if bytesIndex(src, '\'') >= 0 && bytesIndex(src, '"') < 0 {
		q = '"'
	}
	buf := make([]byte, 0, len(src)+3)
	buf = append(buf, 'b', q)
	for _, b := range src {
		switch {
		case b < ' ' || b >= 0x7f:
			if e := controlEsc[b&0x1f]; e != 0 && b < ' ' {
				buf = append(buf, '\\', e)
			} else {
				buf = append(buf, '\\', 'x', hexDigit[b>>4], hexDigit[b&15])
			}
		case b == '\\' || b == q:
			buf = append(buf, '\\', b)
		default:
			buf = append(buf, b)
		}
	}
	return append(buf, q)
}

func putHex(buf *[]byte, v uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		*buf = append(*buf, hexDigit[(v>>(4*i))&15])
	}
}

func bytesIndex(data []byte, b byte) int { return mem.IndexByte(mem.B(data), b) }
