// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astatine

import (
	"errors"
	"strings"

	"github.com/creachadair/astatine/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a Python string literal, as repr would.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// QuoteBytes encodes src as a Python bytes literal, as repr would.
func QuoteBytes(src []byte) string { return string(escape.QuoteBytes(src)) }

// Prefix returns the lower-cased prefix of a string literal, for example "rb"
// for rb'\d'. It returns "" if lit has no prefix.
func Prefix(lit string) string {
	i := strings.IndexAny(lit, `'"`)
	if i <= 0 {
		return ""
	}
	return strings.ToLower(lit[:i])
}

// ErrFormatted is reported by Unquote for formatted and template string
// literals, whose values depend on evaluation.
var ErrFormatted = errors.New("formatted string literal")

// Unquote decodes a Python string or bytes literal as written in source,
// including its prefix and quotation marks. Raw literals are returned as
// written; otherwise escape sequences are replaced with their unescaped
// equivalents. The result is UTF-8 text for a string literal, and raw bytes
// for a bytes literal.
//
// Unquote reports an error for a malformed literal, or ErrFormatted for an
// f-string or t-string.
func Unquote(lit string) ([]byte, error) {
	pfx := Prefix(lit)
	if !isStringPrefix(mem.S(pfx)) && pfx != "" {
		return nil, errors.New("invalid string prefix")
	}
	if strings.ContainsAny(pfx, "ft") {
		return nil, ErrFormatted
	}
	body := lit[len(pfx):]
	if len(body) < 2 {
		return nil, errors.New("missing quotations")
	}
	q := body[:1]
	if len(body) >= 6 && strings.HasPrefix(body, q+q+q) {
		q = body[:3]
	}
	if !strings.HasPrefix(body, q) || !strings.HasSuffix(body, q) || len(body) < 2*len(q) {
		return nil, errors.New("missing quotations")
	}
	body = body[len(q) : len(body)-len(q)]
	if strings.Contains(pfx, "r") {
		return []byte(body), nil
	}
	return escape.Unquote(mem.S(body), strings.Contains(pfx, "b"))
}
