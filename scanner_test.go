// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astatine_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/astatine"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []astatine.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},
		{"\\\n", nil},
		{"# only a comment\n", nil},

		// Punctuation
		{"( [ ] ) { } , : ; .", []astatine.Token{
			astatine.LParen, astatine.LSquare, astatine.RSquare, astatine.RParen,
			astatine.LBrace, astatine.RBrace, astatine.Comma, astatine.Colon,
			astatine.Semicolon, astatine.Dot,
		}},

		// Operators
		{"x = 1", []astatine.Token{astatine.Name, astatine.Operator, astatine.Number}},
		{"x := 3", []astatine.Token{astatine.Name, astatine.Operator, astatine.Number}},
		{"a **= b >> 2", []astatine.Token{
			astatine.Name, astatine.Operator, astatine.Name, astatine.Operator, astatine.Number,
		}},
		{"a[...]", []astatine.Token{
			astatine.Name, astatine.LSquare, astatine.Operator, astatine.RSquare,
		}},
		{"def f(x) -> int: pass", []astatine.Token{
			astatine.Name, astatine.Name, astatine.LParen, astatine.Name, astatine.RParen,
			astatine.Operator, astatine.Name, astatine.Colon, astatine.Name,
		}},

		// Numbers
		{"0xff 1_000 .5 1e-3 2j 3.14 0o17 0b1", []astatine.Token{
			astatine.Number, astatine.Number, astatine.Number, astatine.Number,
			astatine.Number, astatine.Number, astatine.Number, astatine.Number,
		}},

		// Strings
		{`'a' "b" '''c''' r'\d' b"x" f'{x}' rb'y' U'z'`, []astatine.Token{
			astatine.String, astatine.String, astatine.String, astatine.String,
			astatine.String, astatine.String, astatine.String, astatine.String,
		}},
		{`f"{d['k']}" 'a\'b' ''`, []astatine.Token{
			astatine.String, astatine.String, astatine.String,
		}},
		{"\"\"\"one\ntwo\"\"\"", []astatine.Token{astatine.String}},
		{"rb = 1", []astatine.Token{astatine.Name, astatine.Operator, astatine.Number}},

		// Mixed
		{"foo(a, b=2)  # trailing\nbar.baz", []astatine.Token{
			astatine.Name, astatine.LParen, astatine.Name, astatine.Comma, astatine.Name,
			astatine.Operator, astatine.Number, astatine.RParen,
			astatine.Name, astatine.Dot, astatine.Name,
		}},
		{"x = (1 +\n     2)", []astatine.Token{
			astatine.Name, astatine.Operator, astatine.LParen, astatine.Number,
			astatine.Operator, astatine.Number, astatine.RParen,
		}},
	}

	for _, test := range tests {
		var got []astatine.Token
		s := astatine.NewScanner(strings.NewReader(test.input))
		for s.Next() == nil {
			got = append(got, s.Token())
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_withComments(t *testing.T) {
	tests := []struct {
		input string
		want  []astatine.Token
		coms  []string
	}{
		{"# line 1\n\n# line 2\n", []astatine.Token{astatine.Comment, astatine.Comment},
			[]string{"# line 1", "# line 2"}}, // N.B. excludes the line break
		{"# line at EOF", []astatine.Token{astatine.Comment},
			[]string{"# line at EOF"}},
		{"# crlf\r\nx", []astatine.Token{astatine.Comment, astatine.Name},
			[]string{"# crlf"}},
		{"x = 1  # tail\n", []astatine.Token{
			astatine.Name, astatine.Operator, astatine.Number, astatine.Comment,
		}, []string{"# tail"}},
		{"s = '# not a comment'  # but this is", []astatine.Token{
			astatine.Name, astatine.Operator, astatine.String, astatine.Comment,
		}, []string{"# but this is"}},
	}

	for _, test := range tests {
		var got []astatine.Token
		var coms []string
		s := astatine.NewScanner(strings.NewReader(test.input))
		s.AllowComments(true)
		for s.Next() == nil {
			got = append(got, s.Token())
			if s.Token() == astatine.Comment {
				coms = append(coms, string(s.Text()))
			}
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input: %#q\nComments: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_numbers(t *testing.T) {
	const input = "1_000 0x_ff 0b_1 0o_7 1_0.2_5 1e1_0 .5_0j 0xdead_beef 1__0"
	want := []string{
		"1_000", "0x_ff", "0b_1", "0o_7", "1_0.2_5", "1e1_0", ".5_0j", "0xdead_beef",
		"1_", "_0", // a doubled underscore ends the number
	}
	var got []string
	s := astatine.NewScanner(strings.NewReader(input))
	for s.Next() == nil {
		got = append(got, string(s.Text()))
	}
	if s.Err() != io.EOF {
		t.Errorf("Next failed: %v", s.Err())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Number tokens: (-want, +got)\n%s", diff)
	}
}

func TestScanner_errors(t *testing.T) {
	tests := []string{
		`'abc`,
		"'ab\ncd'",
		`"""abc`,
		`f'{x'`,
	}
	for _, input := range tests {
		s := astatine.NewScanner(strings.NewReader(input))
		var err error
		for err == nil {
			err = s.Next()
		}
		if err == io.EOF {
			t.Errorf("Input: %#q: got EOF, want error", input)
		} else if !strings.Contains(err.Error(), "unterminated string") {
			t.Errorf("Input: %#q: got error %v, want unterminated string", input, err)
		} else {
			t.Logf("Input: %#q: got expected error: %v", input, err)
		}
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok astatine.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"( )", []tokPos{{astatine.LParen, "1:0-1"}, {astatine.RParen, "1:2-3"}}},
		{"x = 'a'  # c", []tokPos{
			{astatine.Name, "1:0-1"}, {astatine.Operator, "1:2-3"},
			{astatine.String, "1:4-7"}, {astatine.Comment, "1:9-12"},
		}},
		{"def f():\n    return 'x'\n", []tokPos{
			{astatine.Name, "1:0-3"}, {astatine.Name, "1:4-5"}, {astatine.LParen, "1:5-6"},
			{astatine.RParen, "1:6-7"}, {astatine.Colon, "1:7-8"},
			{astatine.Name, "2:4-10"}, {astatine.String, "2:11-14"},
		}},
		{"'''a\nb'''", []tokPos{{astatine.String, "1:0-2:4"}}},
		{"a \\\n  + b", []tokPos{
			{astatine.Name, "1:0-1"}, {astatine.Operator, "2:2-3"}, {astatine.Name, "2:4-5"},
		}},
		{"#!x\n\nimport os", []tokPos{
			{astatine.Comment, "1:0-3"}, {astatine.Name, "3:0-6"}, {astatine.Name, "3:7-9"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := astatine.NewScanner(strings.NewReader(tc.input))
		s.AllowComments(true)
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestScannerSpan(t *testing.T) {
	const input = "print('héllo')"
	s := astatine.NewScanner(strings.NewReader(input))
	var got []string
	for s.Next() == nil {
		sp := s.Span()
		got = append(got, input[sp.Pos:sp.End])
		if sp.Len() != len(s.Text()) {
			t.Errorf("Span %v: length %d, text length %d", sp, sp.Len(), len(s.Text()))
		}
	}
	if diff := cmp.Diff([]string{"print", "(", "'héllo'", ")"}, got); diff != "" {
		t.Errorf("Spans (-want, +got):\n%s", diff)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `''`},
		{" ", `' '`},
		{"a\t\nb", `'a\t\nb'`},
		{"\x00\x01\x7f", `'\x00\x01\x7f'`},
		{"it's", `"it's"`},
		{`it's "so"`, `'it\'s "so"'`},
		{`a\b`, `'a\\b'`},
		{"héllo", `'héllo'`},
		{"\u200b", `'\u200b'`},
	}
	for _, test := range tests {
		got := astatine.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestQuoteBytes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `b''`},
		{"abc", `b'abc'`},
		{"a\xffb\n", `b'a\xffb\n'`},
		{"it's", `b"it's"`},
	}
	for _, test := range tests {
		got := astatine.QuoteBytes([]byte(test.input))
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                                               // missing quotes
		{`'missing quote`, ``, true},                                 // missing quotes
		{`missing quote'`, ``, true},                                 // invalid prefix
		{`xy'a'`, ``, true},                                          // invalid prefix
		{`''`, ``, false},                                            // ok
		{`""""""`, ``, false},                                        // ok
		{`'ok go'`, "ok go", false},                                  // ok
		{`U'ok'`, "ok", false},                                       // ok
		{`'abc\ndef'`, "abc\ndef", false},                            // C escapes
		{`"\a\b\f\n\r\t\v"`, "\a\b\f\n\r\t\v", false},                // C escapes
		{`'a \u0026 b'`, "a & b", false},                             // short Unicode escape
		{`'\U0001F600'`, "\U0001F600", false},                        // long Unicode escape
		{`'\u00e9'`, "\u00e9", false},                                // short Unicode escape
		{`'\u00'`, ``, true},                                         // incomplete Unicode escape
		{`'\x4'`, ``, true},                                          // incomplete hex escape
		{`'\N{BULLET} \N{latin small letter a}'`, "\u2022 a", false}, // named escapes
		{`'\N{NO SUCH NAME}'`, ``, true},                             // unknown name
		{`'\N{BULLET'`, ``, true},                                    // unterminated name
		{`b'\N{BULLET}'`, `\N{BULLET}`, false},                       // no named escapes in bytes
		{`'\ud800'`, ``, true},                                       // lone surrogate
		{`'\U0000dfff'`, ``, true},                                   // lone surrogate
		{`'\101\0'`, "A\x00", false},                                 // octal escapes
		{`'\q'`, `\q`, false},                                        // unknown escape kept
		{"'a\\\nb'", "ab", false},                                    // line continuation
		{`'a\'b'`, `a'b`, false},                                     // ok
		{`'''x'y'''`, `x'y`, false},                                  // triple quoted
		{`r'\d+\''`, `\d+\'`, false},                                 // raw
		{`b'\x41\101'`, "AA", false},                                 // bytes
		{`b'\xff'`, "\xff", false},                                   // bytes
		{`b'\u0041'`, `\u0041`, false},                               // no Unicode escapes in bytes
		{`b'\400'`, ``, true},                                        // octal out of range
		{`f'{x}'`, ``, true},                                         // formatted
		{`Rb'\n'`, `\n`, false},                                      // raw bytes
	}

	for _, test := range tests {
		got, err := astatine.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if err == nil && test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}

func TestUnquote_formatted(t *testing.T) {
	for _, lit := range []string{`f'x'`, `rf"{a}"`, `t'{b}'`, `FR'y'`} {
		if _, err := astatine.Unquote(lit); !errors.Is(err, astatine.ErrFormatted) {
			t.Errorf("Unquote(%#q): got %v, want %v", lit, err, astatine.ErrFormatted)
		}
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`'x'`, ""},
		{`"""x"""`, ""},
		{`r'x'`, "r"},
		{`Rb"x"`, "rb"},
		{`F'{y}'`, "f"},
		{`noquote`, ""},
	}
	for _, test := range tests {
		if got := astatine.Prefix(test.input); got != test.want {
			t.Errorf("Prefix(%#q): got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestToplevelComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"shebang", "#! /usr/bin/env python3", []string{"#! /usr/bin/env python3"}},
		{"coding1", "# coding=utf-8", []string{"# coding=utf-8"}},
		{"coding2", "# -*- coding: utf-8 -*-", []string{"# -*- coding: utf-8 -*-"}},
		{"coding_shebang", "#! /usr/bin/env python3\n# -*- coding: utf-8 -*-",
			[]string{"#! /usr/bin/env python3", "# -*- coding: utf-8 -*-"}},
		{"code_a", "#! /usr/bin/env python3\n# -*- coding: utf-8 -*-\n\nimport foo\nprint('hello everyone!')\n",
			[]string{"#! /usr/bin/env python3", "# -*- coding: utf-8 -*-"}},
		{"docstring", "#! /usr/bin/env python3\n# -*- coding: utf-8 -*-\n\n\"\"\"\nA docstring\n\"\"\"\n# a comment",
			[]string{"#! /usr/bin/env python3", "# -*- coding: utf-8 -*-"}},
		{"blank_lines", "\n\n# one\n\n\n# two\nx = 1 # three\n", []string{"# one", "# two"}},
		{"no_comments", "import foo\n# late\n", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := astatine.ToplevelComments([]byte(test.input))
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ToplevelComments (-want, +got):\n%s", diff)
			}
		})
	}
}
