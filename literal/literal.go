// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package literal evaluates Python literal expressions without executing
// any code.
//
// Eval accepts the same expressions as Python's ast.literal_eval: strings,
// bytes, numbers, booleans, None, the ellipsis, and tuples, lists, sets, and
// dicts of these. Values are represented as follows:
//
//	Python         | Go
//	-------------- | -----------------------------------------
//	str            | string
//	bytes          | []byte
//	int            | int64, or *big.Int if it does not fit
//	float          | float64
//	complex        | complex128
//	bool           | bool
//	None           | nil
//	...            | Ellipsis
//	tuple          | Tuple
//	list           | []any
//	set            | Set
//	dict           | Dict
//
// Any other expression is reported as an error wrapping ErrMalformed.
package literal

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/creachadair/astatine"
	"github.com/creachadair/astatine/ast"
)

// ErrMalformed is reported when an expression is not a literal.
var ErrMalformed = errors.New("malformed literal")

// A MalformedError reports the node that could not be evaluated. It wraps
// ErrMalformed.
type MalformedError struct {
	Node   *ast.Node
	Reason string // optional
}

func (e *MalformedError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrMalformed.Error())
	if e.Node != nil {
		fmt.Fprintf(&sb, ": %v", e.Node.Kind)
		if e.Node.Start != nil {
			fmt.Fprintf(&sb, " at %v", e.Node.Start)
		}
	}
	if e.Reason != "" {
		fmt.Fprintf(&sb, " (%s)", e.Reason)
	}
	return sb.String()
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }

func malformed(n *ast.Node, reason string, args ...any) error {
	return &MalformedError{Node: n, Reason: fmt.Sprintf(reason, args...)}
}

// A Tuple is the value of a tuple expression.
type Tuple []any

// A Set is the value of a set expression. Its elements are distinct, in order
// of their first appearance.
type Set []any

// A Dict is the value of a dict expression. Its keys are distinct, in order of
// their first appearance.
type Dict []Item

// An Item is a single key-value pair of a Dict.
type Item struct {
	Key, Value any
}

// Get returns the value for key in d, and reports whether it was found.
func (d Dict) Get(key any) (any, bool) {
	k := keyOf(key)
	for _, it := range d {
		if keyOf(it.Key) == k {
			return it.Value, true
		}
	}
	return nil, false
}

// EllipsisType is the type of the Ellipsis value.
type EllipsisType struct{}

// Ellipsis is the value of the expression "...".
var Ellipsis EllipsisType

// Eval evaluates the literal expression n and returns its value.
func Eval(n *ast.Node) (any, error) {
	if n == nil {
		return nil, malformed(nil, "missing expression")
	}
	switch n.Kind {
	case ast.Constant:
		switch n.Text {
		case "True":
			return true, nil
		case "False":
			return false, nil
		case "None":
			return nil, nil
		case "...":
			return Ellipsis, nil
		}
		return number(n)

	case ast.String, ast.Concat:
		return str(n)

	case ast.UnaryOp:
		return signed(n)

	case ast.BinOp:
		// Complex numbers are written as a sum: 1+2j, -1-2j.
		if n.Name != "+" && n.Name != "-" {
			break
		}
		lhs, err := signed(n.Child("left"))
		if err != nil {
			return nil, err
		}
		rhs, err := number(n.Child("right"))
		if err != nil {
			return nil, err
		}
		im, ok := rhs.(complex128)
		if !ok {
			break
		}
		var re float64
		switch v := lhs.(type) {
		case int64:
			re = float64(v)
		case *big.Int:
			re, _ = new(big.Float).SetInt(v).Float64()
		case float64:
			re = v
		default:
			return nil, malformed(n, "complex number with complex real part")
		}
		if n.Name == "-" {
			return complex(re, 0) - im, nil
		}
		return complex(re, 0) + im, nil

	case ast.Tuple:
		elts, err := evalAll(n.Children)
		if err != nil {
			return nil, err
		}
		return Tuple(elts), nil

	case ast.List:
		elts, err := evalAll(n.Children)
		if err != nil {
			return nil, err
		}
		return elts, nil

	case ast.Set:
		elts, err := evalAll(n.Children)
		if err != nil {
			return nil, err
		}
		return makeSet(n, elts)

	case ast.Call:
		// The empty set has no literal syntax, and is written set().
		if fn := n.Child("func"); fn != nil && fn.Kind == ast.Name && fn.Name == "set" && len(n.Children) == 1 {
			return Set{}, nil
		}

	case ast.Dict:
		d := Dict{}
		for _, c := range n.Children {
			if c.Kind != ast.Pair {
				return nil, malformed(c, "dict unpacking")
			}
			key, err := Eval(c.Child("key"))
			if err != nil {
				return nil, err
			}
			val, err := Eval(c.Child("value"))
			if err != nil {
				return nil, err
			}
			if !hashable(key) {
				return nil, malformed(c, "unhashable key %s", Repr(key))
			}
			d = d.set(key, val)
		}
		return d, nil
	}
	return nil, malformed(n, "")
}

func evalAll(ns []*ast.Node) ([]any, error) {
	out := make([]any, 0, len(ns))
	for _, n := range ns {
		v, err := Eval(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func makeSet(n *ast.Node, elts []any) (Set, error) {
	out := Set{}
	seen := make(map[string]bool)
	for _, v := range elts {
		if !hashable(v) {
			return nil, malformed(n, "unhashable element %s", Repr(v))
		}
		if k := keyOf(v); !seen[k] {
			seen[k] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// set updates the value of key in d, or adds it if it is not present.
func (d Dict) set(key, val any) Dict {
	k := keyOf(key)
	for i, it := range d {
		if keyOf(it.Key) == k {
			d[i].Value = val
			return d
		}
	}
	return append(d, Item{Key: key, Value: val})
}

// keyOf returns a string that identifies v as a set element or dict key.
// Values that compare equal get the same key, so numbers are identified by
// value regardless of type: True, 1, 1.0, and 1+0j share a key.
func keyOf(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(t, 10)
	case *big.Int:
		return t.String()
	case float64:
		if !math.IsInf(t, 0) && t == math.Trunc(t) {
			z, _ := big.NewFloat(t).Int(nil)
			return z.String()
		}
	case complex128:
		if imag(t) == 0 {
			return keyOf(real(t))
		}
	case Tuple:
		var sb strings.Builder
		sb.WriteByte('(')
		for i, e := range t {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(keyOf(e))
		}
		sb.WriteByte(')')
		return sb.String()
	}
	return Repr(v)
}

// hashable reports whether v may be a set element or dict key.
func hashable(v any) bool {
	switch t := v.(type) {
	case []any, Set, Dict:
		return false
	case Tuple:
		for _, e := range t {
			if !hashable(e) {
				return false
			}
		}
	}
	return true
}

// signed evaluates a number with an optional unary sign.
func signed(n *ast.Node) (any, error) {
	if n == nil || n.Kind != ast.UnaryOp {
		return number(n)
	}
	v, err := number(n.Child("operand"))
	if err != nil {
		return nil, err
	}
	switch n.Name {
	case "+":
		return v, nil
	case "-":
		switch t := v.(type) {
		case int64:
			return -t, nil // t >= 0
		case *big.Int:
			return normInt(new(big.Int).Neg(t)), nil
		case float64:
			return -t, nil
		case complex128:
			return -t, nil
		}
	}
	return nil, malformed(n, "operator %q", n.Name)
}

// number evaluates a numeric constant.
func number(n *ast.Node) (any, error) {
	if n == nil || n.Kind != ast.Constant {
		return nil, malformed(n, "not a number")
	}
	text := strings.ReplaceAll(strings.ToLower(n.Text), "_", "")
	if text == "" {
		return nil, malformed(n, "empty number")
	}
	switch {
	case strings.HasSuffix(text, "j"):
		f, err := strconv.ParseFloat(text[:len(text)-1], 64)
		if err != nil && !isRangeError(err) {
			return nil, malformed(n, "invalid imaginary %q", n.Text)
		}
		return complex(0, f), nil

	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0b"):
		return integer(n, text)

	case strings.ContainsAny(text, ".e"):
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !isRangeError(err) {
			return nil, malformed(n, "invalid float %q", n.Text)
		}
		return f, nil

	default:
		// Leading zeros are permitted only in zero itself.
		if len(text) > 1 && text[0] == '0' && strings.Trim(text, "0") != "" {
			return nil, malformed(n, "invalid integer %q", n.Text)
		}
		return integer(n, text)
	}
}

func integer(n *ast.Node, text string) (any, error) {
	if v, err := strconv.ParseInt(text, 0, 64); err == nil {
		return v, nil
	}
	z, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return nil, malformed(n, "invalid integer %q", n.Text)
	}
	return normInt(z), nil
}

// normInt returns z as an int64 if it fits, otherwise z itself.
func normInt(z *big.Int) any {
	if z.IsInt64() {
		return z.Int64()
	}
	return z
}

func isRangeError(err error) bool {
	var nerr *strconv.NumError
	return errors.As(err, &nerr) && errors.Is(nerr.Err, strconv.ErrRange)
}

// str evaluates a string literal or a concatenation of string literals.
func str(n *ast.Node) (any, error) {
	parts := []*ast.Node{n}
	if n.Kind == ast.Concat {
		parts = n.Children
	}
	var buf []byte
	isBytes := false
	for i, p := range parts {
		if p.Kind != ast.String {
			return nil, malformed(p, "not a string")
		}
		b := strings.Contains(astatine.Prefix(p.Text), "b")
		if i == 0 {
			isBytes = b
		} else if b != isBytes {
			return nil, malformed(n, "cannot mix bytes and strings")
		}
		text, err := astatine.Unquote(p.Text)
		if errors.Is(err, astatine.ErrFormatted) {
			return nil, malformed(p, "formatted string")
		} else if err != nil {
			return nil, malformed(p, "%v", err)
		}
		buf = append(buf, text...)
	}
	if isBytes {
		if buf == nil {
			buf = []byte{}
		}
		return buf, nil
	}
	return string(buf), nil
}
