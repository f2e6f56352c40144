// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package literal

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/creachadair/astatine"
)

// Repr renders a value returned by Eval as Python source text, in the format
// of Python's repr function. Values of other types are rendered with %v.
func Repr(v any) string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("None")
	case bool:
		if t {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case int64:
		sb.WriteString(strconv.FormatInt(t, 10))
	case *big.Int:
		sb.WriteString(t.String())
	case float64:
		sb.WriteString(reprFloat(t))
	case complex128:
		im := strings.TrimSuffix(reprFloat(imag(t)), ".0")
		if real(t) == 0 && !math.Signbit(real(t)) {
			sb.WriteString(im + "j")
			break
		}
		re := strings.TrimSuffix(reprFloat(real(t)), ".0")
		if !strings.HasPrefix(im, "-") {
			im = "+" + im
		}
		fmt.Fprintf(sb, "(%s%sj)", re, im)
	case string:
		sb.WriteString(astatine.Quote(t))
	case []byte:
		sb.WriteString(astatine.QuoteBytes(t))
	case EllipsisType:
		sb.WriteString("Ellipsis")
	case Tuple:
		writeSeq(sb, "(", "", t)
		if len(t) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case []any:
		writeSeq(sb, "[", "]", t)
	case Set:
		if len(t) == 0 {
			sb.WriteString("set()")
		} else {
			writeSeq(sb, "{", "}", t)
		}
	case Dict:
		sb.WriteByte('{')
		for i, it := range t {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, it.Key)
			sb.WriteString(": ")
			writeRepr(sb, it.Value)
		}
		sb.WriteByte('}')
	default:
		fmt.Fprint(sb, v)
	}
}

func writeSeq(sb *strings.Builder, open, close string, vs []any) {
	sb.WriteString(open)
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeRepr(sb, v)
	}
	sb.WriteString(close)
}

// reprFloat formats f as Python does: positional notation for moderate
// magnitudes, always with a fractional part, and exponent notation otherwise.
func reprFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if abs := math.Abs(f); f == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}
