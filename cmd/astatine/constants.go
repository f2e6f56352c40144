// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/creachadair/astatine/literal"
	"github.com/spf13/cobra"
)

var constantsCmd = &cobra.Command{
	Use:   "constants <file>...",
	Short: "Show the top-level constants of files",
	Long: `Print the names and values of the constants assigned at the top level of
each file, that is, names assigned literal values. An assignment of a name to
a value that is not a literal is reported as an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConstants,
}

type fileConstants struct {
	File      string     `json:"file" yaml:"file"`
	Constants []constant `json:"constants" yaml:"constants"`
}

type constant struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"` // Python syntax
	Type  string `json:"type" yaml:"type"`
}

func runConstants(cmd *cobra.Command, args []string) error {
	var out []fileConstants
	err := eachSource(cmd, args, func(src *source) error {
		vals, err := literal.Constants(src.root)
		if err != nil {
			return err
		}
		fc := fileConstants{File: src.path, Constants: []constant{}}
		for _, name := range slices.Sorted(maps.Keys(vals)) {
			v := vals[name]
			fc.Constants = append(fc.Constants, constant{Name: name, Value: literal.Repr(v), Type: typeName(v)})
		}
		out = append(out, fc)
		return nil
	})
	if err != nil {
		return err
	}
	return emit(cmd, out, func(w io.Writer, s *styles) {
		for _, fc := range out {
			fmt.Fprintln(w, s.file.Sprint(fc.File))
			for _, c := range fc.Constants {
				fmt.Fprintf(w, "  %s = %s  %s\n", s.name.Sprint(c.Name), s.value.Sprint(c.Value), s.pos.Sprint("# "+c.Type))
			}
		}
	})
}

// typeName returns the name of the Python type of a literal value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "NoneType"
	case bool:
		return "bool"
	case string:
		return "str"
	case []byte:
		return "bytes"
	case float64:
		return "float"
	case complex128:
		return "complex"
	case literal.EllipsisType:
		return "ellipsis"
	case literal.Tuple:
		return "tuple"
	case []any:
		return "list"
	case literal.Set:
		return "set"
	case literal.Dict:
		return "dict"
	}
	return "int"
}
