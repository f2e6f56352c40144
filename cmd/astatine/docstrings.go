// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/astatine/astutil"
	"github.com/spf13/cobra"
)

var docstringsText bool

var docstringsCmd = &cobra.Command{
	Use:   "docstrings <file>...",
	Short: "Show the docstrings of modules, classes, and functions",
	Long: `Print the line where the docstring of each module, class, and function
begins. Definitions without docstrings are listed with line 0.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocstrings,
}

func init() {
	docstringsCmd.Flags().BoolVar(&docstringsText, "text", false, "Include the text of each docstring")
}

type docstring struct {
	File string `json:"file" yaml:"file"`
	Kind string `json:"kind" yaml:"kind"`
	Name string `json:"name" yaml:"name"` // qualified, e.g. Class.method
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

func runDocstrings(cmd *cobra.Command, args []string) error {
	out := []docstring{}
	err := eachSource(cmd, args, func(src *source) error {
		add := func(n *ast.Node, name string) {
			d := docstring{File: src.path, Kind: n.Kind.String(), Name: name}
			if line, ok := astutil.DocstringLine(n); ok {
				d.Line = line
				if docstringsText {
					d.Text, _ = astutil.Docstring(n)
				}
			}
			out = append(out, d)
		}
		add(src.root, "")

		var walk func([]*ast.Node, []string)
		walk = func(body []*ast.Node, scope []string) {
			for _, stmt := range body {
				def := stmt.Definition()
				if def == nil {
					continue
				}
				qual := append(slices.Clip(scope), def.Name)
				add(def, strings.Join(qual, "."))
				walk(def.Body(), qual)
			}
		}
		walk(src.root.Body(), nil)
		return nil
	})
	if err != nil {
		return err
	}
	return emit(cmd, out, func(w io.Writer, s *styles) {
		for _, d := range out {
			name := d.Name
			if name == "" {
				name = d.File
			}
			fmt.Fprintf(w, "%s:%s %s %s\n", s.file.Sprint(d.File), s.pos.Sprint(d.Line), s.kind.Sprint(d.Kind), s.name.Sprint(name))
			if d.Text != "" {
				fmt.Fprintf(w, "  %s\n", s.value.Sprintf("%q", d.Text))
			}
		}
	})
}
