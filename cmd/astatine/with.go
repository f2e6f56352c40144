// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/astatine/astutil"
	"github.com/spf13/cobra"
)

var withCmd = &cobra.Command{
	Use:   "with <file>...",
	Short: "Show the context managers used by with statements",
	Long: `Print the dotted names of the context managers used by each with
statement. A context manager created by a call is named by its callee.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWith,
}

type withStmt struct {
	File     string     `json:"file" yaml:"file"`
	Line     int        `json:"line" yaml:"line"`
	Async    bool       `json:"async,omitempty" yaml:"async,omitempty"`
	Managers []cmTarget `json:"managers" yaml:"managers"`
}

type cmTarget struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"` // as target, if any
}

func runWith(cmd *cobra.Command, args []string) error {
	out := []withStmt{}
	err := eachSource(cmd, args, func(src *source) error {
		idx := src.mark()
		for _, n := range ast.Find(src.root, ast.With) {
			ws := withStmt{File: src.path, Line: n.Line(), Async: n.Name == "async", Managers: []cmTarget{}}
			for _, cm := range astutil.ContextManagers(n) {
				ws.Managers = append(ws.Managers, cmTarget{
					Name:   cm.String(),
					Target: idx.Text(cm.Item.Child("optional_vars")),
				})
			}
			out = append(out, ws)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return emit(cmd, out, func(w io.Writer, s *styles) {
		for _, ws := range out {
			var names []string
			for _, m := range ws.Managers {
				name := s.name.Sprint(m.Name)
				if m.Target != "" {
					name += " as " + m.Target
				}
				names = append(names, name)
			}
			kw := "with"
			if ws.Async {
				kw = "async with"
			}
			fmt.Fprintf(w, "%s:%s %s %s\n", s.file.Sprint(ws.File), s.pos.Sprint(ws.Line), kw, strings.Join(names, ", "))
		}
	})
}
