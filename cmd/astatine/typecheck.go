// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/astatine/astutil"
	"github.com/spf13/cobra"
)

var typecheckCmd = &cobra.Command{
	Use:   "typecheck <file>...",
	Short: "Show blocks guarded by type-checking conditions",
	Long: `Print the if statements whose bodies are only evaluated by static type
checkers, such as "if TYPE_CHECKING:" and "if False:".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTypecheck,
}

type guardBlock struct {
	File  string `json:"file" yaml:"file"`
	First int    `json:"first_line" yaml:"first_line"`
	Last  int    `json:"last_line" yaml:"last_line"`
	Test  string `json:"test" yaml:"test"`
}

func runTypecheck(cmd *cobra.Command, args []string) error {
	out := []guardBlock{}
	err := eachSource(cmd, args, func(src *source) error {
		for _, n := range astutil.TypeCheckingBlocks(src.root) {
			first, last := src.span(n)
			out = append(out, guardBlock{
				File:  src.path,
				First: first,
				Last:  last,
				Test:  src.mark().Text(n.Child("test")),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	return emit(cmd, out, func(w io.Writer, s *styles) {
		for _, g := range out {
			fmt.Fprintf(w, "%s:%s if %s\n", s.file.Sprint(g.File),
				s.pos.Sprintf("%d-%d", g.First, g.Last), s.value.Sprint(g.Test))
		}
	})
}
