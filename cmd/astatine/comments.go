// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/astatine"
	"github.com/spf13/cobra"
)

var commentsCmd = &cobra.Command{
	Use:   "comments <file>...",
	Short: "Show the leading comments of files",
	Long: `Print the comments that precede the first line of code of each file, such
as a shebang line, an encoding declaration, or a license header.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runComments,
}

type fileComments struct {
	File     string   `json:"file" yaml:"file"`
	Comments []string `json:"comments" yaml:"comments"`
}

func runComments(cmd *cobra.Command, args []string) error {
	var out []fileComments
	for _, path := range args {
		text, err := readFile(cmd, path)
		if err != nil {
			return err
		}
		cs := astatine.ToplevelComments(text)
		if cs == nil {
			cs = []string{}
		}
		out = append(out, fileComments{File: path, Comments: cs})
	}
	return emit(cmd, out, func(w io.Writer, s *styles) {
		for _, fc := range out {
			fmt.Fprintln(w, s.file.Sprint(fc.File))
			for _, c := range fc.Comments {
				fmt.Fprintln(w, " ", s.value.Sprint(c))
			}
		}
	})
}
