// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/mds/mapset"
	"github.com/spf13/cobra"
)

var (
	rangesKinds []string
	rangesLine  int
	rangesText  bool
)

var rangesCmd = &cobra.Command{
	Use:   "ranges <file>...",
	Short: "Show the source ranges of syntax nodes",
	Long: `Print the source range of each node of the syntax tree of each file, in
document order. Ranges are written as line:column-line:column, where lines are
numbered from 1 and columns are byte offsets from 0.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRanges,
}

func init() {
	rangesCmd.Flags().StringSliceVar(&rangesKinds, "kind", nil, "Show only nodes of these kinds (e.g. Call,FunctionDef)")
	rangesCmd.Flags().IntVar(&rangesLine, "line", 0, "Show only nodes whose ranges include this line")
	rangesCmd.Flags().BoolVar(&rangesText, "text", false, "Include the source text of each node")
}

type fileRanges struct {
	File  string      `json:"file" yaml:"file"`
	First int         `json:"first_line" yaml:"first_line"`
	Last  int         `json:"last_line" yaml:"last_line"`
	Nodes []nodeRange `json:"nodes" yaml:"nodes"`
}

type nodeRange struct {
	Kind  string `json:"kind" yaml:"kind"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	Depth int    `json:"depth" yaml:"depth"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
}

func runRanges(cmd *cobra.Command, args []string) error {
	var want []ast.Kind
	for _, s := range rangesKinds {
		k, ok := ast.ParseKind(s)
		if !ok {
			return fmt.Errorf("unknown node kind %q", s)
		}
		want = append(want, k)
	}
	kinds := mapset.New(want...)

	var out []fileRanges
	err := eachSource(cmd, args, func(src *source) error {
		idx := src.mark()
		fr := fileRanges{File: src.path, Nodes: []nodeRange{}}
		if b, ok := idx.Bounds(); ok {
			fr.First, fr.Last = b.First, b.Last
		}

		var walk func(*ast.Node, int)
		walk = func(n *ast.Node, depth int) {
			loc, ok := idx.Get(n)
			if !ok {
				return
			}
			keep := (kinds.IsEmpty() || kinds.Has(n.Kind)) && (rangesLine == 0 || loc.HasLine(rangesLine))
			if keep {
				nr := nodeRange{
					Kind:  n.Kind.String(),
					Name:  n.Name,
					Field: n.Field,
					Depth: depth,
					Start: loc.First.String(),
					End:   loc.Last.String(),
				}
				if rangesText {
					nr.Text = idx.Text(n)
				}
				fr.Nodes = append(fr.Nodes, nr)
			}
			for _, c := range n.Children {
				walk(c, depth+1)
			}
		}
		walk(src.root, 0)
		out = append(out, fr)
		return nil
	})
	if err != nil {
		return err
	}
	return emit(cmd, out, func(w io.Writer, s *styles) {
		for _, fr := range out {
			fmt.Fprintf(w, "%s (lines %d-%d)\n", s.file.Sprint(fr.File), fr.First, fr.Last)
			for _, nr := range fr.Nodes {
				indent := strings.Repeat("  ", nr.Depth)
				label := s.kind.Sprint(nr.Kind)
				if nr.Name != "" {
					label += " " + s.name.Sprint(nr.Name)
				}
				if nr.Field != "" {
					label = nr.Field + "=" + label
				}
				fmt.Fprintf(w, "%s%s %s\n", indent, s.pos.Sprintf("%s-%s", nr.Start, nr.End), label)
				if nr.Text != "" {
					fmt.Fprintf(w, "%s  %s\n", indent, s.value.Sprintf("%q", nr.Text))
				}
			}
		}
	})
}
