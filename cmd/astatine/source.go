// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/astatine/textrange"
	"github.com/spf13/cobra"
)

// A source is a parsed source file.
type source struct {
	path string
	text []byte
	root *ast.Node
	idx  *textrange.Index // populated by mark
}

// readFile reads the contents of path, or of stdin if path is "-".
func readFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// loadSource reads and parses the Python source file at path.
func loadSource(cmd *cobra.Command, path string) (*source, error) {
	text, err := readFile(cmd, path)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	root, err := ast.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("parsed source", "file", path, "bytes", len(text))
	return &source{path: path, text: text, root: root}, nil
}

// mark computes the source ranges of s, if they have not already been
// computed, and returns them.
func (s *source) mark() *textrange.Index {
	if s.idx == nil {
		s.idx = textrange.Mark(s.root, s.text)
		slog.Debug("marked ranges", "file", s.path, "nodes", s.idx.Len())
	}
	return s.idx
}

// span returns the first and last lines of n, falling back to its reported
// start line if it has no range.
func (s *source) span(n *ast.Node) (first, last int) {
	if loc, ok := s.mark().Get(n); ok {
		return loc.First.Line, loc.Last.Line
	}
	return n.Line(), n.Line()
}

// eachSource calls f for each parsed source file named by args.
func eachSource(cmd *cobra.Command, args []string, f func(*source) error) error {
	for _, path := range args {
		src, err := loadSource(cmd, path)
		if err != nil {
			return err
		}
		if err := f(src); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
