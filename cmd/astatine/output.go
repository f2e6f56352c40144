// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// styles holds the color formatters for text output.
type styles struct {
	file  *color.Color
	pos   *color.Color
	kind  *color.Color
	name  *color.Color
	value *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		file:  color.New(color.Bold, color.FgHiWhite),
		pos:   color.New(color.FgHiBlack),
		kind:  color.New(color.FgHiBlue),
		name:  color.New(color.FgHiGreen),
		value: color.New(color.FgYellow),
	}
	// Override color.NoColor, which is set when stdout is not a terminal.
	for _, c := range []*color.Color{s.file, s.pos, s.kind, s.name, s.value} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// useColor reports whether text output should be colorized, according to
// the --color flag.
func useColor() bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
}

// emit writes v to the output of cmd in the selected format. For text
// output, it calls text to render v.
func emit(cmd *cobra.Command, v any, text func(io.Writer, *styles)) error {
	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		text(out, newStyles(useColor()))
		return nil
	}
	return fmt.Errorf("unknown output format: %s", outputFormat)
}
