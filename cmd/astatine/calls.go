// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/astatine/astutil"
	"github.com/spf13/cobra"
)

var (
	callsFunc   string
	callsParams []string
)

var callsCmd = &cobra.Command{
	Use:   "calls --func <name> <file>...",
	Short: "Show the arguments of calls to a function",
	Long: `Print the arguments of each call to the named function, keyed by
parameter name. The function is named by its dotted name as written at the
call site, for example "os.path.join".

Positional arguments are named by --params if it is given. Otherwise, for a
bare name, the positional parameters of a top-level function of that name in
the file are used, and for a dotted name, those of a method of that name in a
class of the file, without its self or cls parameter. Otherwise only keyword
arguments are named.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalls,
}

func init() {
	callsCmd.Flags().StringVar(&callsFunc, "func", "", "Dotted name of the function (required)")
	callsCmd.Flags().StringSliceVar(&callsParams, "params", nil, "Names of the positional parameters")
	callsCmd.MarkFlagRequired("func")
}

type callSite struct {
	File string            `json:"file" yaml:"file"`
	Line int               `json:"line" yaml:"line"`
	Args map[string]string `json:"args" yaml:"args"` // parameter name to source text
}

func runCalls(cmd *cobra.Command, args []string) error {
	out := []callSite{}
	err := eachSource(cmd, args, func(src *source) error {
		names := posargNames(src.root)
		idx := src.mark()
		for _, call := range ast.Find(src.root, ast.Call) {
			if astutil.DottedName(call.Child("func")) != callsFunc {
				continue
			}
			kw, err := astutil.KwargsFromCall(call, names)
			if err != nil {
				return err
			}
			site := callSite{File: src.path, Line: call.Line(), Args: make(map[string]string)}
			for name, arg := range kw {
				site.Args[name] = idx.Text(arg)
			}
			out = append(out, site)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return emit(cmd, out, func(w io.Writer, s *styles) {
		for _, c := range out {
			var parts []string
			for _, name := range slices.Sorted(maps.Keys(c.Args)) {
				parts = append(parts, s.name.Sprint(name)+"="+s.value.Sprint(c.Args[name]))
			}
			fmt.Fprintf(w, "%s:%s %s(%s)\n", s.file.Sprint(c.File), s.pos.Sprint(c.Line), callsFunc, strings.Join(parts, ", "))
		}
	})
}

// posargNames returns the positional parameter names to use for calls in
// the tree rooted at root. A bare name refers to a function defined at the top
// level of the module. A dotted name may refer to a method of a class defined
// in the module, called through an instance or the class.
func posargNames(root *ast.Node) astutil.PosargNames {
	if len(callsParams) != 0 {
		return astutil.Names(callsParams)
	}
	dot := strings.LastIndex(callsFunc, ".")
	base := callsFunc[dot+1:]
	if dot < 0 {
		if def := findFunc(root.Body(), base); def != nil {
			slog.Debug("using parameters of function", "func", base, "line", def.Line())
			return astutil.ParamsOf(def)
		}
		return astutil.Names(nil)
	}
	for _, cls := range ast.Find(root, ast.ClassDef) {
		if def := findFunc(cls.Body(), base); def != nil {
			slog.Debug("using parameters of method", "class", cls.Name, "func", base, "line", def.Line())
			return astutil.BoundParamsOf(def)
		}
	}
	return astutil.Names(nil)
}

// findFunc returns the first function definition named name among stmts, or
// nil.
func findFunc(stmts []*ast.Node, name string) *ast.Node {
	for _, stmt := range stmts {
		if def := stmt.Definition(); def != nil && def.Kind != ast.ClassDef && def.Name == name {
			return stmt
		}
	}
	return nil
}
