// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package astutil_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/creachadair/astatine/ast"
	"github.com/creachadair/astatine/astutil"
	"github.com/creachadair/astatine/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestIsTypeChecking(t *testing.T) {
	tests := []struct {
		name, src string
		want      bool
	}{
		{"False", "if False:\n\tpass", true},
		{"TYPE_CHECKING", "from typing import TYPE_CHECKING\nif TYPE_CHECKING:\n\tpass", true},
		{"typing.TYPE_CHECKING", "import typing\nif typing.TYPE_CHECKING:\n\tpass", true},
		{"BoolOp", "import typing\nimport foo\nif typing.TYPE_CHECKING or foo.BAR:\n\tpass", true},
		{"BoolOpAnd", "if DEBUG and TYPE_CHECKING:\n\tpass", true},
		{"sys.version_info", "import sys\nif sys.version_info < (3, 10):\n\tpass", false},
		{"True", "if True:\n\tpass", false},
		{"Not", "if not TYPE_CHECKING:\n\tpass", false},
		{"OtherName", "if CHECKING:\n\tpass", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := testutil.MustParse(t, tc.src)
			ifs := ast.Find(root, ast.If)
			if len(ifs) == 0 {
				t.Fatal("No if statement found")
			}
			for _, n := range ifs {
				if got := astutil.IsTypeChecking(n); got != tc.want {
					t.Errorf("IsTypeChecking(%v): got %v, want %v", n.Child("test"), got, tc.want)
				}
				// The condition alone gives the same answer.
				if got := astutil.IsTypeChecking(n.Child("test")); got != tc.want {
					t.Errorf("IsTypeChecking(test): got %v, want %v", got, tc.want)
				}
			}
		})
	}
	if astutil.IsTypeChecking(nil) {
		t.Error("IsTypeChecking(nil): got true, want false")
	}
}

func TestTypeCheckingBlocks(t *testing.T) {
	root := testutil.MustParse(t, `if TYPE_CHECKING:
    import x
if x:
    pass
elif False:
    pass
def f():
    if typing.TYPE_CHECKING:
        pass
`)
	var lines []int
	for _, n := range astutil.TypeCheckingBlocks(root) {
		lines = append(lines, n.Line())
	}
	if diff := cmp.Diff([]int{1, 8}, lines); diff != "" {
		t.Errorf("Blocks (-want, +got):\n%s", diff)
	}
}

func TestDocstringLine(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		child int
		want  int
	}{
		{"class", "class F:\n\t'''\n\tA Docstring\n\t'''", 0, 2},
		{"class_with_imports", "import collections\nimport typing\n\nclass F:\n\t'''\n\tA Docstring\n\t'''", 2, 5},
		{"class_with_imports_and_comments",
			"# coding=utf-8\nimport collections\nimport typing\n\nclass F:\n\t'''\n\tA Docstring\n\t'''", 2, 6},
		{"function", "def foo():\n\t'''\n\tA Docstring\n\t'''", 0, 2},
		{"function_with_imports", "import collections\nimport typing\n\ndef foo():\n\t'''\n\tA Docstring\n\t'''", 2, 5},
		{"function_with_imports_and_comments",
			"# coding=utf-8\nimport collections\nimport typing\n\ndef foo():\n\t'''\n\tA Docstring\n\t'''", 2, 6},
		{"decorated", "@cache\nasync def foo():\n    \"\"\"Doc.\"\"\"\n", 0, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := testutil.MustParse(t, tc.src)
			node := root.Body()[tc.child]
			got, ok := astutil.DocstringLine(node)
			if !ok {
				t.Fatalf("DocstringLine(%v): no docstring found", node)
			}
			if got != tc.want {
				t.Errorf("DocstringLine(%v): got %d, want %d", node, got, tc.want)
			}
		})
	}
}

func TestDocstring(t *testing.T) {
	tests := []struct {
		name, src string
		want      string
		ok        bool
	}{
		{"Module", "\"\"\"Module doc.\"\"\"\nx = 1\n", "Module doc.", true},
		{"Concat", "def f():\n    'Hello, ' \"world\\x21\"\n", "Hello, world!", true},
		{"Raw", "class C:\n    r'''a\\nb'''\n", `a\nb`, true},
		{"Formatted", "def f():\n    f'no {x}'\n", "", false},
		{"Bytes", "def f():\n    b'no'\n", "", false},
		{"NotFirst", "def f():\n    x = 1\n    'no'\n", "", false},
		{"NoBody", "x = 1\n", "", false},
		{"Call", "def f():\n    print('no')\n", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := testutil.MustParse(t, tc.src)
			node := root
			if tc.name != "Module" && tc.name != "NoBody" {
				node = root.Body()[0]
			}
			got, ok := astutil.Docstring(node)
			if got != tc.want || ok != tc.ok {
				t.Errorf("Docstring(%v): got (%q, %v), want (%q, %v)", node, got, ok, tc.want, tc.ok)
			}
			if _, ok := astutil.DocstringLine(node); ok != tc.ok {
				t.Errorf("DocstringLine(%v): got %v, want %v", node, ok, tc.ok)
			}
		})
	}

	// Statements other than definitions have no docstrings.
	root := testutil.MustParse(t, "if x:\n    'no'\n")
	if _, ok := astutil.DocstringLine(root.Body()[0]); ok {
		t.Error("DocstringLine(If): got true, want false")
	}
	if _, ok := astutil.DocstringLine(nil); ok {
		t.Error("DocstringLine(nil): got true, want false")
	}
}

// argText renders the arguments of a kwargs map as source text.
func argText(m map[string]*ast.Node) map[string]string {
	out := make(map[string]string)
	for k, v := range m {
		out[k] = v.Text
		if v.Text == "" {
			out[k] = v.String()
		}
	}
	return out
}

func TestKwargsFromCall(t *testing.T) {
	defs := testutil.MustParse(t, `
def demo_function(arg1, arg2, arg3):
    pass

def mixed(a, /, b=1, *args, c, **kw):
    pass

def kwonly(a, *, b):
    pass

@decorated
def typed(a: int, *rest: str):
    pass

square = lambda x, y=2: x ** y

class C:
    pass

class Widget:
    def resize(self, width, height=0):
        pass

    @staticmethod
    def make(size, color):
        pass
`)
	body := defs.Body()
	lambda := testutil.MustFind(t, body[4], ast.Lambda)
	method, static := body[6].Body()[0], body[6].Body()[1]

	tests := []struct {
		name  string
		src   string
		names astutil.PosargNames
		want  map[string]string
	}{
		{"Names", "foo(1, 2, 3)", astutil.Names{"arg1", "arg2", "arg3"},
			map[string]string{"arg1": "1", "arg2": "2", "arg3": "3"}},
		{"Function", "foo(1, 2, 3)", astutil.ParamsOf(body[0]),
			map[string]string{"arg1": "1", "arg2": "2", "arg3": "3"}},
		{"Keywords", "foo(x=1, y='a')", astutil.Names{"x"},
			map[string]string{"x": "1", "y": "'a'"}},
		{"PositionalWins", "foo(1, a=2, b=3)", astutil.Names{"a"},
			map[string]string{"a": "1", "b": "3"}},
		{"ExtraArgs", "foo(1, 2, 3)", astutil.Names{"a"},
			map[string]string{"a": "1"}},
		{"FewArgs", "foo(1)", astutil.Names{"a", "b"},
			map[string]string{"a": "1"}},
		{"Unpacked", "foo(*xs, **kws, k=v)", astutil.Names{"a"},
			map[string]string{"a": "Starred", "k": "v"}},
		{"Mixed", "mixed(1, 2, 3, c=4)", astutil.ParamsOf(body[1]),
			map[string]string{"a": "1", "b": "2", "c": "4"}},
		{"KeywordOnly", "kwonly(1, 2)", astutil.ParamsOf(body[2]),
			map[string]string{"a": "1"}},
		{"Decorated", "typed(1, 2)", astutil.ParamsOf(body[3]),
			map[string]string{"a": "1"}},
		{"Lambda", "square(3, 4)", astutil.ParamsOf(lambda),
			map[string]string{"x": "3", "y": "4"}},
		{"Method", "w.resize(1, 2)", astutil.ParamsOf(method),
			map[string]string{"self": "1", "width": "2"}},
		{"BoundMethod", "w.resize(1, 2)", astutil.BoundParamsOf(method),
			map[string]string{"width": "1", "height": "2"}},
		{"StaticMethod", "Widget.make(1, 2)", astutil.BoundParamsOf(static),
			map[string]string{"size": "1", "color": "2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			call := testutil.MustFind(t, testutil.MustParse(t, tc.src), ast.Call)
			got, err := astutil.KwargsFromCall(call, tc.names)
			if err != nil {
				t.Fatalf("KwargsFromCall: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, argText(got)); diff != "" {
				t.Errorf("Arguments (-want, +got):\n%s", diff)
			}
		})
	}

	t.Run("Errors", func(t *testing.T) {
		root := testutil.MustParse(t, "x = foo(1)\n")
		if got, err := astutil.KwargsFromCall(root.Body()[0], astutil.Names{"a"}); err == nil {
			t.Errorf("KwargsFromCall(Assign): got %v, want error", got)
		} else {
			t.Logf("Got expected error: %v", err)
		}
		call := testutil.MustFind(t, root, ast.Call)
		if got, err := astutil.KwargsFromCall(call, astutil.ParamsOf(body[5])); err == nil {
			t.Errorf("KwargsFromCall(class): got %v, want error", got)
		} else {
			t.Logf("Got expected error: %v", err)
		}
	})
}

func TestAttributeName(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"x", []string{"x"}},
		{"a.b.c", []string{"a", "b", "c"}},
		{"os.path.join", []string{"os", "path", "join"}},
		{"(a).b", []string{"a", "b"}},
		{"f().b", []string{"b"}},
		{"a[0].b", []string{"b"}},
		{"1", nil},
	}
	for _, tc := range tests {
		root := testutil.MustParse(t, tc.src)
		expr := root.Body()[0].Child("value")
		got := slices.Collect(astutil.AttributeName(expr))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("AttributeName(%q) (-want, +got):\n%s", tc.src, diff)
		}
		if got, want := astutil.DottedName(expr), strings.Join(tc.want, "."); got != want {
			t.Errorf("DottedName(%q): got %q, want %q", tc.src, got, want)
		}
	}

	// Stopping early ends the iteration.
	expr := testutil.MustParse(t, "a.b.c").Body()[0].Child("value")
	for name := range astutil.AttributeName(expr) {
		if name != "a" {
			t.Errorf("First name: got %q, want a", name)
		}
		break
	}
}

func TestContextManagers(t *testing.T) {
	root := testutil.MustParse(t, `
with open(path) as f, lock, a.b.c(x), get()[0], lock as l:
    pass
`)
	with := testutil.MustFind(t, root, ast.With)
	cms := astutil.ContextManagers(with)
	if diff := cmp.Diff([]string{"open", "lock", "a.b.c"}, cms.Names()); diff != "" {
		t.Errorf("Names (-want, +got):\n%s", diff)
	}

	item := cms.Lookup("open")
	if item == nil || item.Kind != ast.WithItem {
		t.Fatalf("Lookup(open): got %v, want WithItem", item)
	}
	if v := item.Child("optional_vars"); v == nil || v.Name != "f" {
		t.Errorf("Lookup(open): target is %v, want f", v)
	}
	if v := cms.Lookup("lock").Child("optional_vars"); v == nil || v.Name != "l" {
		t.Errorf("Lookup(lock): target is %v, want l", v)
	}
	if got := cms.Lookup("nonesuch"); got != nil {
		t.Errorf("Lookup(nonesuch): got %v, want nil", got)
	}

	if got := astutil.ContextManagers(root); got != nil {
		t.Errorf("ContextManagers(Module): got %v, want nil", got)
	}
}
