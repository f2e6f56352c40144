// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/astatine"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

var (
	// ErrSyntax is reported by Parse when the source is not valid Python.
	ErrSyntax = errors.New("syntax error")

	// ErrInvalidContent is reported by Parse when the source is not valid
	// UTF-8 text.
	ErrInvalidContent = errors.New("invalid content")
)

// A SyntaxError reports the location of the first syntax error found in the
// source. It wraps ErrSyntax.
type SyntaxError struct {
	Pos  Position
	Near string // source text at the error, possibly truncated
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %v: %v near %q", e.Pos, ErrSyntax, e.Near)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// ParseString is a convenience wrapper for Parse that takes a string.
func ParseString(ctx context.Context, src string) (*Node, error) {
	return Parse(ctx, []byte(src))
}

// Parse parses src as a Python module and returns the root of its syntax tree,
// whose Kind is Module.
//
// Where the parser recovered from an error by synthesizing a missing token,
// the corresponding node is marked Implicit and parsing succeeds. Any other
// syntax error is reported as a *SyntaxError.
func Parse(ctx context.Context, src []byte) (*Node, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w: source is not valid UTF-8", ErrInvalidContent)
	}
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := findError(root); bad != nil {
			b := &builder{src: src}
			return nil, &SyntaxError{Pos: *b.pos(bad), Near: truncate(b.text(bad), 32)}
		}
	}
	b := &builder{src: src, names: make(map[string]string)}
	return b.module(root), nil
}

// findError returns the first ERROR node in t, or nil.
func findError(t *sitter.Node) *sitter.Node {
	if t.Type() == "ERROR" {
		return t
	} else if !t.HasError() {
		return nil
	}
	for i := 0; i < int(t.ChildCount()); i++ {
		if c := t.Child(i); c != nil {
			if e := findError(c); e != nil {
				return e
			}
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// A builder converts a tree-sitter parse tree into a tree of *Node values.
type builder struct {
	src   []byte
	names map[string]string
}

// intern returns a shared copy of the string for name. Identifiers recur
// throughout a module, so the tree shares one copy of each.
func (b *builder) intern(name string) string {
	if s, ok := b.names[name]; ok {
		return s
	}
	b.names[name] = name
	return name
}

func (b *builder) text(t *sitter.Node) string { return t.Content(b.src) }

func (b *builder) pos(t *sitter.Node) *Position {
	p := t.StartPoint()
	return &Position{
		Offset:  int(t.StartByte()),
		LineCol: astatine.LineCol{Line: int(p.Row) + 1, Column: int(p.Column)},
	}
}

func (b *builder) node(kind Kind, t *sitter.Node) *Node {
	return &Node{Kind: kind, Start: b.pos(t), Implicit: t.IsMissing()}
}

// each calls f for each named child of t other than comments, along with the
// name of the field it occupies in t (possibly "").
func (b *builder) each(t *sitter.Node, f func(field string, c *sitter.Node)) {
	for i := 0; i < int(t.ChildCount()); i++ {
		c := t.Child(i)
		if c == nil || !c.IsNamed() {
			continue
		}
		switch c.Type() {
		case "comment", "line_continuation":
			continue
		}
		f(t.FieldNameForChild(i), c)
	}
}

// hasToken reports whether t has an anonymous child of the given type.
func (b *builder) hasToken(t *sitter.Node, tok string) bool {
	for i := 0; i < int(t.ChildCount()); i++ {
		if c := t.Child(i); c != nil && !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

// add appends c to the children of n in the given field, if c != nil.
func add(n *Node, field string, c *Node) {
	if c != nil {
		c.Field = field
		n.Children = append(n.Children, c)
	}
}

func (b *builder) module(t *sitter.Node) *Node {
	n := &Node{Kind: Module}
	b.statements(n, t)
	return n
}

func (b *builder) block(t *sitter.Node) *Node {
	if t.Type() != "block" {
		return b.build(t)
	}
	n := b.node(Block, t)
	b.statements(n, t)
	return n
}

func (b *builder) statements(n *Node, t *sitter.Node) {
	b.each(t, func(_ string, c *sitter.Node) { add(n, "body", b.build(c)) })
}

// ident returns an Identifier node for t.
func (b *builder) ident(t *sitter.Node) *Node {
	n := b.node(Identifier, t)
	n.Text = b.intern(b.text(t))
	n.Name = n.Text
	return n
}

// build converts t and its descendants.
func (b *builder) build(t *sitter.Node) *Node {
	switch t.Type() {

	// Wrappers
	case "parenthesized_expression", "type", "case_pattern":
		var inner *Node
		b.each(t, func(_ string, c *sitter.Node) {
			if inner == nil {
				inner = b.build(c)
			}
		})
		return inner

	// Leaves
	case "identifier", "keyword_identifier":
		n := b.node(Name, t)
		n.Text = b.intern(b.text(t))
		n.Name = n.Text
		return n
	case "integer", "float", "ellipsis":
		n := b.node(Constant, t)
		n.Text = b.text(t)
		return n
	case "true", "false", "none":
		n := b.node(Constant, t)
		n.Text = b.text(t)
		n.Name = n.Text
		return n
	case "string":
		n := b.node(String, t)
		n.Text = b.text(t)
		return n
	case "pass_statement":
		return b.node(Pass, t)
	case "break_statement":
		return b.node(Break, t)
	case "continue_statement":
		return b.node(Continue, t)
	case "keyword_separator":
		n := b.node(Separator, t)
		n.Name = "*"
		return n
	case "positional_separator":
		n := b.node(Separator, t)
		n.Name = "/"
		return n
	case "wildcard_import":
		n := b.node(Wildcard, t)
		n.Name = "*"
		return n

	// Statements
	case "block":
		return b.block(t)
	case "expression_statement":
		return b.exprStatement(t)
	case "assignment":
		return b.assignment(t)
	case "function_definition":
		return b.funcDef(t)
	case "class_definition":
		return b.classDef(t)
	case "decorated_definition":
		n := b.node(Decorated, t)
		b.each(t, func(field string, c *sitter.Node) {
			if field == "definition" {
				def := b.build(c)
				add(n, "definition", def)
				if def != nil {
					n.Name = def.Name
				}
			} else {
				add(n, "decorators", b.build(c))
			}
		})
		return n
	case "with_statement":
		return b.withStatement(t)
	case "with_item":
		return b.withItem(t)
	case "try_statement":
		n := b.node(Try, t)
		b.each(t, func(field string, c *sitter.Node) {
			switch c.Type() {
			case "except_clause", "except_group_clause":
				add(n, "handlers", b.except(c))
			case "else_clause":
				add(n, "orelse", b.build(c))
			case "finally_clause":
				add(n, "finalbody", b.build(c))
			default:
				add(n, "body", b.block(c))
			}
		})
		return n
	case "match_statement":
		n := b.node(Match, t)
		b.each(t, func(field string, c *sitter.Node) {
			if field == "body" && c.Type() == "block" {
				b.each(c, func(_ string, cc *sitter.Node) { add(n, "cases", b.build(cc)) })
			} else if field == "body" {
				add(n, "cases", b.build(c))
			} else {
				add(n, "subject", b.build(c))
			}
		})
		return n
	case "import_statement":
		n := b.node(Import, t)
		b.each(t, func(_ string, c *sitter.Node) { add(n, "names", b.alias(c)) })
		return n
	case "import_from_statement", "future_import_statement":
		return b.importFrom(t)
	case "global_statement", "nonlocal_statement":
		kind := Global
		if t.Type() == "nonlocal_statement" {
			kind = Nonlocal
		}
		n := b.node(kind, t)
		b.each(t, func(_ string, c *sitter.Node) { add(n, "names", b.ident(c)) })
		return n
	case "delete_statement":
		n := b.node(Delete, t)
		b.each(t, func(_ string, c *sitter.Node) {
			if c.Type() == "expression_list" {
				b.each(c, func(_ string, cc *sitter.Node) { add(n, "targets", b.build(cc)) })
			} else {
				add(n, "targets", b.build(c))
			}
		})
		return n
	case "assert_statement":
		n := b.node(Assert, t)
		b.each(t, func(_ string, c *sitter.Node) {
			if n.Child("test") == nil {
				add(n, "test", b.build(c))
			} else {
				add(n, "msg", b.build(c))
			}
		})
		return n

	// Expressions
	case "concatenated_string":
		n := b.node(Concat, t)
		b.each(t, func(_ string, c *sitter.Node) { add(n, "values", b.build(c)) })
		return n
	case "attribute":
		n := b.node(Attribute, t)
		b.each(t, func(field string, c *sitter.Node) {
			if field == "attribute" {
				id := b.ident(c)
				n.Name = id.Name
				add(n, "attr", id)
			} else {
				add(n, "value", b.build(c))
			}
		})
		return n
	case "call":
		return b.call(t)
	case "keyword_argument":
		n := b.node(Keyword, t)
		b.each(t, func(field string, c *sitter.Node) {
			if field == "name" {
				id := b.ident(c)
				n.Name = id.Name
				add(n, "arg", id)
			} else {
				add(n, "value", b.build(c))
			}
		})
		return n
	case "boolean_operator":
		return b.boolOp(t)
	case "comparison_operator":
		n := b.node(Compare, t)
		var ops []string
		for i := 0; i < int(t.ChildCount()); i++ {
			if t.FieldNameForChild(i) == "operators" {
				ops = append(ops, t.Child(i).Type())
			}
		}
		n.Name = strings.Join(ops, ",")
		b.each(t, func(_ string, c *sitter.Node) {
			if len(n.Children) == 0 {
				add(n, "left", b.build(c))
			} else {
				add(n, "comparators", b.build(c))
			}
		})
		return n
	case "not_operator":
		n := b.node(UnaryOp, t)
		n.Name = "not"
		b.each(t, func(_ string, c *sitter.Node) { add(n, "operand", b.build(c)) })
		return n
	case "conditional_expression":
		n := b.node(IfExp, t)
		fields := []string{"body", "test", "orelse"}
		b.each(t, func(_ string, c *sitter.Node) {
			if i := len(n.Children); i < len(fields) {
				add(n, fields[i], b.build(c))
			}
		})
		return n
	case "yield":
		n := b.node(Yield, t)
		if b.hasToken(t, "from") {
			n.Name = "from"
		}
		b.each(t, func(_ string, c *sitter.Node) { add(n, "value", b.build(c)) })
		return n
	case "slice":
		return b.slice(t)
	case "expression_list", "pattern_list", "tuple_pattern", "tuple":
		return b.sequence(Tuple, "elts", t)
	case "list", "list_pattern":
		return b.sequence(List, "elts", t)
	case "set":
		return b.sequence(Set, "elts", t)
	case "dictionary":
		return b.sequence(Dict, "items", t)
	case "list_comprehension", "set_comprehension", "dictionary_comprehension", "generator_expression":
		return b.comprehension(t)
	case "parameters", "lambda_parameters":
		return b.parameters(t)
	}

	// Other nodes are converted by rule, or generically.
	r, ok := rules[t.Type()]
	if !ok {
		n := b.node(Other, t)
		n.Name = t.Type()
		b.each(t, func(field string, c *sitter.Node) { add(n, field, b.build(c)) })
		return n
	}
	n := b.node(r.kind, t)
	if r.op != "" {
		for i := 0; i < int(t.ChildCount()); i++ {
			if t.FieldNameForChild(i) == r.op {
				n.Name = t.Child(i).Type()
				break
			}
		}
	}
	if r.async && b.hasToken(t, "async") {
		n.Name = "async"
	}
	b.each(t, func(field string, c *sitter.Node) {
		f, ok := r.fields[field]
		if !ok {
			f = r.rest
		}
		if c.Type() == "block" {
			add(n, f, b.block(c))
		} else {
			add(n, f, b.build(c))
		}
	})
	return n
}

// A rule describes the conversion of a tree-sitter node type that needs no
// special handling.
type rule struct {
	kind   Kind
	fields map[string]string // tree-sitter field → Node field
	rest   string            // field for children not named in fields
	op     string            // tree-sitter field of an operator token, if any
	async  bool              // mark with Name "async" if prefixed by async
}

var rules = map[string]rule{
	"if_statement": {kind: If, fields: map[string]string{
		"condition": "test", "consequence": "body", "alternative": "orelse",
	}},
	"elif_clause": {kind: Elif, fields: map[string]string{
		"condition": "test", "consequence": "body",
	}},
	"else_clause":    {kind: Else, rest: "body"},
	"finally_clause": {kind: Finally, rest: "body"},
	"for_statement": {kind: For, async: true, fields: map[string]string{
		"left": "target", "right": "iter", "body": "body", "alternative": "orelse",
	}},
	"while_statement": {kind: While, fields: map[string]string{
		"condition": "test", "body": "body", "alternative": "orelse",
	}},
	"case_clause": {kind: Case, rest: "pattern", fields: map[string]string{
		"guard": "guard", "consequence": "body",
	}},
	"return_statement": {kind: Return, rest: "value"},
	"raise_statement":  {kind: Raise, rest: "exc", fields: map[string]string{"cause": "cause"}},
	"augmented_assignment": {kind: AugAssign, op: "operator", fields: map[string]string{
		"left": "target", "right": "value",
	}},
	"decorator": {kind: Decorator, rest: "value"},
	"binary_operator": {kind: BinOp, op: "operator", fields: map[string]string{
		"left": "left", "right": "right",
	}},
	"unary_operator":     {kind: UnaryOp, op: "operator", rest: "operand"},
	"lambda":             {kind: Lambda, fields: map[string]string{"parameters": "args", "body": "body"}},
	"named_expression":   {kind: NamedExpr, fields: map[string]string{"name": "target", "value": "value"}},
	"await":              {kind: Await, rest: "value"},
	"subscript":          {kind: Subscript, fields: map[string]string{"value": "value", "subscript": "slice"}},
	"pair":               {kind: Pair, fields: map[string]string{"key": "key", "value": "value"}},
	"list_splat":         {kind: Starred, rest: "value"},
	"list_splat_pattern": {kind: Starred, rest: "value"},
	"dictionary_splat":   {kind: DoubleStarred, rest: "value"},
	"for_in_clause": {kind: Comprehension, async: true, fields: map[string]string{
		"left": "target", "right": "iter",
	}},
	"if_clause": {kind: IfClause, rest: "test"},
}

func (b *builder) exprStatement(t *sitter.Node) *Node {
	var kids []*sitter.Node
	b.each(t, func(_ string, c *sitter.Node) { kids = append(kids, c) })
	if len(kids) == 1 {
		switch kids[0].Type() {
		case "assignment", "augmented_assignment":
			return b.build(kids[0])
		}
	}
	n := b.node(ExprStmt, t)
	if len(kids) == 1 {
		add(n, "value", b.build(kids[0]))
	} else if len(kids) > 1 {
		tup := b.node(Tuple, kids[0])
		for _, c := range kids {
			add(tup, "elts", b.build(c))
		}
		add(n, "value", tup)
	}
	return n
}

// assignment converts an assignment, which may be chained (a = b = c) or
// annotated (a: T = c).
func (b *builder) assignment(t *sitter.Node) *Node {
	if typ := t.ChildByFieldName("type"); typ != nil {
		n := b.node(AnnAssign, t)
		b.each(t, func(field string, c *sitter.Node) {
			switch field {
			case "left":
				add(n, "target", b.build(c))
			case "type":
				add(n, "annotation", b.build(c))
			default:
				add(n, "value", b.build(c))
			}
		})
		return n
	}

	n := b.node(Assign, t)
	for cur := t; cur != nil; {
		var next *sitter.Node
		b.each(cur, func(field string, c *sitter.Node) {
			switch {
			case field == "left":
				add(n, "targets", b.build(c))
			case c.Type() == "assignment" && c.ChildByFieldName("type") == nil:
				next = c
			default:
				add(n, "value", b.build(c))
			}
		})
		cur = next
	}
	return n
}

func (b *builder) funcDef(t *sitter.Node) *Node {
	kind := FunctionDef
	if b.hasToken(t, "async") {
		kind = AsyncFunctionDef
	}
	n := b.node(kind, t)
	b.each(t, func(field string, c *sitter.Node) {
		switch field {
		case "name":
			id := b.ident(c)
			n.Name = id.Name
			add(n, "name", id)
		case "parameters":
			add(n, "args", b.build(c))
		case "return_type":
			add(n, "returns", b.build(c))
		case "body":
			add(n, "body", b.block(c))
		default:
			add(n, field, b.build(c))
		}
	})
	return n
}

func (b *builder) classDef(t *sitter.Node) *Node {
	n := b.node(ClassDef, t)
	b.each(t, func(field string, c *sitter.Node) {
		switch field {
		case "name":
			id := b.ident(c)
			n.Name = id.Name
			add(n, "name", id)
		case "superclasses":
			b.arguments(n, c, "bases")
		case "body":
			add(n, "body", b.block(c))
		default:
			add(n, field, b.build(c))
		}
	})
	return n
}

func (b *builder) call(t *sitter.Node) *Node {
	n := b.node(Call, t)
	b.each(t, func(field string, c *sitter.Node) {
		switch {
		case field == "function":
			add(n, "func", b.build(c))
		case c.Type() == "argument_list":
			b.arguments(n, c, "args")
		default:
			add(n, "args", b.build(c)) // f(x for x in y)
		}
	})
	return n
}

// arguments adds the arguments of an argument list t to n, with positional
// arguments in the pos field and keyword arguments in the keywords field.
func (b *builder) arguments(n *Node, t *sitter.Node, pos string) {
	b.each(t, func(_ string, c *sitter.Node) {
		switch c.Type() {
		case "keyword_argument":
			add(n, "keywords", b.build(c))
		case "dictionary_splat":
			kw := b.node(Keyword, c)
			b.each(c, func(_ string, v *sitter.Node) { add(kw, "value", b.build(v)) })
			add(n, "keywords", kw)
		default:
			add(n, pos, b.build(c))
		}
	})
}

func (b *builder) boolOp(t *sitter.Node) *Node {
	n := b.node(BoolOp, t)
	if op := t.ChildByFieldName("operator"); op != nil {
		n.Name = op.Type()
	}
	b.each(t, func(field string, c *sitter.Node) {
		if field == "left" && c.Type() == "boolean_operator" {
			if op := c.ChildByFieldName("operator"); op != nil && op.Type() == n.Name {
				// Flatten a left-nested chain of the same operator (a or b or c).
				for _, v := range b.boolOp(c).Children {
					add(n, "values", v)
				}
				return
			}
		}
		add(n, "values", b.build(c))
	})
	return n
}

func (b *builder) slice(t *sitter.Node) *Node {
	n := b.node(Slice, t)
	fields := []string{"lower", "upper", "step"}
	i := 0
	for j := 0; j < int(t.ChildCount()); j++ {
		c := t.Child(j)
		if c == nil {
			continue
		} else if c.Type() == ":" {
			i++
		} else if c.IsNamed() && c.Type() != "comment" && i < len(fields) {
			add(n, fields[i], b.build(c))
		}
	}
	return n
}

func (b *builder) sequence(kind Kind, field string, t *sitter.Node) *Node {
	n := b.node(kind, t)
	b.each(t, func(_ string, c *sitter.Node) { add(n, field, b.build(c)) })
	return n
}

func (b *builder) comprehension(t *sitter.Node) *Node {
	kind := map[string]Kind{
		"list_comprehension":       ListComp,
		"set_comprehension":        SetComp,
		"dictionary_comprehension": DictComp,
		"generator_expression":     GeneratorExp,
	}[t.Type()]
	n := b.node(kind, t)
	b.each(t, func(field string, c *sitter.Node) {
		switch c.Type() {
		case "for_in_clause":
			add(n, "generators", b.build(c))
		case "if_clause":
			add(n, "ifs", b.build(c))
		default:
			add(n, "elt", b.build(c))
		}
	})
	return n
}

func (b *builder) withStatement(t *sitter.Node) *Node {
	n := b.node(With, t)
	if b.hasToken(t, "async") {
		n.Name = "async"
	}
	b.each(t, func(field string, c *sitter.Node) {
		switch {
		case c.Type() == "with_clause":
			b.each(c, func(_ string, item *sitter.Node) { add(n, "items", b.build(item)) })
		case field == "body":
			add(n, "body", b.block(c))
		default:
			add(n, field, b.build(c))
		}
	})
	return n
}

func (b *builder) withItem(t *sitter.Node) *Node {
	n := b.node(WithItem, t)
	b.each(t, func(_ string, c *sitter.Node) {
		if c.Type() != "as_pattern" {
			add(n, "context_expr", b.build(c))
			return
		}
		b.each(c, func(field string, cc *sitter.Node) {
			switch {
			case cc.Type() == "as_pattern_target":
				b.each(cc, func(_ string, v *sitter.Node) { add(n, "optional_vars", b.build(v)) })
			case field == "alias":
				add(n, "optional_vars", b.build(cc))
			default:
				add(n, "context_expr", b.build(cc))
			}
		})
	})
	return n
}

func (b *builder) except(t *sitter.Node) *Node {
	n := b.node(Except, t)
	if t.Type() == "except_group_clause" {
		n.Name = "*"
	}
	afterAs := false
	for i := 0; i < int(t.ChildCount()); i++ {
		c := t.Child(i)
		if c == nil {
			continue
		} else if !c.IsNamed() {
			afterAs = afterAs || c.Type() == "as"
			continue
		}
		switch c.Type() {
		case "comment", "line_continuation":
		case "block":
			add(n, "body", b.block(c))
		case "as_pattern":
			b.each(c, func(field string, cc *sitter.Node) {
				switch {
				case cc.Type() == "as_pattern_target":
					b.each(cc, func(_ string, v *sitter.Node) { add(n, "name", b.ident(v)) })
				case field == "alias":
					add(n, "name", b.ident(cc))
				default:
					add(n, "type", b.build(cc))
				}
			})
		default:
			if afterAs && c.Type() == "identifier" {
				add(n, "name", b.ident(c))
			} else {
				add(n, "type", b.build(c))
			}
		}
	}
	return n
}

// alias converts an imported name, with or without an "as" clause.
func (b *builder) alias(t *sitter.Node) *Node {
	n := b.node(Alias, t)
	switch t.Type() {
	case "aliased_import":
		b.each(t, func(field string, c *sitter.Node) {
			if field == "alias" {
				add(n, "asname", b.ident(c))
			} else {
				d := b.dotted(c)
				n.Name = d.Name
				add(n, "name", d)
			}
		})
	case "wildcard_import":
		return b.build(t)
	default:
		d := b.dotted(t)
		n.Name = d.Name
		add(n, "name", d)
	}
	return n
}

// dotted converts a dotted name, or a relative import path.
func (b *builder) dotted(t *sitter.Node) *Node {
	n := b.node(Dotted, t)
	n.Name = b.intern(b.text(t))
	var walk func(*sitter.Node)
	walk = func(t *sitter.Node) {
		b.each(t, func(_ string, c *sitter.Node) {
			switch c.Type() {
			case "identifier":
				add(n, "names", b.ident(c))
			case "dotted_name":
				walk(c)
			}
		})
	}
	walk(t)
	if t.Type() == "identifier" {
		add(n, "names", b.ident(t))
	}
	return n
}

func (b *builder) importFrom(t *sitter.Node) *Node {
	n := b.node(ImportFrom, t)
	if t.Type() == "future_import_statement" {
		n.Name = "__future__"
	}
	b.each(t, func(field string, c *sitter.Node) {
		if field == "module_name" {
			d := b.dotted(c)
			n.Name = d.Name
			if len(d.Children) != 0 {
				add(n, "module", d)
			}
		} else {
			add(n, "names", b.alias(c))
		}
	})
	return n
}

// parameters converts the parameter list of a function or lambda.
func (b *builder) parameters(t *sitter.Node) *Node {
	n := b.node(Parameters, t)
	b.each(t, func(_ string, c *sitter.Node) { add(n, "args", b.param(c)) })
	return n
}

func (b *builder) param(t *sitter.Node) *Node {
	switch t.Type() {
	case "identifier":
		n := b.node(Arg, t)
		id := b.ident(t)
		n.Name = id.Name
		add(n, "arg", id)
		return n
	case "list_splat_pattern", "dictionary_splat_pattern":
		kind := StarArg
		if t.Type() == "dictionary_splat_pattern" {
			kind = KwArg
		}
		n := b.node(kind, t)
		b.each(t, func(_ string, c *sitter.Node) {
			id := b.ident(c)
			n.Name = id.Name
			add(n, "arg", id)
		})
		return n
	case "typed_parameter", "default_parameter", "typed_default_parameter":
		n := b.node(Arg, t)
		b.each(t, func(field string, c *sitter.Node) {
			switch field {
			case "type":
				add(n, "annotation", b.build(c))
			case "value":
				add(n, "default", b.build(c))
			default:
				// The parameter itself, which may be a splat in typed_parameter.
				p := b.param(c)
				n.Kind, n.Name = p.Kind, p.Name
				n.Children = append(n.Children, p.Children...)
			}
		})
		return n
	}
	return b.build(t)
}
