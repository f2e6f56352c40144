// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

// Kind identifies the syntactic variant of a Node.
type Kind byte

// Constants defining the valid Kind values.
const (
	Other Kind = iota // a construct with no dedicated kind

	// Structure
	Module     // a complete source unit
	Block      // an indented suite of statements
	Parameters // a function or lambda parameter list
	Arg        // a named parameter
	StarArg    // a *args parameter
	KwArg      // a **kwargs parameter
	Separator  // a bare * or / in a parameter list

	// Compound statements
	FunctionDef
	AsyncFunctionDef
	ClassDef
	Decorated // a decorated function or class definition
	Decorator
	If
	Elif
	Else
	For
	While
	With
	WithItem
	Try
	Except
	Finally
	Match
	Case

	// Simple statements
	Return
	Delete
	Raise
	Assert
	Import
	ImportFrom
	Alias    // an imported name, with optional "as" alias
	Dotted   // a dotted module name
	Wildcard // the * of "from m import *"
	Global
	Nonlocal
	ExprStmt
	Assign
	AugAssign
	AnnAssign
	Pass
	Break
	Continue

	// Expressions
	Name       // a name in expression context
	Identifier // a name that is not an expression (attribute, parameter, keyword)
	Constant   // a number, True, False, None, or ...
	String     // a string or bytes literal, including f-strings
	Concat     // implicitly concatenated string literals
	Attribute
	Call
	Keyword // a keyword argument, or **mapping in a call
	Starred
	DoubleStarred
	Subscript
	Slice
	Tuple
	List
	Set
	Dict
	Pair // a key: value item of a dict
	BinOp
	UnaryOp
	BoolOp
	Compare
	IfExp
	Lambda
	NamedExpr
	Await
	Yield
	ListComp
	SetComp
	DictComp
	GeneratorExp
	Comprehension // a for ... in ... clause
	IfClause      // an if clause of a comprehension

	numKinds
)

var kindStr = [...]string{
	Other:            "Other",
	Module:           "Module",
	Block:            "Block",
	Parameters:       "Parameters",
	Arg:              "Arg",
	StarArg:          "StarArg",
	KwArg:            "KwArg",
	Separator:        "Separator",
	FunctionDef:      "FunctionDef",
	AsyncFunctionDef: "AsyncFunctionDef",
	ClassDef:         "ClassDef",
	Decorated:        "Decorated",
	Decorator:        "Decorator",
	If:               "If",
	Elif:             "Elif",
	Else:             "Else",
	For:              "For",
	While:            "While",
	With:             "With",
	WithItem:         "WithItem",
	Try:              "Try",
	Except:           "Except",
	Finally:          "Finally",
	Match:            "Match",
	Case:             "Case",
	Return:           "Return",
	Delete:           "Delete",
	Raise:            "Raise",
	Assert:           "Assert",
	Import:           "Import",
	ImportFrom:       "ImportFrom",
	Alias:            "Alias",
	Dotted:           "Dotted",
	Wildcard:         "Wildcard",
	Global:           "Global",
	Nonlocal:         "Nonlocal",
	ExprStmt:         "ExprStmt",
	Assign:           "Assign",
	AugAssign:        "AugAssign",
	AnnAssign:        "AnnAssign",
	Pass:             "Pass",
	Break:            "Break",
	Continue:         "Continue",
	Name:             "Name",
	Identifier:       "Identifier",
	Constant:         "Constant",
	String:           "String",
	Concat:           "Concat",
	Attribute:        "Attribute",
	Call:             "Call",
	Keyword:          "Keyword",
	Starred:          "Starred",
	DoubleStarred:    "DoubleStarred",
	Subscript:        "Subscript",
	Slice:            "Slice",
	Tuple:            "Tuple",
	List:             "List",
	Set:              "Set",
	Dict:             "Dict",
	Pair:             "Pair",
	BinOp:            "BinOp",
	UnaryOp:          "UnaryOp",
	BoolOp:           "BoolOp",
	Compare:          "Compare",
	IfExp:            "IfExp",
	Lambda:           "Lambda",
	NamedExpr:        "NamedExpr",
	Await:            "Await",
	Yield:            "Yield",
	ListComp:         "ListComp",
	SetComp:          "SetComp",
	DictComp:         "DictComp",
	GeneratorExp:     "GeneratorExp",
	Comprehension:    "Comprehension",
	IfClause:         "IfClause",
}

func (k Kind) String() string {
	if k >= numKinds {
		return kindStr[Other]
	}
	return kindStr[k]
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k, s := range kindStr {
		m[s] = Kind(k)
	}
	return m
}()

// ParseKind returns the Kind whose name is s, and reports whether s is a
// valid kind name.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindByName[s]
	return k, ok
}

// Kinds returns the number of distinct Kind values. Valid kinds are in the
// range 0 to Kinds()-1.
func Kinds() int { return int(numKinds) }

// IsStatement reports whether k is a statement kind.
// Clauses such as Elif or Except are not statements.
func (k Kind) IsStatement() bool {
	switch k {
	case Decorator, Elif, Else, WithItem, Except, Finally, Case, Alias, Dotted, Wildcard:
		return false
	}
	return FunctionDef <= k && k <= Continue
}

// IsDefinition reports whether k is a function or class definition.
func (k Kind) IsDefinition() bool { return k == FunctionDef || k == AsyncFunctionDef || k == ClassDef }
