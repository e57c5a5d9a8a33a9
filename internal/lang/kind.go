// Package lang is the Grammar Adapter: it hides every per-grammar raw
// node-kind string behind a small closed vocabulary of abstract Kinds, and
// holds each language's label-matching rules. No grammar-specific string
// may leak past this package into the CFG builder.
package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
)

// Kind is the closed abstract vocabulary the CFG builder dispatches on.
type Kind uint8

const (
	KindIf Kind = iota
	KindInfiniteLoop
	KindWhile
	KindFor
	KindLoopBody
	KindCallFn
	KindCallMethod
	KindCallMacro
	KindBreak
	KindContinue
	KindReturn
	KindBlock
	KindSourceFile
	KindFunction
	KindAssignment
	KindCallWrapper
	KindTrivia
	KindOther
)

func (k Kind) String() string {
	names := [...]string{
		"If", "InfiniteLoop", "While", "For", "LoopBody", "CallFn", "CallMethod",
		"CallMacro", "Break", "Continue", "Return", "Block", "SourceFile",
		"Function", "Assignment", "CallWrapper", "Trivia", "Other",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Other"
}

// IsCall reports whether k is one of the three call-like kinds.
func (k Kind) IsCall() bool {
	return k == KindCallFn || k == KindCallMethod || k == KindCallMacro
}

// IsLoopHeader reports whether k opens a loop construct.
func (k Kind) IsLoopHeader() bool {
	return k == KindInfiniteLoop || k == KindWhile || k == KindFor
}

// LabelRule matches head-normalized node text against a matcher string and,
// on a match, assigns the given label.
type LabelRule struct {
	// Matcher is compared lowercase. A trailing "_" means "head starts
	// with this prefix" (e.g. "sanitize_"); otherwise the rule matches
	// "head ends with this suffix at a segment boundary" (preceded by
	// nothing, '.', or ':').
	Matcher string
	Kind    model.LabelKind
	Caps    model.Cap
}

// Adapter is the per-language table the Grammar Adapter exposes.
type Adapter interface {
	// Name is the language slug used in configuration and the cache
	// schema (e.g. "go", "python").
	Name() string
	// Extensions lists file extensions (without the leading dot,
	// lowercase) this adapter claims.
	Extensions() []string
	// SitterLanguage returns the compiled tree-sitter grammar.
	SitterLanguage() *sitter.Language
	// Lookup maps one raw tree-sitter node-kind string to an abstract
	// Kind. Total: unknown kinds map to KindOther.
	Lookup(rawKind string) Kind
	// LabelRules returns this language's label-matching rules in fixed,
	// deterministic evaluation order. First match wins.
	LabelRules() []LabelRule
	// FieldNames gives the tree-sitter field names this adapter's
	// lowering logic reads, so the CFG builder can stay grammar-agnostic
	// about which literal field carries what (e.g. the "name" field for
	// a function, "receiver"/"method" for a method call).
	Fields() FieldNames
}

// FieldNames names the tree-sitter fields the CFG builder consults when
// lowering Function/If/Loop/Call-shaped nodes for this language.
type FieldNames struct {
	FuncName    string // field carrying a function's name, e.g. "name"
	FuncBody    string // field carrying a function's body block
	CondThen    string // the "then" block field on an If, if named
	CondElse    string // the "else" block field on an If, if named
	LoopBody    string // field carrying a loop's body, else first Block child
	CallFn      string // field carrying a plain call's callee
	CallRecv    string // field carrying a method call's receiver
	CallMethod  string // field carrying a method call's method name
	AssignLHS   string // field carrying an assignment's left-hand side
	AssignRHS   string // field carrying an assignment's right-hand side
	DeclPattern string // field carrying a bind-pattern's pattern
	DeclValue   string // field carrying a bind-pattern's initializer
}

// HeadNormalize strips everything from the first '(' or '<' onward, trims
// whitespace, and lowercases -- the normalization every label rule is
// matched against.
func HeadNormalize(text string) string {
	cut := len(text)
	if i := strings.IndexByte(text, '('); i >= 0 && i < cut {
		cut = i
	}
	if i := strings.IndexByte(text, '<'); i >= 0 && i < cut {
		cut = i
	}
	head := strings.TrimSpace(text[:cut])
	return strings.ToLower(head)
}

// Classify applies a, in rule order, to text's head-normalized form.
// Returns nil if no rule matches.
func Classify(a Adapter, text string) *model.DataLabel {
	head := HeadNormalize(text)
	if head == "" {
		return nil
	}
	for _, r := range a.LabelRules() {
		m := strings.ToLower(r.Matcher)
		if m == "" {
			continue
		}
		if strings.HasSuffix(m, "_") {
			if strings.HasPrefix(head, m) {
				lbl := model.DataLabel{Kind: r.Kind, Caps: r.Caps}
				return &lbl
			}
			continue
		}
		if strings.HasSuffix(head, m) {
			idx := len(head) - len(m)
			if idx == 0 || head[idx-1] == '.' || head[idx-1] == ':' {
				lbl := model.DataLabel{Kind: r.Kind, Caps: r.Caps}
				return &lbl
			}
		}
	}
	return nil
}
