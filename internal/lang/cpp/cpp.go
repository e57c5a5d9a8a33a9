// Package cpp is the Grammar Adapter for C++.
package cpp

import (
	tscpp "github.com/smacker/go-tree-sitter/cpp"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

var kinds = map[string]lang.Kind{
	"translation_unit":     lang.KindSourceFile,
	"function_definition":  lang.KindFunction,
	"compound_statement":   lang.KindBlock,
	"if_statement":         lang.KindIf,
	"while_statement":      lang.KindWhile,
	"for_statement":        lang.KindFor,
	"for_range_loop":       lang.KindFor,
	"break_statement":      lang.KindBreak,
	"continue_statement":   lang.KindContinue,
	"return_statement":     lang.KindReturn,
	"expression_statement": lang.KindCallWrapper,
	"call_expression":      lang.KindCallFn,
	"assignment_expression": lang.KindAssignment,
	"declaration":          lang.KindAssignment,
	"comment":              lang.KindTrivia,
	"preproc_include":      lang.KindTrivia,
}

func labelRules() []lang.LabelRule {
	specific := []lang.LabelRule{
		{Matcher: "getenv", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "ifstream", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "system", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "popen", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "execve", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "ofstream", Kind: model.LabelSink, Caps: model.CapFileIO},
	}
	return append(specific, lang.SharedLabelRules()...)
}

func fields() lang.FieldNames {
	return lang.FieldNames{
		FuncName: "declarator",
		FuncBody: "body",
		LoopBody: "body",
		CallFn:   "function",
	}
}

func init() {
	lang.Register(lang.NewTableAdapter(
		"cpp",
		[]string{"cc", "cpp", "cxx", "hpp", "hh"},
		tscpp.GetLanguage,
		kinds,
		labelRules(),
		fields(),
	))
}
