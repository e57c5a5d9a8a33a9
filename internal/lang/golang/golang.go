// Package golang is the Grammar Adapter for Go: it maps tree-sitter-go's
// raw node-kind strings onto the abstract lang.Kind vocabulary and
// supplies Go's label-matching rules.
package golang

import (
	tsgo "github.com/smacker/go-tree-sitter/golang"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

var kinds = map[string]lang.Kind{
	"source_file":           lang.KindSourceFile,
	"function_declaration":  lang.KindFunction,
	"method_declaration":    lang.KindFunction,
	"func_literal":          lang.KindFunction,
	"block":                 lang.KindBlock,
	"if_statement":          lang.KindIf,
	"for_statement":         lang.KindFor,
	"break_statement":       lang.KindBreak,
	"continue_statement":    lang.KindContinue,
	"return_statement":      lang.KindReturn,
	"expression_statement":  lang.KindCallWrapper,
	"call_expression":       lang.KindCallFn,
	"short_var_declaration": lang.KindAssignment,
	"assignment_statement":  lang.KindAssignment,
	"var_declaration":       lang.KindAssignment,
	"comment":               lang.KindTrivia,
	"package_clause":        lang.KindTrivia,
	"import_declaration":    lang.KindTrivia,
}

func labelRules() []lang.LabelRule {
	specific := []lang.LabelRule{
		{Matcher: "os.getenv", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "os.lookupenv", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "ioutil.readfile", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "os.readfile", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "json.unmarshal", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "html.escapestring", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "template.htmlescapestring", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "shellwords.escape", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "url.queryescape", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "exec.command", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "exec.commandcontext", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "os.writefile", Kind: model.LabelSink, Caps: model.CapFileIO},
	}
	return append(specific, lang.SharedLabelRules()...)
}

func fields() lang.FieldNames {
	return lang.FieldNames{
		FuncName: "name",
		FuncBody: "body",
		CondThen: "consequence",
		CondElse: "alternative",
		LoopBody:  "body",
		CallFn:    "function",
		AssignLHS: "left",
		AssignRHS: "right",
	}
}

func init() {
	lang.Register(lang.NewTableAdapter(
		"go",
		[]string{"go"},
		tsgo.GetLanguage,
		kinds,
		labelRules(),
		fields(),
	))
}
