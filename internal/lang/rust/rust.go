// Package rust is the Grammar Adapter for Rust.
package rust

import (
	tsrust "github.com/smacker/go-tree-sitter/rust"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

var kinds = map[string]lang.Kind{
	"source_file":          lang.KindSourceFile,
	"function_item":        lang.KindFunction,
	"block":                lang.KindBlock,
	"if_expression":        lang.KindIf,
	"loop_expression":      lang.KindInfiniteLoop,
	"while_expression":     lang.KindWhile,
	"for_expression":       lang.KindFor,
	"break_expression":     lang.KindBreak,
	"continue_expression":  lang.KindContinue,
	"return_expression":    lang.KindReturn,
	"expression_statement": lang.KindCallWrapper,
	"call_expression":      lang.KindCallFn,
	"macro_invocation":     lang.KindCallMacro,
	"assignment_expression": lang.KindAssignment,
	"let_declaration":      lang.KindAssignment,
	"line_comment":  lang.KindTrivia,
	"block_comment": lang.KindTrivia,
	"use_declaration": lang.KindTrivia,
}

func labelRules() []lang.LabelRule {
	specific := []lang.LabelRule{
		{Matcher: "env::var", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "fs::read_to_string", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "serde_json::from_str", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "html_escape::encode_text", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "shell_escape::escape", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "urlencoding::encode", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "command::new", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "fs::write", Kind: model.LabelSink, Caps: model.CapFileIO},
	}
	return append(specific, lang.SharedLabelRules()...)
}

func fields() lang.FieldNames {
	return lang.FieldNames{
		FuncName: "name",
		FuncBody: "body",
		CondThen: "consequence",
		CondElse: "alternative",
		LoopBody: "body",
		CallFn:   "function",
		DeclPattern: "pattern",
		DeclValue:   "value",
	}
}

func init() {
	lang.Register(lang.NewTableAdapter(
		"rust",
		[]string{"rs"},
		tsrust.GetLanguage,
		kinds,
		labelRules(),
		fields(),
	))
}
