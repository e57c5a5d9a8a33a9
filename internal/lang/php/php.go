// Package php is the Grammar Adapter for PHP.
package php

import (
	tsphp "github.com/smacker/go-tree-sitter/php"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

var kinds = map[string]lang.Kind{
	"program":              lang.KindSourceFile,
	"function_definition":  lang.KindFunction,
	"method_declaration":   lang.KindFunction,
	"compound_statement":   lang.KindBlock,
	"if_statement":         lang.KindIf,
	"while_statement":      lang.KindWhile,
	"for_statement":        lang.KindFor,
	"foreach_statement":    lang.KindFor,
	"break_statement":      lang.KindBreak,
	"continue_statement":   lang.KindContinue,
	"return_statement":     lang.KindReturn,
	"expression_statement": lang.KindCallWrapper,
	"function_call_expression": lang.KindCallFn,
	"member_call_expression":   lang.KindCallMethod,
	"assignment_expression":    lang.KindAssignment,
	"comment":              lang.KindTrivia,
}

func labelRules() []lang.LabelRule {
	specific := []lang.LabelRule{
		{Matcher: "getenv", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "$_env", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "file_get_contents", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "json_decode", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "htmlspecialchars", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "htmlentities", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "escapeshellarg", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "escapeshellcmd", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "urlencode", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "rawurlencode", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "shell_exec", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "system", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "exec", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "passthru", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "file_put_contents", Kind: model.LabelSink, Caps: model.CapFileIO},
	}
	return append(specific, lang.SharedLabelRules()...)
}

func fields() lang.FieldNames {
	return lang.FieldNames{
		FuncName: "name",
		FuncBody: "body",
		CondThen: "",
		CondElse: "",
		LoopBody: "body",
		CallFn:   "function",
		CallRecv: "object",
		CallMethod: "name",
		AssignLHS: "left",
		AssignRHS: "right",
	}
}

func init() {
	lang.Register(lang.NewTableAdapter(
		"php",
		[]string{"php"},
		tsphp.GetLanguage,
		kinds,
		labelRules(),
		fields(),
	))
}
