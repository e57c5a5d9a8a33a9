// Package typescript is the Grammar Adapter for TypeScript.
package typescript

import (
	tsts "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

var kinds = map[string]lang.Kind{
	"program":              lang.KindSourceFile,
	"function_declaration": lang.KindFunction,
	"function":             lang.KindFunction,
	"arrow_function":       lang.KindFunction,
	"method_definition":    lang.KindFunction,
	"statement_block":      lang.KindBlock,
	"if_statement":         lang.KindIf,
	"while_statement":      lang.KindWhile,
	"for_statement":        lang.KindFor,
	"for_in_statement":     lang.KindFor,
	"break_statement":      lang.KindBreak,
	"continue_statement":   lang.KindContinue,
	"return_statement":     lang.KindReturn,
	"expression_statement": lang.KindCallWrapper,
	"call_expression":      lang.KindCallFn,
	"assignment_expression": lang.KindAssignment,
	"variable_declarator":  lang.KindAssignment,
	"comment":              lang.KindTrivia,
	"import_statement":     lang.KindTrivia,
}

func labelRules() []lang.LabelRule {
	specific := []lang.LabelRule{
		{Matcher: "process.env", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "json.parse", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "fs.readfilesync", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "escapehtml", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "he.encode", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "encodeuricomponent", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "child_process.exec", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "child_process.execsync", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "child_process.spawn", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "fs.writefilesync", Kind: model.LabelSink, Caps: model.CapFileIO},
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
		AssignLHS: "left",
		AssignRHS: "right",
	}
}

func init() {
	lang.Register(lang.NewTableAdapter(
		"typescript",
		[]string{"ts", "tsx"},
		tsts.GetLanguage,
		kinds,
		labelRules(),
		fields(),
	))
}
