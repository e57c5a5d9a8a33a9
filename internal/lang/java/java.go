// Package java is the Grammar Adapter for Java.
package java

import (
	tsjava "github.com/smacker/go-tree-sitter/java"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

var kinds = map[string]lang.Kind{
	"program":              lang.KindSourceFile,
	"method_declaration":   lang.KindFunction,
	"constructor_declaration": lang.KindFunction,
	"block":                lang.KindBlock,
	"if_statement":         lang.KindIf,
	"while_statement":      lang.KindWhile,
	"for_statement":        lang.KindFor,
	"enhanced_for_statement": lang.KindFor,
	"break_statement":      lang.KindBreak,
	"continue_statement":   lang.KindContinue,
	"return_statement":     lang.KindReturn,
	"expression_statement": lang.KindCallWrapper,
	"method_invocation":    lang.KindCallMethod,
	"object_creation_expression": lang.KindCallFn,
	"assignment_expression": lang.KindAssignment,
	"local_variable_declaration": lang.KindAssignment,
	"line_comment":  lang.KindTrivia,
	"block_comment": lang.KindTrivia,
}

func labelRules() []lang.LabelRule {
	specific := []lang.LabelRule{
		{Matcher: "system.getenv", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "files.readallbytes", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "new filereader", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "objectmapper.readvalue", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "stringescapeutils.escapehtml4", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "encode.forhtml", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "urlencoder.encode", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "runtime.exec", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "processbuilder", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "files.write", Kind: model.LabelSink, Caps: model.CapFileIO},
	}
	return append(specific, lang.SharedLabelRules()...)
}

func fields() lang.FieldNames {
	return lang.FieldNames{
		FuncName: "name",
		FuncBody: "body",
		LoopBody: "body",
		CallFn:   "name",
		CallRecv: "object",
		CallMethod: "name",
	}
}

func init() {
	lang.Register(lang.NewTableAdapter(
		"java",
		[]string{"java"},
		tsjava.GetLanguage,
		kinds,
		labelRules(),
		fields(),
	))
}
