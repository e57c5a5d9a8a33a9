// Package ruby is the Grammar Adapter for Ruby.
package ruby

import (
	tsruby "github.com/smacker/go-tree-sitter/ruby"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

var kinds = map[string]lang.Kind{
	"program":              lang.KindSourceFile,
	"method":               lang.KindFunction,
	"body_statement":       lang.KindBlock,
	"if":                   lang.KindIf,
	"while":                lang.KindWhile,
	"for":                  lang.KindFor,
	"break":                lang.KindBreak,
	"next":                 lang.KindContinue,
	"return":               lang.KindReturn,
	"call":                 lang.KindCallMethod,
	"method_call":          lang.KindCallFn,
	"assignment":           lang.KindAssignment,
	"comment":              lang.KindTrivia,
}

func labelRules() []lang.LabelRule {
	specific := []lang.LabelRule{
		{Matcher: "env[", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "env.fetch", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "file.read", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "json.parse", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "cgi.escapehtml", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "shellwords.escape", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "erb::util.url_encode", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "system", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "` `", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "io.popen", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "file.write", Kind: model.LabelSink, Caps: model.CapFileIO},
	}
	return append(specific, lang.SharedLabelRules()...)
}

func fields() lang.FieldNames {
	return lang.FieldNames{
		FuncName: "name",
		FuncBody: "body",
		LoopBody: "body",
		CallFn:   "method",
		CallRecv: "receiver",
		CallMethod: "method",
		AssignLHS: "left",
		AssignRHS: "right",
	}
}

func init() {
	lang.Register(lang.NewTableAdapter(
		"ruby",
		[]string{"rb"},
		tsruby.GetLanguage,
		kinds,
		labelRules(),
		fields(),
	))
}
