// Package python is the Grammar Adapter for Python.
package python

import (
	tspy "github.com/smacker/go-tree-sitter/python"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

var kinds = map[string]lang.Kind{
	"module":              lang.KindSourceFile,
	"function_definition": lang.KindFunction,
	"block":               lang.KindBlock,
	"if_statement":        lang.KindIf,
	"while_statement":     lang.KindWhile,
	"for_statement":       lang.KindFor,
	"break_statement":     lang.KindBreak,
	"continue_statement":  lang.KindContinue,
	"return_statement":    lang.KindReturn,
	"expression_statement": lang.KindCallWrapper,
	"call":                lang.KindCallFn,
	"assignment":          lang.KindAssignment,
	"augmented_assignment": lang.KindAssignment,
	"comment":             lang.KindTrivia,
	"import_statement":    lang.KindTrivia,
	"import_from_statement": lang.KindTrivia,
}

func labelRules() []lang.LabelRule {
	specific := []lang.LabelRule{
		{Matcher: "os.getenv", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "os.environ.get", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "open", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "json.loads", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "html.escape", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "shlex.quote", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "urllib.parse.quote", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "subprocess.run", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "subprocess.popen", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "subprocess.call", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "os.system", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "os.popen", Kind: model.LabelSink, Caps: model.CapShellEscape},
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
		"python",
		[]string{"py", "pyi"},
		tspy.GetLanguage,
		kinds,
		labelRules(),
		fields(),
	))
}
