package lang

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
)

// TableAdapter is a data-driven Adapter: a raw-kind map plus a label-rules
// slice, exactly the "tiny adapter (raw-kind map + label-rules array)"
// shape every language package below builds and registers. It exists so
// each language file stays a table, not a re-implementation of Adapter's
// plumbing.
type TableAdapter struct {
	name       string
	extensions []string
	language   func() *sitter.Language
	kinds      map[string]Kind
	rules      []LabelRule
	fields     FieldNames
}

func NewTableAdapter(name string, extensions []string, language func() *sitter.Language, kinds map[string]Kind, rules []LabelRule, fields FieldNames) *TableAdapter {
	return &TableAdapter{
		name:       name,
		extensions: extensions,
		language:   language,
		kinds:      kinds,
		rules:      rules,
		fields:     fields,
	}
}

func (t *TableAdapter) Name() string                     { return t.name }
func (t *TableAdapter) Extensions() []string             { return t.extensions }
func (t *TableAdapter) SitterLanguage() *sitter.Language { return t.language() }
func (t *TableAdapter) LabelRules() []LabelRule          { return t.rules }
func (t *TableAdapter) Fields() FieldNames               { return t.fields }

func (t *TableAdapter) Lookup(rawKind string) Kind {
	if k, ok := t.kinds[rawKind]; ok {
		return k
	}
	return KindOther
}

// SharedLabelRules are the capability source/sanitizer/sink rules shared
// by every language adapter below. The matcher vocabulary is largely
// language-agnostic (env/shell/html/url/json/file-io idioms reuse the same
// identifier fragments across ecosystems); only the raw-kind tables differ
// per grammar, so each language file layers its own rules on top of this
// shared baseline via append.
func SharedLabelRules() []LabelRule {
	return []LabelRule{
		{Matcher: "sanitize_shell_", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "sanitize_html_", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "sanitize_url_", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "html_escape", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "escapehtml", Kind: model.LabelSanitizer, Caps: model.CapHTMLEscape},
		{Matcher: "shell_escape", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "shellescape", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "shlex.quote", Kind: model.LabelSanitizer, Caps: model.CapShellEscape},
		{Matcher: "url_encode", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "urlencode", Kind: model.LabelSanitizer, Caps: model.CapURLEncode},
		{Matcher: "source_env_", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "getenv", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "os.environ", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "env::var", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "process.env", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "json.parse", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "json_decode", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "readfile", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "read_to_string", Kind: model.LabelSource, Caps: model.CapAll},
		{Matcher: "exec.command", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "command::new", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "subprocess.run", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "subprocess.popen", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "child_process.exec", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "runtime.exec", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "processbuilder", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "system", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "popen", Kind: model.LabelSink, Caps: model.CapShellEscape},
		{Matcher: "writefile", Kind: model.LabelSink, Caps: model.CapFileIO},
		{Matcher: "write_all", Kind: model.LabelSink, Caps: model.CapFileIO},
	}
}
