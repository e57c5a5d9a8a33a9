// Package patmatch runs structural tree-sitter queries against a parsed
// file and turns each match's "@target" capture into a diagnostic. It complements
// the taint engine: some findings (a hardcoded credential, a banned API)
// are structural and don't need dataflow at all.
package patmatch

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

// Rule is one structural check: a compiled tree-sitter query whose
// "@target" capture anchors the diagnostic.
type Rule struct {
	ID          string
	Description string
	Query       string
	Severity    model.Severity
}

// Matcher compiles and caches Rule queries per language, since compiling a
// tree-sitter query is not free and rules are reused across every file of
// a given language in a scan.
type Matcher struct {
	mu      sync.RWMutex
	compiled map[string]map[string]*sitter.Query // language name -> rule ID -> query
	rules    map[string][]Rule                   // language name -> rules
}

// New builds a Matcher over the given per-language rule sets.
func New(rulesByLanguage map[string][]Rule) *Matcher {
	return &Matcher{
		compiled: map[string]map[string]*sitter.Query{},
		rules:    rulesByLanguage,
	}
}

// Run executes every compiled rule for adapter's language against tree,
// returning one diagnostic per match. A rule whose query fails to compile
// is logged and skipped rather than aborting the whole run; see
// compileRule.
func (m *Matcher) Run(adapter lang.Adapter, tree *sitter.Tree, source []byte, path string) ([]model.Diagnostic, []error) {
	rules := m.rules[adapter.Name()]
	if len(rules) == 0 {
		return nil, nil
	}

	li := model.NewLineIndex(source)
	var diags []model.Diagnostic
	var errs []error

	for _, r := range rules {
		q, err := m.compileRule(adapter, r)
		if err != nil {
			errs = append(errs, fmt.Errorf("patmatch: rule %s: %w", r.ID, err))
			continue
		}

		cursor := sitter.NewQueryCursor()
		cursor.Exec(q, tree.RootNode())
		for {
			match, ok := cursor.NextMatch()
			if !ok {
				break
			}
			match = cursor.FilterPredicates(match, source)
			for _, cap := range match.Captures {
				if q.CaptureNameForId(cap.Index) != "target" {
					continue
				}
				line, col := li.Position(int(cap.Node.StartByte()))
				diags = append(diags, model.Diagnostic{
					Path:     path,
					Line:     line,
					Column:   col,
					Severity: r.Severity,
					ID:       r.ID,
				})
				break
			}
		}
	}

	return diags, errs
}

func (m *Matcher) compileRule(adapter lang.Adapter, r Rule) (*sitter.Query, error) {
	m.mu.RLock()
	if byID, ok := m.compiled[adapter.Name()]; ok {
		if q, ok := byID[r.ID]; ok {
			m.mu.RUnlock()
			return q, nil
		}
	}
	m.mu.RUnlock()

	q, err := sitter.NewQuery([]byte(r.Query), adapter.SitterLanguage())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.compiled[adapter.Name()] == nil {
		m.compiled[adapter.Name()] = map[string]*sitter.Query{}
	}
	m.compiled[adapter.Name()][r.ID] = q
	m.mu.Unlock()

	return q, nil
}

// ParseWithContext is a thin convenience wrapper kept for callers that
// don't already hold a parsed tree.
func ParseWithContext(ctx context.Context, adapter lang.Adapter, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(adapter.SitterLanguage())
	return parser.ParseCtx(ctx, nil, source)
}
