// Package analyzer implements the single-file analysis contract every
// scan worker runs: read, guess-binary-and-skip, parse, build a CFG,
// run the taint engine and the pattern matcher, then merge and
// dedupe the result.
package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/engine/patmatch"
	"github.com/morfx-security/govulnscan/internal/engine/taint"
	"github.com/morfx-security/govulnscan/internal/lang"

	"github.com/morfx-security/govulnscan/internal/engine/cfgbuild"
)

// binaryGuardThreshold is the NUL-byte fraction above which a file is
// treated as binary and skipped, matching the classic "is this binary"
// heuristic grep/git use. The fraction is computed over the whole file,
// not a leading sample, so NUL bytes past the first few KB of an
// otherwise text-looking file still trigger the skip.
const binaryGuardThreshold = 0.01

// Result is one file's analysis outcome.
type Result struct {
	Path        string
	Language    string
	Diagnostics []model.Diagnostic
	Summaries   model.FunctionSummaries
	Skipped     bool
	SkipReason  string
}

// Analyzer owns the per-language parser pool and the compiled pattern
// matcher shared across every file in a scan run.
type Analyzer struct {
	matcher *patmatch.Matcher
	parsers sync.Map // language name -> *sync.Pool of *sitter.Parser
}

// New builds an Analyzer with the given structural rule set.
func New(rules map[string][]patmatch.Rule) *Analyzer {
	return &Analyzer{matcher: patmatch.New(rules)}
}

// AnalyzeFile runs the full single-file contract: binary guard, language
// dispatch, CFG construction, taint dataflow, structural pattern
// matching, then sort+dedupe. summaries carries the function summaries
// the caller already has (the orchestrator loads them from the cache once
// at scan start), for cross-file call resolution.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string, source []byte, summaries model.FunctionSummaries) (Result, error) {
	res := Result{Path: path}

	if looksBinary(source) {
		res.Skipped = true
		res.SkipReason = "binary content"
		return res, nil
	}

	adapter, ok := lang.GetByPath(path)
	if !ok {
		res.Skipped = true
		res.SkipReason = "unsupported language"
		return res, nil
	}
	res.Language = adapter.Name()

	parser := a.acquireParser(adapter)
	defer a.releaseParser(adapter, parser)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return res, model.NewParseError(path, err)
	}
	defer tree.Close()

	build := cfgbuild.Build(tree, source, adapter)
	res.Summaries = build.Summaries

	merged := mergeSummaries(summaries, build.Summaries)

	taintDiags := taint.Run(build.Cfg, build.EntryIdx, merged, path, source)

	patternDiags, ruleErrs := a.matcher.Run(adapter, tree, source, path)

	all := append(taintDiags, patternDiags...)
	res.Diagnostics = dedupeAndSort(all)

	// A malformed pattern rule doesn't invalidate the taint findings
	// already produced for this file; the caller decides whether to log
	// and continue or treat it as fatal.
	return res, errors.Join(ruleErrs...)
}

func mergeSummaries(base, overlay model.FunctionSummaries) model.FunctionSummaries {
	merged := make(model.FunctionSummaries, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

func looksBinary(source []byte) bool {
	if len(source) == 0 {
		return false
	}
	nulCount := bytes.Count(source, []byte{0})
	return float64(nulCount)/float64(len(source)) > binaryGuardThreshold
}

func (a *Analyzer) acquireParser(adapter lang.Adapter) *sitter.Parser {
	poolIface, _ := a.parsers.LoadOrStore(adapter.Name(), &sync.Pool{
		New: func() any {
			p := sitter.NewParser()
			p.SetLanguage(adapter.SitterLanguage())
			return p
		},
	})
	pool := poolIface.(*sync.Pool)
	return pool.Get().(*sitter.Parser)
}

func (a *Analyzer) releaseParser(adapter lang.Adapter, p *sitter.Parser) {
	poolIface, ok := a.parsers.Load(adapter.Name())
	if !ok {
		return
	}
	poolIface.(*sync.Pool).Put(p)
}

func dedupeAndSort(diags []model.Diagnostic) []model.Diagnostic {
	seen := map[string]bool{}
	out := make([]model.Diagnostic, 0, len(diags))
	for _, d := range diags {
		key := fmt.Sprintf("%s|%d|%d|%s|%d", d.Path, d.Line, d.Column, d.ID, d.Severity)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return model.Less(out[i], out[j]) })
	return out
}
