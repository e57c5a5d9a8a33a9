// Package orchestrator drives a full scan: it pulls discovered files off
// the walker, decides per file whether the cache already has a fresh
// result or a fresh analysis is needed, fans the analysis work out over a
// bounded worker pool, and merges everything into one sorted, truncated
// diagnostic set.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/morfx-security/govulnscan/internal/config"
	"github.com/morfx-security/govulnscan/internal/engine/analyzer"
	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/store"
	"github.com/morfx-security/govulnscan/internal/walk"
)

// Summary is the aggregate outcome of one scan run.
type Summary struct {
	FilesScanned  int
	FilesCached   int
	FilesSkipped  int
	Diagnostics   []model.Diagnostic
	Errors        []error
}

// Orchestrator wires a Walker, an Analyzer, and a Cache together into one
// scan run.
type Orchestrator struct {
	cfg      config.Config
	walker   *walk.Walker
	analyzer *analyzer.Analyzer
	cache    *store.Cache
	log      *zap.Logger
}

// New builds an Orchestrator from its already-constructed collaborators.
// A nil logger falls back to zap.NewNop, so callers that don't care about
// scan telemetry don't have to construct one.
func New(cfg config.Config, w *walk.Walker, a *analyzer.Analyzer, c *store.Cache, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, walker: w, analyzer: a, cache: c, log: log}
}

// Scan walks targets, analyzes every file that needs it, and returns the
// merged, deduplicated, severity-filtered and truncated diagnostic set.
func (o *Orchestrator) Scan(ctx context.Context, targets []string) (Summary, error) {
	o.log.Info("scan starting", zap.Strings("targets", targets))

	results, err := o.walker.Walk(ctx, targets)
	if err != nil {
		return Summary{}, fmt.Errorf("orchestrator: starting walk: %w", err)
	}

	summaries, err := o.loadSummaries()
	if err != nil {
		return Summary{}, err
	}

	workers := o.cfg.Performance.Workers
	if n := runtime.GOMAXPROCS(0); workers <= 0 || workers > n {
		workers = n
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	var mu sync.Mutex
	sum := Summary{}

	for r := range results {
		r := r
		if r.Error != nil {
			mu.Lock()
			sum.Errors = append(sum.Errors, model.NewIOError(r.Path, r.Error))
			mu.Unlock()
			continue
		}

		eg.Go(func() error {
			diags, cached, skipped, err := o.analyzeOne(egCtx, r.Path, summaries)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				o.log.Warn("file analysis failed", zap.String("path", r.Path), zap.Error(err))
				sum.Errors = append(sum.Errors, err)
				return nil // one file's failure doesn't abort the scan
			}
			switch {
			case skipped:
				sum.FilesSkipped++
			case cached:
				sum.FilesCached++
				sum.Diagnostics = append(sum.Diagnostics, diags...)
			default:
				sum.FilesScanned++
				sum.Diagnostics = append(sum.Diagnostics, diags...)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return sum, err
	}

	sum.Diagnostics = finalize(sum.Diagnostics, o.cfg.Output)
	o.log.Info("scan finished",
		zap.Int("scanned", sum.FilesScanned),
		zap.Int("cached", sum.FilesCached),
		zap.Int("skipped", sum.FilesSkipped),
		zap.Int("findings", len(sum.Diagnostics)),
	)
	return sum, nil
}

// analyzeOne resolves a single file against the cache: an unchanged digest
// and mtime return the previously persisted diagnostics without re-running
// the engines, otherwise it analyzes the file and writes the fresh result
// back to the cache.
func (o *Orchestrator) analyzeOne(ctx context.Context, path string, summaries model.FunctionSummaries) (diags []model.Diagnostic, cached, skipped bool, err error) {
	content, digest, mtime, needsScan, err := o.digestFile(path)
	if err != nil {
		return nil, false, false, err
	}

	if o.cfg.Performance.CacheEnabled && !needsScan {
		cachedDiags, err := o.cache.GetIssuesFromFile(path)
		if err != nil {
			return nil, false, false, model.NewCacheError(path, err)
		}
		return cachedDiags, true, false, nil
	}

	res, err := o.analyzer.AnalyzeFile(ctx, path, content, summaries)
	if err != nil {
		return nil, false, false, model.NewParseError(path, err)
	}
	if res.Skipped {
		return nil, false, true, nil
	}

	if o.cfg.Performance.CacheEnabled {
		if err := o.writeBack(path, digest, mtime, res); err != nil {
			return nil, false, false, err
		}
	}

	return res.Diagnostics, false, false, nil
}

func (o *Orchestrator) digestFile(path string) (content []byte, digest string, mtime int64, needsScan bool, err error) {
	content, err = os.ReadFile(path)
	if err != nil {
		return nil, "", 0, false, model.NewIOError(path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", 0, false, model.NewIOError(path, err)
	}
	mtime = info.ModTime().UnixNano()
	digest, err = store.Digest(content)
	if err != nil {
		return nil, "", 0, false, model.NewCacheError(path, err)
	}
	if !o.cfg.Performance.CacheEnabled {
		return content, digest, mtime, true, nil
	}
	needsScan, err = o.cache.ShouldScan(path, digest, mtime)
	if err != nil {
		return nil, "", 0, false, model.NewCacheError(path, err)
	}
	return content, digest, mtime, needsScan, nil
}

func (o *Orchestrator) writeBack(path, digest string, mtime int64, res analyzer.Result) error {
	if err := o.cache.UpsertFile(path, digest, mtime, res.Language); err != nil {
		return model.NewCacheError(path, err)
	}
	if err := o.cache.ReplaceIssues(path, res.Diagnostics); err != nil {
		return model.NewCacheError(path, err)
	}
	for name, summary := range res.Summaries {
		if err := o.cache.UpsertSummary(name, path, summary); err != nil {
			return model.NewCacheError(path, err)
		}
	}
	return nil
}

func (o *Orchestrator) loadSummaries() (model.FunctionSummaries, error) {
	if !o.cfg.Performance.CacheEnabled {
		return model.FunctionSummaries{}, nil
	}
	summaries, err := o.cache.LoadAllSummaries()
	if err != nil {
		return nil, model.NewCacheError("", err)
	}
	return summaries, nil
}

// finalize sorts the merged diagnostics, drops anything below the
// configured minimum severity, and truncates to the configured cap.
func finalize(diags []model.Diagnostic, out config.OutputConfig) []model.Diagnostic {
	min := model.ParseSeverity(out.MinSeverity)
	filtered := diags[:0]
	for _, d := range diags {
		if d.Severity >= min {
			filtered = append(filtered, d)
		}
	}

	sort.Slice(filtered, func(i, j int) bool { return model.Less(filtered[i], filtered[j]) })

	deduped := filtered[:0]
	var prev *model.Diagnostic
	for i := range filtered {
		d := filtered[i]
		if prev != nil && model.Equal(*prev, d) {
			continue
		}
		deduped = append(deduped, d)
		prev = &filtered[i]
	}

	if out.MaxResults > 0 && len(deduped) > out.MaxResults {
		deduped = deduped[:out.MaxResults]
	}
	return deduped
}
