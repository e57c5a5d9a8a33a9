// Package walk discovers candidate source files under one or more scan
// targets: a parallel directory walk with gitignore-aware and
// extension/size-based filtering, streaming results over a channel so the
// orchestrator can start analyzing the first files while later
// directories are still being discovered.
package walk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/morfx-security/govulnscan/internal/config"
	"github.com/morfx-security/govulnscan/internal/lang"
)

// Result is one discovered file, or an error encountered while stat'ing
// or resolving it.
type Result struct {
	Path  string
	Size  int64
	Error error
}

// Walker performs a parallel, filtered traversal of one or more targets.
type Walker struct {
	cfg       config.ScannerConfig
	workers   int
	gitignore *ignore.GitIgnore
}

// New builds a Walker from the scanner section of the resolved config.
func New(cfg config.ScannerConfig) *Walker {
	w := &Walker{
		cfg:     cfg,
		workers: runtime.NumCPU() * 2,
	}
	if !cfg.NoGitignore {
		w.gitignore = loadGitignore()
	}
	return w
}

func loadGitignore() *ignore.GitIgnore {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	path := filepath.Join(cwd, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

// Walk fans out a worker pool over every directory entry under targets,
// streaming each accepted file as a Result. The channel closes once every
// target has been fully traversed or ctx is cancelled.
func (w *Walker) Walk(ctx context.Context, targets []string) (<-chan Result, error) {
	if len(targets) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("walk: getting working directory: %w", err)
		}
		targets = []string{cwd}
	}

	paths := make(chan string, 1000)
	results := make(chan Result, 1000)

	var workerWg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		workerWg.Add(1)
		go w.worker(ctx, paths, results, &workerWg)
	}

	go func() {
		defer close(paths)
		for _, target := range targets {
			select {
			case <-ctx.Done():
				return
			default:
			}
			w.walkTarget(ctx, target, paths)
		}
	}()

	go func() {
		workerWg.Wait()
		close(results)
	}()

	return results, nil
}

func (w *Walker) worker(ctx context.Context, paths <-chan string, results chan<- Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-paths:
			if !ok {
				return
			}
			info, err := os.Stat(path)
			r := Result{Path: path, Error: err}
			if err == nil {
				r.Size = info.Size()
			}
			select {
			case <-ctx.Done():
				return
			case results <- r:
			}
		}
	}
}

func (w *Walker) walkTarget(ctx context.Context, target string, paths chan<- string) {
	info, err := os.Lstat(target)
	if err != nil {
		return
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !w.cfg.FollowSymlinks {
			return
		}
		resolved, err := filepath.EvalSymlinks(target)
		if err != nil {
			return
		}
		w.walkTarget(ctx, resolved, paths)
		return
	}

	if info.Mode().IsRegular() {
		if w.accept(target, info) {
			select {
			case <-ctx.Done():
			case paths <- target:
			}
		}
		return
	}

	if info.IsDir() {
		w.walkDir(ctx, target, paths)
	}
}

func (w *Walker) walkDir(ctx context.Context, dir string, paths chan<- string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		full := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if w.skipDir(full, entry.Name()) {
				continue
			}
			w.walkDir(ctx, full, paths)
			continue
		}

		if entry.Type()&os.ModeSymlink != 0 && w.cfg.FollowSymlinks {
			w.walkTarget(ctx, full, paths)
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if w.accept(full, info) {
			select {
			case <-ctx.Done():
				return
			case paths <- full:
			}
		}
	}
}

func (w *Walker) skipDir(full, name string) bool {
	if w.matchesGitignore(full) {
		return true
	}
	if slices.Contains(w.cfg.ExcludedDirs, name) {
		return true
	}
	if !w.cfg.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	return false
}

func (w *Walker) accept(path string, info os.FileInfo) bool {
	if w.matchesGitignore(path) {
		return false
	}
	if w.cfg.MaxFileSizeBytes > 0 && info.Size() > w.cfg.MaxFileSizeBytes {
		return false
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, excluded := range w.cfg.ExcludedExtensions {
		if ext == strings.ToLower(excluded) {
			return false
		}
	}

	if !w.cfg.IncludeHidden && strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}

	if len(w.cfg.IncludeGlobs) > 0 && !w.matchesAnyGlob(path) {
		return false
	}

	_, ok := lang.GetByExtension(ext)
	return ok
}

func (w *Walker) matchesAnyGlob(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.cfg.IncludeGlobs {
		if matchGlob(pattern, path) || matchGlob(pattern, base) {
			return true
		}
	}
	return false
}

func (w *Walker) matchesGitignore(path string) bool {
	if w.gitignore == nil {
		return false
	}
	rel, err := filepath.Rel(".", path)
	if err != nil {
		rel = path
	}
	return w.gitignore.MatchesPath(rel)
}

// matchGlob reports whether path matches one doublestar include pattern
// from ScannerConfig.IncludeGlobs; a malformed pattern matches nothing.
func matchGlob(pattern, path string) bool {
	matched, err := doublestar.PathMatch(pattern, path)
	return err == nil && matched
}
