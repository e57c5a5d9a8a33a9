package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morfx-security/govulnscan/internal/config"
	"github.com/morfx-security/govulnscan/internal/engine/analyzer"
	"github.com/morfx-security/govulnscan/internal/engine/patmatch"
	"github.com/morfx-security/govulnscan/internal/orchestrator"
	"github.com/morfx-security/govulnscan/internal/store"
	"github.com/morfx-security/govulnscan/internal/walk"

	_ "github.com/morfx-security/govulnscan/internal/lang/golang"
)

func newOrchestrator(t *testing.T, cfg config.Config) *orchestrator.Orchestrator {
	t.Helper()
	db, err := store.Connect(filepath.Join(t.TempDir(), "cache.db"), false)
	require.NoError(t, err)
	cache := store.New(db)
	w := walk.New(cfg.Scanner)
	a := analyzer.New(patmatch.DefaultRules())
	return orchestrator.New(cfg, w, a, cache, zap.NewNop())
}

func TestScanFindsUnsanitizedFlowAndCachesResult(t *testing.T) {
	dir := t.TempDir()
	src := `package main

import (
	"os"
	"os/exec"
)

func run() {
	path := os.Getenv("PATH")
	exec.Command("sh", "-c", path).Run()
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.go"), []byte(src), 0o644))

	cfg := config.Default()
	cfg.Scanner.NoGitignore = true
	o := newOrchestrator(t, cfg)

	sum, err := o.Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Equal(t, 1, sum.FilesScanned)
	require.NotEmpty(t, sum.Diagnostics)

	sum2, err := o.Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Equal(t, 1, sum2.FilesCached)
	require.Equal(t, len(sum.Diagnostics), len(sum2.Diagnostics))
}

func TestScanRespectsMaxResults(t *testing.T) {
	dir := t.TempDir()
	src := `package main

import "os/exec"

func a() { exec.Command("sh", "-c", os.Getenv("A")).Run() }
func b() { exec.Command("sh", "-c", os.Getenv("B")).Run() }
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.go"), []byte(src), 0o644))

	cfg := config.Default()
	cfg.Scanner.NoGitignore = true
	cfg.Output.MaxResults = 1
	o := newOrchestrator(t, cfg)

	sum, err := o.Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.LessOrEqual(t, len(sum.Diagnostics), 1)
}
