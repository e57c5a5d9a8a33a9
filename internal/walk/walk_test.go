package walk_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morfx-security/govulnscan/internal/config"
	"github.com/morfx-security/govulnscan/internal/walk"

	_ "github.com/morfx-security/govulnscan/internal/lang/golang"
)

func TestWalkFindsSupportedFilesAndSkipsExcluded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("binary"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "skip.go"), []byte("package vendor\n"), 0o644))

	cfg := config.Default().Scanner
	cfg.NoGitignore = true
	w := walk.New(cfg)

	results, err := w.Walk(context.Background(), []string{dir})
	require.NoError(t, err)

	var found []string
	for r := range results {
		require.NoError(t, r.Error)
		found = append(found, r.Path)
	}

	require.Len(t, found, 1)
	require.Equal(t, filepath.Join(dir, "main.go"), found[0])
}
