package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morfx-security/govulnscan/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default().Scanner.MaxFileSizeBytes, cfg.Scanner.MaxFileSizeBytes)
}

func TestLoadParsesYAMLAndEnvOverridesWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scanner:
  max_file_size_bytes: 1024
output:
  max_results: 5
`), 0o644))

	t.Setenv("GOVULNSCAN_MAX_RESULTS", "42")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.EqualValues(t, 1024, cfg.Scanner.MaxFileSizeBytes)
	require.Equal(t, 42, cfg.Output.MaxResults)
}
