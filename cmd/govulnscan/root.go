package main

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/morfx-security/govulnscan/internal/config"
	"github.com/morfx-security/govulnscan/internal/logging"
)

var (
	configPath string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "govulnscan",
		Short: "Multi-language static vulnerability scanner",
		Long: `govulnscan builds a per-function control-flow graph for every source file
it sees and runs a capability-lattice taint analysis over it, alongside a
set of structural pattern checks, to find unsanitized data flows and
common insecure API usage across a codebase.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newScanCmd())
	root.AddCommand(newIndexCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newCleanCmd())

	return root
}

// loadConfig resolves the layered configuration and a project-scoped
// cache path derived from the first scan target, so two different
// projects scanned from the same machine never share a SQLite file.
func loadConfig(projectHint string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if cfg.Scanner.DatabasePath == "" || cfg.Scanner.DatabasePath == config.Default().Scanner.DatabasePath {
		cfg.Scanner.DatabasePath = filepath.Join(".govulnscan", sanitizeProjectName(projectHint)+".db")
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	return logging.New(verbose, true)
}

var nonProjectChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeProjectName turns a scan target path into a filesystem-safe
// name for its cache database, so "./", "../foo", and absolute paths all
// resolve to a stable, collision-resistant identifier.
func sanitizeProjectName(path string) string {
	if path == "" {
		path = "default"
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	name := strings.Trim(nonProjectChars.ReplaceAllString(path, "_"), "_")
	if name == "" {
		name = "default"
	}
	return name
}
