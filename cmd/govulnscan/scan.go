package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/morfx-security/govulnscan/internal/engine/analyzer"
	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/engine/patmatch"
	"github.com/morfx-security/govulnscan/internal/orchestrator"
	"github.com/morfx-security/govulnscan/internal/report"
	"github.com/morfx-security/govulnscan/internal/store"
	"github.com/morfx-security/govulnscan/internal/walk"
)

func newScanCmd() *cobra.Command {
	var format string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan one or more paths for vulnerabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := args
			if len(targets) == 0 {
				targets = []string{"."}
			}

			cfg, err := loadConfig(targets[0])
			if err != nil {
				return err
			}
			if noCache {
				cfg.Performance.CacheEnabled = false
			}
			if format != "" {
				cfg.Output.Format = format
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if err := os.MkdirAll(filepath.Dir(cfg.Scanner.DatabasePath), 0o755); err != nil {
				return fmt.Errorf("scan: preparing cache directory: %w", err)
			}

			db, err := store.Connect(cfg.Scanner.DatabasePath, verbose)
			if err != nil {
				return fmt.Errorf("scan: connecting to cache: %w", err)
			}
			cache := store.New(db)

			w := walk.New(cfg.Scanner)
			a := analyzer.New(patmatch.DefaultRules())
			o := orchestrator.New(cfg, w, a, cache, logger)

			sum, err := o.Scan(context.Background(), targets)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}

			if err := report.Write(cmd.OutOrStdout(), sum, cfg.Output.Format); err != nil {
				return err
			}

			if hasHighSeverity(sum.Diagnostics) {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: console or json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache for this run")

	return cmd
}

func hasHighSeverity(diags []model.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == model.SeverityHigh {
			return true
		}
	}
	return false
}
