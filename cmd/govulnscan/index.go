package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/morfx-security/govulnscan/internal/engine/analyzer"
	"github.com/morfx-security/govulnscan/internal/engine/patmatch"
	"github.com/morfx-security/govulnscan/internal/orchestrator"
	"github.com/morfx-security/govulnscan/internal/store"
	"github.com/morfx-security/govulnscan/internal/walk"
)

// newIndexCmd groups the cache-warming subcommands: "build" runs a full
// scan purely to populate the result cache, "status" reports what's in it
// without touching the filesystem.
func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or inspect the result cache",
	}
	cmd.AddCommand(newIndexBuildCmd())
	cmd.AddCommand(newIndexStatusCmd())
	return cmd
}

func newIndexBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [paths...]",
		Short: "Scan and populate the result cache without printing findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := args
			if len(targets) == 0 {
				targets = []string{"."}
			}

			cfg, err := loadConfig(targets[0])
			if err != nil {
				return err
			}
			cfg.Performance.CacheEnabled = true

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if err := os.MkdirAll(filepath.Dir(cfg.Scanner.DatabasePath), 0o755); err != nil {
				return fmt.Errorf("index build: preparing cache directory: %w", err)
			}

			db, err := store.Connect(cfg.Scanner.DatabasePath, verbose)
			if err != nil {
				return fmt.Errorf("index build: connecting to cache: %w", err)
			}
			cache := store.New(db)

			w := walk.New(cfg.Scanner)
			a := analyzer.New(patmatch.DefaultRules())
			o := orchestrator.New(cfg, w, a, cache, logger)

			sum, err := o.Scan(context.Background(), targets)
			if err != nil {
				return fmt.Errorf("index build: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d files (%d cached, %d skipped), %d findings\n",
				sum.FilesScanned, sum.FilesCached, sum.FilesSkipped, len(sum.Diagnostics))
			return nil
		},
	}
}

func newIndexStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [path]",
		Short: "Report how many files the cache tracks (issue rows are not counted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			hint := "."
			if len(args) > 0 {
				hint = args[0]
			}

			cfg, err := loadConfig(hint)
			if err != nil {
				return err
			}

			db, err := store.Connect(cfg.Scanner.DatabasePath, verbose)
			if err != nil {
				return fmt.Errorf("index status: connecting to cache: %w", err)
			}
			cache := store.New(db)

			files, err := cache.GetFiles()
			if err != nil {
				return fmt.Errorf("index status: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cache: %s\n", cfg.Scanner.DatabasePath)
			fmt.Fprintf(cmd.OutOrStdout(), "%d files tracked\n", len(files))
			return nil
		},
	}
}
