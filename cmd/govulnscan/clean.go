package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morfx-security/govulnscan/internal/store"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [path]",
		Short: "Drop every row from the result cache",
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
				return fmt.Errorf("clean: connecting to cache: %w", err)
			}
			cache := store.New(db)

			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clean: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
}
