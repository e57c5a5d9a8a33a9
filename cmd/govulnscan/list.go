package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morfx-security/govulnscan/internal/store"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "List every file currently tracked in the result cache",
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
				return fmt.Errorf("list: connecting to cache: %w", err)
			}
			cache := store.New(db)

			files, err := cache.GetFiles()
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}

			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}
