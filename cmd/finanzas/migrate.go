package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arturo/finanzas/internal/config"
	"github.com/arturo/finanzas/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := storage.NewSQLiteStorage(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			cmd.Println("database is up to date")
			return nil
		},
	}
}
