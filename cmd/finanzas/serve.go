package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/arturo/finanzas/internal/budget"
	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/config"
	"github.com/arturo/finanzas/internal/ledger"
	"github.com/arturo/finanzas/internal/report"
	"github.com/arturo/finanzas/internal/server"
	"github.com/arturo/finanzas/internal/storage"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the budget and report HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	ledgerClient, err := ledger.NewClient(cfg.Ledger.BaseURL, cfg.Ledger.Timeout,
		ledger.WithRetryOptions(common.RetryOptions{MaxAttempts: cfg.Ledger.MaxAttempts}))
	if err != nil {
		return fmt.Errorf("failed to create ledger client: %w", err)
	}

	alerts := budget.NewAlertService(store)
	budgets := budget.NewService(store, ledgerClient, alerts)
	reports := report.NewAggregator(ledgerClient, budgets)

	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, budgets, alerts, reports)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down cleanly: %w", err)
		}
		slog.Info("server stopped")
		return nil
	}
}
