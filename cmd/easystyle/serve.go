package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	delivery "github.com/Veraticus/easy-style/internal/delivery/http"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := appConfig.ValidateServer(); err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		appConfig.Server.Addr = addr
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	gateway, err := initGateway(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = gateway.Close() }()

	accounts, err := newAccounts(store)
	if err != nil {
		return err
	}
	if pw := appConfig.Server.AdminPassword; pw != "" {
		if err := accounts.EnsureAdmin(ctx, pw); err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}
	}

	histories, err := newHistory(ctx, store)
	if err != nil {
		return err
	}

	handler := delivery.NewHandler(delivery.Deps{
		Stylist:   newPipeline(gateway),
		Accounts:  accounts,
		History:   histories,
		Purchases: newPurchases(store),
		Logger:    slog.Default(),
		Version:   version,
	})

	server := &http.Server{
		Addr:              appConfig.Server.Addr,
		Handler:           delivery.SetupRouter(appConfig, handler, slog.Default()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", server.Addr, "environment", appConfig.Server.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
