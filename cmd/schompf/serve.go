package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/schompf/internal/backup"
	"github.com/dukerupert/schompf/internal/server"
	ws "github.com/dukerupert/schompf/internal/websocket"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().String("host", "0.0.0.0", "listen host")
	cmd.Flags().Int("port", 3000, "listen port")
	cmd.Flags().StringSlice("cors-origins", []string{"http://localhost:5173"}, "allowed CORS origins")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	logger := e.logger

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	docs, err := e.openStore(ctx)
	if err != nil {
		return err
	}
	defer docs.Close()

	hub := ws.NewHub(logger.With("component", "websocket"))
	backupMgr := backup.NewManager(e.backupConfig(), docs, server.BackupStatusCallback(hub), logger.With("component", "backup"))
	backupMgr.Start(ctx)
	defer backupMgr.Stop()

	srv := server.New(docs, hub, backupMgr, e.cfg.CORSOrigins, logger)

	httpServer := &http.Server{
		Addr:         e.cfg.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpServer.Addr, "db_path", e.cfg.DBPath, "backup", backupMgr.Status().State)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
