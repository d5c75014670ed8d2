package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dukerupert/schompf/internal/backup"
	"github.com/dukerupert/schompf/internal/config"
	"github.com/dukerupert/schompf/internal/logging"
	"github.com/dukerupert/schompf/internal/store"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "schompf",
		Short:         "Household meal planner and shopping list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String("db-path", "data/db.json", "document path; .db or .sqlite selects SQLite")
	root.PersistentFlags().String("log-level", "info", "debug, info, warn or error")
	root.PersistentFlags().String("log-format", "text", "text or json")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newBackupCmd())
	return root
}

// env is what every subcommand needs: configuration and a logger.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logging.Setup(cfg.LogLevel, cfg.LogFormat)}, nil
}

func (e *env) openStore(ctx context.Context) (*store.Store, error) {
	backend, err := store.OpenBackend(ctx, e.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	docs, err := store.Open(ctx, backend, e.logger.With("component", "store"))
	if err != nil {
		backend.Close()
		return nil, err
	}
	return docs, nil
}

func (e *env) backupConfig() backup.Config {
	b := e.cfg.Backup
	return backup.Config{
		S3: backup.S3Config{
			Endpoint:  b.Endpoint,
			Bucket:    b.Bucket,
			Region:    b.Region,
			AccessKey: b.AccessKey,
			SecretKey: b.SecretKey,
		},
		Passphrase:    b.Passphrase,
		Prefix:        b.Prefix,
		Interval:      b.Interval,
		RetentionDays: b.RetentionDays,
	}
}
