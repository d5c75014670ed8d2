package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dukerupert/schompf/internal/migrate"
	"github.com/dukerupert/schompf/internal/store"
)

func newMigrateCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade the stored document from older layouts",
		Long: `Rewrites legacy fields in the stored document: shopping item "sources"
become "amounts", dishes gain "published" and "recipe", and sub-dish
"multiplier" becomes "scalingFactor". The server applies the same upgrade on
start; this command does it without starting the server.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			backend, err := store.OpenBackend(ctx, e.cfg.DBPath)
			if err != nil {
				return err
			}
			defer backend.Close()

			data, err := backend.Load(ctx)
			if err != nil {
				return fmt.Errorf("load document: %w", err)
			}
			out, report, err := migrate.Upgrade(data)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report)
			if !report.Changed() || dryRun {
				return nil
			}
			if err := backend.Save(ctx, out); err != nil {
				return fmt.Errorf("save document: %w", err)
			}
			e.logger.Info("document migrated", "db_path", e.cfg.DBPath, "report", report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing them")
	cmd.AddCommand(newImportCmd())
	return cmd
}

func newImportCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import <legacy.json>",
		Short: "Create a document from the old menu-only format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			legacy, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read legacy document: %w", err)
			}
			doc, report, err := migrate.ImportLegacy(legacy, time.Now().UTC(), uuid.NewString)
			if err != nil {
				return err
			}

			backend, err := store.OpenBackend(ctx, e.cfg.DBPath)
			if err != nil {
				return err
			}
			defer backend.Close()

			existing, err := backend.Load(ctx)
			if err != nil {
				return fmt.Errorf("load document: %w", err)
			}
			if len(bytes.TrimSpace(existing)) > 0 && !force {
				return fmt.Errorf("%s already holds a document; use --force to replace it", e.cfg.DBPath)
			}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
			if err := backend.Save(ctx, data); err != nil {
				return fmt.Errorf("save document: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing document")
	return cmd
}
