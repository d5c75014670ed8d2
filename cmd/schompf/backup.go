package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/schompf/internal/backup"
	"github.com/dukerupert/schompf/internal/store"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage encrypted backups in S3-compatible storage",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "now",
			Short: "Upload a backup of the current document",
			RunE: withBackup(func(ctx context.Context, cmd *cobra.Command, mgr *backup.Manager, _ []string) error {
				info, err := mgr.RunNow(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%d bytes)\n", info.Key, info.SizeBytes)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored backups, newest first",
			RunE: withBackup(func(ctx context.Context, cmd *cobra.Command, mgr *backup.Manager, _ []string) error {
				infos, err := mgr.List(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tSIZE\tCREATED")
				for _, info := range infos {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Key, info.SizeBytes, info.CreatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			}),
		},
		&cobra.Command{
			Use:   "restore <key>",
			Short: "Replace the document with a stored backup",
			Long:  "Replace the document with a stored backup. Stop the server first, or use POST /api/backups/restore while it runs.",
			Args:  cobra.ExactArgs(1),
			RunE: withBackup(func(ctx context.Context, cmd *cobra.Command, mgr *backup.Manager, args []string) error {
				if err := mgr.Restore(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", args[0])
				return nil
			}),
		},
	)
	return cmd
}

type backupFunc func(ctx context.Context, cmd *cobra.Command, mgr *backup.Manager, args []string) error

// withBackup opens the store and a backup manager around fn.
func withBackup(fn backupFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var docs *store.Store
		docs, err = e.openStore(ctx)
		if err != nil {
			return err
		}
		defer docs.Close()

		mgr := backup.NewManager(e.backupConfig(), docs, nil, e.logger.With("component", "backup"))
		return fn(ctx, cmd, mgr, args)
	}
}
