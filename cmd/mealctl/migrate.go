package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Push the full local dataset to the remote store once",
	Long: `Move a legacy local-only installation onto the remote record store by
pushing every record kind, master data included. The migration runs at
most once; later invocations are no-ops.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		root, err := newRoot(ctx)
		if err != nil {
			return err
		}

		coordinator := root.Coordinator()
		if coordinator.Status().MigrationComplete {
			fmt.Println("Migration already completed, nothing to do.")
			return nil
		}

		if err := coordinator.Migrate(ctx); err != nil {
			return err
		}

		fmt.Printf("%s dataset migrated to the remote store\n", color.GreenString("OK:"))
		return nil
	},
}
