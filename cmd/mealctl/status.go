package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync coordinator status",
	Long:  `Display the sync mode, connectivity, pending-queue depth, and migration state.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := newRoot(context.Background())
		if err != nil {
			return err
		}

		status := root.Coordinator().Status()

		fmt.Printf("Mode: %s\n", status.Mode)
		if status.Online {
			fmt.Printf("Remote: %s\n", color.GreenString("online"))
		} else {
			fmt.Printf("Remote: %s\n", color.YellowString("offline"))
		}
		if status.Writable {
			fmt.Println("Dataset: writable")
		} else {
			fmt.Printf("Dataset: %s\n", color.YellowString("read-only"))
		}
		fmt.Printf("Pending saves: %d\n", status.PendingCount)
		if !status.LastSyncedAt.IsZero() {
			fmt.Printf("Last synced: %s\n", status.LastSyncedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("Migration complete: %v\n", status.MigrationComplete)
		return nil
	},
}
