package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mealroute/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "mealctl",
	Short: "Operator tooling for the meal delivery system",
	Long: `mealctl inspects and manages the offline-first sync layer: show the
coordinator's status, replay queued saves, run the one-time remote
migration, and preview delivery routes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(routesCmd)
}

// newRoot assembles the composition root from the environment. Unlike the
// server, the CLI tolerates a missing .env and falls back to a local-only
// setup so it works on a fresh machine.
func newRoot(ctx context.Context) (*cmd.CompositionRoot, error) {
	_ = godotenv.Load(".env")

	config := cmd.Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),
		SyncMode:   envOr("SYNC_MODE", "local"),
		DataDir:    envOr("DATA_DIR", "./data"),
		JWTSecret:  envOr("JWT_SECRET", "mealctl"),
	}

	return cmd.NewCompositionRoot(ctx, config)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
