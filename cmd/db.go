package cmd

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// ensureDatabase creates the application database when it does not exist
// yet, over a short-lived lib/pq connection to the maintenance database.
// Callers treat failures as non-fatal: an unreachable server is the sync
// layer's problem, not a boot error.
func ensureDatabase(config Config) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)",
		config.DBName).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", config.DBName))
	return err
}
