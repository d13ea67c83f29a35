package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/iremert/wordpecker/internal/config"
	"github.com/iremert/wordpecker/internal/database"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(newMigrateUpCommand())
	migrateCmd.AddCommand(newMigrateStatusCommand())

	return migrateCmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			if err := database.Migrate(cmd.Context(), db, cfg.Store.Driver, slog.Default()); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			version, err := database.SchemaVersion(cmd.Context(), db, cfg.Store.Driver, slog.Default())
			if err != nil {
				return fmt.Errorf("database.SchemaVersion() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", version)
			return nil
		},
	}
}

func openDatabase() (*config.Config, *sqlx.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !database.IsSQLDriver(cfg.Store.Driver) {
		return nil, nil, fmt.Errorf("store driver %s has no database schema", cfg.Store.Driver)
	}
	db, err := database.Open(cfg.Store.Driver, cfg.Store.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	return cfg, db, nil
}

func closeDatabase(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		slog.Default().Warn("failed to close the database", slog.Any("error", err))
	}
}
