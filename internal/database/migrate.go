package database

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/iremert/wordpecker/schemas"
)

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// slogGooseLogger forwards goose output to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and does not exit; goose returns the error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func prepareGoose(driver string, logger *slog.Logger) (string, error) {
	if !IsSQLDriver(driver) {
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
	if logger == nil {
		logger = slog.Default()
	}
	goose.SetBaseFS(schemas.Migrations)
	goose.SetLogger(&slogGooseLogger{logger: logger})
	if err := goose.SetDialect(driver); err != nil {
		return "", fmt.Errorf("goose.SetDialect(%s) > %w", driver, err)
	}
	return path.Join("migrations", driver), nil
}

// Migrate applies every pending migration for driver.
func Migrate(ctx context.Context, db *sqlx.DB, driver string, logger *slog.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := prepareGoose(driver, logger)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return fmt.Errorf("goose.UpContext(%s) > %w", dir, err)
	}
	return nil
}

// SchemaVersion returns the version of the last applied migration.
func SchemaVersion(ctx context.Context, db *sqlx.DB, driver string, logger *slog.Logger) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if _, err := prepareGoose(driver, logger); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, db.DB)
	if err != nil {
		return 0, fmt.Errorf("goose.GetDBVersionContext() > %w", err)
	}
	return version, nil
}
