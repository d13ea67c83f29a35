// Package database provides database connection management.
package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/iremert/wordpecker/internal/config"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// IsSQLDriver reports whether driver is served by this package.
func IsSQLDriver(driver string) bool {
	switch driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
		return true
	}
	return false
}

// Open opens a connection for driver using the provided config.
// The connection is established lazily on first use.
func Open(driver string, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := DataSourceName(driver, cfg)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(cfg.Path), err)
		}
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(%s) > %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite allows one writer at a time
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

// DataSourceName builds the driver specific DSN.
func DataSourceName(driver string, cfg config.DatabaseConfig) (string, error) {
	switch driver {
	case DriverMySQL:
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = cfg.Username
		mysqlCfg.Passwd = cfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, portOrDefault(cfg.Port, 3306))
		mysqlCfg.DBName = cfg.Database
		mysqlCfg.ParseTime = true
		mysqlCfg.MultiStatements = true
		if cfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		if len(cfg.Params) > 0 {
			mysqlCfg.Params = cfg.Params
		}
		return mysqlCfg.FormatDSN(), nil

	case DriverPostgres:
		query := url.Values{}
		query.Set("sslmode", "disable")
		if cfg.TLS {
			query.Set("sslmode", "require")
		}
		for key, value := range cfg.Params {
			query.Set(key, value)
		}
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.Username, cfg.Password),
			Host:     cfg.Host + ":" + strconv.Itoa(portOrDefault(cfg.Port, 5432)),
			Path:     "/" + cfg.Database,
			RawQuery: query.Encode(),
		}
		return dsn.String(), nil

	case DriverSQLite:
		if cfg.Path == "" {
			return "", fmt.Errorf("sqlite3 needs a database path")
		}
		query := url.Values{}
		query.Set("_foreign_keys", "on")
		query.Set("_busy_timeout", "5000")
		for key, value := range cfg.Params {
			query.Set(key, value)
		}
		return "file:" + filepath.ToSlash(cfg.Path) + "?" + query.Encode(), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

func portOrDefault(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}

// RunInTx runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise, it is committed.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// BuildMultiRowInsert returns "INSERT INTO table (cols) VALUES (?, ...), (?, ...)"
// with rows value groups. Rebind the query for drivers that do not use "?".
func BuildMultiRowInsert(table string, columns []string, rows int) string {
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	groups := make([]string, rows)
	for i := range groups {
		groups[i] = group
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(columns, ", "), strings.Join(groups, ", "))
}
