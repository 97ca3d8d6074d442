package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// Open connects to Postgres when databaseURL is a postgres:// URL and to
// SQLite otherwise, then applies the embedded migrations for that dialect.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger),
	}

	var (
		db      *gorm.DB
		err     error
		dialect goose.Dialect
		dir     string
	)

	if IsPostgresURL(databaseURL) {
		db, err = gorm.Open(postgres.Open(databaseURL), gormCfg)
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	} else {
		var dsn string
		dsn, err = sqliteDSN(databaseURL)
		if err != nil {
			return nil, err
		}
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if dialect == goose.DialectSQLite3 {
		// SQLite allows a single writer; one connection avoids SQLITE_LOCKED on shared caches
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	}

	// Verify the connection
	if err := sqlDB.PingContext(ctx); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, db, dialect, dir, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database_connected", "dialect", string(dialect))
	return db, nil
}

// slowQueryThreshold is the duration past which gorm logs a query as slow.
const slowQueryThreshold = 200 * time.Millisecond

// newGormLogger routes gorm's warnings and errors into logger. Record-not-found
// is a normal lookup miss and is not logged.
func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	return gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsPostgresURL reports whether the URL targets Postgres.
func IsPostgresURL(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}

func runMigrations(ctx context.Context, db *gorm.DB, dialect goose.Dialect, dir string, logger *slog.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("database_migrations_applied", "applied", len(results))
	return nil
}

// sqliteDSN turns a file path or file: URI into a DSN with foreign keys
// enforced. The parent directory of a file path is created if missing.
func sqliteDSN(databaseURL string) (string, error) {
	dsn := databaseURL
	if dsn == "" {
		return "", fmt.Errorf("empty database URL")
	}

	inMemory := strings.Contains(dsn, "mode=memory") || dsn == ":memory:"
	if !inMemory && !strings.HasPrefix(dsn, "file:") {
		dir := filepath.Dir(dsn)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	params := []string{"_foreign_keys=on", "_busy_timeout=5000"}
	if !inMemory {
		params = append(params, "_journal_mode=WAL")
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&"), nil
}
