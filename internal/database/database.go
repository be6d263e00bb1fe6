package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kdgblogteam/blogapplication/internal/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the storage engine.
type Config struct {
	Driver string // "sqlite" or "postgres"
	DSN    string // file path for sqlite, connection URL for postgres
	Debug  bool   // log every SQL statement
}

type Database struct {
	DBConn *gorm.DB
}

// NewDatabase opens the storage engine and creates the schema if it is missing.
// Existing tables and rows are left untouched, so it is safe to call on every start.
func NewDatabase(cfg Config) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	dbconn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	database := &Database{DBConn: dbconn}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		if err := database.configureSQLite(); err != nil {
			database.Close()
			return nil, err
		}
	}

	if err := database.migrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return database, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	switch cfg.Driver {
	case DriverSQLite, "":
		return sqlite.Open(sqliteDSN(cfg.DSN)), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// RedactDSN describes the database for logs without credentials: the file
// path for sqlite, user@host:port/dbname for postgres.
func RedactDSN(driver, dsn string) string {
	if driver != DriverPostgres {
		path, _, _ := strings.Cut(dsn, "?")
		return path
	}

	pgCfg, err := pgconn.ParseConfig(dsn)
	if err != nil {
		return "[unparseable dsn]"
	}
	return fmt.Sprintf("%s@%s:%d/%s", pgCfg.User, pgCfg.Host, pgCfg.Port, pgCfg.Database)
}

// sqliteDSN turns a bare file path into a go-sqlite3 DSN with foreign keys
// and a busy timeout enabled on every connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=1&_busy_timeout=5000"
}

// configureSQLite pins the pool to a single connection and applies pragmas.
// SQLite allows one writer at a time.
func (d *Database) configureSQLite() error {
	sqlDB, err := d.DBConn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if err := d.DBConn.Exec(pragma).Error; err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func (d *Database) migrate() error {
	return d.DBConn.AutoMigrate(&models.Post{}, &models.Comment{})
}

func (d *Database) Close() error {
	if d.DBConn == nil {
		return nil
	}
	sqlDB, err := d.DBConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Ping() error {
	return d.PingContext(context.Background())
}

func (d *Database) PingContext(ctx context.Context) error {
	sqlDB, err := d.DBConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// isForeignKeyViolation reports whether err came from a rejected foreign key,
// whichever driver produced it.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}

	return false
}
