// Package database is the abstraction layer over the two supported SQL
// dialects. All application SQL is written with PostgreSQL-style $n
// placeholders; for MySQL handles every $n is rewritten to ? before execution.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pranto48/lifeos-backend/pkg/config"
)

// Dialect identifies one of the two supported database engines.
type Dialect string

const (
	DialectPostgres Dialect = "postgresql"
	DialectMySQL    Dialect = "mysql"
)

// ConnConfig is a fully resolved connection configuration.
type ConnConfig struct {
	Type     string `json:"dbType"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResolveConfig applies the per-field resolution order: explicit request
// value, then environment value, then hard-coded default.
func ResolveConfig(body ConnConfig, env *config.Config) ConnConfig {
	c := ConnConfig{
		Type:     firstNonEmpty(body.Type, env.DBType, string(DialectPostgres)),
		Host:     firstNonEmpty(body.Host, env.DBHost, "localhost"),
		Port:     firstNonEmpty(body.Port, env.DBPort),
		Database: firstNonEmpty(body.Database, env.DBName, "lifeos_db"),
		Username: firstNonEmpty(body.Username, env.DBUser),
		Password: firstNonEmpty(body.Password, env.DBPassword),
	}
	switch Dialect(c.Type) {
	case DialectMySQL:
		c.Port = firstNonEmpty(c.Port, "3306")
		c.Username = firstNonEmpty(c.Username, "root")
	default:
		c.Port = firstNonEmpty(c.Port, "5432")
		c.Username = firstNonEmpty(c.Username, "postgres")
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// DB is a pooled connection handle bound to one dialect.
type DB struct {
	dialect Dialect
	pool    *sql.DB
}

// Connect opens a connection pool for the configured dialect and verifies it
// with a liveness probe. An unsupported dialect name is a hard failure.
func Connect(ctx context.Context, cfg ConnConfig) (*DB, error) {
	var driver, dsn string
	switch Dialect(cfg.Type) {
	case DialectPostgres:
		driver = "pgx"
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			url.QueryEscape(cfg.Username), url.QueryEscape(cfg.Password),
			cfg.Host, cfg.Port, cfg.Database)
	case DialectMySQL:
		driver = "mysql"
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	pool, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Type, err)
	}
	pool.SetMaxOpenConns(20)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(30 * time.Minute)

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var one int
	if err := pool.QueryRowContext(probeCtx, "SELECT 1").Scan(&one); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("probe %s at %s:%s: %w", cfg.Type, cfg.Host, cfg.Port, err)
	}

	return &DB{dialect: Dialect(cfg.Type), pool: pool}, nil
}

// Dialect returns the engine this handle is bound to.
func (d *DB) Dialect() Dialect { return d.dialect }

// Close releases all pooled connections.
func (d *DB) Close() error { return d.pool.Close() }

var placeholderPattern = regexp.MustCompile(`\$\d+`)

// rewrite translates $n placeholders for the bound dialect. PostgreSQL text
// passes through untouched; MySQL gets order-preserving ? placeholders.
func (d *DB) rewrite(query string) string {
	if d.dialect != DialectMySQL {
		return query
	}
	return placeholderPattern.ReplaceAllString(query, "?")
}

// Exec executes a statement that returns no rows.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := d.pool.ExecContext(ctx, d.rewrite(query), args...)
	return res, mapErr(err)
}

// Query executes a query that returns rows. The caller must close them.
func (d *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := d.pool.QueryContext(ctx, d.rewrite(query), args...)
	return rows, mapErr(err)
}

// QueryRow executes a query expected to return at most one row. Errors are
// deferred to Scan; use mapErr via ScanRow for sentinel translation.
func (d *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.pool.QueryRowContext(ctx, d.rewrite(query), args...)
}

// ScanRow scans a single-row query and maps driver errors to sentinels.
func (d *DB) ScanRow(ctx context.Context, query string, args []any, dest ...any) error {
	return mapErr(d.QueryRow(ctx, query, args...).Scan(dest...))
}

// TableExists probes the information-schema equivalent for a table. Used by
// the schema manager to decide whether the forward migration already ran.
func (d *DB) TableExists(ctx context.Context, name string) (bool, error) {
	var query string
	switch d.dialect {
	case DialectMySQL:
		query = `SELECT COUNT(*) FROM information_schema.tables
			WHERE table_schema = DATABASE() AND table_name = $1`
	default:
		query = `SELECT COUNT(*) FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1`
	}
	var n int
	if err := d.ScanRow(ctx, query, []any{name}, &n); err != nil {
		return false, err
	}
	return n > 0, nil
}
