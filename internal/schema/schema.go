// Package schema bootstraps the fixed application schema. This is a single
// irreversible forward migration keyed on table existence, not a versioned
// migration chain.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pranto48/lifeos-backend/internal/database"
	"github.com/pranto48/lifeos-backend/pkg/logger"
)

// sentinelTable is the table whose presence means the schema already exists.
const sentinelTable = "app_settings"

// ensureTimeout bounds the whole migration so a stalled server cannot hang
// startup indefinitely.
const ensureTimeout = 30 * time.Second

// Conn is the slice of the DAL the schema manager needs. *database.DB
// satisfies it.
type Conn interface {
	Dialect() database.Dialect
	TableExists(ctx context.Context, name string) (bool, error)
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Ensure applies the dialect's DDL script exactly once. If the schema is
// already present it does nothing.
func Ensure(ctx context.Context, conn Conn) error {
	ctx, cancel := context.WithTimeout(ctx, ensureTimeout)
	defer cancel()

	exists, err := conn.TableExists(ctx, sentinelTable)
	if err != nil {
		return fmt.Errorf("schema probe: %w", err)
	}
	if exists {
		return nil
	}

	script := postgresDDL
	if conn.Dialect() == database.DialectMySQL {
		script = mysqlDDL
	}

	for _, stmt := range SplitStatements(script) {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema apply: %w", err)
		}
	}

	logger.L().Info("database schema initialized",
		zap.String("dialect", string(conn.Dialect())))
	return nil
}

// SplitStatements splits a DDL script on semicolons, dropping empty segments.
func SplitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
