package schema

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranto48/lifeos-backend/internal/database"
	"github.com/pranto48/lifeos-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type fakeConn struct {
	dialect  database.Dialect
	exists   bool
	executed []string
}

func (f *fakeConn) Dialect() database.Dialect { return f.dialect }

func (f *fakeConn) TableExists(ctx context.Context, name string) (bool, error) {
	return f.exists, nil
}

func (f *fakeConn) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.executed = append(f.executed, query)
	return nil, nil
}

func TestEnsureAppliesScriptOnce(t *testing.T) {
	conn := &fakeConn{dialect: database.DialectPostgres}
	require.NoError(t, Ensure(context.Background(), conn))
	assert.Equal(t, len(SplitStatements(postgresDDL)), len(conn.executed))

	// Second run against an initialized database performs no DDL.
	conn.exists = true
	conn.executed = nil
	require.NoError(t, Ensure(context.Background(), conn))
	assert.Empty(t, conn.executed)
}

func TestEnsurePicksDialectScript(t *testing.T) {
	conn := &fakeConn{dialect: database.DialectMySQL}
	require.NoError(t, Ensure(context.Background(), conn))
	require.NotEmpty(t, conn.executed)
	assert.Contains(t, conn.executed[0], "CHAR(36)")
}

func TestSplitStatements(t *testing.T) {
	stmts := SplitStatements("CREATE TABLE a (x INT);\n\nCREATE TABLE b (y INT);\n;")
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (x INT)", stmts[0])
}

func TestScriptsDeclareFullSchema(t *testing.T) {
	tables := []string{"users", "user_roles", "profiles", "app_settings", "user_sessions"}
	for _, script := range []string{postgresDDL, mysqlDDL} {
		for _, table := range tables {
			assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS "+table)
		}
		// The defaults row is part of the script so setup-status has a row to read.
		assert.True(t, strings.Contains(script, "'default'"))
	}
}
