package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranto48/lifeos-backend/pkg/config"
)

func TestRewritePlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{
			name:    "postgres passes through",
			dialect: DialectPostgres,
			in:      "SELECT id FROM users WHERE email = $1 AND id = $2",
			want:    "SELECT id FROM users WHERE email = $1 AND id = $2",
		},
		{
			name:    "mysql rewrites in declaration order",
			dialect: DialectMySQL,
			in:      "INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)",
			want:    "INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)",
		},
		{
			name:    "mysql rewrites multi-digit placeholders",
			dialect: DialectMySQL,
			in:      "UPDATE profiles SET currency = $10 WHERE user_id = $11",
			want:    "UPDATE profiles SET currency = ? WHERE user_id = ?",
		},
		{
			name:    "mysql leaves plain text alone",
			dialect: DialectMySQL,
			in:      "SELECT COUNT(*) FROM users",
			want:    "SELECT COUNT(*) FROM users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DB{dialect: tt.dialect}
			assert.Equal(t, tt.want, d.rewrite(tt.in))
		})
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	env := &config.Config{
		DBType: "postgresql",
		DBHost: "env-host",
		DBPort: "5544",
		DBName: "env_db",
		DBUser: "env_user",
	}

	// Body values win over environment values.
	c := ResolveConfig(ConnConfig{Host: "body-host", Database: "body_db"}, env)
	assert.Equal(t, "body-host", c.Host)
	assert.Equal(t, "body_db", c.Database)
	assert.Equal(t, "5544", c.Port)
	assert.Equal(t, "env_user", c.Username)

	// Environment values win over defaults.
	c = ResolveConfig(ConnConfig{}, env)
	assert.Equal(t, "env-host", c.Host)
	assert.Equal(t, "env_db", c.Database)

	// Defaults apply when both body and env are empty.
	c = ResolveConfig(ConnConfig{}, &config.Config{})
	assert.Equal(t, string(DialectPostgres), c.Type)
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, "5432", c.Port)
	assert.Equal(t, "lifeos_db", c.Database)
	assert.Equal(t, "postgres", c.Username)

	c = ResolveConfig(ConnConfig{Type: "mysql"}, &config.Config{})
	assert.Equal(t, "3306", c.Port)
	assert.Equal(t, "root", c.Username)
}

func TestConnectRejectsUnknownDialect(t *testing.T) {
	_, err := Connect(context.Background(), ConnConfig{Type: "sqlite"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestManagerSwap(t *testing.T) {
	m := NewManager()
	require.Nil(t, m.Get())

	first := &DB{dialect: DialectPostgres}
	require.Nil(t, m.Swap(first))
	assert.Same(t, first, m.Get())

	second := &DB{dialect: DialectMySQL}
	assert.Same(t, first, m.Swap(second))
	assert.Same(t, second, m.Get())
}
