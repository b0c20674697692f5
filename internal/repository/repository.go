// Package repository holds the SQL for the core tables. Reads are shared
// between dialects thanks to the DAL's placeholder rewriting; every statement
// whose syntax drifts between engines (upserts) lives in a per-dialect
// implementation so the drift stays in one place.
package repository

import (
	"context"

	"github.com/pranto48/lifeos-backend/internal/database"
)

// User is a row of the users table as the core needs it.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
}

// Users is the access interface for users, user_roles and profiles.
type Users interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Roles(ctx context.Context, userID string) ([]string, error)
	Count(ctx context.Context) (int, error)

	// Dialect-specific upserts.
	AddRole(ctx context.Context, userID, role string) error
	UpsertAdmin(ctx context.Context, email, passwordHash, fullName string) (string, error)
	UpsertProfile(ctx context.Context, userID, fullName, email string) error
}

// Settings is the access interface for the app_settings table.
type Settings interface {
	Setup(ctx context.Context) (complete bool, dbType string, err error)
	MarkSetupComplete(ctx context.Context, dbType string) error
	InstallationID(ctx context.Context) (string, error)
}

// NewUsers returns the Users implementation for the handle's dialect.
func NewUsers(db *database.DB) Users {
	if db.Dialect() == database.DialectMySQL {
		return &mysqlUsers{usersBase{db: db}}
	}
	return &postgresUsers{usersBase{db: db}}
}

// NewSettings returns the Settings implementation for the handle's dialect.
func NewSettings(db *database.DB) Settings {
	if db.Dialect() == database.DialectMySQL {
		return &mysqlSettings{settingsBase{db: db}}
	}
	return &postgresSettings{settingsBase{db: db}}
}
