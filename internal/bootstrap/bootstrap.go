// Package bootstrap drives process-start orchestration: connect with retry,
// ensure the schema, seed the administrator account. The sequence is linear
// and never branches back; failures are logged and the HTTP listener starts
// regardless so an operator can always reach the setup routes.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pranto48/lifeos-backend/internal/auth"
	"github.com/pranto48/lifeos-backend/internal/database"
	"github.com/pranto48/lifeos-backend/internal/repository"
	"github.com/pranto48/lifeos-backend/internal/schema"
	"github.com/pranto48/lifeos-backend/pkg/config"
)

const (
	connectAttempts = 10
	connectDelay    = 3 * time.Second
	seedTimeout     = 30 * time.Second
)

// The admin credential is deterministically recoverable after any restart:
// seeding always overwrites the stored password hash. This is a deliberate
// recovery mechanism for self-hosted deployments.
const (
	DefaultAdminEmail    = "admin@lifeos.local"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Administrator"
)

// Run executes the startup sequence against the environment-configured
// database. When DB_HOST is absent it returns immediately and the server
// serves in "no database configured" mode.
func Run(ctx context.Context, cfg *config.Config, m *database.Manager, log *zap.Logger) {
	if !cfg.DatabaseConfigured() {
		log.Info("no database configured, waiting for setup")
		return
	}

	db := connectWithRetry(ctx, cfg, log)
	if db == nil {
		log.Error("could not reach database, serving without a handle",
			zap.Int("attempts", connectAttempts))
		return
	}
	m.Swap(db)

	if err := schema.Ensure(ctx, db); err != nil {
		log.Error("schema ensure failed", zap.Error(err))
		return
	}

	if err := Seed(ctx, repository.NewUsers(db), repository.NewSettings(db),
		string(db.Dialect()), DefaultAdminEmail, DefaultAdminPassword, DefaultAdminName); err != nil {
		log.Error("admin seed failed", zap.Error(err))
		return
	}

	log.Info("bootstrap complete", zap.String("dialect", string(db.Dialect())))
}

func connectWithRetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *database.DB {
	conn := database.ResolveConfig(database.ConnConfig{}, cfg)
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := database.Connect(ctx, conn)
		if err == nil {
			log.Info("database connected",
				zap.String("dialect", conn.Type),
				zap.Int("attempt", attempt))
			return db
		}
		log.Warn("database connect failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt == connectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(connectDelay):
		}
	}
	return nil
}

// Seed idempotently installs the administrator account: upsert the user
// (always overwriting the password hash), grant the admin role, ensure a
// profile, and mark setup complete. Callers decide whether a failure aborts.
func Seed(ctx context.Context, users repository.Users, settings repository.Settings,
	dbType, email, password, name string) error {

	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	id, err := users.UpsertAdmin(ctx, email, hash, name)
	if err != nil {
		return fmt.Errorf("upsert admin user: %w", err)
	}
	if err := users.AddRole(ctx, id, auth.RoleAdmin); err != nil {
		return fmt.Errorf("grant admin role: %w", err)
	}
	if err := users.UpsertProfile(ctx, id, name, email); err != nil {
		return fmt.Errorf("ensure admin profile: %w", err)
	}
	if err := settings.MarkSetupComplete(ctx, dbType); err != nil {
		return fmt.Errorf("mark setup complete: %w", err)
	}
	return nil
}
