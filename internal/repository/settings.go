package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pranto48/lifeos-backend/internal/database"
)

// InstallationIDPrefix marks the app_settings row holding the durable
// identity this deployment presents to the licensing portal.
const InstallationIDPrefix = "LIFEOS-"

type settingsBase struct {
	db *database.DB
}

func (r *settingsBase) Setup(ctx context.Context) (bool, string, error) {
	var complete bool
	var dbType string
	err := r.db.ScanRow(ctx,
		`SELECT setup_complete, COALESCE(db_type, '') FROM app_settings WHERE id = 'default'`,
		nil, &complete, &dbType)
	if err != nil {
		return false, "", err
	}
	return complete, dbType, nil
}

func (r *settingsBase) InstallationID(ctx context.Context) (string, error) {
	var id string
	err := r.db.ScanRow(ctx,
		`SELECT id FROM app_settings WHERE id LIKE 'LIFEOS-%' LIMIT 1`, nil, &id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return "", err
	}

	// First license check from this deployment: mint a durable identity.
	id = InstallationIDPrefix + uuid.NewString()
	_, err = r.db.Exec(ctx,
		`INSERT INTO app_settings (id, onboarding_enabled, setup_complete) VALUES ($1, FALSE, FALSE)`,
		id)
	if err != nil {
		return "", err
	}
	return id, nil
}

type postgresSettings struct {
	settingsBase
}

func (r *postgresSettings) MarkSetupComplete(ctx context.Context, dbType string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO app_settings (id, setup_complete, db_type) VALUES ('default', TRUE, $1)
		 ON CONFLICT (id) DO UPDATE SET setup_complete = TRUE, db_type = EXCLUDED.db_type`,
		dbType)
	return err
}

type mysqlSettings struct {
	settingsBase
}

func (r *mysqlSettings) MarkSetupComplete(ctx context.Context, dbType string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO app_settings (id, setup_complete, db_type) VALUES ('default', TRUE, $1)
		 ON DUPLICATE KEY UPDATE setup_complete = TRUE, db_type = VALUES(db_type)`,
		dbType)
	return err
}
