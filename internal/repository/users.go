package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pranto48/lifeos-backend/internal/database"
)

// usersBase carries the statements whose text is identical across dialects.
type usersBase struct {
	db *database.DB
}

func (r *usersBase) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.FullName)
	return err
}

func (r *usersBase) GetByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := r.db.ScanRow(ctx,
		`SELECT id, email, password_hash, COALESCE(full_name, '') FROM users WHERE email = $1`,
		[]any{email},
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *usersBase) GetByID(ctx context.Context, id string) (*User, error) {
	u := &User{}
	err := r.db.ScanRow(ctx,
		`SELECT id, email, password_hash, COALESCE(full_name, '') FROM users WHERE id = $1`,
		[]any{id},
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *usersBase) Roles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *usersBase) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.ScanRow(ctx, `SELECT COUNT(*) FROM users`, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

type postgresUsers struct {
	usersBase
}

func (r *postgresUsers) AddRole(ctx context.Context, userID, role string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_roles (id, user_id, role) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, role) DO NOTHING`,
		uuid.NewString(), userID, role)
	return err
}

func (r *postgresUsers) UpsertAdmin(ctx context.Context, email, passwordHash, fullName string) (string, error) {
	var id string
	err := r.db.ScanRow(ctx,
		`INSERT INTO users (id, email, password_hash, full_name) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO UPDATE
		     SET password_hash = EXCLUDED.password_hash, full_name = EXCLUDED.full_name
		 RETURNING id`,
		[]any{uuid.NewString(), email, passwordHash, fullName},
		&id)
	return id, err
}

func (r *postgresUsers) UpsertProfile(ctx context.Context, userID, fullName, email string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, full_name, email) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		     SET full_name = EXCLUDED.full_name, email = EXCLUDED.email`,
		uuid.NewString(), userID, fullName, email)
	return err
}

type mysqlUsers struct {
	usersBase
}

func (r *mysqlUsers) AddRole(ctx context.Context, userID, role string) error {
	_, err := r.db.Exec(ctx,
		`INSERT IGNORE INTO user_roles (id, user_id, role) VALUES ($1, $2, $3)`,
		uuid.NewString(), userID, role)
	return err
}

func (r *mysqlUsers) UpsertAdmin(ctx context.Context, email, passwordHash, fullName string) (string, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name) VALUES ($1, $2, $3, $4)
		 ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash), full_name = VALUES(full_name)`,
		uuid.NewString(), email, passwordHash, fullName)
	if err != nil {
		return "", err
	}

	// MySQL has no RETURNING; the row is keyed by the unique email either way.
	var id string
	err = r.db.ScanRow(ctx, `SELECT id FROM users WHERE email = $1`, []any{email}, &id)
	return id, err
}

func (r *mysqlUsers) UpsertProfile(ctx context.Context, userID, fullName, email string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, full_name, email) VALUES ($1, $2, $3, $4)
		 ON DUPLICATE KEY UPDATE full_name = VALUES(full_name), email = VALUES(email)`,
		uuid.NewString(), userID, fullName, email)
	return err
}
