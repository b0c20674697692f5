package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pranto48/lifeos-backend/internal/database"
)

// Memory is an in-memory Provider/Users/Settings implementation used by unit
// tests across packages. It enforces the same unique constraints the SQL
// schema does so conflict paths can be exercised without an engine.
type Memory struct {
	mu       sync.Mutex
	users    map[string]*User // keyed by id
	roles    map[string][]string
	profiles map[string]string // user_id -> full_name

	setupComplete  bool
	dbType         string
	installationID string

	// Unconfigured simulates the "no database configured yet" mode.
	Unconfigured bool
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]*User),
		roles:    make(map[string][]string),
		profiles: make(map[string]string),
	}
}

func (m *Memory) Users() (Users, error) {
	if m.Unconfigured {
		return nil, database.ErrNotConfigured
	}
	return m, nil
}

func (m *Memory) Settings() (Settings, error) {
	if m.Unconfigured {
		return nil, database.ErrNotConfigured
	}
	return m, nil
}

func (m *Memory) Create(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return database.ErrDuplicateKey
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *Memory) GetByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *Memory) GetByID(ctx context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *Memory) Roles(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.roles[userID]...), nil
}

func (m *Memory) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *Memory) AddRole(ctx context.Context, userID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles[userID] {
		if r == role {
			return nil
		}
	}
	m.roles[userID] = append(m.roles[userID], role)
	return nil
}

func (m *Memory) UpsertAdmin(ctx context.Context, email, passwordHash, fullName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u.PasswordHash = passwordHash
			u.FullName = fullName
			return u.ID, nil
		}
	}
	id := uuid.NewString()
	m.users[id] = &User{ID: id, Email: email, PasswordHash: passwordHash, FullName: fullName}
	return id, nil
}

func (m *Memory) UpsertProfile(ctx context.Context, userID, fullName, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[userID] = fullName
	return nil
}

func (m *Memory) Setup(ctx context.Context) (bool, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setupComplete, m.dbType, nil
}

func (m *Memory) MarkSetupComplete(ctx context.Context, dbType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setupComplete = true
	m.dbType = dbType
	return nil
}

func (m *Memory) InstallationID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.installationID == "" {
		m.installationID = InstallationIDPrefix + uuid.NewString()
	}
	return m.installationID, nil
}
