package repository

import (
	"github.com/pranto48/lifeos-backend/internal/database"
)

// Provider hands out repositories bound to the current database handle.
// Services depend on it instead of a fixed handle so the setup-initialize
// route can swap the connection underneath them.
type Provider interface {
	Users() (Users, error)
	Settings() (Settings, error)
}

type managerProvider struct {
	m *database.Manager
}

// NewProvider returns a Provider backed by the process-wide handle manager.
func NewProvider(m *database.Manager) Provider {
	return &managerProvider{m: m}
}

func (p *managerProvider) Users() (Users, error) {
	db := p.m.Get()
	if db == nil {
		return nil, database.ErrNotConfigured
	}
	return NewUsers(db), nil
}

func (p *managerProvider) Settings() (Settings, error) {
	db := p.m.Get()
	if db == nil {
		return nil, database.ErrNotConfigured
	}
	return NewSettings(db), nil
}
