package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pranto48/lifeos-backend/internal/database"
	"github.com/pranto48/lifeos-backend/internal/repository"
	appErr "github.com/pranto48/lifeos-backend/pkg/errors"
)

// RoleUser and RoleAdmin are the only roles the core grants.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the user shape returned to API clients. It never carries the
// password hash.
type Account struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

// Service implements registration, login and session lookup on top of the
// credential store and token codec.
type Service struct {
	repos  repository.Provider
	tokens *TokenCodec
	log    *zap.Logger
}

func NewService(repos repository.Provider, tokens *TokenCodec, log *zap.Logger) *Service {
	return &Service{repos: repos, tokens: tokens, log: log}
}

func (s *Service) users() (repository.Users, error) {
	users, err := s.repos.Users()
	if err != nil {
		if errors.Is(err, database.ErrNotConfigured) {
			return nil, appErr.New(appErr.CodeUnavailable, "Database not configured")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "Database unavailable")
	}
	return users, nil
}

// Register creates a user with the default role and profile and returns a
// fresh token. A duplicate email surfaces as a conflict, not a 500.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (string, *Account, error) {
	users, err := s.users()
	if err != nil {
		return "", nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "Registration failed")
	}

	u := &repository.User{Email: email, PasswordHash: hash, FullName: fullName}
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return "", nil, appErr.New(appErr.CodeConflict, "Email already registered")
		}
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "Registration failed")
	}

	if err := users.AddRole(ctx, u.ID, RoleUser); err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "Registration failed")
	}
	if err := users.UpsertProfile(ctx, u.ID, fullName, email); err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "Registration failed")
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "Registration failed")
	}

	s.log.Info("user registered", zap.String("user_id", u.ID))
	return token, &Account{ID: u.ID, Email: u.Email, FullName: u.FullName, Roles: []string{RoleUser}}, nil
}

// Login validates credentials and issues a token. The failure message never
// reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	users, err := s.users()
	if err != nil {
		return "", nil, err
	}

	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", nil, appErr.New(appErr.CodeUnauthorized, "Invalid credentials")
		}
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "Login failed")
	}

	if !VerifyPassword(password, u.PasswordHash) {
		return "", nil, appErr.New(appErr.CodeUnauthorized, "Invalid credentials")
	}

	roles, err := users.Roles(ctx, u.ID)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "Login failed")
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "Login failed")
	}

	return token, &Account{ID: u.ID, Email: u.Email, FullName: u.FullName, Roles: roles}, nil
}

// Session resolves a bearer token back to its account. An invalid or expired
// token, or a user row deleted since issuance, yields unauthorized.
func (s *Service) Session(ctx context.Context, token string) (*Account, error) {
	claims, ok := s.tokens.Verify(token)
	if !ok {
		return nil, appErr.New(appErr.CodeUnauthorized, "Invalid or expired token")
	}

	users, err := s.users()
	if err != nil {
		return nil, err
	}

	u, err := users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, appErr.New(appErr.CodeUnauthorized, "Invalid or expired token")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "Session lookup failed")
	}

	roles, err := users.Roles(ctx, u.ID)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "Session lookup failed")
	}

	return &Account{ID: u.ID, Email: u.Email, FullName: u.FullName, Roles: roles}, nil
}

// UserID extracts the subject from a bearer token without touching the
// database. Used by callers that only need an identity hint.
func (s *Service) UserID(token string) string {
	claims, ok := s.tokens.Verify(token)
	if !ok {
		return ""
	}
	return claims.Subject
}
