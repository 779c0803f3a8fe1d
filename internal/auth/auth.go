// Package auth implements the single-user identity provider. Credentials are
// bcrypt hashes; the active session is persisted in the store so a restart
// does not log the user out.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"extraque/internal/core"
	"extraque/internal/store"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidEmail       = errors.New("invalid email address")
)

// Demo credentials seeded on first start so the app is usable out of the box.
const (
	DemoEmail    = "test@example.com"
	DemoPassword = "password123"
	DemoName     = "Test User"
)

type Service struct {
	identities store.IdentityStore
}

func New(identities store.IdentityStore) *Service {
	return &Service{identities: identities}
}

// Login checks credentials and persists the session. Unknown accounts and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (core.Identity, error) {
	email = normalizeEmail(email)

	u, found, err := s.identities.GetUserByEmail(ctx, email)
	if err != nil {
		return core.Identity{}, fmt.Errorf("look up account: %w", err)
	}
	if !found {
		return core.Identity{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return core.Identity{}, ErrInvalidCredentials
	}

	if err := s.identities.SaveSession(ctx, u.ID); err != nil {
		return core.Identity{}, fmt.Errorf("save session: %w", err)
	}
	return u.Identity, nil
}

// Signup creates an account and logs it in.
func (s *Service) Signup(ctx context.Context, email, password, name string) (core.Identity, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return core.Identity{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return core.Identity{}, ErrPasswordTooShort
	}

	_, found, err := s.identities.GetUserByEmail(ctx, email)
	if err != nil {
		return core.Identity{}, fmt.Errorf("look up account: %w", err)
	}
	if found {
		return core.Identity{}, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.identities.CreateUser(ctx, store.User{
		Identity:     core.Identity{Email: email, Name: name},
		PasswordHash: string(hash),
	})
	if err != nil {
		return core.Identity{}, fmt.Errorf("create account: %w", err)
	}

	if err := s.identities.SaveSession(ctx, u.ID); err != nil {
		return core.Identity{}, fmt.Errorf("save session: %w", err)
	}
	return u.Identity, nil
}

// Current returns the logged-in identity, if any.
func (s *Service) Current(ctx context.Context) (core.Identity, bool, error) {
	return s.identities.CurrentSession(ctx)
}

// Logout clears the persisted session. Logging out while logged out is fine.
func (s *Service) Logout(ctx context.Context) error {
	return s.identities.ClearSession(ctx)
}

// SeedDemoUser creates the demo account if it does not exist yet.
func (s *Service) SeedDemoUser(ctx context.Context) error {
	_, found, err := s.identities.GetUserByEmail(ctx, DemoEmail)
	if err != nil {
		return fmt.Errorf("look up demo account: %w", err)
	}
	if found {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	_, err = s.identities.CreateUser(ctx, store.User{
		Identity:     core.Identity{ID: store.DemoUserID, Email: DemoEmail, Name: DemoName},
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("create demo account: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
