// Package auth handles account registration and password checks for
// incoming connections.
package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	mkerr "github.com/thornvale/mud/internal/errors"
	"github.com/thornvale/mud/internal/repositories/accounts"
)

// Manager registers accounts and verifies passwords against stored
// bcrypt hashes.
type Manager struct {
	repo accounts.Repository
	now  func() time.Time
}

// ManagerConfig holds configuration for the auth manager.
type ManagerConfig struct {
	Repository accounts.Repository

	// TimeProvider is optional and defaults to time.Now.
	TimeProvider func() time.Time
}

// NewManager creates an auth manager.
func NewManager(cfg *ManagerConfig) *Manager {
	if cfg.Repository == nil {
		panic("account repository is required")
	}
	now := cfg.TimeProvider
	if now == nil {
		now = time.Now
	}
	return &Manager{repo: cfg.Repository, now: now}
}

// Register creates a new account with a bcrypt hash of the password
// and links it to the given character.
func (m *Manager) Register(ctx context.Context, name, password, characterID string) (*accounts.Account, error) {
	if len(password) < 4 {
		return nil, mkerr.InvalidArgument("password must be at least 4 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, mkerr.Wrap(err, "failed to hash password")
	}

	account := &accounts.Account{
		Name:         name,
		PasswordHash: hash,
		CharacterID:  characterID,
		CreatedAt:    m.now().UTC(),
	}
	if err := m.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Exists reports whether an account with the given name is registered.
func (m *Manager) Exists(ctx context.Context, name string) (bool, error) {
	_, err := m.repo.Get(ctx, name)
	if err != nil {
		if mkerr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Authenticate checks the password for an existing account and stamps
// the login time. A missing account and a wrong password both return
// an unauthenticated error so the login prompt leaks nothing.
func (m *Manager) Authenticate(ctx context.Context, name, password string) (*accounts.Account, error) {
	account, err := m.repo.Get(ctx, name)
	if err != nil {
		if mkerr.IsNotFound(err) {
			return nil, mkerr.Unauthenticated("invalid name or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return nil, mkerr.Unauthenticated("invalid name or password")
	}

	account.LastLoginAt = m.now().UTC()
	if err := m.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
