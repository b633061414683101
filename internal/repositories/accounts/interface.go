package accounts

import (
	"context"
	"time"
)

// Account links a login name to a password hash and a character.
type Account struct {
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"password_hash"`
	CharacterID  string    `json:"character_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Repository defines storage operations for accounts.
type Repository interface {
	Create(ctx context.Context, account *Account) error
	Get(ctx context.Context, name string) (*Account, error)
	Update(ctx context.Context, account *Account) error
}
