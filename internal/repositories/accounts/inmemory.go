package accounts

import (
	"context"
	"strings"
	"sync"

	mkerr "github.com/thornvale/mud/internal/errors"
)

type inMemoryRepo struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

// NewInMemoryRepository creates an in-memory account repository for
// development and testing.
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{accounts: make(map[string]*Account)}
}

func (r *inMemoryRepo) Create(_ context.Context, account *Account) error {
	if account == nil || account.Name == "" {
		return mkerr.InvalidArgument("account name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(account.Name)
	if _, ok := r.accounts[key]; ok {
		return mkerr.AlreadyExistsf("account '%s' already exists", account.Name)
	}
	clone := *account
	r.accounts[key] = &clone
	return nil
}

func (r *inMemoryRepo) Get(_ context.Context, name string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[strings.ToLower(name)]
	if !ok {
		return nil, mkerr.NotFoundf("account '%s' not found", name)
	}
	clone := *account
	return &clone, nil
}

func (r *inMemoryRepo) Update(_ context.Context, account *Account) error {
	if account == nil || account.Name == "" {
		return mkerr.InvalidArgument("account name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(account.Name)
	if _, ok := r.accounts[key]; !ok {
		return mkerr.NotFoundf("account '%s' not found", account.Name)
	}
	clone := *account
	r.accounts[key] = &clone
	return nil
}
