// Package memory provides in-process implementations of the domain
// repositories. This is the prototype's native persistence model: state
// lives for the app's lifetime and is owned by a single account context.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/slinghq/sling-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]domain.Account
}

// NewAccountRepository creates a new in-memory account repository
func NewAccountRepository() domain.AccountRepository {
	return &accountRepository{
		accounts: make(map[uuid.UUID]domain.Account),
	}
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	// Return a copy so callers cannot mutate the store in place
	return &account, nil
}

// Create creates a new account
func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[account.ID] = *account
	return nil
}

// UpdateBalance replaces the account's cash balance
func (r *accountRepository) UpdateBalance(_ context.Context, id uuid.UUID, balance domain.Money) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.CashBalance = balance
	r.accounts[id] = account
	return nil
}
