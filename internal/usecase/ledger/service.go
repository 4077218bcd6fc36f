// Package ledger owns the single cash balance of an account and is the only
// writer of balance mutations. Every mutation is atomic per call: the balance
// check, the balance write, and the activity record for the mutation happen
// inside one critical section, so a failed debit never leaves a partial
// update and an activity record never exists without its mutation.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/slinghq/sling-backend/internal/domain"
)

// Service handles cash balance operations for accounts
type Service struct {
	AccountRepo  domain.AccountRepository
	ActivityRepo domain.ActivityRepository

	// mu serializes balance mutations. The UI prototype relied on the main
	// thread for this; here concurrent callers must observe check-then-act
	// as a single step.
	mu sync.Mutex
}

// NewService creates a new ledger Service instance
func NewService(accountRepo domain.AccountRepository, activityRepo domain.ActivityRepository) *Service {
	return &Service{
		AccountRepo:  accountRepo,
		ActivityRepo: activityRepo,
	}
}

// Balance returns the account's current cash balance, read-only
func (s *Service) Balance(ctx context.Context, accountID uuid.UUID) (domain.Money, error) {
	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, err
	}
	return account.CashBalance, nil
}

// Credit increases the account's cash balance by amount.
// Logic:
//  1. Validate amount is positive (negative deltas must go through Debit)
//  2. Validate the amount currency matches the ledger's base currency
//  3. Apply the balance write and the activity record together
//
// Credit is additive and needs no balance check, so it always succeeds for a
// valid account and amount.
func (s *Service) Credit(ctx context.Context, accountID uuid.UUID, amount domain.Money, activity *domain.ActivityRecord) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !amount.SameCurrency(account.CashBalance) {
		return domain.ErrCurrencyMismatch
	}

	return s.applyMutation(ctx, account, account.CashBalance.Add(amount), activity)
}

// Debit decreases the account's cash balance by amount.
// Logic:
//  1. Validate amount is positive and in the base currency
//  2. Re-check sufficiency under the lock (UI pre-checks are advisory only
//     and may be stale)
//  3. Apply the balance write and the activity record together
//
// Returns ErrInsufficientFunds, with balance and activity log untouched,
// when amount exceeds the balance at mutation time.
func (s *Service) Debit(ctx context.Context, accountID uuid.UUID, amount domain.Money, activity *domain.ActivityRecord) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !amount.SameCurrency(account.CashBalance) {
		return domain.ErrCurrencyMismatch
	}
	if amount.GreaterThan(account.CashBalance) {
		return domain.ErrInsufficientFunds
	}

	return s.applyMutation(ctx, account, account.CashBalance.Sub(amount), activity)
}

// applyMutation persists the new balance and appends the activity record as
// one unit. If the append fails the balance write is compensated, so the two
// either both happen or neither does. Callers hold s.mu.
func (s *Service) applyMutation(ctx context.Context, account *domain.Account, newBalance domain.Money, activity *domain.ActivityRecord) error {
	previous := account.CashBalance

	if err := s.AccountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	if activity == nil {
		return nil
	}

	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	activity.AccountID = account.ID

	if err := activity.Validate(); err != nil {
		// Roll the balance back before surfacing the bad record
		if rbErr := s.AccountRepo.UpdateBalance(ctx, account.ID, previous); rbErr != nil {
			return fmt.Errorf("failed to roll back balance after invalid activity: %w", rbErr)
		}
		return err
	}

	if err := s.ActivityRepo.Append(ctx, activity); err != nil {
		if rbErr := s.AccountRepo.UpdateBalance(ctx, account.ID, previous); rbErr != nil {
			return fmt.Errorf("failed to roll back balance after activity append error: %w", rbErr)
		}
		return fmt.Errorf("failed to append activity record: %w", err)
	}

	return nil
}
