package seeder

import (
	"context"

	"github.com/google/uuid"
	"github.com/slinghq/sling-backend/internal/domain"
)

// DefaultAccountID is the fixed ID of the single prototype account. The
// ledger is created on first use with a zero balance; the seeder makes
// "first use" explicit at startup.
var DefaultAccountID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// AccountSeeder ensures the default account exists at startup
type AccountSeeder struct {
	repo         domain.AccountRepository
	baseCurrency string
}

// NewAccountSeeder creates a new AccountSeeder instance
func NewAccountSeeder(repo domain.AccountRepository, baseCurrency string) *AccountSeeder {
	return &AccountSeeder{
		repo:         repo,
		baseCurrency: baseCurrency,
	}
}

// Seed creates the default account with a zero balance in the base currency
// if it does not exist yet. Existing accounts are left untouched.
func (s *AccountSeeder) Seed(ctx context.Context) error {
	_, err := s.repo.GetByID(ctx, DefaultAccountID)
	if err == nil {
		return nil
	}

	account := &domain.Account{
		ID:          DefaultAccountID,
		DisplayName: "Sling",
		CashBalance: domain.ZeroMoney(s.baseCurrency),
	}

	if err := account.Validate(); err != nil {
		return err
	}

	return s.repo.Create(ctx, account)
}
