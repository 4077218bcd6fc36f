package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Account represents a single user's ledger context: one mutable cash
// balance held in the app's base currency (USDP, a digital-dollar stand-in).
// Holdings and activity hang off the account by ID.
// There is no multi-user model; the server seeds one default account, but
// the engine is written against explicit account IDs so tests and future
// multi-account use stay isolated (no process-wide singletons).
type Account struct {
	ID          uuid.UUID
	DisplayName string
	CashBalance Money // base currency only
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.DisplayName == "" {
		return errors.New("account display name cannot be empty")
	}
	if a.CashBalance.Currency == "" {
		return errors.New("account cash balance must carry a currency")
	}
	// The balance may be zero but never negative; debits guard this at
	// mutation time and persisted state must agree.
	if a.CashBalance.IsNegative() {
		return errors.New("account cash balance cannot be negative")
	}
	return nil
}
