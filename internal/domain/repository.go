package domain

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// UpdateBalance replaces the account's cash balance.
	// Implementations persist the new balance as-is; the balance invariants
	// are enforced by the ledger service under its account lock.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance Money) error
}

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// GetByInstrument retrieves the account's position for one instrument
	GetByInstrument(ctx context.Context, accountID uuid.UUID, instrumentID string) (*Holding, error)

	// List retrieves all positions for an account
	List(ctx context.Context, accountID uuid.UUID) ([]*Holding, error)

	// Upsert creates the holding on first trade or replaces it on later ones
	Upsert(ctx context.Context, holding *Holding) error

	// Delete removes a position whose share count reached zero
	Delete(ctx context.Context, accountID uuid.UUID, instrumentID string) error
}

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	// Append adds a record to the log. Records are immutable once appended.
	Append(ctx context.Context, record *ActivityRecord) error

	// List retrieves all records for an account in insertion (time) order
	List(ctx context.Context, accountID uuid.UUID) ([]*ActivityRecord, error)

	// Count returns the number of records for an account
	Count(ctx context.Context, accountID uuid.UUID) (int, error)
}
