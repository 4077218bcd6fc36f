package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferStatus is the explicit state machine for a P2P money movement.
// A transfer starts Pending and moves to Committed only once the ledger
// mutation has succeeded, or to Failed if it did not. Observable state is
// never mutated speculatively before the outcome is known.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusCommitted TransferStatus = "COMMITTED"
	TransferStatusFailed    TransferStatus = "FAILED"
)

// Transfer represents one peer-to-peer send, receive, or split settlement.
// DisplayAmount is what the user entered in their display currency;
// BaseAmount is the converted amount actually applied to the ledger.
type Transfer struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Counterparty  string
	PayeeKind     PayeeKind
	DisplayAmount Money
	BaseAmount    Money
	Note          string
	Status        TransferStatus
	CreatedAt     time.Time
}
