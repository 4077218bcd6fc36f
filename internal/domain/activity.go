package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PayeeKind tags the counterparty of an activity record explicitly at
// creation time. The UI used to infer person-vs-business from the shape of
// the display string; a tagged field replaces that heuristic.
type PayeeKind string

const (
	PayeeKindPerson   PayeeKind = "PERSON"
	PayeeKindMerchant PayeeKind = "MERCHANT"
)

// ActivityDirection marks whether a record moved money out of or into the account
type ActivityDirection string

const (
	DirectionOutgoing ActivityDirection = "OUTGOING"
	DirectionIncoming ActivityDirection = "INCOMING"
)

// ActivityRecord is an immutable display record appended whenever a ledger
// mutation completes successfully. Records are stored in time order and are
// never mutated after creation; most-recent-first ordering is a presentation
// concern for the caller.
type ActivityRecord struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Avatar        string
	TitleLeft     string
	SubtitleLeft  string
	TitleRight    string
	SubtitleRight string
	Amount        Money
	Direction     ActivityDirection
	PayeeKind     PayeeKind
	Date          time.Time
}

// Validate ensures the activity record adheres to domain rules
// Returns an error if validation fails
func (r *ActivityRecord) Validate() error {
	if r.TitleLeft == "" {
		return errors.New("activity record title cannot be empty")
	}
	if r.Direction != DirectionOutgoing && r.Direction != DirectionIncoming {
		return errors.New("activity direction must be OUTGOING or INCOMING")
	}
	if r.PayeeKind != "" && r.PayeeKind != PayeeKindPerson && r.PayeeKind != PayeeKindMerchant {
		return errors.New("payee kind must be PERSON or MERCHANT")
	}
	if r.Amount.IsNegative() {
		return errors.New("activity amount is stored as an absolute value")
	}
	return nil
}
