// Package transfer implements the P2P money flows (send, receive, bill
// splitting) on top of the ledger, the currency converter, and the split
// calculator. A transfer carries an explicit Pending -> Committed | Failed
// status; the ledger is only touched on explicit submit and observable state
// is never mutated ahead of the outcome.
package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/slinghq/sling-backend/internal/usecase/converter"
	"github.com/slinghq/sling-backend/internal/usecase/ledger"
	"github.com/slinghq/sling-backend/internal/usecase/split"
)

// Service handles peer-to-peer transfers and bill splitting
type Service struct {
	Ledger       *ledger.Service
	Converter    *converter.Service
	ActivityRepo domain.ActivityRepository
	BaseCurrency string
}

// NewService creates a new transfer Service instance
func NewService(
	ledgerService *ledger.Service,
	converterService *converter.Service,
	activityRepo domain.ActivityRepository,
	baseCurrency string,
) *Service {
	return &Service{
		Ledger:       ledgerService,
		Converter:    converterService,
		ActivityRepo: activityRepo,
		BaseCurrency: baseCurrency,
	}
}

// SendInput represents the input for sending money to a counterparty.
// Amount is in the sender's display currency; the service converts it to the
// base ledger currency before debiting.
type SendInput struct {
	AccountID    uuid.UUID
	Counterparty string
	PayeeKind    domain.PayeeKind
	Amount       domain.Money
	Note         string
}

// Send moves money out of the account to a counterparty.
// Logic:
//  1. Build the transfer in Pending status
//  2. Convert the display-currency amount to the base currency, rounded to
//     minor units
//  3. Debit the ledger with the activity record in one atomic step
//  4. Mark the transfer Committed on success, Failed otherwise
//
// The transfer is returned in both outcomes so callers always see the final
// status alongside the error.
func (s *Service) Send(ctx context.Context, input SendInput) (*domain.Transfer, error) {
	if input.Counterparty == "" {
		return nil, errors.New("transfer counterparty cannot be empty")
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	kind := input.PayeeKind
	if kind == "" {
		kind = domain.PayeeKindPerson
	}

	tr := &domain.Transfer{
		ID:            uuid.New(),
		AccountID:     input.AccountID,
		Counterparty:  input.Counterparty,
		PayeeKind:     kind,
		DisplayAmount: input.Amount,
		Note:          input.Note,
		Status:        domain.TransferStatusPending,
		CreatedAt:     time.Now(),
	}

	base, err := s.Converter.Convert(ctx, input.Amount, s.BaseCurrency)
	if err != nil {
		tr.Status = domain.TransferStatusFailed
		return tr, err
	}
	tr.BaseAmount = base.Round()

	activity := &domain.ActivityRecord{
		ID:            uuid.New(),
		Avatar:        input.Counterparty,
		TitleLeft:     input.Counterparty,
		SubtitleLeft:  noteOr(input.Note, "Sent"),
		TitleRight:    "-" + tr.BaseAmount.String(),
		SubtitleRight: input.Amount.String(),
		Amount:        tr.BaseAmount,
		Direction:     domain.DirectionOutgoing,
		PayeeKind:     kind,
		Date:          tr.CreatedAt,
	}

	if err := s.Ledger.Debit(ctx, input.AccountID, tr.BaseAmount, activity); err != nil {
		tr.Status = domain.TransferStatusFailed
		return tr, err
	}

	tr.Status = domain.TransferStatusCommitted
	return tr, nil
}

// ReceiveInput represents the input for an incoming payment
type ReceiveInput struct {
	AccountID    uuid.UUID
	Counterparty string
	PayeeKind    domain.PayeeKind
	Amount       domain.Money
	Note         string
}

// Receive credits an incoming payment to the account, converting from the
// sender's currency to the base currency when they differ.
func (s *Service) Receive(ctx context.Context, input ReceiveInput) (*domain.Transfer, error) {
	if input.Counterparty == "" {
		return nil, errors.New("transfer counterparty cannot be empty")
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	kind := input.PayeeKind
	if kind == "" {
		kind = domain.PayeeKindPerson
	}

	tr := &domain.Transfer{
		ID:            uuid.New(),
		AccountID:     input.AccountID,
		Counterparty:  input.Counterparty,
		PayeeKind:     kind,
		DisplayAmount: input.Amount,
		Note:          input.Note,
		Status:        domain.TransferStatusPending,
		CreatedAt:     time.Now(),
	}

	base, err := s.Converter.Convert(ctx, input.Amount, s.BaseCurrency)
	if err != nil {
		tr.Status = domain.TransferStatusFailed
		return tr, err
	}
	tr.BaseAmount = base.Round()

	activity := &domain.ActivityRecord{
		ID:            uuid.New(),
		Avatar:        input.Counterparty,
		TitleLeft:     input.Counterparty,
		SubtitleLeft:  noteOr(input.Note, "Received"),
		TitleRight:    "+" + tr.BaseAmount.String(),
		SubtitleRight: input.Amount.String(),
		Amount:        tr.BaseAmount,
		Direction:     domain.DirectionIncoming,
		PayeeKind:     kind,
		Date:          tr.CreatedAt,
	}

	if err := s.Ledger.Credit(ctx, input.AccountID, tr.BaseAmount, activity); err != nil {
		tr.Status = domain.TransferStatusFailed
		return tr, err
	}

	tr.Status = domain.TransferStatusCommitted
	return tr, nil
}

// RequestSplitInput represents the input for splitting a bill with contacts.
// Contacts does not include the payer; the payer is always a participant.
type RequestSplitInput struct {
	AccountID uuid.UUID
	Total     domain.Money
	Contacts  []string
	Note      string
}

// RequestSplit splits a bill equally across the payer and the given
// contacts and records a payment request per contact. No ledger mutation
// happens here; money moves when a contact settles (SettleSplitShare).
// The payer absorbs the first remainder cent, so no contact ever pays more
// than the payer.
func (s *Service) RequestSplit(ctx context.Context, input RequestSplitInput) (*domain.SplitShare, error) {
	if len(input.Contacts) == 0 {
		return nil, errors.New("split must include at least one contact")
	}

	share, err := split.SplitEqually(input.Total, len(input.Contacts)+1)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i, contact := range input.Contacts {
		// Shares[0] is the payer's own portion
		requested := share.Shares[i+1]
		record := &domain.ActivityRecord{
			ID:            uuid.New(),
			AccountID:     input.AccountID,
			Avatar:        contact,
			TitleLeft:     contact,
			SubtitleLeft:  noteOr(input.Note, "Split request"),
			TitleRight:    requested.String(),
			SubtitleRight: "Requested",
			Amount:        requested,
			Direction:     domain.DirectionIncoming,
			PayeeKind:     domain.PayeeKindPerson,
			Date:          now,
		}
		if err := s.ActivityRepo.Append(ctx, record); err != nil {
			return nil, err
		}
	}

	return share, nil
}

// SettleSplitShare credits one contact's paid share back to the payer
func (s *Service) SettleSplitShare(ctx context.Context, accountID uuid.UUID, contact string, amount domain.Money) (*domain.Transfer, error) {
	return s.Receive(ctx, ReceiveInput{
		AccountID:    accountID,
		Counterparty: contact,
		PayeeKind:    domain.PayeeKindPerson,
		Amount:       amount,
		Note:         "Split settled",
	})
}

// noteOr returns the user's note, or the flow's default label when empty
func noteOr(note, fallback string) string {
	if note != "" {
		return note
	}
	return fallback
}
