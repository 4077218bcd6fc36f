// Package holdings tracks per-instrument positions (stocks and the USDY
// savings token) and keeps them consistent with the cash ledger: a buy
// debits cash and grows the position together, a sell shrinks the position
// and credits cash together. If the second half of a mutation fails the
// first half is compensated, so the pair succeeds or fails as one.
package holdings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/slinghq/sling-backend/internal/usecase/ledger"
)

// Service handles position mutations and valuations for an account
type Service struct {
	HoldingRepo domain.HoldingRepository
	Ledger      *ledger.Service

	// mu serializes position mutations. The share check, the position write,
	// and the paired ledger mutation must be observed as a single step;
	// concurrent sells must not both pass the share check.
	mu sync.Mutex
}

// NewService creates a new holdings Service instance
func NewService(holdingRepo domain.HoldingRepository, ledgerService *ledger.Service) *Service {
	return &Service{
		HoldingRepo: holdingRepo,
		Ledger:      ledgerService,
	}
}

// Buy purchases a fixed number of (fractional) shares at the given price.
// Logic:
//  1. cost = shares x pricePerShare
//  2. Debit the ledger for the cost (fails fast on insufficient funds)
//  3. Add shares and cost to the position; on a position write failure the
//     debit is compensated with an equal credit
func (s *Service) Buy(ctx context.Context, accountID uuid.UUID, instrumentID string, shares decimal.Decimal, pricePerShare domain.Money) (*domain.Holding, error) {
	if !shares.IsPositive() || !pricePerShare.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	cost := pricePerShare.Mul(shares)
	activity := tradeActivity(instrumentID, "Bought", cost, domain.DirectionOutgoing)
	return s.buyPosition(ctx, accountID, instrumentID, shares, cost, activity)
}

// BuyAmount purchases whatever number of shares a cash amount affords at the
// given price (fractional-share investing). The ledger is debited for the
// exact amount; the share count is rounded to SharePrecision digits.
func (s *Service) BuyAmount(ctx context.Context, accountID uuid.UUID, instrumentID string, amount, pricePerShare domain.Money) (*domain.Holding, error) {
	if !amount.IsPositive() || !pricePerShare.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	shares := amount.Amount.Div(pricePerShare.Amount).Round(domain.SharePrecision)
	activity := tradeActivity(instrumentID, "Bought", amount, domain.DirectionOutgoing)
	return s.buyPosition(ctx, accountID, instrumentID, shares, amount, activity)
}

// Sell disposes of shares at the given price.
// Logic:
//  1. Fails with ErrInsufficientShares if shares exceed the position
//  2. Reduces the share count and the cost basis proportionally
//     (costBasis x remaining/owned)
//  3. Credits the ledger with shares x pricePerShare; on a credit failure
//     the position reduction is restored
func (s *Service) Sell(ctx context.Context, accountID uuid.UUID, instrumentID string, shares decimal.Decimal, pricePerShare domain.Money) (*domain.Holding, error) {
	if !shares.IsPositive() || !pricePerShare.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	proceeds := pricePerShare.Mul(shares)
	activity := tradeActivity(instrumentID, "Sold", proceeds, domain.DirectionIncoming)
	return s.sellPosition(ctx, accountID, instrumentID, shares, proceeds, activity)
}

// Deposit converts a base-currency amount into token units at the given
// token price and adds them to the position (the savings flow: USDP in,
// USDY out). The ledger is debited first, same transactional contract as Buy.
func (s *Service) Deposit(ctx context.Context, accountID uuid.UUID, instrumentID string, baseAmount, tokenPrice domain.Money) (*domain.Holding, error) {
	if !baseAmount.IsPositive() || !tokenPrice.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	tokens := baseAmount.Amount.Div(tokenPrice.Amount).Round(domain.SharePrecision)
	activity := tradeActivity(instrumentID, "Deposited", baseAmount, domain.DirectionOutgoing)
	return s.buyPosition(ctx, accountID, instrumentID, tokens, baseAmount, activity)
}

// Withdraw is the inverse of Deposit: token units leave the position and
// tokenAmount x tokenPrice is credited back to the cash balance.
// Fails with ErrInsufficientShares if tokenAmount exceeds the held amount.
func (s *Service) Withdraw(ctx context.Context, accountID uuid.UUID, instrumentID string, tokenAmount decimal.Decimal, tokenPrice domain.Money) (*domain.Holding, error) {
	if !tokenAmount.IsPositive() || !tokenPrice.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	proceeds := tokenPrice.Mul(tokenAmount)
	activity := tradeActivity(instrumentID, "Withdrew", proceeds, domain.DirectionIncoming)
	return s.sellPosition(ctx, accountID, instrumentID, tokenAmount, proceeds, activity)
}

// CurrentValue returns shares x currentPrice for the instrument's position
func (s *Service) CurrentValue(ctx context.Context, accountID uuid.UUID, instrumentID string, currentPrice domain.Money) (domain.Money, error) {
	holding, err := s.HoldingRepo.GetByInstrument(ctx, accountID, instrumentID)
	if err != nil {
		return domain.Money{}, err
	}
	return holding.CurrentValue(currentPrice), nil
}

// UnrealizedPnL returns the position's market value minus its cost basis
func (s *Service) UnrealizedPnL(ctx context.Context, accountID uuid.UUID, instrumentID string, currentPrice domain.Money) (domain.Money, error) {
	holding, err := s.HoldingRepo.GetByInstrument(ctx, accountID, instrumentID)
	if err != nil {
		return domain.Money{}, err
	}
	return holding.UnrealizedPnL(currentPrice), nil
}

// ValuationResult represents the account's total value split by source
type ValuationResult struct {
	Cash     domain.Money
	Holdings domain.Money
	Total    domain.Money
}

// Valuation calculates the account's total value: cash balance plus the sum
// of every position valued at the supplied prices. Positions whose
// instrument has no supplied price are skipped rather than guessed.
func (s *Service) Valuation(ctx context.Context, accountID uuid.UUID, prices map[string]domain.Money) (*ValuationResult, error) {
	cash, err := s.Ledger.Balance(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cash balance: %w", err)
	}

	positions := domain.ZeroMoney(cash.Currency)
	all, err := s.HoldingRepo.List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	for _, holding := range all {
		price, ok := prices[holding.InstrumentID]
		if !ok {
			continue
		}
		positions = positions.Add(holding.CurrentValue(price))
	}

	return &ValuationResult{
		Cash:     cash,
		Holdings: positions,
		Total:    cash.Add(positions),
	}, nil
}

// buyPosition debits the ledger for cost and grows the position by shares
func (s *Service) buyPosition(ctx context.Context, accountID uuid.UUID, instrumentID string, shares decimal.Decimal, cost domain.Money, activity *domain.ActivityRecord) (*domain.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Ledger.Debit(ctx, accountID, cost, activity); err != nil {
		return nil, err
	}

	holding, err := s.HoldingRepo.GetByInstrument(ctx, accountID, instrumentID)
	if err != nil {
		if !errors.Is(err, domain.ErrHoldingNotFound) {
			if rbErr := s.compensateDebit(ctx, accountID, cost); rbErr != nil {
				return nil, fmt.Errorf("failed to refund debit after holding read error: %w", rbErr)
			}
			return nil, err
		}
		// First trade for this instrument creates the position
		holding = &domain.Holding{
			ID:           uuid.New(),
			AccountID:    accountID,
			InstrumentID: instrumentID,
			Shares:       decimal.Zero,
			CostBasis:    domain.ZeroMoney(cost.Currency),
		}
	}

	holding.Shares = holding.Shares.Add(shares)
	holding.CostBasis = holding.CostBasis.Add(cost)

	if err := s.HoldingRepo.Upsert(ctx, holding); err != nil {
		// Roll the debit back before surfacing the failed write
		if rbErr := s.compensateDebit(ctx, accountID, cost); rbErr != nil {
			return nil, fmt.Errorf("failed to refund debit after holding write error: %w", rbErr)
		}
		return nil, fmt.Errorf("failed to persist holding: %w", err)
	}

	return holding, nil
}

// sellPosition shrinks the position by shares and credits the ledger with proceeds
func (s *Service) sellPosition(ctx context.Context, accountID uuid.UUID, instrumentID string, shares decimal.Decimal, proceeds domain.Money, activity *domain.ActivityRecord) (*domain.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	holding, err := s.HoldingRepo.GetByInstrument(ctx, accountID, instrumentID)
	if err != nil {
		if errors.Is(err, domain.ErrHoldingNotFound) {
			return nil, domain.ErrInsufficientShares
		}
		return nil, err
	}

	if shares.GreaterThan(holding.Shares) {
		return nil, domain.ErrInsufficientShares
	}

	previousShares := holding.Shares
	previousCost := holding.CostBasis

	remaining := holding.Shares.Sub(shares)
	if remaining.IsZero() {
		holding.Shares = decimal.Zero
		holding.CostBasis = domain.ZeroMoney(holding.CostBasis.Currency)
	} else {
		// Reduce cost basis proportionally to the fraction sold
		holding.Shares = remaining
		holding.CostBasis = previousCost.Mul(remaining).Div(previousShares)
	}

	closed := holding.Shares.IsZero()
	if closed {
		if err := s.HoldingRepo.Delete(ctx, accountID, instrumentID); err != nil {
			return nil, fmt.Errorf("failed to remove closed holding: %w", err)
		}
	} else {
		if err := s.HoldingRepo.Upsert(ctx, holding); err != nil {
			return nil, fmt.Errorf("failed to persist holding: %w", err)
		}
	}

	if err := s.Ledger.Credit(ctx, accountID, proceeds, activity); err != nil {
		// Restore the position so the pair fails together
		restored := &domain.Holding{
			ID:           holding.ID,
			AccountID:    accountID,
			InstrumentID: instrumentID,
			Shares:       previousShares,
			CostBasis:    previousCost,
		}
		if rbErr := s.HoldingRepo.Upsert(ctx, restored); rbErr != nil {
			return nil, fmt.Errorf("failed to restore holding after credit error: %w", rbErr)
		}
		return nil, err
	}

	return holding, nil
}

// compensateDebit refunds a debit whose paired position write failed.
// The refund reuses the ledger's own credit path; a refund failure means the
// cash balance no longer matches the book and must reach the caller.
func (s *Service) compensateDebit(ctx context.Context, accountID uuid.UUID, cost domain.Money) error {
	return s.Ledger.Credit(ctx, accountID, cost, nil)
}

// tradeActivity builds the display record for a position mutation
func tradeActivity(instrumentID, verb string, amount domain.Money, direction domain.ActivityDirection) *domain.ActivityRecord {
	return &domain.ActivityRecord{
		ID:            uuid.New(),
		Avatar:        instrumentID,
		TitleLeft:     verb + " " + instrumentID,
		SubtitleLeft:  "Investing",
		TitleRight:    amount.String(),
		Amount:        amount,
		Direction:     direction,
		PayeeKind:     domain.PayeeKindMerchant,
		Date:          time.Now(),
	}
}
