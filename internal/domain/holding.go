package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SharePrecision is the number of decimal digits kept for fractional share
// counts. Six digits covers fractional-share investing without the drift a
// float64 would accumulate over repeated buy/sell cycles.
const SharePrecision = 6

// Holding represents one instrument position in an account: how many
// (fractional) shares or token units are owned and what was paid for them.
// A holding is created on the first buy/deposit for its instrument, updated
// on every subsequent trade, and removed when the share count reaches zero.
type Holding struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	InstrumentID string
	Shares       decimal.Decimal
	CostBasis    Money // total cost in the base currency
}

// Validate ensures the holding adheres to domain rules
// Returns an error if validation fails
func (h *Holding) Validate() error {
	if h.InstrumentID == "" {
		return errors.New("holding instrument ID cannot be empty")
	}
	if h.Shares.IsNegative() {
		return errors.New("holding shares cannot be negative")
	}
	if h.CostBasis.IsNegative() {
		return errors.New("holding cost basis cannot be negative")
	}
	return nil
}

// CurrentValue returns the position's market value at the given price per share
func (h *Holding) CurrentValue(pricePerShare Money) Money {
	return pricePerShare.Mul(h.Shares)
}

// UnrealizedPnL returns market value minus cost basis at the given price
func (h *Holding) UnrealizedPnL(pricePerShare Money) Money {
	return h.CurrentValue(pricePerShare).Sub(h.CostBasis)
}

// AveragePrice returns cost basis divided by shares, or zero for an empty position
func (h *Holding) AveragePrice() Money {
	if h.Shares.IsZero() {
		return ZeroMoney(h.CostBasis.Currency)
	}
	return h.CostBasis.Div(h.Shares)
}
