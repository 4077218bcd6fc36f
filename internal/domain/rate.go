package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies at the
// moment it was fetched. Cached rates are reused until they exceed the
// configured TTL, after which a fresh fetch is attempted.
type ExchangeRate struct {
	From      string
	To        string
	Rate      decimal.Decimal
	FetchedAt time.Time
}

// StaleAfter reports whether the rate is older than the given TTL at time now
func (r ExchangeRate) StaleAfter(ttl time.Duration, now time.Time) bool {
	return now.Sub(r.FetchedAt) > ttl
}

// Inverse returns the rate for the opposite direction of the pair
func (r ExchangeRate) Inverse() ExchangeRate {
	return ExchangeRate{
		From:      r.To,
		To:        r.From,
		Rate:      decimal.NewFromInt(1).Div(r.Rate),
		FetchedAt: r.FetchedAt,
	}
}
