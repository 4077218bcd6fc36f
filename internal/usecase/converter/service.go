// Package converter translates amounts between a user's display currency and
// the app's base ledger currency. Rates come from a live provider with a
// per-call timeout, degrade to a static fallback table, and are cached for a
// configurable TTL in between.
package converter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/domain"
)

const (
	// DefaultRateTTL is how long a fetched rate is reused before a fresh
	// fetch is attempted
	DefaultRateTTL = 5 * time.Minute

	// DefaultFetchTimeout bounds a single live-provider call; past it the
	// fallback table answers instead
	DefaultFetchTimeout = 3 * time.Second
)

// RateProvider is the live exchange-rate source the converter consumes.
// Implementations may fail or time out; the converter treats both the same.
type RateProvider interface {
	FetchRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Service handles currency symbol lookup, rate resolution, and conversion
type Service struct {
	Provider     RateProvider
	TTL          time.Duration
	FetchTimeout time.Duration

	now   func() time.Time
	mu    sync.RWMutex
	cache map[string]domain.ExchangeRate
}

// NewService creates a new converter Service instance.
// A nil provider is valid: the service then runs entirely on the fallback table.
func NewService(provider RateProvider, ttl, fetchTimeout time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Service{
		Provider:     provider,
		TTL:          ttl,
		FetchTimeout: fetchTimeout,
		now:          time.Now,
		cache:        make(map[string]domain.ExchangeRate),
	}
}

// SymbolFor returns the display symbol for a currency code ("USD" -> "$").
// Unknown codes fail closed by returning the code itself; this never errors.
func (s *Service) SymbolFor(code string) string {
	cur := money.GetCurrency(code)
	if cur == nil || cur.Grapheme == "" {
		return code
	}
	return cur.Grapheme
}

// Rate resolves the exchange rate from one currency to another.
// Logic:
//  1. from == to short-circuits to 1.0
//  2. A cached rate younger than the TTL is reused
//  3. Otherwise the live provider is asked, bounded by FetchTimeout;
//     a success refreshes the cache
//  4. On provider failure the static fallback table answers
//  5. ErrRateUnavailable when the pair is in neither source
func (s *Service) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if cached, ok := s.cachedRate(from, to); ok {
		return cached, nil
	}

	if s.Provider != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()

		rate, err := s.Provider.FetchRate(fetchCtx, from, to)
		if err == nil && rate.IsPositive() {
			s.storeRate(from, to, rate)
			return rate, nil
		}
		// Fall through to the static table on any provider failure
	}

	if rate, ok := fallbackRate(from, to); ok {
		return rate, nil
	}

	return decimal.Decimal{}, fmt.Errorf("no rate for %s/%s: %w", from, to, domain.ErrRateUnavailable)
}

// Convert converts an amount into the target currency.
// A zero amount short-circuits to zero in the target currency without
// touching any rate source; a same-currency conversion returns the amount
// unchanged. The result keeps full precision; callers round for display.
func (s *Service) Convert(ctx context.Context, amount domain.Money, to string) (domain.Money, error) {
	if amount.IsZero() {
		return domain.ZeroMoney(to), nil
	}
	if amount.Currency == to {
		return amount, nil
	}

	rate, err := s.Rate(ctx, amount.Currency, to)
	if err != nil {
		return domain.Money{}, err
	}

	return domain.NewMoney(amount.Amount.Mul(rate), to), nil
}

// cachedRate returns a still-fresh cached rate for the pair
func (s *Service) cachedRate(from, to string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[pairKey(from, to)]
	if !ok || entry.StaleAfter(s.TTL, s.now()) {
		return decimal.Decimal{}, false
	}
	return entry.Rate, true
}

// storeRate caches a freshly fetched rate in both directions
func (s *Service) storeRate(from, to string, rate decimal.Decimal) {
	entry := domain.ExchangeRate{From: from, To: to, Rate: rate, FetchedAt: s.now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[pairKey(from, to)] = entry
	s.cache[pairKey(to, from)] = entry.Inverse()
}

func pairKey(from, to string) string { return from + "/" + to }
