// Package prices provides the price feed the quote timer and holdings flows
// consume. The simulated feed stands in for a market-data backend the way
// the prototype's mock services did: each fetch perturbs the last price by a
// small random walk around the seeded level.
package prices

import (
	"context"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/domain"
)

// ErrUnknownInstrument mirrors an instrument the feed has never seen
var ErrUnknownInstrument = domain.ErrHoldingNotFound

// maxDriftBasisPoints bounds one step of the walk to +/-0.25%
const maxDriftBasisPoints = 25

// SimulatedFeed is an in-process price source seeded with per-instrument
// starting prices. Safe for concurrent use.
type SimulatedFeed struct {
	mu     sync.Mutex
	prices map[string]domain.Money
	rng    *rand.Rand
}

// NewSimulatedFeed creates a feed from a map of instrument ID to starting price
func NewSimulatedFeed(seed map[string]domain.Money) *SimulatedFeed {
	prices := make(map[string]domain.Money, len(seed))
	for id, price := range seed {
		prices[id] = price
	}
	return &SimulatedFeed{
		prices: prices,
		rng:    rand.New(rand.NewSource(rand.Int63())),
	}
}

// CurrentPrice returns the instrument's price after one step of the walk
func (f *SimulatedFeed) CurrentPrice(_ context.Context, instrumentID string) (domain.Money, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	price, ok := f.prices[instrumentID]
	if !ok {
		return domain.Money{}, ErrUnknownInstrument
	}

	// drift in [-maxDrift, +maxDrift] basis points
	bps := f.rng.Intn(2*maxDriftBasisPoints+1) - maxDriftBasisPoints
	factor := decimal.NewFromInt(10_000 + int64(bps)).Div(decimal.NewFromInt(10_000))

	next := price.Mul(factor).Round()
	f.prices[instrumentID] = next
	return next, nil
}

// SetPrice pins an instrument's price, creating it if needed
func (f *SimulatedFeed) SetPrice(instrumentID string, price domain.Money) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[instrumentID] = price
}
