package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeed returns scripted prices in order, repeating the last one
type fakeFeed struct {
	prices []domain.Money
	errs   []error
	calls  int
}

func (f *fakeFeed) CurrentPrice(ctx context.Context, instrumentID string) (domain.Money, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return domain.Money{}, f.errs[i]
	}
	if i >= len(f.prices) {
		i = len(f.prices) - 1
	}
	return f.prices[i], nil
}

func price(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), "USDP")
}

func TestNewTimer_OpensWithFetchedPrice(t *testing.T) {
	feed := &fakeFeed{prices: []domain.Money{price("178.50")}}

	timer, err := NewTimer(context.Background(), feed, "AAPL", 30)

	require.NoError(t, err)
	assert.Equal(t, StateActive, timer.CurrentState())
	assert.True(t, timer.CurrentPrice().Equal(price("178.50")))
	assert.Equal(t, 30, timer.SecondsRemaining())
	assert.Equal(t, 0, timer.Refreshes())
}

func TestNewTimer_ProviderFailure(t *testing.T) {
	feed := &fakeFeed{errs: []error{errors.New("feed down")}}

	_, err := NewTimer(context.Background(), feed, "AAPL", 30)

	assert.Error(t, err)
}

func TestNewTimer_DefaultWindow(t *testing.T) {
	feed := &fakeFeed{prices: []domain.Money{price("1.00")}}

	timer, err := NewTimer(context.Background(), feed, "USDY", 0)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultQuoteWindowSeconds, timer.SecondsRemaining())
}

func TestTick_RefreshesExactlyOnceAtExpiry(t *testing.T) {
	ctx := context.Background()
	feed := &fakeFeed{prices: []domain.Money{price("178.50"), price("179.10")}}

	timer, err := NewTimer(ctx, feed, "AAPL", 30)
	require.NoError(t, err)

	// A full window of ticks triggers exactly one refresh and a reset to 30
	for i := 0; i < 30; i++ {
		timer.Tick(ctx)
	}

	assert.Equal(t, 1, timer.Refreshes())
	assert.Equal(t, 30, timer.SecondsRemaining())
	assert.True(t, timer.CurrentPrice().Equal(price("179.10")))
}

func TestTick_PauseFreezesCountdown(t *testing.T) {
	ctx := context.Background()
	feed := &fakeFeed{prices: []domain.Money{price("178.50")}}

	timer, err := NewTimer(ctx, feed, "AAPL", 30)
	require.NoError(t, err)

	timer.Tick(ctx)
	timer.Pause()
	assert.Equal(t, StatePaused, timer.CurrentState())

	// Ticks while paused change nothing
	for i := 0; i < 10; i++ {
		timer.Tick(ctx)
	}
	assert.Equal(t, 29, timer.SecondsRemaining())

	timer.Resume()
	timer.Tick(ctx)
	assert.Equal(t, 28, timer.SecondsRemaining())
}

func TestConsume_LocksPrice(t *testing.T) {
	ctx := context.Background()
	feed := &fakeFeed{prices: []domain.Money{price("178.50")}}

	timer, err := NewTimer(ctx, feed, "AAPL", 30)
	require.NoError(t, err)

	quote, err := timer.Consume()
	require.NoError(t, err)
	assert.True(t, quote.Price.Equal(price("178.50")))
	assert.Equal(t, StateConsumed, timer.CurrentState())

	// Spent timers ignore ticks and refuse a second consume
	timer.Tick(ctx)
	assert.Equal(t, 30, timer.SecondsRemaining())

	_, err = timer.Consume()
	assert.ErrorIs(t, err, domain.ErrQuoteConsumed)
}

func TestTick_RefreshFailureKeepsPreviousPrice(t *testing.T) {
	ctx := context.Background()
	feed := &fakeFeed{
		prices: []domain.Money{price("178.50")},
		errs:   []error{nil, errors.New("feed down")},
	}

	timer, err := NewTimer(ctx, feed, "AAPL", 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		timer.Tick(ctx)
	}

	// The window restarted but the stale price stayed on screen
	assert.Equal(t, 1, timer.Refreshes())
	assert.Equal(t, 3, timer.SecondsRemaining())
	assert.True(t, timer.CurrentPrice().Equal(price("178.50")))
}
