// Package quote implements the time-boxed price quote shown on buy/sell/
// deposit confirmation screens. A timer counts a fixed window down; at zero
// the price is refreshed from the provider and the window restarts. The
// countdown freezes while a submit is in flight and the timer ends when the
// user confirms, locking the price in.
package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slinghq/sling-backend/internal/domain"
)

// State is the timer's lifecycle state
type State string

const (
	// StateActive means the countdown is running
	StateActive State = "ACTIVE"
	// StatePaused means a submit is in flight and ticks are ignored
	StatePaused State = "PAUSED"
	// StateConsumed means the user confirmed; the timer is spent
	StateConsumed State = "CONSUMED"
)

// PriceProvider supplies the current price for an instrument. Called once
// when a timer starts and again on every refresh.
type PriceProvider interface {
	CurrentPrice(ctx context.Context, instrumentID string) (domain.Money, error)
}

// Timer is a quote countdown for one confirmation screen. All methods are
// safe for concurrent use; a UI tick loop and a submit handler may race.
type Timer struct {
	provider PriceProvider
	now      func() time.Time

	mu        sync.Mutex
	state     State
	quote     domain.Quote
	remaining int
	refreshes int
}

// NewTimer opens a quote for the instrument: fetches the opening price and
// starts an Active countdown over windowSeconds (DefaultQuoteWindowSeconds
// when non-positive).
func NewTimer(ctx context.Context, provider PriceProvider, instrumentID string, windowSeconds int) (*Timer, error) {
	if windowSeconds <= 0 {
		windowSeconds = domain.DefaultQuoteWindowSeconds
	}

	price, err := provider.CurrentPrice(ctx, instrumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opening quote price: %w", err)
	}

	t := &Timer{
		provider: provider,
		now:      time.Now,
		state:    StateActive,
	}
	t.quote = domain.Quote{
		InstrumentID:    instrumentID,
		Price:           price,
		IssuedAt:        t.now(),
		ValidForSeconds: windowSeconds,
	}
	t.remaining = windowSeconds
	return t, nil
}

// Tick advances the countdown by one second. At zero the price is refreshed
// and the window resets. Ticks are no-ops while paused or after Consume.
// A refresh failure keeps the previous price and restarts the window; the
// confirmation stays usable on a flaky feed.
func (t *Timer) Tick(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateActive {
		return
	}

	t.remaining--
	if t.remaining > 0 {
		return
	}

	t.refresh(ctx)
}

// Pause freezes the countdown during an in-flight submit so the price the
// user is confirming cannot change under them
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateActive {
		t.state = StatePaused
	}
}

// Resume restarts the countdown after a submit attempt that did not consume
// the quote (e.g. the submit failed and the user may retry)
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StatePaused {
		t.state = StateActive
	}
}

// Consume locks in the current price and ends the timer. The returned quote
// is what the transaction executes at, regardless of later market movement.
// Returns ErrQuoteConsumed on a second call.
func (t *Timer) Consume() (domain.Quote, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateConsumed {
		return domain.Quote{}, domain.ErrQuoteConsumed
	}
	t.state = StateConsumed
	return t.quote, nil
}

// CurrentPrice returns the price the quote currently shows
func (t *Timer) CurrentPrice() domain.Money {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quote.Price
}

// SecondsRemaining returns how many seconds are left in the current window
func (t *Timer) SecondsRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// CurrentState returns the timer's lifecycle state
func (t *Timer) CurrentState() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Refreshes returns how many times the price has been refreshed on expiry
func (t *Timer) Refreshes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refreshes
}

// refresh re-fetches the price and restarts the window. Callers hold t.mu.
func (t *Timer) refresh(ctx context.Context) {
	price, err := t.provider.CurrentPrice(ctx, t.quote.InstrumentID)
	if err == nil {
		t.quote.Price = price
	}
	t.quote.IssuedAt = t.now()
	t.remaining = t.quote.ValidForSeconds
	t.refreshes++
}
