package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OpenAndGet(t *testing.T) {
	feed := &fakeFeed{prices: []domain.Money{price("178.50")}}
	registry := NewRegistry(feed, 30)

	id, timer, err := registry.Open(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.True(t, timer.CurrentPrice().Equal(price("178.50")))

	found, err := registry.Get(id)
	require.NoError(t, err)
	assert.Same(t, timer, found)
}

func TestRegistry_UnknownSession(t *testing.T) {
	registry := NewRegistry(&fakeFeed{prices: []domain.Money{price("1.00")}}, 30)

	_, err := registry.Get(uuid.New())
	assert.ErrorIs(t, err, domain.ErrQuoteNotFound)

	_, err = registry.Consume(uuid.New())
	assert.ErrorIs(t, err, domain.ErrQuoteNotFound)
}

func TestRegistry_OpenFailsWhenFeedDoes(t *testing.T) {
	feed := &fakeFeed{errs: []error{errors.New("feed down")}}
	registry := NewRegistry(feed, 30)

	_, _, err := registry.Open(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestRegistry_ConsumeLocksSessionPrice(t *testing.T) {
	feed := &fakeFeed{prices: []domain.Money{price("178.50")}}
	registry := NewRegistry(feed, 30)

	id, _, err := registry.Open(context.Background(), "AAPL")
	require.NoError(t, err)

	locked, err := registry.Consume(id)
	require.NoError(t, err)
	assert.True(t, locked.Price.Equal(price("178.50")))

	// The session stays addressable so a replayed consume is told the quote
	// is spent rather than unknown
	_, err = registry.Consume(id)
	assert.ErrorIs(t, err, domain.ErrQuoteConsumed)
}

func TestRegistry_CloseDropsSession(t *testing.T) {
	feed := &fakeFeed{prices: []domain.Money{price("178.50")}}
	registry := NewRegistry(feed, 30)

	id, _, err := registry.Open(context.Background(), "AAPL")
	require.NoError(t, err)

	registry.Close(id)

	_, err = registry.Get(id)
	assert.ErrorIs(t, err, domain.ErrQuoteNotFound)
}
