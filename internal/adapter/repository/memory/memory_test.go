package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_ValueCopySemantics(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	account := &domain.Account{
		ID:          uuid.New(),
		DisplayName: "Test",
		CashBalance: domain.NewMoney(decimal.RequireFromString("100.00"), "USDP"),
	}
	require.NoError(t, repo.Create(ctx, account))

	// Mutating the caller's struct must not leak into the store
	account.DisplayName = "Changed"

	stored, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", stored.DisplayName)
}

func TestAccountRepository_NotFound(t *testing.T) {
	repo := NewAccountRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	err = repo.UpdateBalance(context.Background(), uuid.New(), domain.ZeroMoney("USDP"))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestHoldingRepository_ListSortedByInstrument(t *testing.T) {
	ctx := context.Background()
	repo := NewHoldingRepository()
	accountID := uuid.New()

	for _, instrumentID := range []string{"TSLA", "AAPL", "NVDA"} {
		require.NoError(t, repo.Upsert(ctx, &domain.Holding{
			ID:           uuid.New(),
			AccountID:    accountID,
			InstrumentID: instrumentID,
			Shares:       decimal.NewFromInt(1),
			CostBasis:    domain.NewMoney(decimal.NewFromInt(100), "USDP"),
		}))
	}

	all, err := repo.List(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "AAPL", all[0].InstrumentID)
	assert.Equal(t, "NVDA", all[1].InstrumentID)
	assert.Equal(t, "TSLA", all[2].InstrumentID)
}

func TestHoldingRepository_DeleteRemovesPosition(t *testing.T) {
	ctx := context.Background()
	repo := NewHoldingRepository()
	accountID := uuid.New()

	require.NoError(t, repo.Upsert(ctx, &domain.Holding{
		ID:           uuid.New(),
		AccountID:    accountID,
		InstrumentID: "AAPL",
		Shares:       decimal.NewFromInt(1),
		CostBasis:    domain.NewMoney(decimal.NewFromInt(100), "USDP"),
	}))

	require.NoError(t, repo.Delete(ctx, accountID, "AAPL"))

	_, err := repo.GetByInstrument(ctx, accountID, "AAPL")
	assert.ErrorIs(t, err, domain.ErrHoldingNotFound)
}

func TestActivityRepository_InsertionOrderPerAccount(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository()
	accountID := uuid.New()
	otherID := uuid.New()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		require.NoError(t, repo.Append(ctx, &domain.ActivityRecord{
			ID:        uuid.New(),
			AccountID: accountID,
			TitleLeft: title,
			Direction: domain.DirectionOutgoing,
		}))
	}
	require.NoError(t, repo.Append(ctx, &domain.ActivityRecord{
		ID:        uuid.New(),
		AccountID: otherID,
		TitleLeft: "not mine",
		Direction: domain.DirectionOutgoing,
	}))

	records, err := repo.List(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, title := range titles {
		assert.Equal(t, title, records[i].TitleLeft)
	}

	count, err := repo.Count(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
