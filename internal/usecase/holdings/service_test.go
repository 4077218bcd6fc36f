package holdings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/adapter/repository/memory"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/slinghq/sling-backend/internal/usecase/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usdp(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), "USDP")
}

// newTestService wires the service against real in-memory repositories and
// an account funded with the given opening balance
func newTestService(t *testing.T, openingBalance domain.Money) (*Service, *ledger.Service, uuid.UUID) {
	t.Helper()
	return newTestServiceWith(t, memory.NewAccountRepository(), memory.NewHoldingRepository(), openingBalance)
}

// newTestServiceWith is newTestService with injectable repositories, for
// failure and interleaving scenarios
func newTestServiceWith(t *testing.T, accountRepo domain.AccountRepository, holdingRepo domain.HoldingRepository, openingBalance domain.Money) (*Service, *ledger.Service, uuid.UUID) {
	t.Helper()

	account := &domain.Account{
		ID:          uuid.New(),
		DisplayName: "Test",
		CashBalance: openingBalance,
	}
	require.NoError(t, accountRepo.Create(context.Background(), account))

	ledgerService := ledger.NewService(accountRepo, memory.NewActivityRepository())
	return NewService(holdingRepo, ledgerService), ledgerService, account.ID
}

// slowHoldingRepo widens the window between the position read and the
// position write so unserialized callers would interleave
type slowHoldingRepo struct {
	domain.HoldingRepository
	delay time.Duration
}

func (r *slowHoldingRepo) GetByInstrument(ctx context.Context, accountID uuid.UUID, instrumentID string) (*domain.Holding, error) {
	holding, err := r.HoldingRepository.GetByInstrument(ctx, accountID, instrumentID)
	time.Sleep(r.delay)
	return holding, err
}

// failingHoldingRepo rejects every position write
type failingHoldingRepo struct {
	domain.HoldingRepository
}

func (r *failingHoldingRepo) Upsert(context.Context, *domain.Holding) error {
	return errors.New("disk full")
}

// failingAccountRepo lets the first balance write through and fails the rest
type failingAccountRepo struct {
	domain.AccountRepository
	writes int32
}

func (r *failingAccountRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance domain.Money) error {
	if atomic.AddInt32(&r.writes, 1) > 1 {
		return errors.New("connection lost")
	}
	return r.AccountRepository.UpdateBalance(ctx, id, balance)
}

func TestBuyAmount_FractionalShares(t *testing.T) {
	ctx := context.Background()
	service, ledgerService, accountID := newTestService(t, usdp("2000.00"))

	// $1000 at $178.50/share
	holding, err := service.BuyAmount(ctx, accountID, "AAPL", usdp("1000.00"), usdp("178.50"))

	require.NoError(t, err)
	assert.Equal(t, "5.602241", holding.Shares.String())
	assert.True(t, holding.CostBasis.Equal(usdp("1000.00")))

	// Ledger debited the exact cash amount
	balance, err := ledgerService.Balance(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(usdp("1000.00")))
}

func TestBuyThenSell_NetZeroRoundTrip(t *testing.T) {
	ctx := context.Background()
	service, ledgerService, accountID := newTestService(t, usdp("5000.00"))

	shares := decimal.RequireFromString("3.5")
	price := usdp("178.50")

	_, err := service.Buy(ctx, accountID, "AAPL", shares, price)
	require.NoError(t, err)

	_, err = service.Sell(ctx, accountID, "AAPL", shares, price)
	require.NoError(t, err)

	// Same shares at the same price must return the ledger to its pre-buy
	// balance exactly
	balance, err := ledgerService.Balance(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(usdp("5000.00")), "got %s", balance.Amount)
}

func TestBuy_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	service, ledgerService, accountID := newTestService(t, usdp("100.00"))

	_, err := service.Buy(ctx, accountID, "AAPL", decimal.NewFromInt(1), usdp("178.50"))

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// No position was created and the balance is untouched
	_, err = service.CurrentValue(ctx, accountID, "AAPL", usdp("178.50"))
	assert.ErrorIs(t, err, domain.ErrHoldingNotFound)

	balance, err := ledgerService.Balance(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(usdp("100.00")))
}

func TestSell_InsufficientShares(t *testing.T) {
	ctx := context.Background()
	service, _, accountID := newTestService(t, usdp("1000.00"))

	_, err := service.Buy(ctx, accountID, "TSLA", decimal.NewFromInt(2), usdp("100.00"))
	require.NoError(t, err)

	_, err = service.Sell(ctx, accountID, "TSLA", decimal.NewFromInt(3), usdp("100.00"))
	assert.ErrorIs(t, err, domain.ErrInsufficientShares)

	// Selling an instrument never bought fails the same way
	_, err = service.Sell(ctx, accountID, "NVDA", decimal.NewFromInt(1), usdp("100.00"))
	assert.ErrorIs(t, err, domain.ErrInsufficientShares)
}

func TestSell_ProportionalCostBasisReduction(t *testing.T) {
	ctx := context.Background()
	service, _, accountID := newTestService(t, usdp("1000.00"))

	_, err := service.Buy(ctx, accountID, "TSLA", decimal.NewFromInt(4), usdp("100.00"))
	require.NoError(t, err)

	// Sell half: cost basis drops from 400 to 200 regardless of sell price
	holding, err := service.Sell(ctx, accountID, "TSLA", decimal.NewFromInt(2), usdp("150.00"))
	require.NoError(t, err)

	assert.Equal(t, "2", holding.Shares.String())
	assert.True(t, holding.CostBasis.Equal(usdp("200.00")), "got %s", holding.CostBasis.Amount)
}

func TestSell_FullPositionRemovesHolding(t *testing.T) {
	ctx := context.Background()
	service, _, accountID := newTestService(t, usdp("1000.00"))

	_, err := service.Buy(ctx, accountID, "TSLA", decimal.NewFromInt(2), usdp("100.00"))
	require.NoError(t, err)

	_, err = service.Sell(ctx, accountID, "TSLA", decimal.NewFromInt(2), usdp("110.00"))
	require.NoError(t, err)

	_, err = service.CurrentValue(ctx, accountID, "TSLA", usdp("110.00"))
	assert.ErrorIs(t, err, domain.ErrHoldingNotFound)
}

func TestDepositWithdraw_YieldTokenScenario(t *testing.T) {
	ctx := context.Background()
	service, ledgerService, accountID := newTestService(t, usdp("100.00"))

	// Deposit 100 at token price 1.00 -> 100 tokens
	holding, err := service.Deposit(ctx, accountID, "USDY", usdp("100.00"), usdp("1.00"))
	require.NoError(t, err)
	assert.Equal(t, "100", holding.Shares.String())

	// Withdraw all 100 tokens at 1.02 -> 102.00 credited
	_, err = service.Withdraw(ctx, accountID, "USDY", decimal.NewFromInt(100), usdp("1.02"))
	require.NoError(t, err)

	balance, err := ledgerService.Balance(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(usdp("102.00")), "got %s", balance.Amount)
}

func TestWithdraw_MoreThanHeld(t *testing.T) {
	ctx := context.Background()
	service, _, accountID := newTestService(t, usdp("100.00"))

	_, err := service.Deposit(ctx, accountID, "USDY", usdp("50.00"), usdp("1.00"))
	require.NoError(t, err)

	_, err = service.Withdraw(ctx, accountID, "USDY", decimal.NewFromInt(60), usdp("1.00"))
	assert.ErrorIs(t, err, domain.ErrInsufficientShares)
}

func TestCurrentValueAndPnL(t *testing.T) {
	ctx := context.Background()
	service, _, accountID := newTestService(t, usdp("1000.00"))

	_, err := service.Buy(ctx, accountID, "NVDA", decimal.NewFromInt(5), usdp("100.00"))
	require.NoError(t, err)

	value, err := service.CurrentValue(ctx, accountID, "NVDA", usdp("120.00"))
	require.NoError(t, err)
	assert.True(t, value.Equal(usdp("600.00")))

	pnl, err := service.UnrealizedPnL(ctx, accountID, "NVDA", usdp("120.00"))
	require.NoError(t, err)
	assert.True(t, pnl.Equal(usdp("100.00")))

	// A loss shows as a negative PnL
	pnl, err = service.UnrealizedPnL(ctx, accountID, "NVDA", usdp("80.00"))
	require.NoError(t, err)
	assert.True(t, pnl.Equal(usdp("-100.00")))
}

func TestValuation(t *testing.T) {
	ctx := context.Background()
	service, _, accountID := newTestService(t, usdp("1000.00"))

	_, err := service.Buy(ctx, accountID, "AAPL", decimal.NewFromInt(2), usdp("150.00"))
	require.NoError(t, err)
	_, err = service.Deposit(ctx, accountID, "USDY", usdp("100.00"), usdp("1.00"))
	require.NoError(t, err)

	result, err := service.Valuation(ctx, accountID, map[string]domain.Money{
		"AAPL": usdp("160.00"),
		"USDY": usdp("1.02"),
	})
	require.NoError(t, err)

	// Cash: 1000 - 300 - 100 = 600; positions: 320 + 102 = 422
	assert.True(t, result.Cash.Equal(usdp("600.00")))
	assert.True(t, result.Holdings.Equal(usdp("422.00")))
	assert.True(t, result.Total.Equal(usdp("1022.00")))
}

func TestSell_ConcurrentSellsCannotOversell(t *testing.T) {
	ctx := context.Background()
	holdingRepo := &slowHoldingRepo{HoldingRepository: memory.NewHoldingRepository(), delay: 5 * time.Millisecond}
	service, ledgerService, accountID := newTestServiceWith(t, memory.NewAccountRepository(), holdingRepo, usdp("1000.00"))

	_, err := service.Buy(ctx, accountID, "AAPL", decimal.NewFromInt(2), usdp("100.00"))
	require.NoError(t, err)

	// Two sellers race for the same 2-share position. If the share check and
	// the write were not one step, both would pass the check and both would
	// be credited.
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := service.Sell(ctx, accountID, "AAPL", decimal.NewFromInt(2), usdp("100.00"))
			errs <- err
		}()
	}
	first, second := <-errs, <-errs

	// Exactly one sell wins; the loser fails the share check
	if first == nil {
		assert.ErrorIs(t, second, domain.ErrInsufficientShares)
	} else {
		assert.NoError(t, second)
		assert.ErrorIs(t, first, domain.ErrInsufficientShares)
	}

	// The proceeds were credited once, not twice
	balance, err := ledgerService.Balance(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(usdp("1000.00")), "got %s", balance.Amount)

	_, err = service.CurrentValue(ctx, accountID, "AAPL", usdp("100.00"))
	assert.ErrorIs(t, err, domain.ErrHoldingNotFound)
}

func TestBuy_ConcurrentBuysKeepBookAndCashConsistent(t *testing.T) {
	ctx := context.Background()
	holdingRepo := &slowHoldingRepo{HoldingRepository: memory.NewHoldingRepository(), delay: 5 * time.Millisecond}
	service, ledgerService, accountID := newTestServiceWith(t, memory.NewAccountRepository(), holdingRepo, usdp("1000.00"))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Buy(ctx, accountID, "AAPL", decimal.NewFromInt(1), usdp("100.00"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Both buys landed: 2 shares on the book, 200 off the balance. An
	// interleaved read-modify-write would lose one position update while
	// cash was debited twice.
	balance, err := ledgerService.Balance(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(usdp("800.00")), "got %s", balance.Amount)

	holding, err := service.HoldingRepo.GetByInstrument(ctx, accountID, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "2", holding.Shares.String())
	assert.True(t, holding.CostBasis.Equal(usdp("200.00")))
}

func TestBuy_HoldingWriteFailureRefundsDebit(t *testing.T) {
	ctx := context.Background()
	holdingRepo := &failingHoldingRepo{HoldingRepository: memory.NewHoldingRepository()}
	service, ledgerService, accountID := newTestServiceWith(t, memory.NewAccountRepository(), holdingRepo, usdp("1000.00"))

	_, err := service.Buy(ctx, accountID, "AAPL", decimal.NewFromInt(1), usdp("100.00"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist holding")

	// The debit was refunded
	balance, err := ledgerService.Balance(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(usdp("1000.00")), "got %s", balance.Amount)
}

func TestBuy_RefundFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	accountRepo := &failingAccountRepo{AccountRepository: memory.NewAccountRepository()}
	holdingRepo := &failingHoldingRepo{HoldingRepository: memory.NewHoldingRepository()}
	service, _, accountID := newTestServiceWith(t, accountRepo, holdingRepo, usdp("1000.00"))

	// The debit lands, the position write fails, and the refund fails too:
	// the caller must learn the balance was not restored
	_, err := service.Buy(ctx, accountID, "AAPL", decimal.NewFromInt(1), usdp("100.00"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to refund debit")
}

func TestAveragePrice(t *testing.T) {
	ctx := context.Background()
	service, _, accountID := newTestService(t, usdp("1000.00"))

	_, err := service.Buy(ctx, accountID, "AAPL", decimal.NewFromInt(2), usdp("100.00"))
	require.NoError(t, err)
	holding, err := service.Buy(ctx, accountID, "AAPL", decimal.NewFromInt(2), usdp("150.00"))
	require.NoError(t, err)

	// 500 total cost over 4 shares
	assert.True(t, holding.AveragePrice().Equal(usdp("125")), "got %s", holding.AveragePrice().Amount)
}
