package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gbp(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), "GBP")
}

func TestSplitEqually_RemainderGoesToEarliestParticipants(t *testing.T) {
	// 45.80 GBP across 3 people: 4580 units / 3 = 1526 rem 2
	result, err := SplitEqually(gbp("45.80"), 3)
	require.NoError(t, err)

	require.Len(t, result.Shares, 3)
	assert.True(t, result.Shares[0].Equal(gbp("15.27")))
	assert.True(t, result.Shares[1].Equal(gbp("15.27")))
	assert.True(t, result.Shares[2].Equal(gbp("15.26")))
	assert.True(t, result.PerPerson.Equal(gbp("15.26")))
}

func TestSplitEqually_SharesSumToTotal(t *testing.T) {
	totals := []string{"45.80", "100.00", "0.01", "0.05", "999.99"}
	for _, s := range totals {
		for n := 1; n <= 7; n++ {
			result, err := SplitEqually(gbp(s), n)
			require.NoError(t, err)
			assert.True(t, result.Sum().Equal(gbp(s)),
				"total %s across %d: shares sum to %s", s, n, result.Sum().Amount)
		}
	}
}

func TestSplitEqually_ExactDivision(t *testing.T) {
	result, err := SplitEqually(gbp("30.00"), 3)
	require.NoError(t, err)

	for _, share := range result.Shares {
		assert.True(t, share.Equal(gbp("10.00")))
	}
	assert.True(t, result.PerPerson.Equal(gbp("10.00")))
}

func TestSplitEqually_SingleParticipant(t *testing.T) {
	result, err := SplitEqually(gbp("45.80"), 1)
	require.NoError(t, err)

	require.Len(t, result.Shares, 1)
	assert.True(t, result.Shares[0].Equal(gbp("45.80")))
}

func TestSplitEqually_InvalidParticipantCount(t *testing.T) {
	_, err := SplitEqually(gbp("45.80"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParticipantCount)

	_, err = SplitEqually(gbp("45.80"), -2)
	assert.ErrorIs(t, err, domain.ErrInvalidParticipantCount)
}

func TestSplitEqually_NonPositiveTotal(t *testing.T) {
	_, err := SplitEqually(gbp("0"), 3)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = SplitEqually(gbp("-10.00"), 3)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSplitEqually_ZeroDecimalCurrency(t *testing.T) {
	// JPY has no minor units; 1000 / 3 = 333 rem 1
	total := domain.NewMoney(decimal.RequireFromString("1000"), "JPY")
	result, err := SplitEqually(total, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(334), result.Shares[0].MinorUnits())
	assert.Equal(t, int64(333), result.Shares[1].MinorUnits())
	assert.Equal(t, int64(333), result.Shares[2].MinorUnits())
	assert.True(t, result.Sum().Equal(total))
}
