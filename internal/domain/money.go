package domain

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value as a decimal amount in major units
// plus an ISO-4217-style currency code.
// All arithmetic is exact decimal arithmetic; float64 never enters a money path.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney creates a Money value from a decimal amount and currency code
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// NewMoneyFromString creates a Money value from a decimal string (e.g. "45.80")
// Returns an error if the string is not a valid decimal
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", amount, err)
	}
	return Money{Amount: d, Currency: currency}, nil
}

// ZeroMoney returns a zero value in the given currency
func ZeroMoney(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool { return m.Amount.IsZero() }

// IsPositive reports whether the amount is strictly positive
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }

// IsNegative reports whether the amount is strictly negative
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

// Equal reports whether both amount and currency match
func (m Money) Equal(n Money) bool {
	return m.Currency == n.Currency && m.Amount.Equal(n.Amount)
}

// LessThan compares amounts; currencies must already match
func (m Money) LessThan(n Money) bool { return m.Amount.LessThan(n.Amount) }

// GreaterThan compares amounts; currencies must already match
func (m Money) GreaterThan(n Money) bool { return m.Amount.GreaterThan(n.Amount) }

// Add returns m + n. Both operands must share a currency; callers validate
// with SameCurrency before doing arithmetic across inputs.
func (m Money) Add(n Money) Money {
	return Money{Amount: m.Amount.Add(n.Amount), Currency: mergeCurrency(m, n)}
}

// Sub returns m - n. Same currency contract as Add.
func (m Money) Sub(n Money) Money {
	return Money{Amount: m.Amount.Sub(n.Amount), Currency: mergeCurrency(m, n)}
}

// Neg returns the negated amount
func (m Money) Neg() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// Mul returns the amount scaled by a decimal factor (e.g. shares x price)
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Div returns the amount divided by a decimal divisor
func (m Money) Div(divisor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Div(divisor), Currency: m.Currency}
}

// SameCurrency reports whether two money values share a currency code
func (m Money) SameCurrency(n Money) bool { return m.Currency == n.Currency }

// Round rounds the amount to the currency's minor-unit fraction
// (2 for most currencies, 0 for JPY, ...). Unknown codes round to 2.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(int32(currencyFraction(m.Currency))), Currency: m.Currency}
}

// MinorUnits returns the amount expressed in the currency's minor units
// (cents for USD), rounded to the nearest unit.
func (m Money) MinorUnits() int64 {
	return m.Amount.Shift(int32(currencyFraction(m.Currency))).Round(0).IntPart()
}

// NewMoneyFromMinorUnits builds a Money value from an integer count of minor units
func NewMoneyFromMinorUnits(units int64, currency string) Money {
	return Money{
		Amount:   decimal.NewFromInt(units).Shift(-int32(currencyFraction(currency))),
		Currency: currency,
	}
}

// String renders the value with the currency's symbol and grouping,
// e.g. "$1,000.00". Unknown currencies render as "<code> <amount>".
func (m Money) String() string {
	cur := money.GetCurrency(m.Currency)
	if cur == nil {
		return m.Currency + " " + m.Amount.Round(2).StringFixed(2)
	}
	shifted := m.Amount.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.Round(0).IntPart())
}

// currencyFraction returns the number of minor-unit digits for a currency code.
// The prototype's synthetic tokens (USDP, USDY) are not ISO currencies and
// fall back to 2 digits.
func currencyFraction(code string) int {
	cur := money.GetCurrency(code)
	if cur == nil {
		return 2
	}
	return cur.Fraction
}

// mergeCurrency resolves the currency of a binary operation, letting the
// zero value ("" currency) act as a neutral operand
func mergeCurrency(a, b Money) string {
	if a.Currency == "" {
		return b.Currency
	}
	return a.Currency
}
