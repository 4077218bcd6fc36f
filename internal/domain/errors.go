package domain

import "errors"

// Business error taxonomy. Every engine operation returns one of these for
// expected failure conditions; callers match with errors.Is and surface a
// user-visible message. None of them is fatal to the process.
var (
	// ErrInsufficientFunds is returned when a debit exceeds the cash balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares is returned when a sell or withdrawal exceeds the held position
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrRateUnavailable is returned when neither the live provider nor the
	// fallback table can produce an exchange rate for a currency pair
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrInvalidParticipantCount is returned for a split over fewer than one participant
	ErrInvalidParticipantCount = errors.New("participant count must be at least 1")

	// ErrInvalidAmount is returned when an amount is zero or negative where a
	// positive amount is required
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrCurrencyMismatch is returned when an operation mixes currencies that
	// must match (e.g. debiting a EUR amount from a USD ledger)
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrAccountNotFound is returned when no account exists for the given ID
	ErrAccountNotFound = errors.New("account not found")

	// ErrHoldingNotFound is returned when no position exists for the given instrument
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrQuoteConsumed is returned when a quote timer is used after Consume
	ErrQuoteConsumed = errors.New("quote already consumed")

	// ErrQuoteNotFound is returned when no open quote session exists for the given ID
	ErrQuoteNotFound = errors.New("quote session not found")
)
