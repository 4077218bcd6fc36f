package domain

import "time"

// DefaultQuoteWindowSeconds is how long a price quote stays valid on a
// confirmation screen before it is refreshed.
const DefaultQuoteWindowSeconds = 30

// Quote is a time-boxed price snapshot shown during a buy/sell/deposit
// confirmation. It is created when the confirmation opens, refreshed with a
// new price when the window elapses, and consumed (locked in) when the user
// submits. A consumed quote's price is used for the transaction regardless
// of subsequent market movement.
type Quote struct {
	InstrumentID    string
	Price           Money
	IssuedAt        time.Time
	ValidForSeconds int
}

// ExpiresAt returns the instant the quote stops being valid
func (q Quote) ExpiresAt() time.Time {
	return q.IssuedAt.Add(time.Duration(q.ValidForSeconds) * time.Second)
}
