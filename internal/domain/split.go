package domain

// SplitShare is the derived result of splitting a bill equally across N
// participants (payer included). It is computed on demand and never persisted.
//
// Shares carries the exact per-participant amounts: the split is done in the
// currency's minor units and any remainder cents are assigned to the
// earliest participants, so the shares always sum exactly to TotalAmount.
// PerPerson is the base share (what a participant without a remainder cent
// pays), kept for display.
type SplitShare struct {
	TotalAmount      Money
	ParticipantCount int
	PerPerson        Money
	Shares           []Money
}

// Sum returns the exact sum of all participant shares
func (s SplitShare) Sum() Money {
	total := ZeroMoney(s.TotalAmount.Currency)
	for _, share := range s.Shares {
		total = total.Add(share)
	}
	return total
}
