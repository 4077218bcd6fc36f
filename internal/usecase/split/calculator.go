// Package split computes equal bill splits. The division is done in the
// currency's minor units with the remainder cents handed to the earliest
// participants, so the shares always reassemble the exact total.
package split

import (
	"github.com/slinghq/sling-backend/internal/domain"
)

// SplitEqually divides a total equally across participantCount people,
// payer included.
// Logic:
//  1. Reject participantCount < 1 and non-positive totals
//  2. base = floor(totalMinorUnits / n); remainder = totalMinorUnits mod n
//  3. The first `remainder` participants pay base+1 minor units, the rest pay base
//
// Safety: the returned shares sum exactly to the total (no penny lost).
func SplitEqually(total domain.Money, participantCount int) (*domain.SplitShare, error) {
	if participantCount < 1 {
		return nil, domain.ErrInvalidParticipantCount
	}
	if !total.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	n := int64(participantCount)
	totalUnits := total.MinorUnits()
	base := totalUnits / n
	remainder := totalUnits % n

	shares := make([]domain.Money, participantCount)
	for i := range shares {
		units := base
		if int64(i) < remainder {
			units++
		}
		shares[i] = domain.NewMoneyFromMinorUnits(units, total.Currency)
	}

	return &domain.SplitShare{
		TotalAmount:      total,
		ParticipantCount: participantCount,
		PerPerson:        domain.NewMoneyFromMinorUnits(base, total.Currency),
		Shares:           shares,
	}, nil
}
