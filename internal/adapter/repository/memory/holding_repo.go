package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/slinghq/sling-backend/internal/domain"
)

type holdingKey struct {
	accountID    uuid.UUID
	instrumentID string
}

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	mu       sync.RWMutex
	holdings map[holdingKey]domain.Holding
}

// NewHoldingRepository creates a new in-memory holding repository
func NewHoldingRepository() domain.HoldingRepository {
	return &holdingRepository{
		holdings: make(map[holdingKey]domain.Holding),
	}
}

// GetByInstrument retrieves the account's position for one instrument
func (r *holdingRepository) GetByInstrument(_ context.Context, accountID uuid.UUID, instrumentID string) (*domain.Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	holding, ok := r.holdings[holdingKey{accountID, instrumentID}]
	if !ok {
		return nil, domain.ErrHoldingNotFound
	}
	return &holding, nil
}

// List retrieves all positions for an account, ordered by instrument ID
func (r *holdingRepository) List(_ context.Context, accountID uuid.UUID) ([]*domain.Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Holding, 0)
	for key, holding := range r.holdings {
		if key.accountID == accountID {
			h := holding
			result = append(result, &h)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].InstrumentID < result[j].InstrumentID
	})
	return result, nil
}

// Upsert creates or replaces a position
func (r *holdingRepository) Upsert(_ context.Context, holding *domain.Holding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.holdings[holdingKey{holding.AccountID, holding.InstrumentID}] = *holding
	return nil
}

// Delete removes a position
func (r *holdingRepository) Delete(_ context.Context, accountID uuid.UUID, instrumentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.holdings, holdingKey{accountID, instrumentID})
	return nil
}
