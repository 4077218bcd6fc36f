package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/slinghq/sling-backend/internal/domain"
)

// activityRepository implements domain.ActivityRepository as an append-only
// in-memory log kept in insertion order
type activityRepository struct {
	mu      sync.RWMutex
	records []domain.ActivityRecord
}

// NewActivityRepository creates a new in-memory activity repository
func NewActivityRepository() domain.ActivityRepository {
	return &activityRepository{}
}

// Append adds a record to the log
func (r *activityRepository) Append(_ context.Context, record *domain.ActivityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, *record)
	return nil
}

// List retrieves all records for an account in insertion order
func (r *activityRepository) List(_ context.Context, accountID uuid.UUID) ([]*domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.ActivityRecord, 0)
	for i := range r.records {
		if r.records[i].AccountID == accountID {
			record := r.records[i]
			result = append(result, &record)
		}
	}
	return result, nil
}

// Count returns the number of records for an account
func (r *activityRepository) Count(_ context.Context, accountID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.records {
		if r.records[i].AccountID == accountID {
			count++
		}
	}
	return count, nil
}
