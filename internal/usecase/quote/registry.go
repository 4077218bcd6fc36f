package quote

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/slinghq/sling-backend/internal/domain"
)

// Registry tracks open quote sessions for remote callers. Each session wraps
// one Timer and is addressed by the UUID handed out when the confirmation
// opens; the client drives the tick/pause/resume/consume lifecycle over it.
type Registry struct {
	provider PriceProvider
	window   int

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Timer
}

// NewRegistry creates a registry issuing sessions over the given provider
// and countdown window (DefaultQuoteWindowSeconds when non-positive)
func NewRegistry(provider PriceProvider, windowSeconds int) *Registry {
	return &Registry{
		provider: provider,
		window:   windowSeconds,
		sessions: make(map[uuid.UUID]*Timer),
	}
}

// Open starts a session for the instrument and returns its ID and timer
func (r *Registry) Open(ctx context.Context, instrumentID string) (uuid.UUID, *Timer, error) {
	timer, err := NewTimer(ctx, r.provider, instrumentID, r.window)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	r.mu.Lock()
	r.sessions[id] = timer
	r.mu.Unlock()
	return id, timer, nil
}

// Get returns the session's timer, or ErrQuoteNotFound for an unknown ID
func (r *Registry) Get(id uuid.UUID) (*Timer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	timer, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	return timer, nil
}

// Consume locks in the session's price and ends its timer. The session stays
// registered so a replayed consume answers ErrQuoteConsumed, not a 404-style
// unknown session.
func (r *Registry) Consume(id uuid.UUID) (domain.Quote, error) {
	timer, err := r.Get(id)
	if err != nil {
		return domain.Quote{}, err
	}
	return timer.Consume()
}

// Close drops a session, consumed or abandoned
func (r *Registry) Close(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
