package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsx-dev/intramural-league/internal/domain/persistence"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
)

type TeamRequestRepository struct {
	mu       sync.RWMutex
	requests []teamrequest.TeamRequest
	nextID   int64
}

func NewTeamRequestRepository(requests []teamrequest.TeamRequest) *TeamRequestRepository {
	r := &TeamRequestRepository{requests: append([]teamrequest.TeamRequest(nil), requests...)}
	for _, item := range requests {
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
	}
	return r
}

func (r *TeamRequestRepository) FindAll(_ context.Context) ([]teamrequest.TeamRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teamrequest.TeamRequest, 0, len(r.requests))
	out = append(out, r.requests...)

	return out, nil
}

// Save assigns the next id and defaults an unset status to pending, like the
// column default in the postgres schema.
func (r *TeamRequestRepository) Save(_ context.Context, item teamrequest.TeamRequest) (teamrequest.TeamRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	if item.Status == teamrequest.StatusUnset {
		item.Status = teamrequest.StatusPending
	}
	r.requests = append(r.requests, item)

	return item, nil
}

func (r *TeamRequestRepository) Update(_ context.Context, item teamrequest.TeamRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.requests {
		if r.requests[idx].ID == item.ID {
			r.requests[idx] = item
			return nil
		}
	}

	return fmt.Errorf("%w: team request id=%d", persistence.ErrNotFound, item.ID)
}
