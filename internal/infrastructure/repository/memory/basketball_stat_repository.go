package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsx-dev/intramural-league/internal/domain/persistence"
	"github.com/jsx-dev/intramural-league/internal/domain/stat"
)

type BasketballStatRepository struct {
	mu     sync.RWMutex
	stats  []stat.Basketball
	nextID int64
}

func NewBasketballStatRepository(stats []stat.Basketball) *BasketballStatRepository {
	r := &BasketballStatRepository{stats: append([]stat.Basketball(nil), stats...)}
	for _, item := range stats {
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
	}
	return r
}

func (r *BasketballStatRepository) FindAll(_ context.Context) ([]stat.Basketball, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stat.Basketball, 0, len(r.stats))
	out = append(out, r.stats...)

	return out, nil
}

func (r *BasketballStatRepository) FindAllByGameID(_ context.Context, gameID int64) ([]stat.Basketball, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stat.Basketball, 0)
	for _, item := range r.stats {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *BasketballStatRepository) Save(_ context.Context, item stat.Basketball) (stat.Basketball, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	r.stats = append(r.stats, item)

	return item, nil
}

func (r *BasketballStatRepository) Update(_ context.Context, item stat.Basketball) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.stats {
		if r.stats[idx].ID == item.ID {
			r.stats[idx] = item
			return nil
		}
	}

	return fmt.Errorf("%w: basketball stat id=%d", persistence.ErrNotFound, item.ID)
}
