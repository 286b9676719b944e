package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
)

type UserRepository struct {
	mu       sync.RWMutex
	users    []user.User
	nextID   int64
	requests *TeamRequestRepository
}

// NewUserRepository seeds the store with users. Team membership is resolved
// through requests: a player belongs to a team once their request is accepted.
func NewUserRepository(users []user.User, requests *TeamRequestRepository) *UserRepository {
	r := &UserRepository{
		users:    append([]user.User(nil), users...),
		requests: requests,
	}
	for _, item := range users {
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
	}
	return r
}

func (r *UserRepository) FindAll(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	out = append(out, r.users...)

	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.users {
		if item.ID == id {
			return item, nil
		}
	}

	return user.User{}, fmt.Errorf("%w: id=%d", user.ErrNotFound, id)
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.users {
		if item.Username == username {
			return item, nil
		}
	}

	return user.User{}, fmt.Errorf("%w: %q", user.ErrUsernameNotFound, username)
}

func (r *UserRepository) Save(_ context.Context, item user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	if item.Role == "" {
		item.Role = user.RolePlayer
	}
	r.users = append(r.users, item)

	return item, nil
}

func (r *UserRepository) Update(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.users {
		if r.users[idx].ID == item.ID {
			r.users[idx] = item
			return nil
		}
	}

	return fmt.Errorf("%w: id=%d", user.ErrNotFound, item.ID)
}

func (r *UserRepository) UpdateRole(_ context.Context, id int64, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.users {
		if r.users[idx].ID == id {
			r.users[idx].Role = role
			return nil
		}
	}

	return fmt.Errorf("%w: id=%d", user.ErrNotFound, id)
}

func (r *UserRepository) ListByTeam(ctx context.Context, teamName string) ([]user.User, error) {
	if r.requests == nil {
		return []user.User{}, nil
	}

	requests, err := r.requests.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	members := make(map[int64]struct{})
	for _, req := range requests {
		if req.TeamName == teamName && req.Status == teamrequest.StatusAccepted {
			members[req.RequesterID] = struct{}{}
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(members))
	for _, item := range r.users {
		if _, ok := members[item.ID]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}
