package cache

import (
	"context"
	"strconv"

	"github.com/jsx-dev/intramural-league/internal/domain/stat"
	"github.com/jsx-dev/intramural-league/internal/domain/team"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
	basecache "github.com/jsx-dev/intramural-league/internal/platform/cache"
)

const (
	userPrefix       = "user:"
	userListKey      = "user:list"
	userByTeamPrefix = "user:team:"
	teamListKey      = "team:list"
	requestPrefix    = "team-request:"
	requestListKey   = "team-request:list"
	statPrefix       = "basketball-stat:"
	statListKey      = "basketball-stat:list"
	statByGamePrefix = "basketball-stat:game:"
)

// loadSlice reads a cached list through store. Callers get their own copy, so
// mutating the result never touches the cached value.
func loadSlice[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]T)
	return append(make([]T, 0, len(items)), items...), nil
}

type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	return loadSlice(ctx, r.cache, userListKey, r.next.FindAll)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (user.User, error) {
	v, err := r.cache.GetOrLoad(ctx, userByIDKey(id), func(ctx context.Context) (any, error) {
		return r.next.FindByID(ctx, id)
	})
	if err != nil {
		return user.User{}, err
	}

	item, _ := v.(user.User)
	return item, nil
}

// GetByUsername is not cached: it backs login and must see password changes
// immediately.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.next.GetByUsername(ctx, username)
}

func (r *UserRepository) Save(ctx context.Context, item user.User) (user.User, error) {
	saved, err := r.next.Save(ctx, item)
	if err != nil {
		return user.User{}, err
	}

	r.cache.DeletePrefix(ctx, userPrefix)
	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}

	r.cache.DeletePrefix(ctx, userPrefix)
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	if err := r.next.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	r.cache.DeletePrefix(ctx, userPrefix)
	return nil
}

func (r *UserRepository) ListByTeam(ctx context.Context, teamName string) ([]user.User, error) {
	return loadSlice(ctx, r.cache, userByTeamPrefix+teamName, func(ctx context.Context) ([]user.User, error) {
		return r.next.ListByTeam(ctx, teamName)
	})
}

func userByIDKey(id int64) string {
	return "user:id:" + strconv.FormatInt(id, 10)
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]team.Team, error) {
	return loadSlice(ctx, r.cache, teamListKey, r.next.FindAll)
}

func (r *TeamRepository) Save(ctx context.Context, item team.Team) (team.Team, error) {
	saved, err := r.next.Save(ctx, item)
	if err != nil {
		return team.Team{}, err
	}

	r.cache.Delete(ctx, teamListKey)
	return saved, nil
}

// TeamRequestRepository also drops cached rosters on writes, since team
// membership is derived from accepted requests.
type TeamRequestRepository struct {
	next  teamrequest.Repository
	cache *basecache.Store
}

func NewTeamRequestRepository(next teamrequest.Repository, cache *basecache.Store) *TeamRequestRepository {
	return &TeamRequestRepository{next: next, cache: cache}
}

func (r *TeamRequestRepository) FindAll(ctx context.Context) ([]teamrequest.TeamRequest, error) {
	return loadSlice(ctx, r.cache, requestListKey, r.next.FindAll)
}

func (r *TeamRequestRepository) Save(ctx context.Context, item teamrequest.TeamRequest) (teamrequest.TeamRequest, error) {
	saved, err := r.next.Save(ctx, item)
	if err != nil {
		return teamrequest.TeamRequest{}, err
	}

	r.invalidate(ctx)
	return saved, nil
}

func (r *TeamRequestRepository) Update(ctx context.Context, item teamrequest.TeamRequest) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *TeamRequestRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, requestPrefix)
	r.cache.DeletePrefix(ctx, userByTeamPrefix)
}

type BasketballStatRepository struct {
	next  stat.Repository
	cache *basecache.Store
}

func NewBasketballStatRepository(next stat.Repository, cache *basecache.Store) *BasketballStatRepository {
	return &BasketballStatRepository{next: next, cache: cache}
}

func (r *BasketballStatRepository) FindAll(ctx context.Context) ([]stat.Basketball, error) {
	return loadSlice(ctx, r.cache, statListKey, r.next.FindAll)
}

func (r *BasketballStatRepository) FindAllByGameID(ctx context.Context, gameID int64) ([]stat.Basketball, error) {
	key := statByGamePrefix + strconv.FormatInt(gameID, 10)
	return loadSlice(ctx, r.cache, key, func(ctx context.Context) ([]stat.Basketball, error) {
		return r.next.FindAllByGameID(ctx, gameID)
	})
}

func (r *BasketballStatRepository) Save(ctx context.Context, item stat.Basketball) (stat.Basketball, error) {
	saved, err := r.next.Save(ctx, item)
	if err != nil {
		return stat.Basketball{}, err
	}

	r.cache.DeletePrefix(ctx, statPrefix)
	return saved, nil
}

func (r *BasketballStatRepository) Update(ctx context.Context, item stat.Basketball) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}

	r.cache.DeletePrefix(ctx, statPrefix)
	return nil
}
