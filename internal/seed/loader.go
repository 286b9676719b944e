package seed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/jsx-dev/intramural-league/internal/domain/stat"
	"github.com/jsx-dev/intramural-league/internal/domain/team"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
	"github.com/jsx-dev/intramural-league/internal/platform/logging"
)

const defaultWorkers = 4

type Registrar interface {
	RegisterUser(ctx context.Context, info user.User) (user.User, error)
	RegisterTeam(ctx context.Context, item team.Team) (team.Team, error)
	CreateRequest(ctx context.Context, request teamrequest.TeamRequest) (teamrequest.TeamRequest, error)
	ApproveRequest(ctx context.Context, requestID int64) error
	DenyRequest(ctx context.Context, requestID int64) error
}

type StatRecorder interface {
	AddOrUpdateBasketballStat(ctx context.Context, in stat.Basketball) (stat.Basketball, error)
}

// Result counts what each phase wrote. Failed records do not stop the load.
type Result struct {
	Users           int
	Teams           int
	TeamRequests    int
	BasketballStats int
	Failed          int
}

// Loader pushes a seed File through the use cases so every record goes
// through the same defaults and checks as live traffic.
type Loader struct {
	registration Registrar
	statistics   StatRecorder
	workers      int
	logger       *logging.Logger
}

func NewLoader(registration Registrar, statistics StatRecorder, workers int, logger *logging.Logger) *Loader {
	if workers < 1 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{
		registration: registration,
		statistics:   statistics,
		workers:      workers,
		logger:       logger,
	}
}

// Load writes users, then teams, then team requests, then stats. Users and
// teams are written in file order so storage ids and the first-match order of
// duplicate team names follow the file. Stats are written in order too, since
// two lines for the same player and game would race on the upsert. Only team
// requests are written concurrently.
func (l *Loader) Load(ctx context.Context, f File) (Result, error) {
	pool, err := ants.NewPool(l.workers)
	if err != nil {
		return Result{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		result Result
		errs   []error
	)

	n, phaseErrs := runInOrder(ctx, f.Users, func(ctx context.Context, item user.User) error {
		if _, err := l.registration.RegisterUser(ctx, item); err != nil {
			return fmt.Errorf("user %s: %w", item.Username, err)
		}
		return nil
	})
	result.Users = n
	errs = append(errs, phaseErrs...)

	n, phaseErrs = runInOrder(ctx, f.Teams, func(ctx context.Context, item team.Team) error {
		if _, err := l.registration.RegisterTeam(ctx, item); err != nil {
			return fmt.Errorf("team %s: %w", item.Name, err)
		}
		return nil
	})
	result.Teams = n
	errs = append(errs, phaseErrs...)

	n, phaseErrs = runParallel(ctx, pool, f.TeamRequests, l.loadTeamRequest)
	result.TeamRequests = n
	errs = append(errs, phaseErrs...)

	n, phaseErrs = runInOrder(ctx, f.BasketballStats, func(ctx context.Context, line stat.Basketball) error {
		if _, err := l.statistics.AddOrUpdateBasketballStat(ctx, line); err != nil {
			return fmt.Errorf("basketball stat user=%d game=%d: %w", line.UserID, line.GameID, err)
		}
		return nil
	})
	result.BasketballStats = n
	errs = append(errs, phaseErrs...)

	result.Failed = f.Len() - result.Users - result.Teams - result.TeamRequests - result.BasketballStats
	l.logger.InfoContext(ctx, "seed load finished",
		"users", result.Users,
		"teams", result.Teams,
		"team_requests", result.TeamRequests,
		"basketball_stats", result.BasketballStats,
		"failed", result.Failed,
	)

	return result, errors.Join(errs...)
}

// loadTeamRequest creates the request and replays a recorded decision.
func (l *Loader) loadTeamRequest(ctx context.Context, item teamrequest.TeamRequest) error {
	created, err := l.registration.CreateRequest(ctx, teamrequest.TeamRequest{
		RequesterID: item.RequesterID,
		TeamName:    item.TeamName,
		TeamID:      item.TeamID,
	})
	if err != nil {
		return fmt.Errorf("team request requester=%d team=%s: %w", item.RequesterID, item.TeamName, err)
	}

	switch item.Status {
	case teamrequest.StatusAccepted:
		err = l.registration.ApproveRequest(ctx, created.ID)
	case teamrequest.StatusDenied:
		err = l.registration.DenyRequest(ctx, created.ID)
	}
	if err != nil {
		return fmt.Errorf("decide team request %d: %w", created.ID, err)
	}
	return nil
}

// runInOrder stops at the first canceled context; records after it are
// counted as failed by the caller.
func runInOrder[T any](ctx context.Context, items []T, fn func(context.Context, T) error) (int, []error) {
	var (
		written int
		errs    []error
	)
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := fn(ctx, item); err != nil {
			errs = append(errs, err)
			continue
		}
		written++
	}
	return written, errs
}

func runParallel[T any](ctx context.Context, pool *ants.Pool, items []T, fn func(context.Context, T) error) (int, []error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		written atomic.Int32
	)

	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, item := range items {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				record(err)
				return
			}
			if err := fn(ctx, item); err != nil {
				record(err)
				return
			}
			written.Add(1)
		}); err != nil {
			wg.Done()
			record(fmt.Errorf("submit seed task: %w", err))
		}
	}
	wg.Wait()

	return int(written.Load()), errs
}
