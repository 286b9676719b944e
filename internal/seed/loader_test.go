package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jsx-dev/intramural-league/internal/domain/stat"
	"github.com/jsx-dev/intramural-league/internal/domain/team"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
	"github.com/jsx-dev/intramural-league/internal/infrastructure/repository/memory"
	"github.com/jsx-dev/intramural-league/internal/platform/logging"
	"github.com/jsx-dev/intramural-league/internal/usecase"
)

func newMemoryServices() (*usecase.RegistrationService, *usecase.StatisticsService) {
	requests := memory.NewTeamRequestRepository(memory.SeedTeamRequests())
	users := memory.NewUserRepository(memory.SeedUsers(), requests)
	return usecase.NewRegistrationService(users, memory.NewTeamRepository(memory.SeedTeams()), requests),
		usecase.NewStatisticsService(users, memory.NewBasketballStatRepository(memory.SeedBasketballStats()))
}

func TestLoader_LoadThroughServices(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	f, err := Decode(strings.NewReader(sampleSeed))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	registration, statistics := newMemoryServices()
	loader := NewLoader(registration, statistics, 2, logging.NewNop())

	result, err := loader.Load(ctx, f)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Result{Users: 2, Teams: 1, TeamRequests: 2, BasketballStats: 2}
	if result != want {
		t.Fatalf("unexpected result: %+v", result)
	}

	users, err := registration.RetrieveAllUsers(ctx)
	if err != nil {
		t.Fatalf("retrieve users: %v", err)
	}
	if len(users) != len(memory.SeedUsers())+2 {
		t.Fatalf("expected seeded users plus 2, got %d", len(users))
	}

	roster, err := registration.RetrievePlayersByTeam(ctx, "Da Bois")
	if err != nil {
		t.Fatalf("retrieve roster: %v", err)
	}
	if len(roster) != 1 || roster[0].ID != 4 {
		t.Fatalf("expected approved request to add user 4, got %+v", roster)
	}

	pending, err := registration.FilterTeamRequestsByPlayer(ctx, 5)
	if err != nil {
		t.Fatalf("filter requests: %v", err)
	}
	statuses := map[teamrequest.Status]int{}
	for _, r := range pending {
		statuses[r.Status]++
	}
	if statuses[teamrequest.StatusPending] != 2 {
		t.Fatalf("expected the undecided request to stay pending, got %+v", pending)
	}

	lines, err := statistics.GetAllBasketballStatsByGameID(ctx, 9)
	if err != nil {
		t.Fatalf("stats by game: %v", err)
	}
	if len(lines) != 1 || lines[0].Points != 11 || lines[0].Assists != 2 {
		t.Fatalf("expected the second line to update the first, got %+v", lines)
	}
}

type flakyRegistrar struct {
	mu    sync.Mutex
	teams []string
}

func (f *flakyRegistrar) RegisterUser(_ context.Context, info user.User) (user.User, error) {
	return info, nil
}

func (f *flakyRegistrar) RegisterTeam(_ context.Context, item team.Team) (team.Team, error) {
	if item.Name == "Broken" {
		return team.Team{}, errors.New("team store down")
	}
	f.mu.Lock()
	f.teams = append(f.teams, item.Name)
	f.mu.Unlock()
	return item, nil
}

func (f *flakyRegistrar) CreateRequest(_ context.Context, request teamrequest.TeamRequest) (teamrequest.TeamRequest, error) {
	request.ID = 1
	return request, nil
}

func (f *flakyRegistrar) ApproveRequest(context.Context, int64) error {
	return usecase.ErrNotFound
}

func (f *flakyRegistrar) DenyRequest(context.Context, int64) error {
	return nil
}

func TestLoader_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	registrar := &flakyRegistrar{}
	_, statistics := newMemoryServices()
	loader := NewLoader(registrar, statistics, 0, nil)

	result, err := loader.Load(t.Context(), File{
		Teams: []team.Team{
			{Name: "Broken", Sport: "basketball"},
			{Name: "Fine", Sport: "softball"},
		},
		TeamRequests: []teamrequest.TeamRequest{
			{RequesterID: 2, TeamName: "Fine", Status: teamrequest.StatusAccepted},
		},
	})
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected approve failure in joined error, got %v", err)
	}
	if !strings.Contains(err.Error(), "team store down") {
		t.Fatalf("expected team failure in joined error, got %v", err)
	}
	if result.Teams != 1 || result.TeamRequests != 0 || result.Failed != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(registrar.teams) != 1 || registrar.teams[0] != "Fine" {
		t.Fatalf("expected the healthy team to be written, got %v", registrar.teams)
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	registration, statistics := newMemoryServices()
	result, err := NewLoader(registration, statistics, 1, logging.NewNop()).Load(ctx, File{
		Users: []user.User{{Username: "late", Password: "x"}},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Users != 0 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestLoader_KeepsFileOrderForUsersAndTeams(t *testing.T) {
	t.Parallel()

	const n = 16
	ctx := t.Context()

	var nextID int64
	for _, u := range memory.SeedUsers() {
		nextID = max(nextID, u.ID)
	}
	firstNewID := nextID + 1

	f := File{
		TeamRequests: []teamrequest.TeamRequest{
			{RequesterID: firstNewID, TeamName: "Dupes", Status: teamrequest.StatusAccepted},
		},
		BasketballStats: []stat.Basketball{
			{UserID: firstNewID, GameID: 42, TeamName: "Dupes", Points: 8},
		},
	}
	for i := 0; i < n; i++ {
		f.Users = append(f.Users, user.User{Username: fmt.Sprintf("rookie-%02d", i), Password: "pw"})
		f.Teams = append(f.Teams, team.Team{Name: "Dupes", CaptainID: int64(100 + i), Sport: "basketball"})
	}

	registration, statistics := newMemoryServices()
	result, err := NewLoader(registration, statistics, 4, logging.NewNop()).Load(ctx, f)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if result.Users != n || result.Teams != n || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, err := registration.GetTeamByTeamName(ctx, "Dupes")
	if err != nil {
		t.Fatalf("get team by name: %v", err)
	}
	if got.CaptainID != 100 {
		t.Fatalf("expected the first team in the file, got captain %d", got.CaptainID)
	}

	users, err := registration.RetrieveAllUsers(ctx)
	if err != nil {
		t.Fatalf("retrieve users: %v", err)
	}
	ids := make(map[string]int64, len(users))
	for _, u := range users {
		ids[u.Username] = u.ID
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("rookie-%02d", i)
		if want := firstNewID + int64(i); ids[name] != want {
			t.Fatalf("user %s got id %d, want %d", name, ids[name], want)
		}
	}

	roster, err := registration.RetrievePlayersByTeam(ctx, "Dupes")
	if err != nil {
		t.Fatalf("retrieve roster: %v", err)
	}
	if len(roster) != 1 || roster[0].Username != "rookie-00" {
		t.Fatalf("expected the request to bind to rookie-00, got %+v", roster)
	}

	card, err := statistics.GetPlayerCardByUserID(ctx, firstNewID)
	if err != nil {
		t.Fatalf("player card: %v", err)
	}
	if card.Username != "rookie-00" || len(card.BasketballStats) != 1 {
		t.Fatalf("expected the stat line on rookie-00, got %+v", card)
	}
}
