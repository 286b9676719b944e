package usecase

import (
	"context"
	"fmt"

	"github.com/jsx-dev/intramural-league/internal/domain/team"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
)

// RegistrationService owns accounts, team registration and the team request
// workflow.
type RegistrationService struct {
	userRepo    user.Repository
	teamRepo    team.Repository
	requestRepo teamrequest.Repository
}

func NewRegistrationService(
	userRepo user.Repository,
	teamRepo team.Repository,
	requestRepo teamrequest.Repository,
) *RegistrationService {
	return &RegistrationService{
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		requestRepo: requestRepo,
	}
}

func (s *RegistrationService) RegisterTeam(ctx context.Context, item team.Team) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.RegisterTeam")
	defer span.End()

	saved, err := s.teamRepo.Save(ctx, item)
	if err != nil {
		return team.Team{}, fmt.Errorf("save team: %w", err)
	}

	return saved, nil
}

func (s *RegistrationService) GetAllTeams(ctx context.Context) ([]team.Team, error) {
	teams, err := s.teamRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

// GetUserFromLoginCredentials returns the account matching creds. A missing
// username surfaces the repository error without any password comparison.
func (s *RegistrationService) GetUserFromLoginCredentials(ctx context.Context, creds user.LoginCredentials) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.GetUserFromLoginCredentials")
	defer span.End()

	item, err := s.userRepo.GetByUsername(ctx, creds.Username)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by username: %w", err)
	}
	if item.Password != creds.Password {
		return user.User{}, ErrPasswordMismatch
	}

	return item, nil
}

func (s *RegistrationService) RegisterUser(ctx context.Context, info user.User) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.RegisterUser")
	defer span.End()

	saved, err := s.userRepo.Save(ctx, info)
	if err != nil {
		return user.User{}, fmt.Errorf("save user: %w", err)
	}

	return saved, nil
}

// UpdateUser writes info and hands it back; the stored row is not re-read.
func (s *RegistrationService) UpdateUser(ctx context.Context, info user.User) (user.User, error) {
	if err := s.userRepo.Update(ctx, info); err != nil {
		return user.User{}, fmt.Errorf("update user=%d: %w", info.ID, err)
	}

	return info, nil
}

func (s *RegistrationService) UpdateRole(ctx context.Context, userID int64, role string) error {
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("update role user=%d: %w", userID, err)
	}

	return nil
}

func (s *RegistrationService) FilterTeamRequestsByPlayer(ctx context.Context, playerID int64) ([]teamrequest.TeamRequest, error) {
	requests, err := s.requestRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team requests: %w", err)
	}

	return filterTeamRequests(requests, func(r teamrequest.TeamRequest) bool {
		return r.RequesterID == playerID
	}), nil
}

// GetTeamByTeamName returns the first team, in storage order, whose name is
// exactly name.
func (s *RegistrationService) GetTeamByTeamName(ctx context.Context, name string) (team.Team, error) {
	teams, err := s.teamRepo.FindAll(ctx)
	if err != nil {
		return team.Team{}, fmt.Errorf("list teams: %w", err)
	}

	for _, item := range teams {
		if item.Name == name {
			return item, nil
		}
	}

	return team.Team{}, fmt.Errorf("%w: team=%q", ErrNotFound, name)
}

func (s *RegistrationService) RetrievePlayersByTeam(ctx context.Context, teamName string) ([]user.User, error) {
	players, err := s.userRepo.ListByTeam(ctx, teamName)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	return players, nil
}

func (s *RegistrationService) RetrieveAllUsers(ctx context.Context) ([]user.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (s *RegistrationService) GetAllTeamRequests(ctx context.Context) ([]teamrequest.TeamRequest, error) {
	requests, err := s.requestRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team requests: %w", err)
	}

	return requests, nil
}

func (s *RegistrationService) FilterTeamRequestsByTeam(ctx context.Context, teamName string) ([]teamrequest.TeamRequest, error) {
	requests, err := s.requestRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team requests: %w", err)
	}

	return filterTeamRequests(requests, func(r teamrequest.TeamRequest) bool {
		return r.TeamName == teamName
	}), nil
}

// CreateRequest stores request as given; the repository assigns the id and the
// initial pending status.
func (s *RegistrationService) CreateRequest(ctx context.Context, request teamrequest.TeamRequest) (teamrequest.TeamRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.CreateRequest")
	defer span.End()

	created, err := s.requestRepo.Save(ctx, request)
	if err != nil {
		return teamrequest.TeamRequest{}, fmt.Errorf("save team request: %w", err)
	}

	return created, nil
}

func (s *RegistrationService) ApproveRequest(ctx context.Context, requestID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.ApproveRequest")
	defer span.End()

	return s.decideRequest(ctx, requestID, teamrequest.StatusAccepted)
}

func (s *RegistrationService) DenyRequest(ctx context.Context, requestID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.DenyRequest")
	defer span.End()

	return s.decideRequest(ctx, requestID, teamrequest.StatusDenied)
}

// decideRequest sets the status on the loaded record itself and writes that
// record back, so every other column goes out exactly as it was read. The
// current status is not checked.
func (s *RegistrationService) decideRequest(ctx context.Context, requestID int64, status teamrequest.Status) error {
	requests, err := s.requestRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("list team requests: %w", err)
	}

	idx := indexOfTeamRequest(requests, requestID)
	if idx < 0 {
		return fmt.Errorf("%w: team request=%d", ErrNotFound, requestID)
	}

	requests[idx].Status = status
	if err := s.requestRepo.Update(ctx, requests[idx]); err != nil {
		return fmt.Errorf("update team request=%d status=%s: %w", requestID, status, err)
	}

	return nil
}

func indexOfTeamRequest(requests []teamrequest.TeamRequest, requestID int64) int {
	for idx := range requests {
		if requests[idx].ID == requestID {
			return idx
		}
	}
	return -1
}

func filterTeamRequests(requests []teamrequest.TeamRequest, keep func(teamrequest.TeamRequest) bool) []teamrequest.TeamRequest {
	out := make([]teamrequest.TeamRequest, 0, len(requests))
	for _, item := range requests {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
