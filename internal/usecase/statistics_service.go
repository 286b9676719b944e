package usecase

import (
	"context"
	"fmt"

	"github.com/jsx-dev/intramural-league/internal/domain/stat"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
)

// PlayerCard is a read-only view of a player and their stat lines.
type PlayerCard struct {
	ID              int64
	Username        string
	BasketballStats []stat.Basketball
}

type StatisticsService struct {
	userRepo user.Repository
	statRepo stat.Repository
}

func NewStatisticsService(userRepo user.Repository, statRepo stat.Repository) *StatisticsService {
	return &StatisticsService{
		userRepo: userRepo,
		statRepo: statRepo,
	}
}

// GetPlayerCardByUserID builds the card for userID. Stats are loaded in full
// and narrowed to the requested player here.
func (s *StatisticsService) GetPlayerCardByUserID(ctx context.Context, userID int64) (PlayerCard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.GetPlayerCardByUserID")
	defer span.End()

	item, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return PlayerCard{}, fmt.Errorf("get user by id: %w", err)
	}

	stats, err := s.statRepo.FindAll(ctx)
	if err != nil {
		return PlayerCard{}, fmt.Errorf("list basketball stats: %w", err)
	}

	owned := make([]stat.Basketball, 0, len(stats))
	for _, line := range stats {
		if line.UserID == item.ID {
			owned = append(owned, line)
		}
	}

	return PlayerCard{
		ID:              item.ID,
		Username:        item.Username,
		BasketballStats: owned,
	}, nil
}

func (s *StatisticsService) GetAllBasketballStatsByGameID(ctx context.Context, gameID int64) ([]stat.Basketball, error) {
	stats, err := s.statRepo.FindAllByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list basketball stats by game=%d: %w", gameID, err)
	}

	return stats, nil
}

// AddOrUpdateBasketballStat merges in into the stored line with the same
// (user, game) key, or saves it as a new line when none exists. Primary ids
// play no part in the lookup.
func (s *StatisticsService) AddOrUpdateBasketballStat(ctx context.Context, in stat.Basketball) (stat.Basketball, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.AddOrUpdateBasketballStat")
	defer span.End()

	stats, err := s.statRepo.FindAll(ctx)
	if err != nil {
		return stat.Basketball{}, fmt.Errorf("list basketball stats: %w", err)
	}

	key := in.Key()
	for idx := range stats {
		if stats[idx].Key() != key {
			continue
		}

		stats[idx].MergeFrom(in)
		if err := s.statRepo.Update(ctx, stats[idx]); err != nil {
			return stat.Basketball{}, fmt.Errorf("update basketball stat user=%d game=%d: %w", key.UserID, key.GameID, err)
		}
		return stats[idx], nil
	}

	created, err := s.statRepo.Save(ctx, in)
	if err != nil {
		return stat.Basketball{}, fmt.Errorf("save basketball stat user=%d game=%d: %w", key.UserID, key.GameID, err)
	}

	return created, nil
}
