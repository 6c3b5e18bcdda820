package service

import (
	"context"

	"soulscribe-backend/internal/features/token/models"
	"soulscribe-backend/internal/features/token/repository"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// LeaderboardService ranks users by issued token count. Computed fresh per
// call; users without tokens do not appear.
type LeaderboardService interface {
	Rank(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

type leaderboardService struct {
	tokens repository.TokenRepository
}

func NewLeaderboardService(tokens repository.TokenRepository) LeaderboardService {
	return &leaderboardService{tokens: tokens}
}

func (s *leaderboardService) Rank(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.tokens.Leaderboard(ctx, limit)
}
