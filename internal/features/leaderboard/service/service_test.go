package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulscribe-backend/internal/features/leaderboard/service"
	"soulscribe-backend/internal/features/token/models"
	"soulscribe-backend/internal/features/token/repository"
)

type fakeTokenRepo struct {
	repository.TokenRepository

	lastLimit int
}

func (f *fakeTokenRepo) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	f.lastLimit = limit
	entries := make([]*models.LeaderboardEntry, 0, limit)
	for i := 0; i < limit && i < 3; i++ {
		entries = append(entries, &models.LeaderboardEntry{
			UserID:     int64(i + 1),
			TokenCount: int64(3 - i),
		})
	}
	return entries, nil
}

func TestRankDefaultsLimit(t *testing.T) {
	repo := &fakeTokenRepo{}
	svc := service.NewLeaderboardService(repo)

	entries, err := svc.Rank(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, service.DefaultLimit, repo.lastLimit)
	assert.NotEmpty(t, entries)

	_, err = svc.Rank(context.Background(), -5)
	require.NoError(t, err)
	assert.Equal(t, service.DefaultLimit, repo.lastLimit)
}

func TestRankClampsLimit(t *testing.T) {
	repo := &fakeTokenRepo{}
	svc := service.NewLeaderboardService(repo)

	_, err := svc.Rank(context.Background(), service.MaxLimit+1000)
	require.NoError(t, err)
	assert.Equal(t, service.MaxLimit, repo.lastLimit)

	_, err = svc.Rank(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.lastLimit)
}

func TestRankDescendingOrder(t *testing.T) {
	svc := service.NewLeaderboardService(&fakeTokenRepo{})

	entries, err := svc.Rank(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].TokenCount, entries[i].TokenCount)
	}
}
