package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"soulscribe-backend/internal/common/cache"
	"soulscribe-backend/internal/features/content/models"
	"soulscribe-backend/internal/features/content/repository"
	"soulscribe-backend/internal/features/content/service"
)

// fakeRepo serves canned pages and counts how often it is hit.
type fakeRepo struct {
	repository.ContentRepository

	page  []*models.ContentWithWallet
	calls int
}

func (f *fakeRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.ContentWithWallet, error) {
	f.calls++
	return f.page, nil
}

func feedRow(id int64, approved bool) *models.ContentWithWallet {
	return &models.ContentWithWallet{
		Content: models.Content{
			ID:         id,
			UserID:     1,
			Text:       fmt.Sprintf("item %d", id),
			Categories: []string{"other"},
			Approved:   approved,
		},
		Wallet: "alice.scribe",
	}
}

func newCache(t *testing.T) *cache.CacheService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewCacheService(client)
}

func TestFeedFiltersApproved(t *testing.T) {
	repo := &fakeRepo{page: []*models.ContentWithWallet{
		feedRow(1, true),
		feedRow(2, false),
		feedRow(3, true),
	}}
	svc := service.NewContentService(repo, nil)

	feed, err := svc.Feed(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, int64(1), feed[0].ID)
	assert.Equal(t, int64(3), feed[1].ID)
	assert.Equal(t, "alice.scribe", feed[0].Wallet)
}

func TestFeedServesFromCache(t *testing.T) {
	repo := &fakeRepo{page: []*models.ContentWithWallet{feedRow(1, true)}}
	svc := service.NewContentService(repo, newCache(t))
	ctx := context.Background()

	first, err := svc.Feed(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.calls)

	// Second read comes from the cache.
	second, err := svc.Feed(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, repo.calls)

	// A different page misses and hits the repository.
	_, err = svc.Feed(ctx, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCategories(t *testing.T) {
	svc := service.NewContentService(&fakeRepo{}, nil)

	categories := svc.Categories()
	require.Len(t, categories, 6)
	assert.Equal(t, models.CategoryTutorial, categories[0])
}

var _ repository.ContentRepository = (*fakeRepo)(nil)
