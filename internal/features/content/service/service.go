package service

import (
	"context"
	"fmt"
	"time"

	"soulscribe-backend/internal/common/cache"
	"soulscribe-backend/internal/common/logger"
	"soulscribe-backend/internal/features/content/models"
	"soulscribe-backend/internal/features/content/repository"
)

const (
	feedCacheTTL = time.Minute
	feedKeyFmt   = "content:feed:%d:%d"
)

// ContentService serves the read side of the content lifecycle; mutations go
// through the moderation workflow.
type ContentService interface {
	GetContent(ctx context.Context, id int64) (*models.Content, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Content, error)
	// Feed returns the approved slice of a content page, briefly cached.
	Feed(ctx context.Context, limit, offset int) ([]*models.ContentWithWallet, error)
	// ListAll returns a full moderation page including pending and rejected
	// items; admin only.
	ListAll(ctx context.Context, limit, offset int) ([]*models.ContentWithWallet, error)
	Categories() []models.Category
}

type contentService struct {
	repo  repository.ContentRepository
	cache *cache.CacheService
}

func NewContentService(repo repository.ContentRepository, cacheService *cache.CacheService) ContentService {
	return &contentService{repo: repo, cache: cacheService}
}

func (s *contentService) GetContent(ctx context.Context, id int64) (*models.Content, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *contentService) ListByUser(ctx context.Context, userID int64) ([]*models.Content, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *contentService) Feed(ctx context.Context, limit, offset int) ([]*models.ContentWithWallet, error) {
	key := fmt.Sprintf(feedKeyFmt, limit, offset)

	if s.cache != nil {
		var cached []*models.ContentWithWallet
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !cache.IsMiss(err) {
			logger.Warn().Err(err).Str("key", key).Msg("Feed cache read failed")
		}
	}

	page, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	// Approval filtering happens after pagination, so a feed page can come
	// back shorter than limit when the underlying page holds unreviewed or
	// rejected items.
	approved := make([]*models.ContentWithWallet, 0, len(page))
	for _, item := range page {
		if item.Approved {
			approved = append(approved, item)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, approved, feedCacheTTL); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Feed cache write failed")
		}
	}

	return approved, nil
}

func (s *contentService) ListAll(ctx context.Context, limit, offset int) ([]*models.ContentWithWallet, error) {
	return s.repo.ListAll(ctx, limit, offset)
}

func (s *contentService) Categories() []models.Category {
	return models.Categories
}
