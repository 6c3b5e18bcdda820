package service

import (
	"context"
	"fmt"
	"time"

	"soulscribe-backend/internal/features/content/models"
	tokenmodels "soulscribe-backend/internal/features/token/models"
	"soulscribe-backend/internal/features/token/repository"
)

// Reward descriptors per category. The first matching category in this fixed
// priority order wins when a submission carries several tags.
var rewardByCategory = []struct {
	category models.Category
	meta     tokenmodels.TokenMetadata
}{
	{models.CategoryTutorial, tokenmodels.TokenMetadata{
		Type:        "Tutorial Master",
		Name:        "Knowledge Sharing",
		Description: "Awarded for creating educational content",
	}},
	{models.CategoryReview, tokenmodels.TokenMetadata{
		Type:        "Insight Provider",
		Name:        "Critical Analysis",
		Description: "Awarded for thoughtful reviews",
	}},
	{models.CategoryAnalysis, tokenmodels.TokenMetadata{
		Type:        "Analysis Expert",
		Name:        "Deep Insights",
		Description: "Awarded for detailed analytical content",
	}},
	{models.CategoryNews, tokenmodels.TokenMetadata{
		Type:        "News Reporter",
		Name:        "Breaking Updates",
		Description: "Awarded for sharing timely information",
	}},
}

var defaultReward = tokenmodels.TokenMetadata{
	Type:        "Content Creator",
	Name:        "Content Contribution",
	Description: "Awarded for submitting quality content",
}

type TokenService interface {
	GetToken(ctx context.Context, id int64) (*tokenmodels.SoulboundToken, error)
	ListByUser(ctx context.Context, userID int64) ([]*tokenmodels.SoulboundToken, error)
	DeriveMetadata(content *models.Content) tokenmodels.TokenMetadata
	BuildLedgerMetadata(content *models.Content, meta tokenmodels.TokenMetadata) map[string]interface{}
}

type tokenService struct {
	repo repository.TokenRepository
}

func NewTokenService(repo repository.TokenRepository) TokenService {
	return &tokenService{repo: repo}
}

func (s *tokenService) GetToken(ctx context.Context, id int64) (*tokenmodels.SoulboundToken, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tokenService) ListByUser(ctx context.Context, userID int64) ([]*tokenmodels.SoulboundToken, error) {
	return s.repo.ListByUser(ctx, userID)
}

// DeriveMetadata maps a submission's categories to its reward descriptor.
func (s *tokenService) DeriveMetadata(content *models.Content) tokenmodels.TokenMetadata {
	for _, reward := range rewardByCategory {
		if content.HasCategory(reward.category) {
			return reward.meta
		}
	}
	return defaultReward
}

// BuildLedgerMetadata assembles the free-form metadata recorded with the
// token, both locally and on the ledger.
func (s *tokenService) BuildLedgerMetadata(content *models.Content, meta tokenmodels.TokenMetadata) map[string]interface{} {
	return map[string]interface{}{
		"type":        meta.Type,
		"name":        meta.Name,
		"description": meta.Description,
		"createdAt":   time.Now().UTC().Format(time.RFC3339),
		"contentId":   content.ID,
		"categories":  content.Categories,
		"imageUrl": fmt.Sprintf(
			"https://source.boringavatars.com/beam/120/%s?colors=5F4B8B,00C2CB,FF7E5F,121212,F8F9FA",
			meta.Type),
	}
}
