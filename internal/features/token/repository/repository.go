package repository

import (
	"context"

	"gorm.io/gorm"

	"soulscribe-backend/internal/features/token/models"
)

// TokenRepository persists soulbound tokens. Create also flips the
// originating content's token-issued flag; the two writes share one
// transaction so a token row can never exist without the flag.
type TokenRepository interface {
	Create(ctx context.Context, token *models.SoulboundToken) error
	GetByID(ctx context.Context, id int64) (*models.SoulboundToken, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.SoulboundToken, error)
	// Leaderboard counts tokens per user, joins display fields and returns
	// at most limit rows in descending count order.
	Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
	WithTx(tx *gorm.DB) TokenRepository
}
