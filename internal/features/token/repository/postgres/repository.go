package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "soulscribe-backend/internal/common/errors"
	contentmodels "soulscribe-backend/internal/features/content/models"
	"soulscribe-backend/internal/features/token/models"
	"soulscribe-backend/internal/features/token/repository"
)

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) WithTx(tx *gorm.DB) repository.TokenRepository {
	return &tokenRepository{db: tx}
}

// Create inserts the token and marks the originating content as tokenized in
// a single transaction. A missing content row rolls the whole thing back; a
// token with no content flag is an invariant violation.
func (r *tokenRepository) Create(ctx context.Context, token *models.SoulboundToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(token).Error; err != nil {
			return apperrors.NewDatabaseError("create token", err)
		}

		res := tx.Model(&contentmodels.Content{}).
			Where("id = ?", token.ContentID).
			Updates(map[string]interface{}{"token_issued": true, "token_id": token.TokenID})
		if res.Error != nil {
			return apperrors.NewDatabaseError("mark content tokenized", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NewContentNotFoundError(token.ContentID)
		}
		return nil
	})
}

func (r *tokenRepository) GetByID(ctx context.Context, id int64) (*models.SoulboundToken, error) {
	var token models.SoulboundToken
	err := r.db.WithContext(ctx).First(&token, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrCodeTokenNotFound, "Token not found").WithDetail("id", id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get token", err)
	}
	return &token, nil
}

func (r *tokenRepository) ListByUser(ctx context.Context, userID int64) ([]*models.SoulboundToken, error) {
	var tokens []*models.SoulboundToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("list tokens by user", err)
	}
	return tokens, nil
}

func (r *tokenRepository) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	var entries []*models.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Table("soulbound_tokens").
		Select("soulbound_tokens.user_id AS user_id, users.username AS username, users.wallet AS wallet, COUNT(*) AS token_count").
		Joins("INNER JOIN users ON users.id = soulbound_tokens.user_id").
		Group("soulbound_tokens.user_id, users.username, users.wallet").
		Order("token_count DESC, user_id").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("leaderboard", err)
	}
	return entries, nil
}
