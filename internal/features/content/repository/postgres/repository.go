package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "soulscribe-backend/internal/common/errors"
	analysismodels "soulscribe-backend/internal/features/analysis/models"
	"soulscribe-backend/internal/features/content/models"
	"soulscribe-backend/internal/features/content/repository"
)

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) WithTx(tx *gorm.DB) repository.ContentRepository {
	return &contentRepository{db: tx}
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return apperrors.NewDatabaseError("create content", err)
	}
	return nil
}

func (r *contentRepository) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	var content models.Content
	err := r.db.WithContext(ctx).First(&content, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewContentNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get content", err)
	}
	return &content, nil
}

func (r *contentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Content, error) {
	var content models.Content
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&content, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewContentNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("lock content", err)
	}
	return &content, nil
}

func (r *contentRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Content, error) {
	var contents []*models.Content
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&contents).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("list content by user", err)
	}
	return contents, nil
}

func (r *contentRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.ContentWithWallet, error) {
	var rows []*models.ContentWithWallet
	err := r.db.WithContext(ctx).
		Table("contents").
		Select("contents.*, users.wallet AS wallet").
		Joins("INNER JOIN users ON users.id = contents.user_id").
		Order("contents.created_at").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("list content", err)
	}
	return rows, nil
}

// AttachAnalysis stores the scorecard pre-marshalled; map-based updates skip
// gorm's field serializers, so the JSON encoding happens here.
func (r *contentRepository) AttachAnalysis(ctx context.Context, id int64, card *analysismodels.Scorecard) error {
	data, err := json.Marshal(card)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to encode scorecard")
	}
	return r.update(ctx, id, map[string]interface{}{"analysis": string(data)}, "attach analysis")
}

func (r *contentRepository) SetApproved(ctx context.Context, id int64) error {
	return r.update(ctx, id, map[string]interface{}{"approved": true, "rejected": false}, "set approved")
}

func (r *contentRepository) SetRejected(ctx context.Context, id int64) error {
	return r.update(ctx, id, map[string]interface{}{"approved": false, "rejected": true}, "set rejected")
}

func (r *contentRepository) SetTokenIssued(ctx context.Context, id int64, tokenID string) error {
	return r.update(ctx, id, map[string]interface{}{"token_issued": true, "token_id": tokenID}, "set token issued")
}

func (r *contentRepository) update(ctx context.Context, id int64, fields map[string]interface{}, op string) error {
	res := r.db.WithContext(ctx).Model(&models.Content{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return apperrors.NewDatabaseError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		// Re-applying an identical state still touches the row; zero rows
		// means the id does not exist.
		return apperrors.NewContentNotFoundError(id)
	}
	return nil
}
