package repository

import (
	"context"

	"gorm.io/gorm"

	"soulscribe-backend/internal/features/content/models"

	analysismodels "soulscribe-backend/internal/features/analysis/models"
)

// ContentRepository persists submissions and their lifecycle flags. All
// mutations are idempotent at the field level; operations on a missing id
// return a not-found error.
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	GetByID(ctx context.Context, id int64) (*models.Content, error)
	// GetByIDForUpdate takes a row lock so concurrent moderation actions on
	// the same content serialize. Must run inside a transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Content, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Content, error)
	// ListAll returns a page of content joined with the owner's wallet,
	// ordered by creation time.
	ListAll(ctx context.Context, limit, offset int) ([]*models.ContentWithWallet, error)
	AttachAnalysis(ctx context.Context, id int64, card *analysismodels.Scorecard) error
	SetApproved(ctx context.Context, id int64) error
	SetRejected(ctx context.Context, id int64) error
	SetTokenIssued(ctx context.Context, id int64, tokenID string) error
	// WithTx returns a view of the repository scoped to the transaction.
	WithTx(tx *gorm.DB) ContentRepository
}
