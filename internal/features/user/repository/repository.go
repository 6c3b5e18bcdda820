package repository

import (
	"context"

	"soulscribe-backend/internal/features/user/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByWallet(ctx context.Context, wallet string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
}
