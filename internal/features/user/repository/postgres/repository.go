package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/features/user/models"
	"soulscribe-backend/internal/features/user/repository"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperrors.NewDatabaseError("create user", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewUserNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return &user, nil
}

func (r *userRepository) GetByWallet(ctx context.Context, wallet string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("wallet = ?", wallet).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrCodeUserNotFound, "User not found").WithDetail("wallet", wallet)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user by wallet", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, apperrors.NewDatabaseError("list users", err)
	}
	return users, nil
}

func (r *userRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_admin", isAdmin)
	if res.Error != nil {
		return apperrors.NewDatabaseError("set admin", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewUserNotFoundError(id)
	}
	return nil
}
