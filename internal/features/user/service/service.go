package service

import (
	"context"
	"strings"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/logger"
	"soulscribe-backend/internal/features/user/models"
	"soulscribe-backend/internal/features/user/repository"
)

type UserService interface {
	GetUser(ctx context.Context, id int64) (*models.UserResponse, error)
	GetOrCreateByWallet(ctx context.Context, wallet, walletAddress string) (*models.User, error)
}

type userService struct {
	repo         repository.UserRepository
	adminWallets map[string]struct{}
}

func NewUserService(repo repository.UserRepository, adminWallets []string) UserService {
	admins := make(map[string]struct{}, len(adminWallets))
	for _, w := range adminWallets {
		if w = strings.TrimSpace(w); w != "" {
			admins[w] = struct{}{}
		}
	}
	return &userService{repo: repo, adminWallets: admins}
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// GetOrCreateByWallet finds the account bound to a wallet or creates it on
// first login. The admin flag is bootstrapped from configuration at creation
// time; existing accounts are never mutated here.
func (s *userService) GetOrCreateByWallet(ctx context.Context, wallet, walletAddress string) (*models.User, error) {
	user, err := s.repo.GetByWallet(ctx, wallet)
	if err == nil {
		return user, nil
	}
	if appErr, ok := apperrors.AsAppError(err); !ok || !appErr.IsNotFound() {
		return nil, err
	}

	_, isAdmin := s.adminWallets[wallet]
	user = &models.User{
		Username:      usernameFromWallet(wallet),
		Wallet:        wallet,
		WalletAddress: walletAddress,
		IsAdmin:       isAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("user_id", user.ID).
		Str("wallet", wallet).
		Bool("is_admin", isAdmin).
		Msg("User created on first wallet login")

	return user, nil
}

// usernameFromWallet derives a display handle from the wallet identifier,
// e.g. "alice.scribe" -> "alice".
func usernameFromWallet(wallet string) string {
	if i := strings.IndexByte(wallet, '.'); i > 0 {
		return wallet[:i]
	}
	return wallet
}
