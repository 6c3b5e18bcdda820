package repository

import (
	"context"

	"soulscribe-backend/internal/features/auth/models"
)

// Repository stores wallet-proof challenges and verified proof records.
type Repository interface {
	GenerateState(ctx context.Context, wallet string) (*models.WalletProofState, error)
	GetState(ctx context.Context, wallet string) (*models.WalletProofState, error)
	SaveProof(ctx context.Context, record *models.WalletProofRecord) error
	GetProof(ctx context.Context, wallet string) (*models.WalletProofRecord, error)
}
