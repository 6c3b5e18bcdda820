package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"soulscribe-backend/internal/features/auth/models"
	"soulscribe-backend/internal/features/auth/repository"
)

const (
	keyPrefixProof  = "wallet_proof:"
	keyPrefixState  = "wallet_state:"
	stateExpiration = 15 * time.Minute
	proofExpiration = 30 * 24 * time.Hour
)

type Repository struct {
	client *redis.Client
}

func NewRepository(client *redis.Client) repository.Repository {
	return &Repository{client: client}
}

func (r *Repository) GenerateState(ctx context.Context, wallet string) (*models.WalletProofState, error) {
	state := &models.WalletProofState{
		Wallet:    wallet,
		State:     uuid.New().String(),
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	key := keyPrefixState + wallet
	if err := r.client.Set(ctx, key, data, stateExpiration).Err(); err != nil {
		return nil, fmt.Errorf("failed to save state: %w", err)
	}

	return state, nil
}

func (r *Repository) GetState(ctx context.Context, wallet string) (*models.WalletProofState, error) {
	data, err := r.client.Get(ctx, keyPrefixState+wallet).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	var state models.WalletProofState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return &state, nil
}

func (r *Repository) SaveProof(ctx context.Context, record *models.WalletProofRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal proof record: %w", err)
	}

	return r.client.Set(ctx, keyPrefixProof+record.Wallet, data, proofExpiration).Err()
}

func (r *Repository) GetProof(ctx context.Context, wallet string) (*models.WalletProofRecord, error) {
	data, err := r.client.Get(ctx, keyPrefixProof+wallet).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proof: %w", err)
	}

	var record models.WalletProofRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proof record: %w", err)
	}

	return &record, nil
}
