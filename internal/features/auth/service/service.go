package service

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xssnick/tonutils-go/address"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/logger"
	"soulscribe-backend/internal/features/auth/models"
	"soulscribe-backend/internal/features/auth/repository"
	userservice "soulscribe-backend/internal/features/user/service"
)

type Config struct {
	JWTSecret   []byte
	TokenTTL    time.Duration
	ProofDomain string
	ProofMaxAge time.Duration
}

type Service struct {
	repo  repository.Repository
	users userservice.UserService
	cfg   Config
}

func NewService(repo repository.Repository, users userservice.UserService, cfg Config) *Service {
	return &Service{repo: repo, users: users, cfg: cfg}
}

// GenerateState issues the challenge a wallet has to sign before login.
func (s *Service) GenerateState(ctx context.Context, wallet string) (*models.WalletProofState, error) {
	return s.repo.GenerateState(ctx, wallet)
}

// Login verifies a wallet-ownership proof, creates the account on first
// login and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, req *models.WalletProofRequest) (*models.LoginResponse, error) {
	if err := s.verifyProof(ctx, req); err != nil {
		return nil, err
	}

	user, err := s.users.GetOrCreateByWallet(ctx, req.Wallet, req.Address)
	if err != nil {
		return nil, err
	}

	record := &models.WalletProofRecord{
		UserID:     user.ID,
		Wallet:     req.Wallet,
		Address:    req.Address,
		Network:    req.Network,
		VerifiedAt: time.Now(),
	}
	if err := s.repo.SaveProof(ctx, record); err != nil {
		return nil, apperrors.NewCacheError("save proof", err)
	}

	token, err := s.generateToken(user.ID, user.Wallet)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to sign token")
	}

	logger.Info().Int64("user_id", user.ID).Str("wallet", user.Wallet).Msg("Wallet login verified")

	return &models.LoginResponse{
		Token:   token,
		UserID:  user.ID,
		Wallet:  user.Wallet,
		IsAdmin: user.IsAdmin,
	}, nil
}

// IsVerified reports whether the wallet holds a live ledger session. Token
// issuance requires it.
func (s *Service) IsVerified(ctx context.Context, wallet string) (bool, error) {
	record, err := s.repo.GetProof(ctx, wallet)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

func (s *Service) verifyProof(ctx context.Context, req *models.WalletProofRequest) error {
	if req.Domain != s.cfg.ProofDomain {
		return apperrors.NewUnauthorizedError("proof domain mismatch")
	}

	timestamp, err := strconv.ParseInt(req.Timestamp, 10, 64)
	if err != nil {
		return apperrors.NewValidationError("timestamp", "not a unix timestamp")
	}
	if time.Now().Unix() > timestamp+int64(s.cfg.ProofMaxAge.Seconds()) {
		return apperrors.NewUnauthorizedError("proof expired")
	}

	if _, err := address.ParseAddr(req.Address); err != nil {
		return apperrors.NewValidationError("address", "not a valid ledger address")
	}

	state, err := s.repo.GetState(ctx, req.Wallet)
	if err != nil {
		return apperrors.NewCacheError("get state", err)
	}
	if state == nil || state.State != req.Payload {
		return apperrors.NewUnauthorizedError("unknown or expired proof state")
	}

	return s.verifySignature(req)
}

// verifySignature checks the ed25519 signature over "domain:timestamp:payload".
func (s *Service) verifySignature(req *models.WalletProofRequest) error {
	message := req.Domain + ":" + req.Timestamp + ":" + req.Payload

	pubKey, err := base64.StdEncoding.DecodeString(req.PublicKey)
	if err != nil || len(pubKey) != ed25519.PublicKeySize {
		return apperrors.NewValidationError("public_key", "invalid base64 ed25519 key")
	}

	signature, err := base64.StdEncoding.DecodeString(req.Signature)
	if err != nil {
		return apperrors.NewValidationError("signature", "invalid base64")
	}

	if !ed25519.Verify(ed25519.PublicKey(pubKey), []byte(message), signature) {
		return apperrors.NewUnauthorizedError("signature verification failed")
	}

	return nil
}

func (s *Service) generateToken(userID int64, wallet string) (string, error) {
	claims := &models.Claims{
		UserID: userID,
		Wallet: wallet,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.JWTSecret)
}

// ValidateToken parses and checks a bearer token.
func (s *Service) ValidateToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}
	return claims, nil
}
