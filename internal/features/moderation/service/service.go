package service

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"soulscribe-backend/internal/common/cache"
	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/logger"
	"soulscribe-backend/internal/common/validation"
	"soulscribe-backend/internal/features/analysis"
	contentmodels "soulscribe-backend/internal/features/content/models"
	"soulscribe-backend/internal/features/content/models/dto"
	contentrepo "soulscribe-backend/internal/features/content/repository"
	tokenmodels "soulscribe-backend/internal/features/token/models"
	tokenrepo "soulscribe-backend/internal/features/token/repository"
	tokenservice "soulscribe-backend/internal/features/token/service"
	userrepo "soulscribe-backend/internal/features/user/repository"
	"soulscribe-backend/internal/platform/ledger"
)

// FeedCachePattern covers every cached feed page; approval and rejection
// invalidate it.
const FeedCachePattern = "content:feed:*"

// ModerationService drives the content lifecycle: Pending on submission,
// then Approved (with exactly one soulbound token) or Rejected.
type ModerationService interface {
	Submit(ctx context.Context, userID int64, input *dto.ContentCreate) (*contentmodels.Content, error)
	Approve(ctx context.Context, contentID int64) (*contentmodels.Content, error)
	Reject(ctx context.Context, contentID int64) (*contentmodels.Content, error)
}

type moderationService struct {
	db          *gorm.DB
	contents    contentrepo.ContentRepository
	tokens      tokenrepo.TokenRepository
	users       userrepo.UserRepository
	tokenSvc    tokenservice.TokenService
	ledger      ledger.Client
	scorer      analysis.Scorer
	cache       *cache.CacheService
	autoApprove bool
}

func NewModerationService(
	db *gorm.DB,
	contents contentrepo.ContentRepository,
	tokens tokenrepo.TokenRepository,
	users userrepo.UserRepository,
	tokenSvc tokenservice.TokenService,
	ledgerClient ledger.Client,
	scorer analysis.Scorer,
	cacheService *cache.CacheService,
	autoApprove bool,
) ModerationService {
	return &moderationService{
		db:          db,
		contents:    contents,
		tokens:      tokens,
		users:       users,
		tokenSvc:    tokenSvc,
		ledger:      ledgerClient,
		scorer:      scorer,
		cache:       cacheService,
		autoApprove: autoApprove,
	}
}

// Submit validates the payload, persists the content in Pending and attaches
// the freshly computed scorecard. Validation failures surface before any
// persistence. With auto-approve enabled, a passing scorecard goes through
// the same Approve path as an admin action.
func (s *moderationService) Submit(ctx context.Context, userID int64, input *dto.ContentCreate) (*contentmodels.Content, error) {
	if err := validation.ValidateText(input.Text); err != nil {
		return nil, apperrors.NewValidationError("text", err.Error())
	}
	if err := validation.ValidateCategories(input.Categories); err != nil {
		return nil, apperrors.NewValidationError("categories", err.Error())
	}
	if err := validation.ValidateLink(input.Link); err != nil {
		return nil, apperrors.NewValidationError("link", err.Error())
	}
	if err := validation.ValidateImageURL(input.ImageURL); err != nil {
		return nil, apperrors.NewValidationError("image_url", err.Error())
	}

	content := &contentmodels.Content{
		UserID:     userID,
		Text:       input.Text,
		Link:       input.Link,
		ImageURL:   input.ImageURL,
		Categories: input.Categories,
	}
	if err := s.contents.Create(ctx, content); err != nil {
		return nil, err
	}

	card := s.scorer.Score(content.Text)
	if err := s.contents.AttachAnalysis(ctx, content.ID, card); err != nil {
		return nil, err
	}
	content.Analysis = card

	logger.Info().
		Int64("content_id", content.ID).
		Int64("user_id", userID).
		Bool("scorecard_approved", card.Approved).
		Msg("Content submitted and scored")

	if s.autoApprove && card.Approved {
		return s.Approve(ctx, content.ID)
	}

	return content, nil
}

// Approve transitions a pending item to Approved and issues its soulbound
// token. The content row is locked for the whole transaction, so two
// concurrent approvals serialize and the loser sees token_issued already
// set. A ledger failure rolls everything back and leaves the item Pending.
func (s *moderationService) Approve(ctx context.Context, contentID int64) (*contentmodels.Content, error) {
	var (
		result   *contentmodels.Content
		mintedID string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contents := s.contents.WithTx(tx)

		content, err := contents.GetByIDForUpdate(ctx, contentID)
		if err != nil {
			return err
		}
		if content.Rejected {
			return apperrors.New(apperrors.ErrCodeAlreadyReviewed, "Content was already rejected").
				WithDetail("content_id", contentID)
		}

		if !content.TokenIssued {
			owner, err := s.users.GetByID(ctx, content.UserID)
			if err != nil {
				return err
			}

			meta := s.tokenSvc.DeriveMetadata(content)
			ledgerMeta := s.tokenSvc.BuildLedgerMetadata(content, meta)
			metaJSON, err := json.Marshal(ledgerMeta)
			if err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to encode token metadata")
			}

			// The mint happens while the row lock is held; it either
			// completes or the whole approval fails. No retry here.
			ledgerID, err := s.ledger.IssueToken(ctx, owner.WalletAddress, string(metaJSON))
			if err != nil {
				return apperrors.NewLedgerError("mint", err)
			}
			mintedID = ledgerID

			token := &tokenmodels.SoulboundToken{
				UserID:      content.UserID,
				ContentID:   content.ID,
				TokenID:     ledgerID,
				TokenType:   meta.Type,
				Name:        meta.Name,
				Description: meta.Description,
				Metadata:    ledgerMeta,
			}
			if err := s.tokens.WithTx(tx).Create(ctx, token); err != nil {
				return err
			}

			content.TokenIssued = true
			content.TokenID = ledgerID
		}

		if err := contents.SetApproved(ctx, content.ID); err != nil {
			return err
		}
		content.Approved = true
		content.Rejected = false

		result = content
		return nil
	})
	if err != nil {
		if mintedID != "" {
			// The ledger minted but the local record did not commit. This
			// cannot be resolved automatically and must not be swallowed.
			logger.Error().
				Int64("content_id", contentID).
				Str("ledger_token_id", mintedID).
				Err(err).
				Msg("Ledger token minted without a local record; manual reconciliation required")
		}
		return nil, err
	}

	s.invalidateFeed(ctx)

	logger.Info().
		Int64("content_id", contentID).
		Str("token_id", result.TokenID).
		Msg("Content approved")

	return result, nil
}

// Reject transitions a pending item to Rejected. Idempotent from Rejected;
// a previously issued token is never touched.
func (s *moderationService) Reject(ctx context.Context, contentID int64) (*contentmodels.Content, error) {
	var result *contentmodels.Content

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contents := s.contents.WithTx(tx)

		content, err := contents.GetByIDForUpdate(ctx, contentID)
		if err != nil {
			return err
		}
		if content.Approved {
			return apperrors.New(apperrors.ErrCodeAlreadyReviewed, "Content was already approved").
				WithDetail("content_id", contentID)
		}

		if err := contents.SetRejected(ctx, content.ID); err != nil {
			return err
		}
		content.Approved = false
		content.Rejected = true

		result = content
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)

	logger.Info().Int64("content_id", contentID).Msg("Content rejected")

	return result, nil
}

func (s *moderationService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, FeedCachePattern); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate feed cache")
	}
}
