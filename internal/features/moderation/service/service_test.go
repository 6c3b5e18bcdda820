package service_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"soulscribe-backend/internal/common/cache"
	apperrors "soulscribe-backend/internal/common/errors"
	analysismodels "soulscribe-backend/internal/features/analysis/models"
	contentmodels "soulscribe-backend/internal/features/content/models"
	"soulscribe-backend/internal/features/content/models/dto"
	contentpostgres "soulscribe-backend/internal/features/content/repository/postgres"
	"soulscribe-backend/internal/features/moderation/service"
	tokenmodels "soulscribe-backend/internal/features/token/models"
	tokenpostgres "soulscribe-backend/internal/features/token/repository/postgres"
	tokenservice "soulscribe-backend/internal/features/token/service"
	usermodels "soulscribe-backend/internal/features/user/models"
	userpostgres "soulscribe-backend/internal/features/user/repository/postgres"
	"soulscribe-backend/internal/platform/ledger"
)

// fakeLedger records mints and can be told to fail.
type fakeLedger struct {
	mints   int
	fail    bool
	lastMsg string
}

func (f *fakeLedger) IssueToken(ctx context.Context, ownerAddress, metadata string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("ledger unavailable")
	}
	f.mints++
	f.lastMsg = metadata
	return fmt.Sprintf("T-%d", f.mints), nil
}

func (f *fakeLedger) ListTokens(ctx context.Context, ownerAddress string) ([]ledger.Token, error) {
	return nil, nil
}

// stubScorer returns a fixed scorecard so tests control the outcome.
type stubScorer struct {
	card *analysismodels.Scorecard
}

func (s *stubScorer) Score(text string) *analysismodels.Scorecard {
	return s.card
}

type fixture struct {
	db     *gorm.DB
	svc    service.ModerationService
	ledger *fakeLedger
	user   *usermodels.User
}

func passingCard() *analysismodels.Scorecard {
	return &analysismodels.Scorecard{
		Grammar:     95,
		Originality: 90,
		Readability: 90,
		Approved:    true,
	}
}

func failingCard() *analysismodels.Scorecard {
	return &analysismodels.Scorecard{
		Grammar:     72,
		Originality: 65,
		Readability: 80,
		Approved:    false,
	}
}

func newFixture(t *testing.T, card *analysismodels.Scorecard, autoApprove bool, cacheService *cache.CacheService) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&usermodels.User{},
		&contentmodels.Content{},
		&tokenmodels.SoulboundToken{},
	))

	user := &usermodels.User{Username: "alice", Wallet: "alice.scribe", WalletAddress: "0:abc"}
	require.NoError(t, db.Create(user).Error)

	contentRepo := contentpostgres.NewContentRepository(db)
	tokenRepo := tokenpostgres.NewTokenRepository(db)
	userRepo := userpostgres.NewUserRepository(db)
	fl := &fakeLedger{}

	svc := service.NewModerationService(
		db, contentRepo, tokenRepo, userRepo,
		tokenservice.NewTokenService(tokenRepo),
		fl, &stubScorer{card: card}, cacheService, autoApprove,
	)

	return &fixture{db: db, svc: svc, ledger: fl, user: user}
}

func (f *fixture) submit(t *testing.T, categories ...string) *contentmodels.Content {
	t.Helper()
	content, err := f.svc.Submit(context.Background(), f.user.ID, &dto.ContentCreate{
		Text:       "How to deploy a contract in five minutes.",
		Categories: categories,
	})
	require.NoError(t, err)
	return content
}

func TestSubmitStoresPendingWithScorecard(t *testing.T) {
	f := newFixture(t, failingCard(), false, nil)

	content := f.submit(t, "tutorial")

	assert.True(t, content.IsPending())
	require.NotNil(t, content.Analysis)
	assert.False(t, content.Analysis.Approved)
	assert.Equal(t, 0, f.ledger.mints)

	var stored contentmodels.Content
	require.NoError(t, f.db.First(&stored, content.ID).Error)
	require.NotNil(t, stored.Analysis)
	assert.Equal(t, 72.0, stored.Analysis.Grammar)
}

func TestSubmitValidationFailsBeforePersist(t *testing.T) {
	f := newFixture(t, passingCard(), false, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input *dto.ContentCreate
	}{
		{"empty text", &dto.ContentCreate{Text: "  ", Categories: []string{"news"}}},
		{"no categories", &dto.ContentCreate{Text: "ok"}},
		{"unknown category", &dto.ContentCreate{Text: "ok", Categories: []string{"gossip"}}},
		{"bad link", &dto.ContentCreate{Text: "ok", Categories: []string{"news"}, Link: "not-a-url"}},
		{"bad image", &dto.ContentCreate{Text: "ok", Categories: []string{"news"}, ImageURL: "ftp://x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Submit(ctx, f.user.ID, tt.input)
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.True(t, appErr.IsValidation())
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&contentmodels.Content{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestApproveIssuesToken(t *testing.T) {
	f := newFixture(t, failingCard(), false, nil)
	content := f.submit(t, "tutorial")

	approved, err := f.svc.Approve(context.Background(), content.ID)
	require.NoError(t, err)

	assert.True(t, approved.Approved)
	assert.False(t, approved.Rejected)
	assert.True(t, approved.TokenIssued)
	assert.Equal(t, "T-1", approved.TokenID)
	assert.Equal(t, 1, f.ledger.mints)
	assert.Contains(t, f.ledger.lastMsg, "Tutorial Master")

	var token tokenmodels.SoulboundToken
	require.NoError(t, f.db.Where("content_id = ?", content.ID).First(&token).Error)
	assert.Equal(t, "T-1", token.TokenID)
	assert.Equal(t, "Tutorial Master", token.TokenType)
	assert.Equal(t, "Knowledge Sharing", token.Name)
	assert.Equal(t, f.user.ID, token.UserID)
}

func TestApproveTwiceMintsOnce(t *testing.T) {
	f := newFixture(t, failingCard(), false, nil)
	content := f.submit(t, "review")
	ctx := context.Background()

	_, err := f.svc.Approve(ctx, content.ID)
	require.NoError(t, err)
	again, err := f.svc.Approve(ctx, content.ID)
	require.NoError(t, err)

	assert.True(t, again.Approved)
	assert.Equal(t, 1, f.ledger.mints)

	var count int64
	require.NoError(t, f.db.Model(&tokenmodels.SoulboundToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApproveRejectedContentConflicts(t *testing.T) {
	f := newFixture(t, failingCard(), false, nil)
	content := f.submit(t, "news")
	ctx := context.Background()

	_, err := f.svc.Reject(ctx, content.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, content.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAlreadyReviewed, appErr.Code)
	assert.Equal(t, 0, f.ledger.mints)
}

func TestApproveLedgerFailureLeavesPending(t *testing.T) {
	f := newFixture(t, failingCard(), false, nil)
	content := f.submit(t, "analysis")
	f.ledger.fail = true

	_, err := f.svc.Approve(context.Background(), content.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsRetryable())

	var stored contentmodels.Content
	require.NoError(t, f.db.First(&stored, content.ID).Error)
	assert.True(t, stored.IsPending())
	assert.False(t, stored.TokenIssued)

	var count int64
	require.NoError(t, f.db.Model(&tokenmodels.SoulboundToken{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// The item stays approvable once the ledger recovers.
	f.ledger.fail = false
	approved, err := f.svc.Approve(context.Background(), content.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Equal(t, "T-1", approved.TokenID)
}

func TestApproveMissingContent(t *testing.T) {
	f := newFixture(t, failingCard(), false, nil)

	_, err := f.svc.Approve(context.Background(), 404)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsNotFound())
}

func TestReject(t *testing.T) {
	f := newFixture(t, failingCard(), false, nil)
	content := f.submit(t, "promo")
	ctx := context.Background()

	rejected, err := f.svc.Reject(ctx, content.ID)
	require.NoError(t, err)
	assert.True(t, rejected.Rejected)
	assert.False(t, rejected.Approved)

	// Rejecting again is idempotent.
	_, err = f.svc.Reject(ctx, content.ID)
	require.NoError(t, err)

	// Rejecting approved content conflicts.
	other := f.submit(t, "promo")
	_, err = f.svc.Approve(ctx, other.ID)
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, other.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAlreadyReviewed, appErr.Code)
}

func TestAutoApprove(t *testing.T) {
	f := newFixture(t, passingCard(), true, nil)

	content := f.submit(t, "tutorial")

	assert.True(t, content.Approved)
	assert.True(t, content.TokenIssued)
	assert.Equal(t, 1, f.ledger.mints)
}

func TestAutoApproveSkipsFailingScorecard(t *testing.T) {
	f := newFixture(t, failingCard(), true, nil)

	content := f.submit(t, "tutorial")

	assert.True(t, content.IsPending())
	assert.Equal(t, 0, f.ledger.mints)
}

func TestApproveInvalidatesFeedCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cacheService := cache.NewCacheService(client)

	f := newFixture(t, failingCard(), false, cacheService)
	content := f.submit(t, "other")
	ctx := context.Background()

	require.NoError(t, cacheService.Set(ctx, "content:feed:10:0", []string{"stale"}, 0))
	require.NoError(t, cacheService.Set(ctx, "unrelated:key", "keep", 0))

	_, err := f.svc.Approve(ctx, content.ID)
	require.NoError(t, err)

	var dest []string
	err = cacheService.Get(ctx, "content:feed:10:0", &dest)
	assert.True(t, cache.IsMiss(err))

	var kept string
	require.NoError(t, cacheService.Get(ctx, "unrelated:key", &kept))
	assert.Equal(t, "keep", kept)
}

func TestDeriveMetadataPriority(t *testing.T) {
	f := newFixture(t, failingCard(), false, nil)
	ctx := context.Background()

	// tutorial outranks news regardless of tag order.
	content := f.submit(t, "news", "tutorial")
	approved, err := f.svc.Approve(ctx, content.ID)
	require.NoError(t, err)

	var token tokenmodels.SoulboundToken
	require.NoError(t, f.db.Where("content_id = ?", approved.ID).First(&token).Error)
	assert.Equal(t, "Tutorial Master", token.TokenType)
	assert.Equal(t, "Knowledge Sharing", token.Name)
}
