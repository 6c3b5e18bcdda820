package service_test

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/features/auth/models"
	authredis "soulscribe-backend/internal/features/auth/repository/redis"
	"soulscribe-backend/internal/features/auth/service"
	usermodels "soulscribe-backend/internal/features/user/models"
	userpostgres "soulscribe-backend/internal/features/user/repository/postgres"
	userservice "soulscribe-backend/internal/features/user/service"
)

const testDomain = "soulscribe.app"

type fixture struct {
	svc  *service.Service
	db   *gorm.DB
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
	addr string
}

func newFixture(t *testing.T, adminWallets ...string) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usermodels.User{}))

	users := userservice.NewUserService(userpostgres.NewUserRepository(db), adminWallets)

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	svc := service.NewService(authredis.NewRepository(client), users, service.Config{
		JWTSecret:   []byte("test-secret"),
		TokenTTL:    time.Hour,
		ProofDomain: testDomain,
		ProofMaxAge: 5 * time.Minute,
	})

	return &fixture{
		svc:  svc,
		db:   db,
		pub:  pub,
		priv: priv,
		addr: address.NewAddress(0, 0, make([]byte, 32)).String(),
	}
}

// signedRequest builds a proof for the freshly issued state, signed over
// "domain:timestamp:payload".
func (f *fixture) signedRequest(t *testing.T, wallet, state string) *models.WalletProofRequest {
	t.Helper()

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	message := testDomain + ":" + timestamp + ":" + state
	signature := ed25519.Sign(f.priv, []byte(message))

	return &models.WalletProofRequest{
		Wallet:    wallet,
		Address:   f.addr,
		Network:   "mainnet",
		Domain:    testDomain,
		Timestamp: timestamp,
		Payload:   state,
		Signature: base64.StdEncoding.EncodeToString(signature),
		PublicKey: base64.StdEncoding.EncodeToString(f.pub),
	}
}

func TestLoginRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	state, err := f.svc.GenerateState(ctx, "alice.scribe")
	require.NoError(t, err)
	require.NotEmpty(t, state.State)

	resp, err := f.svc.Login(ctx, f.signedRequest(t, "alice.scribe", state.State))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice.scribe", resp.Wallet)
	assert.False(t, resp.IsAdmin)

	claims, err := f.svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, "alice.scribe", claims.Wallet)

	verified, err := f.svc.IsVerified(ctx, "alice.scribe")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestLoginCreatesUserOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		state, err := f.svc.GenerateState(ctx, "alice.scribe")
		require.NoError(t, err)
		_, err = f.svc.Login(ctx, f.signedRequest(t, "alice.scribe", state.State))
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, f.db.Model(&usermodels.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var user usermodels.User
	require.NoError(t, f.db.Where("wallet = ?", "alice.scribe").First(&user).Error)
	assert.Equal(t, "alice", user.Username)
}

func TestLoginAdminBootstrap(t *testing.T) {
	f := newFixture(t, "admin.scribe")
	ctx := context.Background()

	state, err := f.svc.GenerateState(ctx, "admin.scribe")
	require.NoError(t, err)
	resp, err := f.svc.Login(ctx, f.signedRequest(t, "admin.scribe", state.State))
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
}

func TestLoginRejectsBadProofs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	state, err := f.svc.GenerateState(ctx, "alice.scribe")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(req *models.WalletProofRequest)
	}{
		{"wrong domain", func(r *models.WalletProofRequest) { r.Domain = "evil.app" }},
		{"expired timestamp", func(r *models.WalletProofRequest) {
			r.Timestamp = fmt.Sprintf("%d", time.Now().Add(-time.Hour).Unix())
		}},
		{"garbage timestamp", func(r *models.WalletProofRequest) { r.Timestamp = "yesterday" }},
		{"invalid address", func(r *models.WalletProofRequest) { r.Address = "not-an-address" }},
		{"unknown state", func(r *models.WalletProofRequest) { r.Payload = "never-issued" }},
		{"tampered signature", func(r *models.WalletProofRequest) {
			r.Signature = base64.StdEncoding.EncodeToString(make([]byte, ed25519.SignatureSize))
		}},
		{"bad public key", func(r *models.WalletProofRequest) { r.PublicKey = "!!!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.signedRequest(t, "alice.scribe", state.State)
			tt.mutate(req)

			_, err := f.svc.Login(ctx, req)
			require.Error(t, err)
			_, ok := apperrors.AsAppError(err)
			assert.True(t, ok)
		})
	}
}

func TestLoginStateForOtherWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	state, err := f.svc.GenerateState(ctx, "alice.scribe")
	require.NoError(t, err)

	// bob presents alice's state; no state was issued for bob.
	_, err = f.svc.Login(ctx, f.signedRequest(t, "bob.scribe", state.State))
	require.Error(t, err)
}

func TestValidateTokenRejectsForgery(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ValidateToken("not-a-jwt")
	require.Error(t, err)

	_, err = f.svc.ValidateToken("eyJhbGciOiJIUzI1NiJ9.e30.invalid")
	require.Error(t, err)
}

func TestIsVerifiedWithoutLogin(t *testing.T) {
	f := newFixture(t)

	verified, err := f.svc.IsVerified(context.Background(), "nobody.scribe")
	require.NoError(t, err)
	assert.False(t, verified)
}
