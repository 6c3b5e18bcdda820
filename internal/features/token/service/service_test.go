package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmodels "soulscribe-backend/internal/features/content/models"
	"soulscribe-backend/internal/features/token/service"
)

func newContent(categories ...string) *contentmodels.Content {
	return &contentmodels.Content{ID: 7, Categories: categories}
}

func TestDeriveMetadata(t *testing.T) {
	svc := service.NewTokenService(nil)

	tests := []struct {
		name       string
		categories []string
		wantType   string
	}{
		{"tutorial", []string{"tutorial"}, "Tutorial Master"},
		{"review", []string{"review"}, "Insight Provider"},
		{"analysis", []string{"analysis"}, "Analysis Expert"},
		{"news", []string{"news"}, "News Reporter"},
		{"promo falls back", []string{"promo"}, "Content Creator"},
		{"other falls back", []string{"other"}, "Content Creator"},
		{"tutorial wins over news", []string{"news", "tutorial"}, "Tutorial Master"},
		{"review wins over analysis", []string{"analysis", "review"}, "Insight Provider"},
		{"no categories", nil, "Content Creator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := svc.DeriveMetadata(newContent(tt.categories...))
			assert.Equal(t, tt.wantType, meta.Type)
			assert.NotEmpty(t, meta.Name)
			assert.NotEmpty(t, meta.Description)
		})
	}
}

func TestBuildLedgerMetadata(t *testing.T) {
	svc := service.NewTokenService(nil)
	content := newContent("tutorial", "analysis")

	meta := svc.DeriveMetadata(content)
	ledgerMeta := svc.BuildLedgerMetadata(content, meta)

	assert.Equal(t, "Tutorial Master", ledgerMeta["type"])
	assert.Equal(t, meta.Name, ledgerMeta["name"])
	assert.Equal(t, meta.Description, ledgerMeta["description"])
	assert.Equal(t, content.ID, ledgerMeta["contentId"])
	assert.Equal(t, content.Categories, ledgerMeta["categories"])
	require.Contains(t, ledgerMeta, "createdAt")
	require.Contains(t, ledgerMeta, "imageUrl")
	assert.Contains(t, ledgerMeta["imageUrl"], "boringavatars")
}
