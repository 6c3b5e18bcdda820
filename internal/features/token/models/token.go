package models

import "time"

// SoulboundToken is a permanent, non-transferable reward record. Exactly one
// exists per approved content item; tokens are never updated or deleted. The
// content reference is a weak back-reference for lookup, not lifecycle
// control.
type SoulboundToken struct {
	ID          int64                  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64                  `json:"user_id" gorm:"index;not null"`
	ContentID   int64                  `json:"content_id" gorm:"index"`
	TokenID     string                 `json:"token_id" gorm:"not null"` // ledger-assigned identifier
	TokenType   string                 `json:"token_type" gorm:"not null"`
	Name        string                 `json:"name" gorm:"not null"`
	Description string                 `json:"description" gorm:"not null"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time              `json:"created_at"`
}

func (SoulboundToken) TableName() string {
	return "soulbound_tokens"
}

// TokenMetadata is the derived reward descriptor for an approved submission.
type TokenMetadata struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LeaderboardEntry is one row of the token-count ranking.
// @Description Leaderboard row
type LeaderboardEntry struct {
	UserID     int64  `json:"user_id" example:"42"`
	Username   string `json:"username" example:"alice"`
	Wallet     string `json:"wallet" example:"alice.scribe"`
	TokenCount int64  `json:"token_count" example:"7"`
}
