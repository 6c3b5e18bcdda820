package models

import (
	"time"

	analysismodels "soulscribe-backend/internal/features/analysis/models"
)

// Category tags a submission. The set is closed and is part of the wire
// contract with submission clients; unknown tags are rejected at the
// boundary.
type Category string

const (
	CategoryTutorial Category = "tutorial"
	CategoryReview   Category = "review"
	CategoryNews     Category = "news"
	CategoryAnalysis Category = "analysis"
	CategoryPromo    Category = "promo"
	CategoryOther    Category = "other"
)

// Categories lists every valid tag, in the order exposed to clients.
var Categories = []Category{
	CategoryTutorial,
	CategoryReview,
	CategoryNews,
	CategoryAnalysis,
	CategoryPromo,
	CategoryOther,
}

// IsValidCategory reports whether tag belongs to the closed set.
func IsValidCategory(tag string) bool {
	for _, c := range Categories {
		if string(c) == tag {
			return true
		}
	}
	return false
}

// Content is a user submission moving through the moderation lifecycle:
// pending (neither flag set) -> approved or rejected. Approved and rejected
// are never both true; the moderation workflow enforces it. Content is never
// deleted.
type Content struct {
	ID          int64                       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64                       `json:"user_id" gorm:"index;not null"`
	Text        string                      `json:"text" gorm:"not null"`
	Link        string                      `json:"link,omitempty"`
	ImageURL    string                      `json:"image_url,omitempty"`
	Categories  []string                    `json:"categories" gorm:"serializer:json;not null"`
	CreatedAt   time.Time                   `json:"created_at"`
	Analysis    *analysismodels.Scorecard   `json:"ai_analysis,omitempty" gorm:"serializer:json"`
	Approved    bool                        `json:"approved" gorm:"default:false"`
	Rejected    bool                        `json:"rejected" gorm:"default:false"`
	TokenIssued bool                        `json:"token_issued" gorm:"default:false"`
	TokenID     string                      `json:"token_id,omitempty"`
}

func (Content) TableName() string {
	return "contents"
}

// IsPending reports whether the item still awaits review.
func (c *Content) IsPending() bool {
	return !c.Approved && !c.Rejected
}

// HasCategory reports whether the submission carries the tag.
func (c *Content) HasCategory(tag Category) bool {
	for _, t := range c.Categories {
		if t == string(tag) {
			return true
		}
	}
	return false
}

// ContentWithWallet is a feed row: content joined with the owner's wallet.
type ContentWithWallet struct {
	Content `gorm:"embedded"`
	Wallet  string `json:"wallet" gorm:"column:wallet"`
}
