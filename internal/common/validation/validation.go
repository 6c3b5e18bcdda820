package validation

import (
	"fmt"
	"net/url"
	"strings"

	contentmodels "soulscribe-backend/internal/features/content/models"
)

const (
	// Submission limits. Text only has to be non-empty after trimming; a
	// one-word submission is valid and simply scores low.
	MaxTextLength     = 10000
	MaxLinkLength     = 2048
	MaxImageURLLength = 2048
	MaxCategories     = 6
)

// ValidateText checks the submission body.
func ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if len(text) > MaxTextLength {
		return fmt.Errorf("text cannot exceed %d characters", MaxTextLength)
	}
	return nil
}

// ValidateCategories checks the tag set against the closed enumeration.
func ValidateCategories(tags []string) error {
	if len(tags) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	if len(tags) > MaxCategories {
		return fmt.Errorf("at most %d categories allowed", MaxCategories)
	}

	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if !contentmodels.IsValidCategory(tag) {
			return fmt.Errorf("unknown category: %s", tag)
		}
		if _, dup := seen[tag]; dup {
			return fmt.Errorf("duplicate category: %s", tag)
		}
		seen[tag] = struct{}{}
	}
	return nil
}

// ValidateLink checks an optional external link.
func ValidateLink(link string) error {
	if link == "" {
		return nil
	}
	if len(link) > MaxLinkLength {
		return fmt.Errorf("link cannot exceed %d characters", MaxLinkLength)
	}

	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("link must be a valid http(s) URL")
	}
	return nil
}

// ValidateImageURL checks an optional image reference.
func ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return nil
	}
	if len(imageURL) > MaxImageURLLength {
		return fmt.Errorf("image_url cannot exceed %d characters", MaxImageURLLength)
	}

	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image_url must be a valid http(s) URL")
	}
	return nil
}
