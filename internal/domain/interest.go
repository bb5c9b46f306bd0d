package domain

import (
	"context"
	"time"
)

var InterestCategories = []string{
	"startups", "science", "spirituality", "technology", "art",
	"music", "literature", "travel", "sports", "food", "other",
}

// MediaItem is an image, video or embed attached to content.
type MediaItem struct {
	Type    string  `json:"type" validate:"required,oneof=image video embed"`
	URL     string  `json:"url" validate:"required"`
	Alt     *string `json:"alt,omitempty"`
	Caption *string `json:"caption,omitempty"`
	Width   *int    `json:"width,omitempty"`
	Height  *int    `json:"height,omitempty"`
}

type InterestLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Interest struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Content     *string        `json:"content,omitempty"`
	Media       []MediaItem    `json:"media"`
	Links       []InterestLink `json:"links"`
	Featured    bool           `json:"featured"`
	Order       int            `json:"order"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type InterestRepository interface {
	// List filters by category when non-empty and by featured when non-nil.
	List(ctx context.Context, category string, featured *bool) ([]Interest, error)
}
