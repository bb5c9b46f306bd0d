package domain

import (
	"context"
	"time"
)

type Project struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Subtitle     *string    `json:"subtitle,omitempty"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Content      *string    `json:"content,omitempty"`
	ImageURL     *string    `json:"imageUrl,omitempty"`
	ThumbnailURL *string    `json:"thumbnailUrl,omitempty"`
	VideoURL     *string    `json:"videoUrl,omitempty"`
	ProjectURL   *string    `json:"projectUrl,omitempty"`
	GithubURL    *string    `json:"githubUrl,omitempty"`
	Tags         []string   `json:"tags"`
	Featured     bool       `json:"featured"`
	Order        int        `json:"order"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type ProjectRepository interface {
	// List returns projects ordered by display order; featured filters when non-nil.
	List(ctx context.Context, featured *bool) ([]Project, error)
}
