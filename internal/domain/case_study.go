package domain

import (
	"context"
	"time"
)

type CaseStudyContext struct {
	Challenge   string   `json:"challenge"`
	Audience    *string  `json:"audience,omitempty"`
	Constraints *string  `json:"constraints,omitempty"`
	Goals       []string `json:"goals,omitempty"`
}

// CaseStudyAction is one step taken; ImageURL is a stored key until formatted.
type CaseStudyAction struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Order       int     `json:"order"`
}

type CaseStudyResult struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Metrics     map[string]string `json:"metrics,omitempty"`
	Testimonial *string           `json:"testimonial,omitempty"`
}

type CaseStudy struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Summary       string            `json:"summary"`
	CoverImageURL *string           `json:"coverImageUrl,omitempty"`
	ClientName    *string           `json:"clientName,omitempty"`
	ClientLogoURL *string           `json:"clientLogoUrl,omitempty"`
	Duration      *string           `json:"duration,omitempty"`
	Year          *int              `json:"year,omitempty"`
	Context       CaseStudyContext  `json:"context"`
	Actions       []CaseStudyAction `json:"actions"`
	Result        CaseStudyResult   `json:"result"`
	ProjectID     *string           `json:"projectId,omitempty"`
	Featured      bool              `json:"featured"`
	Order         int               `json:"order"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type CaseStudyRepository interface {
	List(ctx context.Context, featured *bool) ([]CaseStudy, error)
}
