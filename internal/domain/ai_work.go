package domain

import (
	"context"
	"time"
)

var AiTechnologies = []string{
	"machine_learning", "deep_learning", "natural_language_processing", "computer_vision",
	"reinforcement_learning", "generative_ai", "recommendation_systems", "other",
}

type AiModel struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Framework   *string  `json:"framework,omitempty"`
	Accuracy    *float64 `json:"accuracy,omitempty"`
}

type AiDataset struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Source      *string `json:"source,omitempty"`
	Size        *string `json:"size,omitempty"`
}

// AiWork is a machine learning project shown on the AI works page.
type AiWork struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Summary       string      `json:"summary"`
	Description   string      `json:"description"`
	ImageURL      *string     `json:"imageUrl,omitempty"`
	DemoURL       *string     `json:"demoUrl,omitempty"`
	GithubURL     *string     `json:"githubUrl,omitempty"`
	PaperURL      *string     `json:"paperUrl,omitempty"`
	Technologies  []string    `json:"technologies"`
	Models        []AiModel   `json:"models"`
	Datasets      []AiDataset `json:"datasets"`
	Results       *string     `json:"results,omitempty"`
	Challenges    *string     `json:"challenges,omitempty"`
	FutureWork    *string     `json:"futureWork,omitempty"`
	Collaborators []string    `json:"collaborators"`
	Featured      bool        `json:"featured"`
	Order         int         `json:"order"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type AiWorkRepository interface {
	// List filters by featured when non-nil and by technology when non-empty.
	List(ctx context.Context, featured *bool, technology string) ([]AiWork, error)
}
