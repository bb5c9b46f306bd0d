package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prateekh777/professional-website/internal/domain"
)

type aiWorkRepo struct {
	db *pgxpool.Pool
}

func NewAiWorkRepository(db *pgxpool.Pool) domain.AiWorkRepository {
	return &aiWorkRepo{db: db}
}

// models and datasets are jsonb columns
func (r *aiWorkRepo) List(ctx context.Context, featured *bool, technology string) ([]domain.AiWork, error) {
	query := `SELECT id, title, slug, summary, description, image_url, demo_url, github_url, paper_url,
	                 COALESCE(technologies, '{}'), COALESCE(models, '[]'::jsonb), COALESCE(datasets, '[]'::jsonb),
	                 results, challenges, future_work, COALESCE(collaborators, '{}'),
	                 featured, display_order, completed_at, created_at, updated_at
	          FROM ai_works
	          WHERE ($1::boolean IS NULL OR featured = $1)
	            AND ($2::text = '' OR $2::text = ANY(technologies))
	          ORDER BY display_order ASC, created_at DESC`

	rows, err := r.db.Query(ctx, query, featured, technology)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	works := []domain.AiWork{}
	for rows.Next() {
		var w domain.AiWork
		if err := rows.Scan(
			&w.ID, &w.Title, &w.Slug, &w.Summary, &w.Description, &w.ImageURL, &w.DemoURL, &w.GithubURL, &w.PaperURL,
			&w.Technologies, &w.Models, &w.Datasets,
			&w.Results, &w.Challenges, &w.FutureWork, &w.Collaborators,
			&w.Featured, &w.Order, &w.CompletedAt, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		works = append(works, w)
	}
	return works, rows.Err()
}
