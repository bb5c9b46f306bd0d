package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prateekh777/professional-website/internal/domain"
)

type projectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) List(ctx context.Context, featured *bool) ([]domain.Project, error) {
	query := `SELECT id, title, subtitle, slug, description, content, image_url, thumbnail_url, video_url,
	                 project_url, github_url, COALESCE(tags, '{}'), featured, display_order, completed_at, created_at, updated_at
	          FROM projects
	          WHERE ($1::boolean IS NULL OR featured = $1)
	          ORDER BY display_order ASC, created_at DESC`

	rows, err := r.db.Query(ctx, query, featured)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Subtitle, &p.Slug, &p.Description, &p.Content, &p.ImageURL, &p.ThumbnailURL, &p.VideoURL,
			&p.ProjectURL, &p.GithubURL, &p.Tags, &p.Featured, &p.Order, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
