package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prateekh777/professional-website/internal/domain"
)

type caseStudyRepo struct {
	db *pgxpool.Pool
}

func NewCaseStudyRepository(db *pgxpool.Pool) domain.CaseStudyRepository {
	return &caseStudyRepo{db: db}
}

func (r *caseStudyRepo) List(ctx context.Context, featured *bool) ([]domain.CaseStudy, error) {
	query := `SELECT id, title, slug, summary, cover_image_url, client_name, client_logo_url, duration, year,
	                 context, COALESCE(actions, '[]'::jsonb), result, project_id,
	                 featured, display_order, created_at, updated_at
	          FROM case_studies
	          WHERE ($1::boolean IS NULL OR featured = $1)
	          ORDER BY display_order ASC, created_at DESC`

	rows, err := r.db.Query(ctx, query, featured)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	studies := []domain.CaseStudy{}
	for rows.Next() {
		var cs domain.CaseStudy
		if err := rows.Scan(
			&cs.ID, &cs.Title, &cs.Slug, &cs.Summary, &cs.CoverImageURL, &cs.ClientName, &cs.ClientLogoURL, &cs.Duration, &cs.Year,
			&cs.Context, &cs.Actions, &cs.Result, &cs.ProjectID,
			&cs.Featured, &cs.Order, &cs.CreatedAt, &cs.UpdatedAt,
		); err != nil {
			return nil, err
		}
		studies = append(studies, cs)
	}
	return studies, rows.Err()
}
