package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prateekh777/professional-website/internal/domain"
)

type interestRepo struct {
	db *pgxpool.Pool
}

func NewInterestRepository(db *pgxpool.Pool) domain.InterestRepository {
	return &interestRepo{db: db}
}

// media and links are jsonb columns
func (r *interestRepo) List(ctx context.Context, category string, featured *bool) ([]domain.Interest, error) {
	query := `SELECT id, title, slug, category, description, content,
	                 COALESCE(media, '[]'::jsonb), COALESCE(links, '[]'::jsonb),
	                 featured, display_order, created_at, updated_at
	          FROM interests
	          WHERE ($1 = '' OR category = $1)
	            AND ($2::boolean IS NULL OR featured = $2)
	          ORDER BY display_order ASC, created_at DESC`

	rows, err := r.db.Query(ctx, query, category, featured)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interests := []domain.Interest{}
	for rows.Next() {
		var i domain.Interest
		if err := rows.Scan(
			&i.ID, &i.Title, &i.Slug, &i.Category, &i.Description, &i.Content,
			&i.Media, &i.Links,
			&i.Featured, &i.Order, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		interests = append(interests, i)
	}
	return interests, rows.Err()
}
