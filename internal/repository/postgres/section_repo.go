package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prateekh777/professional-website/internal/domain"
)

const sectionColumns = `id, type, title, subtitle, content, display_order, is_active,
	COALESCE(media, '[]'::jsonb), COALESCE(metadata, '{}'::jsonb), created_at, updated_at`

type sectionRepo struct {
	db *pgxpool.Pool
}

func NewSectionRepository(db *pgxpool.Pool) domain.SectionRepository {
	return &sectionRepo{db: db}
}

func scanSection(row pgx.Row, s *domain.Section) error {
	return row.Scan(
		&s.ID, &s.Type, &s.Title, &s.Subtitle, &s.Content, &s.Order, &s.IsActive,
		&s.Media, &s.Metadata, &s.CreatedAt, &s.UpdatedAt,
	)
}

func (r *sectionRepo) List(ctx context.Context, sectionType string) ([]domain.Section, error) {
	query := `SELECT ` + sectionColumns + `
	          FROM sections
	          WHERE ($1 = '' OR type = $1)
	          ORDER BY display_order ASC`

	rows, err := r.db.Query(ctx, query, sectionType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []domain.Section{}
	for rows.Next() {
		var s domain.Section
		if err := scanSection(rows, &s); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = $1`

	var s domain.Section
	if err := scanSection(r.db.QueryRow(ctx, query, id), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// jsonColumns encodes media and metadata up front; the pool runs in simple protocol mode.
func jsonColumns(s *domain.Section) (string, string, error) {
	media := s.Media
	if media == nil {
		media = []domain.MediaItem{}
	}
	metadata := s.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	mediaJSON, err := json.Marshal(media)
	if err != nil {
		return "", "", fmt.Errorf("encode section media: %w", err)
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return "", "", fmt.Errorf("encode section metadata: %w", err)
	}
	return string(mediaJSON), string(metaJSON), nil
}

func (r *sectionRepo) Create(ctx context.Context, s *domain.Section) error {
	media, metadata, err := jsonColumns(s)
	if err != nil {
		return err
	}
	query := `INSERT INTO sections (id, type, title, subtitle, content, display_order, is_active, media, metadata, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10, $11)`
	_, err = r.db.Exec(ctx, query,
		s.ID, s.Type, s.Title, s.Subtitle, s.Content, s.Order, s.IsActive,
		media, metadata, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *sectionRepo) Update(ctx context.Context, s *domain.Section) error {
	media, metadata, err := jsonColumns(s)
	if err != nil {
		return err
	}
	query := `UPDATE sections
	          SET type = $2, title = $3, subtitle = $4, content = $5, display_order = $6, is_active = $7,
	              media = $8::jsonb, metadata = $9::jsonb, updated_at = $10
	          WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		s.ID, s.Type, s.Title, s.Subtitle, s.Content, s.Order, s.IsActive,
		media, metadata, s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sectionRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
