package domain

import (
	"context"
	"errors"
	"time"
)

var SectionTypes = []string{
	"hero", "grid", "carousel", "testimonial", "feature", "cta", "text", "media", "contact",
}

type Section struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Subtitle  *string           `json:"subtitle,omitempty"`
	Content   *string           `json:"content,omitempty"`
	Order     int               `json:"order"`
	IsActive  bool              `json:"isActive"`
	Media     []MediaItem       `json:"media"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CreateSectionRequest omits server-generated fields.
type CreateSectionRequest struct {
	Type     string            `json:"type" validate:"required,oneof=hero grid carousel testimonial feature cta text media contact"`
	Title    string            `json:"title" validate:"required,max=200"`
	Subtitle *string           `json:"subtitle,omitempty" validate:"omitempty,max=300"`
	Content  *string           `json:"content,omitempty"`
	Order    int               `json:"order" validate:"gte=0"`
	IsActive *bool             `json:"isActive,omitempty"`
	Media    []MediaItem       `json:"media,omitempty" validate:"omitempty,dive"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// UpdateSectionRequest applies only the fields that are present.
type UpdateSectionRequest struct {
	Type     *string            `json:"type,omitempty" validate:"omitempty,oneof=hero grid carousel testimonial feature cta text media contact"`
	Title    *string            `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Subtitle *string            `json:"subtitle,omitempty" validate:"omitempty,max=300"`
	Content  *string            `json:"content,omitempty"`
	Order    *int               `json:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive *bool              `json:"isActive,omitempty"`
	Media    *[]MediaItem       `json:"media,omitempty"`
	Metadata *map[string]string `json:"metadata,omitempty"`
}

type SectionRepository interface {
	List(ctx context.Context, sectionType string) ([]Section, error)
	GetByID(ctx context.Context, id string) (*Section, error)
	Create(ctx context.Context, section *Section) error
	Update(ctx context.Context, section *Section) error
	Delete(ctx context.Context, id string) (bool, error)
}

type ContentUsecase interface {
	ListProjects(ctx context.Context, featured *bool) ([]Project, error)
	ListInterests(ctx context.Context, category string, featured *bool) ([]Interest, error)
	ListAiWorks(ctx context.Context, featured *bool, technology string) ([]AiWork, error)
	ListCaseStudies(ctx context.Context, featured *bool) ([]CaseStudy, error)
	ListSections(ctx context.Context, sectionType string) ([]Section, error)
	GetSection(ctx context.Context, id string) (*Section, error)
	CreateSection(ctx context.Context, req *CreateSectionRequest) (*Section, error)
	UpdateSection(ctx context.Context, id string, req *UpdateSectionRequest) (*Section, error)
	DeleteSection(ctx context.Context, id string) error
}

// MediaUploadRequest asks for a presigned S3 PUT URL.
type MediaUploadRequest struct {
	Folder      string `json:"folder" validate:"required,max=64"`
	FileName    string `json:"fileName" validate:"required,max=200"`
	ContentType string `json:"contentType" validate:"required,max=100"`
}

type MediaUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

type MediaUsecase interface {
	CreateUploadURL(ctx context.Context, req *MediaUploadRequest) (*MediaUpload, error)
}

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")
