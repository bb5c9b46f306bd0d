package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/apperror"
	"github.com/prateekh777/professional-website/pkg/media"
	"github.com/prateekh777/professional-website/pkg/validation"
)

type contentUsecase struct {
	projects    domain.ProjectRepository
	interests   domain.InterestRepository
	aiWorks     domain.AiWorkRepository
	caseStudies domain.CaseStudyRepository
	sections    domain.SectionRepository
	urls        *media.URLBuilder
	validate    *validator.Validate
	now         func() time.Time
}

func NewContentUsecase(
	projects domain.ProjectRepository,
	interests domain.InterestRepository,
	aiWorks domain.AiWorkRepository,
	caseStudies domain.CaseStudyRepository,
	sections domain.SectionRepository,
	urls *media.URLBuilder,
	validate *validator.Validate,
) domain.ContentUsecase {
	if validate == nil {
		validate = validation.New()
	}
	return &contentUsecase{
		projects:    projects,
		interests:   interests,
		aiWorks:     aiWorks,
		caseStudies: caseStudies,
		sections:    sections,
		urls:        urls,
		validate:    validate,
		now:         time.Now,
	}
}

func (uc *contentUsecase) ListProjects(ctx context.Context, featured *bool) ([]domain.Project, error) {
	projects, err := uc.projects.List(ctx, featured)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list projects: %w", err))
	}
	for i := range projects {
		p := &projects[i]
		p.ImageURL = uc.urls.MediaURLPtr(p.ImageURL)
		p.ThumbnailURL = uc.urls.MediaURLPtr(p.ThumbnailURL)
		p.VideoURL = uc.urls.MediaURLPtr(p.VideoURL)
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	return projects, nil
}

func (uc *contentUsecase) ListInterests(ctx context.Context, category string, featured *bool) ([]domain.Interest, error) {
	if category != "" && !slices.Contains(domain.InterestCategories, category) {
		return nil, apperror.BadRequest("Invalid category")
	}
	interests, err := uc.interests.List(ctx, category, featured)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list interests: %w", err))
	}
	for i := range interests {
		interests[i].Media = uc.formatMedia(interests[i].Media)
		if interests[i].Links == nil {
			interests[i].Links = []domain.InterestLink{}
		}
	}
	return interests, nil
}

func (uc *contentUsecase) ListAiWorks(ctx context.Context, featured *bool, technology string) ([]domain.AiWork, error) {
	if technology != "" && !slices.Contains(domain.AiTechnologies, technology) {
		return nil, apperror.BadRequest("Invalid technology")
	}
	works, err := uc.aiWorks.List(ctx, featured, technology)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list ai works: %w", err))
	}
	for i := range works {
		w := &works[i]
		w.ImageURL = uc.urls.MediaURLPtr(w.ImageURL)
		if w.Technologies == nil {
			w.Technologies = []string{}
		}
		if w.Models == nil {
			w.Models = []domain.AiModel{}
		}
		if w.Datasets == nil {
			w.Datasets = []domain.AiDataset{}
		}
		if w.Collaborators == nil {
			w.Collaborators = []string{}
		}
	}
	return works, nil
}

func (uc *contentUsecase) ListCaseStudies(ctx context.Context, featured *bool) ([]domain.CaseStudy, error) {
	studies, err := uc.caseStudies.List(ctx, featured)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list case studies: %w", err))
	}
	for i := range studies {
		cs := &studies[i]
		cs.CoverImageURL = uc.urls.MediaURLPtr(cs.CoverImageURL)
		cs.ClientLogoURL = uc.urls.MediaURLPtr(cs.ClientLogoURL)
		if cs.Actions == nil {
			cs.Actions = []domain.CaseStudyAction{}
		}
		for j := range cs.Actions {
			cs.Actions[j].ImageURL = uc.urls.MediaURLPtr(cs.Actions[j].ImageURL)
		}
		slices.SortStableFunc(cs.Actions, func(a, b domain.CaseStudyAction) int {
			return a.Order - b.Order
		})
	}
	return studies, nil
}

func (uc *contentUsecase) ListSections(ctx context.Context, sectionType string) ([]domain.Section, error) {
	if sectionType != "" && !slices.Contains(domain.SectionTypes, sectionType) {
		return nil, apperror.BadRequest("Invalid section type")
	}
	sections, err := uc.sections.List(ctx, sectionType)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list sections: %w", err))
	}
	for i := range sections {
		uc.formatSection(&sections[i])
	}
	return sections, nil
}

func (uc *contentUsecase) GetSection(ctx context.Context, id string) (*domain.Section, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("Section not found")
	}
	section, err := uc.sections.GetByID(ctx, id)
	if err != nil {
		return nil, sectionError(err)
	}
	uc.formatSection(section)
	return section, nil
}

func (uc *contentUsecase) CreateSection(ctx context.Context, req *domain.CreateSectionRequest) (*domain.Section, error) {
	if err := uc.check(req); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	section := &domain.Section{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Content:   req.Content,
		Order:     req.Order,
		IsActive:  true,
		Media:     req.Media,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := uc.sections.Create(ctx, section); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create section: %w", err))
	}
	uc.formatSection(section)
	return section, nil
}

func (uc *contentUsecase) UpdateSection(ctx context.Context, id string, req *domain.UpdateSectionRequest) (*domain.Section, error) {
	if err := uc.check(req); err != nil {
		return nil, err
	}
	if req.Media != nil {
		for _, m := range *req.Media {
			if err := uc.check(&m); err != nil {
				return nil, err
			}
		}
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("Section not found")
	}
	// stored keys stay relative; only the response is formatted
	section, err := uc.sections.GetByID(ctx, id)
	if err != nil {
		return nil, sectionError(err)
	}

	if req.Type != nil {
		section.Type = *req.Type
	}
	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Subtitle != nil {
		section.Subtitle = req.Subtitle
	}
	if req.Content != nil {
		section.Content = req.Content
	}
	if req.Order != nil {
		section.Order = *req.Order
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}
	if req.Media != nil {
		section.Media = *req.Media
	}
	if req.Metadata != nil {
		section.Metadata = *req.Metadata
	}
	section.UpdatedAt = uc.now().UTC()

	if err := uc.sections.Update(ctx, section); err != nil {
		return nil, sectionError(err)
	}
	uc.formatSection(section)
	return section, nil
}

func (uc *contentUsecase) DeleteSection(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("Section not found")
	}
	deleted, err := uc.sections.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(fmt.Errorf("delete section: %w", err))
	}
	if !deleted {
		return apperror.NotFound("Section not found")
	}
	return nil
}

func (uc *contentUsecase) check(v interface{}) error {
	fieldErrs, err := validation.Struct(uc.validate, v)
	if err != nil {
		return apperror.Internal(err)
	}
	if len(fieldErrs) > 0 {
		return apperror.Validation("Validation error", fieldErrs)
	}
	return nil
}

func (uc *contentUsecase) formatSection(s *domain.Section) {
	s.Media = uc.formatMedia(s.Media)
	if s.Metadata == nil {
		s.Metadata = map[string]string{}
	}
}

func (uc *contentUsecase) formatMedia(items []domain.MediaItem) []domain.MediaItem {
	if items == nil {
		return []domain.MediaItem{}
	}
	for i := range items {
		if items[i].Type != "embed" {
			items[i].URL = uc.urls.MediaURL(items[i].URL)
		}
	}
	return items
}

func sectionError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Section not found")
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}
