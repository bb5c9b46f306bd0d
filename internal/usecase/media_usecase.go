package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/apperror"
	"github.com/prateekh777/professional-website/pkg/media"
	"github.com/prateekh777/professional-website/pkg/validation"
)

// UploadPresigner is satisfied by *media.Presigner.
type UploadPresigner interface {
	UploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
}

var allowedUploadTypes = []string{"image/", "video/", "application/pdf"}

type mediaUsecase struct {
	presigner UploadPresigner
	urls      *media.URLBuilder
	validate  *validator.Validate
	expiry    time.Duration
	now       func() time.Time
}

// NewMediaUsecase accepts a nil presigner when storage is not configured.
func NewMediaUsecase(presigner UploadPresigner, urls *media.URLBuilder, validate *validator.Validate) domain.MediaUsecase {
	if validate == nil {
		validate = validation.New()
	}
	return &mediaUsecase{
		presigner: presigner,
		urls:      urls,
		validate:  validate,
		expiry:    media.DefaultUploadExpiry,
		now:       time.Now,
	}
}

func (uc *mediaUsecase) CreateUploadURL(ctx context.Context, req *domain.MediaUploadRequest) (*domain.MediaUpload, error) {
	if uc.presigner == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "Media storage is not configured", media.ErrNotConfigured)
	}

	fieldErrs, err := validation.Struct(uc.validate, req)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.Validation("Validation error", fieldErrs)
	}
	if !allowedContentType(req.ContentType) {
		return nil, apperror.Validation("Validation error", []validation.FieldError{
			{Field: "contentType", Reason: "must be an image, video or PDF type"},
		})
	}
	folder := media.SanitizeFolder(req.Folder)
	if folder == "" {
		return nil, apperror.Validation("Validation error", []validation.FieldError{
			{Field: "folder", Reason: "must contain letters or digits"},
		})
	}

	key := media.GenerateKey(folder, req.FileName, uc.now())
	uploadURL, err := uc.presigner.UploadURL(ctx, key, req.ContentType, uc.expiry)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.MediaUpload{
		Key:       key,
		UploadURL: uploadURL,
		URL:       uc.urls.MediaURL(key),
		ExpiresIn: int(uc.expiry.Seconds()),
	}, nil
}

func allowedContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	for _, prefix := range allowedUploadTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}
