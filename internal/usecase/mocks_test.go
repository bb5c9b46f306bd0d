package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/ratelimit"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	args := m.Called(ctx, token, remoteIP)
	return args.Bool(0), args.Error(1)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, identity string, now time.Time) (ratelimit.Decision, error) {
	args := m.Called(ctx, identity, now)
	return args.Get(0).(ratelimit.Decision), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, sub *domain.Submission) (*domain.DispatchResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchResult), args.Error(1)
}

func (m *MockDispatcher) Configured() bool {
	return m.Called().Bool(0)
}

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) List(ctx context.Context, featured *bool) ([]domain.Project, error) {
	args := m.Called(ctx, featured)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

type MockAiWorkRepo struct {
	mock.Mock
}

func (m *MockAiWorkRepo) List(ctx context.Context, featured *bool, technology string) ([]domain.AiWork, error) {
	args := m.Called(ctx, featured, technology)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AiWork), args.Error(1)
}

type MockCaseStudyRepo struct {
	mock.Mock
}

func (m *MockCaseStudyRepo) List(ctx context.Context, featured *bool) ([]domain.CaseStudy, error) {
	args := m.Called(ctx, featured)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseStudy), args.Error(1)
}

type MockInterestRepo struct {
	mock.Mock
}

func (m *MockInterestRepo) List(ctx context.Context, category string, featured *bool) ([]domain.Interest, error) {
	args := m.Called(ctx, category, featured)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interest), args.Error(1)
}

type MockSectionRepo struct {
	mock.Mock
}

func (m *MockSectionRepo) List(ctx context.Context, sectionType string) ([]domain.Section, error) {
	args := m.Called(ctx, sectionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Section), args.Error(1)
}

func (m *MockSectionRepo) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}

func (m *MockSectionRepo) Create(ctx context.Context, section *domain.Section) error {
	return m.Called(ctx, section).Error(0)
}

func (m *MockSectionRepo) Update(ctx context.Context, section *domain.Section) error {
	return m.Called(ctx, section).Error(0)
}

func (m *MockSectionRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) UploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expires)
	return args.String(0), args.Error(1)
}
