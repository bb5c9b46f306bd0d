package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/internal/usecase"
	"github.com/prateekh777/professional-website/pkg/apperror"
	"github.com/prateekh777/professional-website/pkg/email"
	"github.com/prateekh777/professional-website/pkg/ratelimit"
	"github.com/prateekh777/professional-website/pkg/validation"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type contactFixture struct {
	verifier   *MockVerifier
	limiter    *MockLimiter
	dispatcher *MockDispatcher
	uc         domain.ContactUsecase
}

func newContactFixture() *contactFixture {
	f := &contactFixture{
		verifier:   new(MockVerifier),
		limiter:    new(MockLimiter),
		dispatcher: new(MockDispatcher),
	}
	f.uc = usecase.NewContactUsecase(usecase.ContactUsecaseDeps{
		Verifier:   f.verifier,
		Limiter:    f.limiter,
		Dispatcher: f.dispatcher,
		Clock:      func() time.Time { return fixedNow },
	})
	return f
}

func janeRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Message:        "Hello, I would like to connect about a project.",
		RecaptchaToken: "validtoken123",
	}
}

var client = domain.ClientInfo{IP: "203.0.113.7", UserAgent: "test", RequestID: "req-1"}

func admitted() ratelimit.Decision {
	return ratelimit.Decision{Allowed: true, Limit: 5, Remaining: 4, Count: 1, ResetAt: fixedNow.Add(time.Hour)}
}

func delivered() *domain.DispatchResult {
	return &domain.DispatchResult{
		Admin:  domain.NotificationResult{Leg: domain.LegAdmin, Sent: true, StatusCode: 202},
		Sender: domain.NotificationResult{Leg: domain.LegSender, Sent: true, StatusCode: 202},
	}
}

func asAppError(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T", err)
	return appErr
}

func TestSubmitContact_Success(t *testing.T) {
	f := newContactFixture()
	f.verifier.On("Verify", mock.Anything, "validtoken123", "203.0.113.7").Return(true, nil)
	f.limiter.On("Allow", mock.Anything, "203.0.113.7", fixedNow).Return(admitted(), nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(s *domain.Submission) bool {
		return s.Name == "Jane Doe" && s.Email == "jane@example.com" && s.Client.RequestID == "req-1"
	})).Return(delivered(), nil)

	out, err := f.uc.SubmitContact(context.Background(), janeRequest(), client)
	require.NoError(t, err)

	assert.True(t, out.EmailSent)
	assert.Empty(t, out.Notice)
	assert.Equal(t, domain.StageSucceeded, out.Stage)
	assert.Equal(t, 4, out.RateLimit.Remaining)
	f.verifier.AssertExpectations(t)
	f.limiter.AssertExpectations(t)
	f.dispatcher.AssertExpectations(t)
}

func TestSubmitContact_TrimsInput(t *testing.T) {
	f := newContactFixture()
	f.verifier.On("Verify", mock.Anything, "validtoken123", mock.Anything).Return(true, nil)
	f.limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(admitted(), nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(s *domain.Submission) bool {
		return s.Name == "Jane Doe" && s.Email == "jane@example.com"
	})).Return(delivered(), nil)

	req := janeRequest()
	req.Name = "   Jane Doe  "
	req.Email = " jane@example.com "
	req.RecaptchaToken = " validtoken123 "

	_, err := f.uc.SubmitContact(context.Background(), req, client)
	require.NoError(t, err)
	f.dispatcher.AssertExpectations(t)
}

func TestSubmitContact_ValidationStopsPipeline(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ContactRequest)
		field  string
	}{
		{"short message", func(r *domain.ContactRequest) { r.Message = "hi" }, "message"},
		{"invalid email", func(r *domain.ContactRequest) { r.Email = "jane-at-example" }, "email"},
		{"short name", func(r *domain.ContactRequest) { r.Name = "J" }, "name"},
		{"short subject", func(r *domain.ContactRequest) { r.Subject = "Hey" }, "subject"},
		{"whitespace-only name", func(r *domain.ContactRequest) { r.Name = "    " }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContactFixture()
			req := janeRequest()
			tt.mutate(req)

			_, err := f.uc.SubmitContact(context.Background(), req, client)

			appErr := asAppError(t, err)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			details, ok := appErr.Details.([]validation.FieldError)
			require.True(t, ok)
			require.Len(t, details, 1)
			assert.Equal(t, tt.field, details[0].Field)

			f.verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
			f.limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything, mock.Anything)
			f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitContact_AbuseCheckFailed(t *testing.T) {
	f := newContactFixture()
	f.verifier.On("Verify", mock.Anything, "", "203.0.113.7").Return(false, fmt.Errorf("recaptcha: empty token"))

	req := janeRequest()
	req.RecaptchaToken = ""
	_, err := f.uc.SubmitContact(context.Background(), req, client)

	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, apperror.KindAbuseCheckFailed, appErr.Kind)
	assert.Equal(t, "reCAPTCHA verification failed. Please try again.", appErr.Message)
	f.limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestSubmitContact_RateLimited(t *testing.T) {
	f := newContactFixture()
	f.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.limiter.On("Allow", mock.Anything, "203.0.113.7", fixedNow).Return(ratelimit.Decision{
		Allowed: false, Limit: 5, Remaining: 0, Count: 5, ResetAt: fixedNow.Add(42 * time.Minute),
	}, nil)

	_, err := f.uc.SubmitContact(context.Background(), janeRequest(), client)

	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, appErr.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", appErr.Message)
	assert.Equal(t, "2520", appErr.Headers["Retry-After"])
	assert.Equal(t, "5", appErr.Headers["X-RateLimit-Limit"])
	assert.Equal(t, "0", appErr.Headers["X-RateLimit-Remaining"])
	assert.Equal(t, fmt.Sprint(fixedNow.Add(42*time.Minute).Unix()), appErr.Headers["X-RateLimit-Reset"])
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestSubmitContact_SixthSubmissionRejected(t *testing.T) {
	store, err := ratelimit.NewMemoryStore(10)
	require.NoError(t, err)
	limiter := ratelimit.New(ratelimit.Config{Limit: 5, Window: time.Hour}, store, nil)

	verifier := new(MockVerifier)
	verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(delivered(), nil)

	uc := usecase.NewContactUsecase(usecase.ContactUsecaseDeps{
		Verifier:   verifier,
		Limiter:    limiter,
		Dispatcher: dispatcher,
		Clock:      func() time.Time { return fixedNow },
	})

	for i := 0; i < 5; i++ {
		_, err := uc.SubmitContact(context.Background(), janeRequest(), client)
		require.NoError(t, err, "submission %d", i+1)
	}
	_, err = uc.SubmitContact(context.Background(), janeRequest(), client)
	assert.Equal(t, http.StatusTooManyRequests, asAppError(t, err).Code)
	dispatcher.AssertNumberOfCalls(t, "Dispatch", 5)
}

func TestSubmitContact_LimiterErrorAdmits(t *testing.T) {
	f := newContactFixture()
	f.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(ratelimit.Decision{}, errors.New("redis down"))
	f.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(delivered(), nil)

	out, err := f.uc.SubmitContact(context.Background(), janeRequest(), client)
	require.NoError(t, err)
	assert.True(t, out.EmailSent)
}

func TestSubmitContact_DispatchErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperror.Kind
	}{
		{"not configured", email.ErrNotConfigured, apperror.KindServiceUnavailable},
		{"provider rejected", fmt.Errorf("%w: sender", email.ErrDispatchFailed), apperror.KindDispatchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContactFixture()
			f.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
			f.limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(admitted(), nil)
			f.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := f.uc.SubmitContact(context.Background(), janeRequest(), client)

			appErr := asAppError(t, err)
			assert.Equal(t, http.StatusInternalServerError, appErr.Code)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, "Failed to send message. Please try again later.", appErr.Message)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSubmitContact_SoftSuccess(t *testing.T) {
	t.Run("skipped", func(t *testing.T) {
		f := newContactFixture()
		f.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		f.limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(admitted(), nil)
		f.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(&domain.DispatchResult{Skipped: true}, nil)

		out, err := f.uc.SubmitContact(context.Background(), janeRequest(), client)
		require.NoError(t, err)
		assert.False(t, out.EmailSent)
		assert.Contains(t, out.Notice, "not configured")
	})

	t.Run("partial", func(t *testing.T) {
		f := newContactFixture()
		f.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		f.limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(admitted(), nil)
		partial := delivered()
		partial.Sender.Sent = false
		f.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(partial, nil)

		out, err := f.uc.SubmitContact(context.Background(), janeRequest(), client)
		require.NoError(t, err)
		assert.False(t, out.EmailSent, "partial delivery is never full success")
		assert.NotEmpty(t, out.Notice)
	})
}
