package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/apperror"
	"github.com/prateekh777/professional-website/pkg/email"
	"github.com/prateekh777/professional-website/pkg/logger"
	"github.com/prateekh777/professional-website/pkg/metrics"
	"github.com/prateekh777/professional-website/pkg/ratelimit"
	"github.com/prateekh777/professional-website/pkg/security"
	"github.com/prateekh777/professional-website/pkg/validation"
)

const (
	msgValidation    = "Validation error"
	msgCaptcha       = "reCAPTCHA verification failed. Please try again."
	msgRateLimited   = "Rate limit exceeded. Please try again later."
	msgSendFailed    = "Failed to send message. Please try again later."
	noticeSkipped    = "Email delivery is not configured; your message was accepted but no email was sent."
	noticeIncomplete = "Your message was accepted but email delivery did not complete."
)

type ContactUsecaseDeps struct {
	Validate   *validator.Validate
	Verifier   domain.AbuseVerifier
	Limiter    domain.RateLimiter
	Dispatcher domain.NotificationDispatcher
	Security   *security.SecurityLogger
	// Clock defaults to time.Now
	Clock func() time.Time
}

type contactUsecase struct {
	validate   *validator.Validate
	verifier   domain.AbuseVerifier
	limiter    domain.RateLimiter
	dispatcher domain.NotificationDispatcher
	security   *security.SecurityLogger
	now        func() time.Time
}

// NewContactUsecase creates the submission pipeline
func NewContactUsecase(deps ContactUsecaseDeps) domain.ContactUsecase {
	if deps.Validate == nil {
		deps.Validate = validation.New()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &contactUsecase{
		validate:   deps.Validate,
		verifier:   deps.Verifier,
		limiter:    deps.Limiter,
		dispatcher: deps.Dispatcher,
		security:   deps.Security,
		now:        deps.Clock,
	}
}

// SubmitContact runs validate, verify, rate check and dispatch in that order,
// stopping at the first failure.
func (uc *contactUsecase) SubmitContact(ctx context.Context, req *domain.ContactRequest, client domain.ClientInfo) (*domain.ContactOutcome, error) {
	now := uc.now()
	uc.stage(domain.StageReceived, client)

	normalize(req)
	fieldErrs, err := validation.Struct(uc.validate, req)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(fieldErrs) > 0 {
		uc.fail(metrics.OutcomeValidationFailed, client)
		uc.security.LogValidationFailed(ctx, req.Email, client.IP, client.RequestID, fieldNames(fieldErrs))
		return nil, apperror.Validation(msgValidation, fieldErrs)
	}

	sub := &domain.Submission{
		Name:           req.Name,
		Email:          req.Email,
		Message:        req.Message,
		Subject:        req.Subject,
		ChallengeToken: req.RecaptchaToken,
		Client:         client,
		ReceivedAt:     now,
	}
	uc.stage(domain.StageValidated, client)

	ok, verr := uc.verifier.Verify(ctx, sub.ChallengeToken, client.IP)
	if !ok {
		reason := "rejected"
		if verr != nil {
			reason = verr.Error()
		}
		logger.Log.Warn("Contact submission failed abuse check", "request_id", client.RequestID, "reason", reason)
		uc.fail(metrics.OutcomeAbuseCheckFailed, client)
		uc.security.LogCaptchaFailed(ctx, sub.Email, client.IP, client.UserAgent, client.RequestID, sub.ChallengeToken, reason)
		return nil, apperror.AbuseCheckFailed(msgCaptcha, verr)
	}
	uc.stage(domain.StageAbuseChecked, client)

	decision, lerr := uc.limiter.Allow(ctx, identity(client), now)
	if lerr != nil {
		// advisory control: a broken limiter admits
		logger.Log.Error("Rate limiter unavailable, admitting submission", "request_id", client.RequestID, "error", lerr)
		decision = ratelimit.Decision{Allowed: true}
	}
	if !decision.Allowed {
		uc.fail(metrics.OutcomeRateLimited, client)
		metrics.RateLimitRejections.WithLabelValues("contact").Inc()
		uc.security.LogRateLimitTriggered(ctx, client.IP, client.UserAgent, client.RequestID, "/api/contact")
		return nil, RateLimitHeaders(apperror.RateLimitExceeded(msgRateLimited, decision.RetryAfter(now)), decision)
	}
	uc.stage(domain.StageRateChecked, client)

	result, derr := uc.dispatcher.Dispatch(ctx, sub)
	if derr != nil {
		uc.security.LogDispatchFailed(ctx, sub.Email, client.IP, client.RequestID, derr.Error())
		if errors.Is(derr, email.ErrNotConfigured) {
			uc.fail(metrics.OutcomeUnavailable, client)
			return nil, apperror.ServiceUnavailable(msgSendFailed, derr)
		}
		uc.fail(metrics.OutcomeDispatchFailed, client)
		return nil, apperror.DispatchFailed(msgSendFailed, derr)
	}
	uc.stage(domain.StageDispatched, client)

	outcome := &domain.ContactOutcome{
		Stage:     domain.StageSucceeded,
		EmailSent: result.Delivered(),
		RateLimit: decision,
		Dispatch:  result,
	}
	switch {
	case result.Skipped:
		outcome.Notice = noticeSkipped
	case !outcome.EmailSent:
		outcome.Notice = noticeIncomplete
	}

	if outcome.EmailSent {
		metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeSucceeded).Inc()
	} else {
		metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeSoftSuccess).Inc()
	}
	uc.stage(domain.StageSucceeded, client)
	return outcome, nil
}

// RateLimitHeaders copies a limiter decision onto an error response.
func RateLimitHeaders(err *apperror.AppError, d ratelimit.Decision) *apperror.AppError {
	for k, v := range d.Headers() {
		err.WithHeader(k, v)
	}
	return err
}

func (uc *contactUsecase) stage(s domain.SubmissionStage, client domain.ClientInfo) {
	logger.Log.Debug("Contact submission stage", "stage", string(s), "request_id", client.RequestID)
}

func (uc *contactUsecase) fail(outcome string, client domain.ClientInfo) {
	metrics.ContactSubmissions.WithLabelValues(outcome).Inc()
	logger.Log.Debug("Contact submission stage", "stage", string(domain.StageFailed), "reason", outcome, "request_id", client.RequestID)
}

func normalize(req *domain.ContactRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	req.Subject = strings.TrimSpace(req.Subject)
	req.RecaptchaToken = strings.TrimSpace(req.RecaptchaToken)
}

func identity(client domain.ClientInfo) string {
	if client.IP == "" {
		return "unknown"
	}
	return client.IP
}

func fieldNames(errs []validation.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}
