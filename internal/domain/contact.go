package domain

import (
	"context"
	"time"

	"github.com/prateekh777/professional-website/pkg/ratelimit"
)

// ContactRequest is the raw JSON body of POST /api/contact.
type ContactRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100,single_line"`
	Email          string `json:"email" validate:"required,email,max=254"`
	Message        string `json:"message" validate:"required,min=10,max=5000"`
	Subject        string `json:"subject,omitempty" validate:"omitempty,min=5,max=200,single_line"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// ClientInfo identifies the caller of a submission.
type ClientInfo struct {
	IP        string
	UserAgent string
	RequestID string
}

// Submission is a validated, normalized contact request. It is never persisted.
type Submission struct {
	Name           string
	Email          string
	Message        string
	Subject        string
	ChallengeToken string
	Client         ClientInfo
	ReceivedAt     time.Time
}

// SubmissionStage tracks how far a submission got through the pipeline.
type SubmissionStage string

const (
	StageReceived     SubmissionStage = "received"
	StageValidated    SubmissionStage = "validated"
	StageAbuseChecked SubmissionStage = "abuse_checked"
	StageRateChecked  SubmissionStage = "rate_checked"
	StageDispatched   SubmissionStage = "dispatched"
	StageSucceeded    SubmissionStage = "succeeded"
	StageFailed       SubmissionStage = "failed"
)

type EmailLeg string

const (
	LegAdmin  EmailLeg = "admin"
	LegSender EmailLeg = "sender"
)

// NotificationResult is the outcome of one email leg.
type NotificationResult struct {
	Leg        EmailLeg `json:"leg"`
	Sent       bool     `json:"sent"`
	Transport  string   `json:"transport"`
	StatusCode int      `json:"statusCode,omitempty"`
	MessageID  string   `json:"messageId,omitempty"`
	Detail     string   `json:"detail,omitempty"`
}

// DispatchResult combines the admin notification and the sender acknowledgment.
type DispatchResult struct {
	Admin  NotificationResult `json:"admin"`
	Sender NotificationResult `json:"sender"`
	// Skipped is set when no transport was available and nothing was attempted.
	Skipped bool `json:"skipped,omitempty"`
}

// Delivered is true only when both legs were sent.
func (r *DispatchResult) Delivered() bool {
	return r != nil && r.Admin.Sent && r.Sender.Sent
}

// ContactOutcome is returned to the handler on success.
type ContactOutcome struct {
	Stage     SubmissionStage
	EmailSent bool
	Notice    string
	RateLimit ratelimit.Decision
	Dispatch  *DispatchResult
}

// ContactUsecase runs one submission through the contact pipeline.
type ContactUsecase interface {
	SubmitContact(ctx context.Context, req *ContactRequest, client ClientInfo) (*ContactOutcome, error)
}

// AbuseVerifier confirms a challenge token was produced by a human.
type AbuseVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// RateLimiter admits or rejects a submission for an identity.
type RateLimiter interface {
	Allow(ctx context.Context, identity string, now time.Time) (ratelimit.Decision, error)
}

// NotificationDispatcher sends the admin and sender emails for a submission.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, sub *Submission) (*DispatchResult, error)
	Configured() bool
}
