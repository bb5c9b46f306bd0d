package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ContactSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by pipeline outcome",
		},
		[]string{"outcome"},
	)

	ContactEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_emails_total",
			Help: "Contact emails attempted, by leg and result",
		},
		[]string{"leg", "result"},
	)

	EmailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contact_email_send_duration_seconds",
			Help:    "Duration of a single email send in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transport"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)
)

// Submission outcomes
const (
	OutcomeSucceeded        = "succeeded"
	OutcomeValidationFailed = "validation_failed"
	OutcomeAbuseCheckFailed = "abuse_check_failed"
	OutcomeRateLimited      = "rate_limited"
	OutcomeUnavailable      = "service_unavailable"
	OutcomeDispatchFailed   = "dispatch_failed"
	OutcomeSoftSuccess      = "soft_success"
)
