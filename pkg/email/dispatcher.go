package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/logger"
	"github.com/prateekh777/professional-website/pkg/metrics"
)

const DefaultSendTimeout = 10 * time.Second

var (
	// ErrNotConfigured means no provider credentials are present in production.
	ErrNotConfigured = errors.New("email: no provider configured")
	// ErrDispatchFailed means at least one leg was not delivered in production.
	ErrDispatchFailed = errors.New("email: dispatch failed")
)

type DispatcherConfig struct {
	From       string
	AdminTo    string
	OwnerName  string
	Production bool
	// Timeout bounds each leg separately.
	Timeout time.Duration
}

// Dispatcher sends the admin notification and the sender acknowledgment for a submission.
type Dispatcher struct {
	cfg      DispatcherConfig
	provider Sender
	fallback Sender
}

// NewDispatcher takes the configured provider (nil when credentials are missing)
// and an optional development fallback transport.
func NewDispatcher(cfg DispatcherConfig, provider, fallback Sender) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSendTimeout
	}
	if cfg.Production {
		fallback = nil
	}
	return &Dispatcher{cfg: cfg, provider: provider, fallback: fallback}
}

// Configured reports whether a real provider is available.
func (d *Dispatcher) Configured() bool {
	return d.provider != nil
}

// Transport names the sender Dispatch will use, or "none".
func (d *Dispatcher) Transport() string {
	switch {
	case d.provider != nil:
		return d.provider.Name()
	case d.fallback != nil:
		return d.fallback.Name()
	default:
		return "none"
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, sub *domain.Submission) (*domain.DispatchResult, error) {
	sender := d.provider
	if sender == nil {
		if d.cfg.Production {
			return nil, ErrNotConfigured
		}
		if d.fallback == nil {
			logger.Log.Warn("No email transport configured, skipping contact emails",
				"request_id", sub.Client.RequestID)
			return &domain.DispatchResult{
				Admin:   domain.NotificationResult{Leg: domain.LegAdmin, Transport: "none"},
				Sender:  domain.NotificationResult{Leg: domain.LegSender, Transport: "none"},
				Skipped: true,
			}, nil
		}
		sender = d.fallback
		logger.Log.Info("Email provider not configured, using fallback transport",
			"transport", sender.Name())
	}

	data := ContactEmailData{
		SenderName:  sub.Name,
		SenderEmail: sub.Email,
		Subject:     sub.Subject,
		Message:     sub.Message,
		OwnerName:   d.cfg.OwnerName,
	}
	adminMsg, err := AdminNotification(d.cfg.From, d.cfg.AdminTo, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	ackMsg, err := Acknowledgment(d.cfg.From, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	result := &domain.DispatchResult{}
	var g errgroup.Group
	g.Go(func() error {
		result.Admin = d.send(ctx, sender, domain.LegAdmin, adminMsg)
		return nil
	})
	g.Go(func() error {
		result.Sender = d.send(ctx, sender, domain.LegSender, ackMsg)
		return nil
	})
	_ = g.Wait()

	if result.Delivered() {
		return result, nil
	}

	failed := failedLegs(result)
	logger.Log.Error("Contact email delivery incomplete",
		"request_id", sub.Client.RequestID,
		"failed_legs", failed,
		"admin_sent", result.Admin.Sent,
		"sender_sent", result.Sender.Sent,
		"admin_detail", result.Admin.Detail,
		"sender_detail", result.Sender.Detail,
	)

	if d.cfg.Production {
		return result, fmt.Errorf("%w: %s", ErrDispatchFailed, strings.Join(failed, ","))
	}
	return result, nil
}

func (d *Dispatcher) send(ctx context.Context, sender Sender, leg domain.EmailLeg, msg *Message) domain.NotificationResult {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	res := domain.NotificationResult{Leg: leg, Transport: sender.Name()}

	start := time.Now()
	receipt, err := sender.Send(ctx, msg)
	metrics.EmailSendDuration.WithLabelValues(sender.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		res.Detail = err.Error()
		var perr *ProviderError
		if errors.As(err, &perr) {
			res.StatusCode = perr.StatusCode
			logger.Log.Warn("Email provider rejected message",
				"leg", string(leg), "status", perr.StatusCode, "body", perr.Body)
		} else {
			logger.Log.Warn("Email send failed", "leg", string(leg), "error", err)
		}
		metrics.ContactEmails.WithLabelValues(string(leg), "failed").Inc()
		return res
	}

	res.Sent = true
	res.StatusCode = receipt.StatusCode
	res.MessageID = receipt.MessageID
	metrics.ContactEmails.WithLabelValues(string(leg), "sent").Inc()
	logger.Log.Debug("Email sent", "leg", string(leg), "transport", sender.Name(), "message_id", receipt.MessageID)
	return res
}

func failedLegs(r *domain.DispatchResult) []string {
	var out []string
	if !r.Admin.Sent {
		out = append(out, string(domain.LegAdmin))
	}
	if !r.Sender.Sent {
		out = append(out, string(domain.LegSender))
	}
	return out
}
