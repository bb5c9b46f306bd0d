package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const DefaultSendGridHost = "https://api.sendgrid.com"

// SendGridSender posts to the v3 mail send API.
type SendGridSender struct {
	apiKey string
	host   string
}

func NewSendGridSender(apiKey, host string) *SendGridSender {
	if host == "" {
		host = DefaultSendGridHost
	}
	return &SendGridSender{apiKey: apiKey, host: host}
}

func (s *SendGridSender) Name() string { return "sendgrid" }

func (s *SendGridSender) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	req := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(buildV3Mail(msg))

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sendgrid: request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Provider: s.Name(), StatusCode: resp.StatusCode, Body: resp.Body}
	}

	receipt := &Receipt{StatusCode: resp.StatusCode}
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		receipt.MessageID = ids[0]
	}
	return receipt, nil
}

func buildV3Mail(msg *Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.From))

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	p.Subject = msg.Subject
	m.AddPersonalizations(p)

	if msg.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}
	m.AddContent(
		mail.NewContent("text/plain", msg.Text),
		mail.NewContent("text/html", msg.HTML),
	)
	return m
}
