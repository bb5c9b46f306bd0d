package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
	OwnerName   string
}

var funcs = map[string]any{
	"lines": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
}

const adminHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>New Contact Form Submission</h2>
    <p><strong>From:</strong> {{.SenderName}}</p>
    <p><strong>Email:</strong> {{.SenderEmail}}</p>
    {{- if .Subject}}
    <p><strong>Subject:</strong> {{.Subject}}</p>
    {{- end}}
    <h3>Message:</h3>
    <p>{{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
    <p style="color: #888; font-size: 12px;">Reply to this email to answer {{.SenderName}} directly.</p>
</body>
</html>`

const adminText = `Name: {{.SenderName}}
Email: {{.SenderEmail}}
{{- if .Subject}}
Subject: {{.Subject}}
{{- end}}

Message:
{{.Message}}
`

const ackHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Thank You for Your Message</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>Thank You for Your Message</h2>
    <p>Dear {{.SenderName}},</p>
    <p>Thank you for reaching out to me through my portfolio website. I've received your message and will get back to you as soon as possible.</p>
    <p>For your reference, here's a copy of your message:</p>
    <blockquote style="background-color: #f9f9f9; padding: 15px; border-left: 5px solid #ccc; margin: 20px 0;">
        {{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}
    </blockquote>
    <p>Best regards,<br>{{.OwnerName}}</p>
</body>
</html>`

const ackText = `Dear {{.SenderName}},

Thank you for reaching out to me through my portfolio website. I've received your message and will get back to you as soon as possible.

For your reference, here's a copy of your message:
"{{.Message}}"

Best regards,
{{.OwnerName}}
`

var (
	adminHTMLTmpl = htmltemplate.Must(htmltemplate.New("admin.html").Funcs(funcs).Parse(adminHTML))
	ackHTMLTmpl   = htmltemplate.Must(htmltemplate.New("ack.html").Funcs(funcs).Parse(ackHTML))
	adminTextTmpl = texttemplate.Must(texttemplate.New("admin.txt").Parse(adminText))
	ackTextTmpl   = texttemplate.Must(texttemplate.New("ack.txt").Parse(ackText))
)

// AdminNotification is sent to the site owner with Reply-To set to the submitter.
func AdminNotification(from, to string, data ContactEmailData) (*Message, error) {
	text, html, err := render(adminTextTmpl, adminHTMLTmpl, data)
	if err != nil {
		return nil, err
	}
	subject := fmt.Sprintf("New contact form submission from %s", data.SenderName)
	if data.Subject != "" {
		subject += ": " + data.Subject
	}
	return &Message{
		From:     from,
		FromName: "Portfolio Contact",
		To:       to,
		ReplyTo:  data.SenderEmail,
		Subject:  subject,
		Text:     text,
		HTML:     html,
	}, nil
}

// Acknowledgment confirms receipt to the submitter.
func Acknowledgment(from string, data ContactEmailData) (*Message, error) {
	text, html, err := render(ackTextTmpl, ackHTMLTmpl, data)
	if err != nil {
		return nil, err
	}
	return &Message{
		From:     from,
		FromName: data.OwnerName,
		To:       data.SenderEmail,
		Subject:  fmt.Sprintf("Thank you for contacting %s", data.OwnerName),
		Text:     text,
		HTML:     html,
	}, nil
}

func render(text *texttemplate.Template, html *htmltemplate.Template, data ContactEmailData) (string, string, error) {
	var textBuf, htmlBuf bytes.Buffer
	if err := text.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute %s: %w", text.Name(), err)
	}
	if err := html.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute %s: %w", html.Name(), err)
	}
	return textBuf.String(), htmlBuf.String(), nil
}
