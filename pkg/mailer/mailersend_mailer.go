package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendMagicLink(ctx context.Context, msg MagicLinkEmail) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}
	subject, text, html := magicLinkContent(msg)
	return m.sendEmail(ctx, msg.ToEmail, msg.ToName, subject, text, html)
}

func (m *MailerSendClient) sendEmail(ctx context.Context, toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	message := m.client.Email.NewMessage()
	message.SetFrom(m.from)
	message.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	message.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		message.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		message.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, message)
	return err
}
