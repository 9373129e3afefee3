package mailer

import (
	"context"
	"fmt"
	"html"

	"github.com/diagnosis/staycheck/pkg/config"
)

// MagicLinkEmail is the invitation a host sends to a guest.
type MagicLinkEmail struct {
	ToEmail      string
	ToName       string
	PropertyName string
	CheckInDate  string
	Link         string
}

type Service interface {
	SendMagicLink(ctx context.Context, msg MagicLinkEmail) error
}

// New picks the mailer for the environment: the log mailer in dev mode,
// MailerSend when an API key is set, SMTP otherwise.
func New(cfg config.EmailConfig) Service {
	switch {
	case cfg.DevMode:
		return NewDevMailer()
	case cfg.MailerSendKey != "":
		return NewMailerSend(cfg.MailerSendKey, cfg.FromName, cfg.SMTPFrom)
	default:
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUseTLS)
	}
}

func magicLinkContent(msg MagicLinkEmail) (subject, text, htmlBody string) {
	property := msg.PropertyName
	if property == "" {
		property = "your stay"
	}
	subject = fmt.Sprintf("Your check-in link for %s", property)

	text = fmt.Sprintf("Hi %s,\n\nYour check-in instructions for %s will be available on %s.\n\nOpen your check-in page: %s\n",
		msg.ToName, property, msg.CheckInDate, msg.Link)

	htmlBody = fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your check-in instructions for <strong>%s</strong> will be available on <strong>%s</strong>.</p>
		<p><a href="%s" style="background-color: #2563EB; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Open check-in page</a></p>
		<p>Keep this link private. Anyone with it can see your check-in details.</p>
	`, html.EscapeString(msg.ToName), html.EscapeString(property), html.EscapeString(msg.CheckInDate), html.EscapeString(msg.Link))

	return subject, text, htmlBody
}
