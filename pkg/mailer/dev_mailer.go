package mailer

import (
	"context"

	"github.com/diagnosis/staycheck/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendMagicLink(ctx context.Context, msg MagicLinkEmail) error {
	subject, _, _ := magicLinkContent(msg)
	logger.InfoContext(ctx, "[DEV MAIL] Magic link email",
		"to", msg.ToEmail,
		"name", msg.ToName,
		"subject", subject,
		"magic_link", msg.Link,
	)
	return nil
}
