package notify

import (
	"context"
	"time"

	"github.com/diagnosis/staycheck/pkg/events"
	"github.com/diagnosis/staycheck/pkg/logger"
	"github.com/diagnosis/staycheck/pkg/mailer"
)

// Consumer turns magic-link requests into emails.
type Consumer struct {
	mailer  mailer.Service
	timeout time.Duration
}

func NewConsumer(m mailer.Service) *Consumer {
	return &Consumer{mailer: m, timeout: 15 * time.Second}
}

// Subscribe joins queue so each request is mailed once across replicas.
func (c *Consumer) Subscribe(sub events.Subscriber, queue string) error {
	return sub.QueueSubscribe(events.MagicLinkRequested, queue, c.HandleMagicLinkRequested)
}

func (c *Consumer) HandleMagicLinkRequested(msg *events.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, logger.ServiceKey, "notify")

	var evt events.MagicLinkRequestedEvent
	if err := msg.Decode(&evt); err != nil {
		logger.ErrorContext(ctx, "Dropping malformed event", "error", err, "event_id", msg.ID)
		return
	}
	if evt.Email == "" || evt.Link == "" {
		logger.WarnContext(ctx, "Magic link request without recipient or link", "guest_id", evt.GuestID, "event_id", msg.ID)
		return
	}

	err := c.mailer.SendMagicLink(ctx, mailer.MagicLinkEmail{
		ToEmail:      evt.Email,
		ToName:       evt.GuestName,
		PropertyName: evt.PropertyName,
		CheckInDate:  evt.CheckInDate,
		Link:         evt.Link,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send magic link email", "error", err, "guest_id", evt.GuestID)
		return
	}
	logger.InfoContext(ctx, "Magic link email sent", "guest_id", evt.GuestID, "event_id", msg.ID)
}
