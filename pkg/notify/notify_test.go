package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/diagnosis/staycheck/pkg/events"
	"github.com/diagnosis/staycheck/pkg/mailer"
)

type mockMailer struct {
	sent []mailer.MagicLinkEmail
	err  error
}

func (m *mockMailer) SendMagicLink(_ context.Context, msg mailer.MagicLinkEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestConsumer_SendsMagicLink(t *testing.T) {
	bus := events.NewLocalEventBus()
	m := &mockMailer{}
	if err := NewConsumer(m).Subscribe(bus, "notify"); err != nil {
		t.Fatal(err)
	}

	err := bus.Publish(context.Background(), events.MagicLinkRequested, events.MagicLinkRequestedEvent{
		GuestID:      "guest-1",
		GuestName:    "John Doe",
		Email:        "john.doe@example.com",
		PropertyName: "Sunset Villa",
		CheckInDate:  "2024-02-01",
		Link:         "https://stay.example.com?token=magic-token-123",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(m.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(m.sent))
	}
	got := m.sent[0]
	if got.ToEmail != "john.doe@example.com" || got.PropertyName != "Sunset Villa" || got.Link == "" {
		t.Fatalf("unexpected email %+v", got)
	}
}

func TestConsumer_SkipsIncompleteAndMalformedEvents(t *testing.T) {
	m := &mockMailer{}
	c := NewConsumer(m)

	c.HandleMagicLinkRequested(&events.Message{Subject: events.MagicLinkRequested, Data: []byte("{not json")})
	c.HandleMagicLinkRequested(&events.Message{Subject: events.MagicLinkRequested, Data: []byte(`{"guest_id":"g","link":"x"}`)})

	if len(m.sent) != 0 {
		t.Fatalf("expected nothing sent, got %+v", m.sent)
	}
}

func TestConsumer_MailerErrorIsNotFatal(t *testing.T) {
	m := &mockMailer{err: errors.New("smtp down")}
	c := NewConsumer(m)

	c.HandleMagicLinkRequested(&events.Message{
		Subject: events.MagicLinkRequested,
		Data:    []byte(`{"guest_id":"g","email":"a@b.co","link":"https://x"}`),
	})
}
