package events

import (
	"context"
	"testing"
)

func TestLocalEventBus_PublishDecodes(t *testing.T) {
	bus := NewLocalEventBus()

	var got GuestCreatedEvent
	calls := 0
	if err := bus.Subscribe(GuestCreated, func(msg *Message) {
		calls++
		if err := msg.Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	}); err != nil {
		t.Fatal(err)
	}

	err := bus.Publish(context.Background(), GuestCreated, GuestCreatedEvent{GuestID: "g1", PropertyID: "prop-1"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if calls != 1 || got.GuestID != "g1" || got.PropertyID != "prop-1" {
		t.Fatalf("unexpected delivery calls=%d event=%+v", calls, got)
	}
}

func TestLocalEventBus_QueueGroupDeliversOnce(t *testing.T) {
	bus := NewLocalEventBus()

	calls := 0
	handler := func(*Message) { calls++ }
	_ = bus.QueueSubscribe(MagicLinkRequested, "notify", handler)
	_ = bus.QueueSubscribe(MagicLinkRequested, "notify", handler)

	_ = bus.Publish(context.Background(), MagicLinkRequested, MagicLinkRequestedEvent{GuestID: "g1"})
	if calls != 1 {
		t.Fatalf("expected a single delivery per queue group, got %d", calls)
	}
}

func TestLocalEventBus_OtherSubjectsIgnored(t *testing.T) {
	bus := NewLocalEventBus()
	calls := 0
	_ = bus.Subscribe(GuestCreated, func(*Message) { calls++ })

	_ = bus.Publish(context.Background(), PropertyCreated, PropertyCreatedEvent{PropertyID: "p"})
	if calls != 0 {
		t.Fatalf("expected no deliveries, got %d", calls)
	}
}
