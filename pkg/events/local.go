package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalEventBus delivers events in-process. It backs single-binary
// deployments without NATS and the tests of the subscribers.
type LocalEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]func(msg *Message)
	queues   map[string]map[string]struct{}
}

func NewLocalEventBus() *LocalEventBus {
	return &LocalEventBus{
		handlers: make(map[string][]func(msg *Message)),
		queues:   make(map[string]map[string]struct{}),
	}
}

func (b *LocalEventBus) Publish(_ context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	b.mu.RLock()
	handlers := append([]func(msg *Message){}, b.handlers[subject]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(&Message{
			Subject:   subject,
			Data:      payload,
			Timestamp: time.Now(),
			ID:        uuid.NewString(),
		})
	}
	return nil
}

func (b *LocalEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[subject] = append(b.handlers[subject], handler)
	return nil
}

// QueueSubscribe registers at most one handler per queue group, mirroring
// NATS delivering each message to a single member of the group.
func (b *LocalEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.queues[subject] == nil {
		b.queues[subject] = make(map[string]struct{})
	}
	if _, ok := b.queues[subject][queue]; ok {
		return nil
	}
	b.queues[subject][queue] = struct{}{}
	b.handlers[subject] = append(b.handlers[subject], handler)
	return nil
}

func (b *LocalEventBus) Close() error { return nil }

var (
	_ EventBus = (*NATSEventBus)(nil)
	_ EventBus = (*LocalEventBus)(nil)
)
