package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diagnosis/staycheck/pkg/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

// Decode unmarshals the message payload into v.
func (m *Message) Decode(v interface{}) error {
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Subject, err)
	}
	return nil
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("staycheck"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "bytes", len(payload))

	msg := nats.NewMsg(subject)
	msg.Data = payload
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())
	if requestID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		msg.Header.Set("X-Request-ID", requestID)
	}
	return n.conn.PublishMsg(msg)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(toMessage(msg))
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(toMessage(msg))
	})
	return err
}

func (n *NATSEventBus) Close() error {
	return n.conn.Drain()
}

func toMessage(msg *nats.Msg) *Message {
	id := ""
	if msg.Header != nil {
		id = msg.Header.Get(nats.MsgIdHdr)
	}
	if id == "" {
		id = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return &Message{
		Subject:   msg.Subject,
		Data:      msg.Data,
		Timestamp: time.Now(),
		ID:        id,
	}
}

// Event subjects
const (
	PropertyCreated = "property.created"

	GuestCreated            = "guest.created"
	GuestContactUpdated     = "guest.contact_updated"
	GuestIDDocumentRecorded = "guest.id_document_recorded"
	GuestSessionStarted     = "guest.session_started"
	GuestAnswerSelected     = "guest.answer_selected"
	MagicLinkRequested      = "guest.magic_link.requested"

	QuestionCreated        = "question.created"
	AnswerCreated          = "answer.created"
	InstructionPageCreated = "instruction_page.created"
	InstructionPageUpdated = "instruction_page.updated"
)

// Event payloads
type PropertyCreatedEvent struct {
	PropertyID string    `json:"property_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type GuestCreatedEvent struct {
	GuestID     string    `json:"guest_id"`
	PropertyID  string    `json:"property_id"`
	Email       string    `json:"email"`
	CheckInDate string    `json:"check_in_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type GuestUpdatedEvent struct {
	GuestID   string    `json:"guest_id"`
	Changes   []string  `json:"changes"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GuestSessionStartedEvent struct {
	GuestID    string    `json:"guest_id"`
	PropertyID string    `json:"property_id"`
	GateOpen   bool      `json:"gate_open"`
	StartedAt  time.Time `json:"started_at"`
}

type GuestAnswerSelectedEvent struct {
	GuestID    string    `json:"guest_id"`
	AnswerID   string    `json:"answer_id"`
	PageID     string    `json:"page_id,omitempty"`
	Transition bool      `json:"transition"`
	SelectedAt time.Time `json:"selected_at"`
}

type MagicLinkRequestedEvent struct {
	GuestID      string `json:"guest_id"`
	GuestName    string `json:"guest_name"`
	Email        string `json:"email"`
	PropertyName string `json:"property_name"`
	CheckInDate  string `json:"check_in_date"`
	Link         string `json:"link"`
}

type CatalogEvent struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id,omitempty"`
	ParentID   string    `json:"parent_id,omitempty"`
	At         time.Time `json:"at"`
}
