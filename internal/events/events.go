package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/secondchance/apiserver/config"
)

// Catalog event types.
const (
	GiftCreated = "gift.created"
	GiftUpdated = "gift.updated"
	GiftDeleted = "gift.deleted"
)

// Event is the payload published for every catalog change.
type Event struct {
	Type       string    `json:"type"`
	GiftID     string    `json:"gift_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the publisher.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Publisher serializes catalog events onto a single backend channel.
type Publisher struct {
	backend Backend
	channel string
}

// NewPublisher constructs a Publisher over the provided backend.
func NewPublisher(backend Backend, channel string) *Publisher {
	return &Publisher{backend: backend, channel: channel}
}

// GiftChanged publishes a catalog change event.
func (p *Publisher) GiftChanged(ctx context.Context, eventType, giftID string) error {
	data, err := json.Marshal(Event{
		Type:       eventType,
		GiftID:     giftID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = p.backend.Publish(ctx, p.channel, data, map[string]string{"type": eventType})
	return err
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	return p.backend.Close()
}

// NewBackend constructs the configured broker backend, or nil when events
// are disabled.
func NewBackend(ctx context.Context, cfg config.EventsConfig) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "none":
		return nil, nil
	case "rabbitmq":
		return NewRabbitMQClient(cfg.RabbitMQ)
	case "pubsub":
		return NewPubSubClient(ctx, cfg.PubSub)
	default:
		return nil, errors.New("unknown events backend: " + cfg.Backend)
	}
}

// NewPublisherFromConfig wires the configured backend into a Publisher.
// Returns nil when events are disabled.
func NewPublisherFromConfig(ctx context.Context, cfg config.EventsConfig) (*Publisher, error) {
	backend, err := NewBackend(ctx, cfg)
	if err != nil || backend == nil {
		return nil, err
	}
	return NewPublisher(backend, cfg.Channel), nil
}
