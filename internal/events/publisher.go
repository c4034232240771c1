// Package events publishes entity-change events to Kafka when a broker is
// configured. Publishing is strictly fire-and-forget: the persistence layer
// never waits on, or fails because of, the event pipeline.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Event is one entity mutation, keyed by entity id so consumers see per-entity
// ordering.
type Event struct {
	Type      string    `json:"type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits events to a single topic. A nil *Publisher is valid and
// drops everything, so services can hold one unconditionally.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// New connects a producer. Returns (nil, nil) when no brokers are configured.
func New(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

// Emit produces asynchronously. Failures are logged and dropped.
func (p *Publisher) Emit(ctx context.Context, eventType, entityID string) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(Event{Type: eventType, EntityID: entityID, Timestamp: time.Now().UTC()})
	if err != nil {
		p.logger.WarnContext(ctx, "event encode failed", "type", eventType, "error", err)
		return
	}
	record := &kgo.Record{Key: []byte(entityID), Value: payload}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.WarnContext(ctx, "event publish failed", "type", eventType, "entity_id", entityID, "error", err)
		}
	})
}

// Close flushes and shuts the producer down. Safe on nil.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	_ = p.client.Flush(context.Background())
	p.client.Close()
}
