package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/groundwater-forecast-service/internal/config"
	"github.com/couchcryptid/groundwater-forecast-service/internal/forecast"
	"github.com/couchcryptid/groundwater-forecast-service/internal/observability"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// StatePublisher publishes every session state transition to a Kafka topic.
// It implements forecast.Observer.
//
// Observe is called with the session lock held, so the underlying writer runs
// in async mode and delivery errors are reported through the completion hook.
type StatePublisher struct {
	writer  messageWriter
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewStatePublisher creates an async Kafka producer for the configured state topic.
func NewStatePublisher(cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *StatePublisher {
	p := &StatePublisher{clock: clock, metrics: metrics, logger: logger}
	p.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaStateTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion:   p.completed,
	}
	return p
}

// Observe serializes s and hands it to the writer without blocking on delivery.
func (p *StatePublisher) Observe(s forecast.State) {
	msg, err := serializeToMessage(s, p.clock.Now())
	if err != nil {
		p.metrics.StatePublishErrors.Inc()
		p.logger.Error("serialize state", "error", err, "request_id", s.RequestID)
		return
	}
	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		p.metrics.StatePublishErrors.Inc()
		p.logger.Error("publish state", "error", err, "request_id", s.RequestID, "status", s.Status)
	}
}

func (p *StatePublisher) completed(msgs []kafkago.Message, err error) {
	if err == nil {
		return
	}
	p.metrics.StatePublishErrors.Add(float64(len(msgs)))
	p.logger.Error("state delivery failed", "error", err, "messages", len(msgs))
}

// Close flushes pending messages and closes the writer.
func (p *StatePublisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a State into a Kafka message keyed by request ID,
// so all transitions of one request land on the same partition in order.
func serializeToMessage(s forecast.State, publishedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize state: %w", err)
	}
	msg := kafkago.Message{
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(s.Status)},
			{Key: "published_at", Value: []byte(publishedAt.UTC().Format(time.RFC3339Nano))},
		},
	}
	if s.RequestID != "" {
		msg.Key = []byte(s.RequestID)
	}
	return msg, nil
}
