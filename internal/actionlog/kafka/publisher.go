// Package kafka mirrors recorded board actions to a Kafka topic so
// downstream consumers (analytics, archival) get the activity stream without
// touching the API database.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/L968/trecco-api/internal/actionlog/models"
)

// Publisher produces action log entries to a topic, keyed by board id so a
// board's activity stays ordered within a partition. Production is
// asynchronous and fire-and-forget: delivery failures are logged and dropped.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewPublisher connects a franz-go client to the given brokers.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Publisher{
		client: client,
		topic:  topic,
		logger: logger,
	}, nil
}

// Publish produces one entry. It returns immediately; the delivery result is
// handled on the client's callback goroutine.
func (p *Publisher) Publish(ctx context.Context, entry *models.BoardActionLog) {
	payload, err := json.Marshal(entry)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal action log entry",
			"board_id", entry.BoardID, "error", err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(entry.BoardID.String()),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(r *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("failed to produce action log entry",
				"board_id", entry.BoardID, "topic", p.topic, "error", err)
		}
	})
}

// Close flushes buffered records and releases the client.
func (p *Publisher) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		p.client.Close()
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	p.client.Close()
	return nil
}
