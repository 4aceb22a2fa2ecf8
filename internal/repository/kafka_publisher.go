package repository

import (
	"context"
	"fmt"
	"time"

	pkgkafka "SeasonPulse/pkg/kafka"
)

// RefreshedEvent is emitted after a symbol's weekly bars are rebuilt.
type RefreshedEvent struct {
	Symbol      string    `json:"symbol"`
	BarCount    int       `json:"bar_count"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// KafkaPublisher emits refresh events to a Kafka topic, keyed by symbol.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishRefreshed(ctx context.Context, symbol string, barCount int, at time.Time) error {
	event := RefreshedEvent{
		Symbol:      symbol,
		BarCount:    barCount,
		RefreshedAt: at.UTC(),
	}
	if err := p.producer.Publish(ctx, p.topic, []byte(symbol), event); err != nil {
		return fmt.Errorf("publish refreshed event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when Kafka is disabled in config.
type NoopPublisher struct{}

func (NoopPublisher) PublishRefreshed(context.Context, string, int, time.Time) error { return nil }
func (NoopPublisher) Close() error                                                   { return nil }
