package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"icafe-booking/internal/infra"

	"github.com/segmentio/kafka-go"
)

var _ infra.Publisher = (*Publisher)(nil)

// Publisher writes each event to the topic named by its routing key. Messages
// are keyed by order id so events of one order stay ordered.
type Publisher struct {
	w *kafka.Writer
}

type keyed interface {
	PartitionKey() string
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func message(topic string, data any) (kafka.Message, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	m := kafka.Message{
		Topic: topic,
		Value: b,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(topic)},
		},
	}
	if k, ok := data.(keyed); ok {
		m.Key = []byte(k.PartitionKey())
	}
	return m, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, data any) error {
	m, err := message(topic, data)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, m); err != nil {
		return fmt.Errorf("write %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
