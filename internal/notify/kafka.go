package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// producer is the seam over the kgo client so unit tests can capture records
// without a broker.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaSink publishes lead-assigned events to a Kafka topic. Downstream
// consumers (email/SMS workers, the agent CRM sync) fan the notification out
// from there.
type KafkaSink struct {
	client producer
	topic  string
	logger *slog.Logger
}

// NewKafkaSink connects to the brokers and ensures the topic exists.
func NewKafkaSink(brokers []string, topic string, logger *slog.Logger) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	// Topic may already exist or be managed externally; creation failures are
	// only warnings.
	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(context.Background(), 1, 1, nil, topic)
	if err != nil {
		logger.Warn("could not create lead topic", "topic", topic, "error", err)
	} else if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		logger.Warn("could not create lead topic", "topic", topic, "error", resp.Err)
	}

	return &KafkaSink{client: client, topic: topic, logger: logger}, nil
}

func (s *KafkaSink) NotifyAgent(ctx context.Context, event LeadAssigned) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead assigned event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		// Key by agent so one agent's notifications stay ordered.
		Key:   []byte(event.AgentID),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce lead assigned event: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
