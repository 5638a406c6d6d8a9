package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig configures the Kafka backend.
type KafkaConfig struct {
	// Brokers lists bootstrap broker addresses.
	Brokers []string
}

// Kafka is a Client backed by segmentio/kafka-go.
type Kafka struct {
	brokers []string
	group   string
	writer  *kafka.Writer

	mu      sync.Mutex
	readers []*kafka.Reader
	closed  bool
}

// NewKafka constructs a Kafka client.
func NewKafka(cfg KafkaConfig, group string) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("messaging: kafka brokers are required")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	return &Kafka{brokers: cfg.Brokers, group: group, writer: w}, nil
}

// Publish sends a message to a Kafka topic.
func (k *Kafka) Publish(ctx context.Context, topic string, msg Message) error {
	km := kafka.Message{
		Topic: topic,
		Key:   []byte(msg.Key),
		Value: msg.Body,
	}
	for key, value := range msg.Attributes {
		km.Headers = append(km.Headers, kafka.Header{Key: key, Value: []byte(value)})
	}

	if err := k.writer.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return nil
}

// Subscribe consumes a Kafka topic as part of the configured consumer group.
// Messages are committed only after the handler returns nil, so a failing
// handler sees the message again after a rebalance or restart.
func (k *Kafka) Subscribe(ctx context.Context, topic string, handler Handler) error {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		GroupID: k.group,
		Topic:   topic,
	})

	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return r.Close()
	}
	k.readers = append(k.readers, r)
	k.mu.Unlock()

	for {
		km, err := r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("messaging: kafka fetch: %w", err)
		}

		msg := Message{
			ID:        fmt.Sprintf("%s-%d-%d", km.Topic, km.Partition, km.Offset),
			Body:      km.Value,
			Key:       string(km.Key),
			Timestamp: km.Time,
		}
		if len(km.Headers) > 0 {
			msg.Attributes = make(map[string]string, len(km.Headers))
			for _, h := range km.Headers {
				msg.Attributes[h.Key] = string(h.Value)
			}
		}

		if err := dispatch(ctx, DriverKafka, handler, msg); err != nil {
			continue
		}
		if err := r.CommitMessages(ctx, km); err != nil {
			return fmt.Errorf("messaging: kafka commit: %w", err)
		}
	}
}

// Close stops the writer and all readers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	readers := k.readers
	k.readers = nil
	k.mu.Unlock()

	err := k.writer.Close()
	for _, r := range readers {
		err = errors.Join(err, r.Close())
	}

	return err
}
