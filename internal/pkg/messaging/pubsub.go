package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub/v2"
)

// PubSubConfig configures the Google Pub/Sub backend.
type PubSubConfig struct {
	// ProjectID is the Google Cloud project ID.
	ProjectID string
}

// PubSub is a Client backed by Google Cloud Pub/Sub. Subscriptions are
// expected to exist and be named "<topic>.<group>".
type PubSub struct {
	client *pubsub.Client
	group  string

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
	closed     bool
}

// NewPubSub constructs a Pub/Sub client.
func NewPubSub(ctx context.Context, cfg PubSubConfig, group string) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("messaging: pubsub project id is required")
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub client: %w", err)
	}

	return &PubSub{client: client, group: group, publishers: map[string]*pubsub.Publisher{}}, nil
}

// Publish sends a message to a Pub/Sub topic.
func (p *PubSub) Publish(ctx context.Context, topic string, msg Message) error {
	pub, err := p.publisher(topic)
	if err != nil {
		return err
	}

	_, err = pub.Publish(ctx, &pubsub.Message{
		Data:        msg.Body,
		Attributes:  msg.Attributes,
		OrderingKey: msg.Key,
	}).Get(ctx)
	if err != nil {
		// A failed ordered publish pauses the key until resumed.
		if msg.Key != "" {
			pub.ResumePublish(msg.Key)
		}

		return fmt.Errorf("messaging: pubsub publish: %w", err)
	}

	return nil
}

// Subscribe receives from the subscription derived from the topic and group
// names and blocks until ctx is canceled. A handler error nacks the message
// for redelivery.
func (p *PubSub) Subscribe(ctx context.Context, topic string, handler Handler) error {
	sub := p.client.Subscriber(topic + "." + p.group)

	err := sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		msg := Message{
			ID:         m.ID,
			Body:       m.Data,
			Key:        m.OrderingKey,
			Attributes: m.Attributes,
			Timestamp:  m.PublishTime,
		}

		if err := dispatch(ctx, DriverGooglePubSub, handler, msg); err != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("messaging: pubsub receive: %w", err)
	}

	return nil
}

func (p *PubSub) publisher(topic string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errors.New("messaging: pubsub client is closed")
	}
	if pub, ok := p.publishers[topic]; ok {
		return pub, nil
	}

	pub := p.client.Publisher(topic)
	// Publishes carry an ordering key; the client rejects them unless
	// ordering is enabled on the publisher.
	pub.EnableMessageOrdering = true
	p.publishers[topic] = pub

	return pub, nil
}

// Close stops all publishers and closes the underlying client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	publishers := p.publishers
	p.publishers = nil
	p.mu.Unlock()

	for _, pub := range publishers {
		pub.Stop()
	}

	return p.client.Close()
}
