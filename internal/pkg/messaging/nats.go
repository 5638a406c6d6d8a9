package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSConfig configures the NATS backend.
type NATSConfig struct {
	// URL is the NATS server URL, e.g. nats://localhost:4222.
	URL string
}

// NATS is a Client backed by core NATS queue subscriptions. Core NATS is
// at-most-once: a handler error is logged and the message is not redelivered.
type NATS struct {
	conn  *nats.Conn
	group string

	mu   sync.Mutex
	subs []*nats.Subscription
}

// NewNATS constructs a NATS client.
func NewNATS(cfg NATSConfig, group string) (*NATS, error) {
	if cfg.URL == "" {
		return nil, errors.New("messaging: nats url is required")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn, group: group}, nil
}

// Publish sends a message on a NATS subject.
func (n *NATS) Publish(ctx context.Context, topic string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	nm := nats.NewMsg(topic)
	nm.Data = msg.Body
	for key, value := range msg.Attributes {
		nm.Header.Set(key, value)
	}

	if err := n.conn.PublishMsg(nm); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}

	return nil
}

// Subscribe joins the configured queue group on a subject and blocks until
// ctx is canceled.
func (n *NATS) Subscribe(ctx context.Context, topic string, handler Handler) error {
	sub, err := n.conn.QueueSubscribe(topic, n.group, func(m *nats.Msg) {
		msg := Message{
			Body:      m.Data,
			Timestamp: time.Now(),
		}
		if len(m.Header) > 0 {
			msg.Attributes = make(map[string]string, len(m.Header))
			for key := range m.Header {
				msg.Attributes[key] = m.Header.Get(key)
			}
		}

		_ = dispatch(ctx, DriverNATS, handler, msg)
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	n.mu.Lock()
	n.subs = append(n.subs, sub)
	n.mu.Unlock()

	<-ctx.Done()

	return sub.Drain()
}

// Close drains the connection, letting in-flight handlers finish.
func (n *NATS) Close() error {
	if n.conn.IsClosed() {
		return nil
	}

	return n.conn.Drain()
}
