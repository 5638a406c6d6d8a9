package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nsqio/go-nsq"
)

// NSQConfig configures the NSQ backend.
type NSQConfig struct {
	// NSQD is the nsqd TCP address used for publishing, e.g. localhost:4150.
	NSQD string
	// Lookupds lists nsqlookupd HTTP addresses used for consuming. When
	// empty, consumers connect to NSQD directly.
	Lookupds []string
}

// NSQ is a Client backed by nsqio/go-nsq. NSQ transports the raw body only;
// message attributes are not carried on this driver.
type NSQ struct {
	cfg      NSQConfig
	group    string
	producer *nsq.Producer

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

// NewNSQ constructs an NSQ client.
func NewNSQ(cfg NSQConfig, group string) (*NSQ, error) {
	if cfg.NSQD == "" {
		return nil, errors.New("messaging: nsqd address is required")
	}

	producer, err := nsq.NewProducer(cfg.NSQD, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("messaging: nsq producer: %w", err)
	}

	return &NSQ{cfg: cfg, group: group, producer: producer}, nil
}

// Publish sends a message body to an NSQ topic.
func (n *NSQ) Publish(ctx context.Context, topic string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := n.producer.Publish(topic, msg.Body); err != nil {
		return fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return nil
}

// Subscribe consumes an NSQ topic on the configured channel and blocks
// until ctx is canceled. A handler error requeues the message with nsqd's
// default backoff.
func (n *NSQ) Subscribe(ctx context.Context, topic string, handler Handler) error {
	consumer, err := nsq.NewConsumer(topic, n.group, nsq.NewConfig())
	if err != nil {
		return fmt.Errorf("messaging: nsq consumer: %w", err)
	}

	consumer.AddHandler(nsq.HandlerFunc(func(m *nsq.Message) error {
		msg := Message{
			ID:        string(m.ID[:]),
			Body:      m.Body,
			Timestamp: timeFromUnixNano(m.Timestamp),
		}

		return dispatch(ctx, DriverNSQ, handler, msg)
	}))

	if len(n.cfg.Lookupds) > 0 {
		err = consumer.ConnectToNSQLookupds(n.cfg.Lookupds)
	} else {
		err = consumer.ConnectToNSQD(n.cfg.NSQD)
	}
	if err != nil {
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		consumer.Stop()
		return nil
	}
	n.consumers = append(n.consumers, consumer)
	n.mu.Unlock()

	select {
	case <-ctx.Done():
		consumer.Stop()
		<-consumer.StopChan
	case <-consumer.StopChan:
	}

	return nil
}

// Close stops the producer and all consumers.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := n.consumers
	n.consumers = nil
	n.mu.Unlock()

	n.producer.Stop()
	for _, c := range consumers {
		c.Stop()
	}

	return nil
}

func timeFromUnixNano(ns int64) time.Time {
	if ns <= 0 {
		return time.Now()
	}

	return time.Unix(0, ns)
}
