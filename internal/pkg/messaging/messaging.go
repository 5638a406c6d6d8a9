// Package messaging provides a small broker-agnostic publish/subscribe
// client with interchangeable backends (Kafka, NATS, NSQ, Google Pub/Sub).
//
// The surface is intentionally narrow: a payload, optional string
// attributes, and at-least-once delivery to a named consumer group. Broker
// specifics such as partitioning, ack deadlines, and subscription wiring
// stay inside the drivers.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"
)

const (
	// DriverKafka selects the Kafka backend.
	DriverKafka = "kafka"
	// DriverNATS selects the NATS backend.
	DriverNATS = "nats"
	// DriverNSQ selects the NSQ backend.
	DriverNSQ = "nsq"
	// DriverGooglePubSub selects the Google Pub/Sub backend.
	DriverGooglePubSub = "google-pubsub"
)

// ErrUnknownDriver indicates an unsupported messaging driver name.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// Message is a broker-agnostic event.
type Message struct {
	// ID is the broker-assigned message ID, when delivered.
	ID string
	// Body is the message payload.
	Body []byte
	// Key groups related messages where the broker supports it
	// (Kafka partitioning, Pub/Sub ordering).
	Key string
	// Attributes carries string metadata. NSQ transports the body only,
	// so attributes are dropped on that driver.
	Attributes map[string]string
	// Timestamp is when the broker accepted the message, when delivered.
	Timestamp time.Time
}

// Handler processes a delivered message. A nil return acknowledges the
// message; a non-nil return requeues it on brokers with redelivery.
type Handler func(ctx context.Context, msg Message) error

// Client publishes and consumes messages on a single broker.
type Client interface {
	io.Closer

	// Publish sends a message to the named topic.
	Publish(ctx context.Context, topic string, msg Message) error

	// Subscribe delivers messages from the named topic to the handler
	// until ctx is canceled or the client is closed. Delivery is shared
	// across processes holding the same group name.
	Subscribe(ctx context.Context, topic string, handler Handler) error
}

// Config groups the settings for all supported backends. Only the section
// matching the selected driver is read.
type Config struct {
	// Group names the logical consumer group for this process; every
	// driver maps it onto its own grouping concept (consumer group,
	// queue group, channel, subscription).
	Group string

	Kafka  KafkaConfig
	NATS   NATSConfig
	NSQ    NSQConfig
	PubSub PubSubConfig
}

// New constructs a Client for the named driver.
func New(ctx context.Context, driver string, cfg Config) (Client, error) {
	switch strings.TrimSpace(driver) {
	case DriverKafka:
		return NewKafka(cfg.Kafka, cfg.Group)
	case DriverNATS:
		return NewNATS(cfg.NATS, cfg.Group)
	case DriverNSQ:
		return NewNSQ(cfg.NSQ, cfg.Group)
	case DriverGooglePubSub:
		return NewPubSub(ctx, cfg.PubSub, cfg.Group)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// dispatch invokes the handler and converts panics into errors so a bad
// message cannot take down the consumer loop.
func dispatch(ctx context.Context, driver string, handler Handler, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("messaging: %s handler panic: %v", driver, r)
			slog.ErrorContext(ctx, "message handler panicked",
				"driver", driver,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	return handler(ctx, msg)
}
