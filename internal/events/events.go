// Package events publishes domain events to kafka. Services treat the
// publisher as fire-and-forget: a failed publish is logged by the caller and
// never fails the request that produced it.
package events

import "context"

const (
	TopicUserEvents    = "user_events"
	TopicCartEvents    = "cart_events"
	TopicProductEvents = "product_events"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}

// Nop discards every event. Used when no brokers are configured and in tests.
type Nop struct{}

func (Nop) Publish(ctx context.Context, topic, key string, event any) error { return nil }

func (Nop) Close() error { return nil }
