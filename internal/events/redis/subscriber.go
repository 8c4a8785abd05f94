package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/boggle-go/internal/events"
)

// ErrSubscriptionClosed is returned by Next once the subscription has been closed
var ErrSubscriptionClosed = errors.New("subscription closed")

// Subscriber receives events from a Redis channel
type Subscriber struct {
	client  *redis.Client
	channel string
}

// NewSubscriber connects to Redis and returns a subscriber for cfg.Channel
func NewSubscriber(ctx context.Context, cfg Config) (*Subscriber, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewSubscriberWithClient(client, cfg.Channel), nil
}

// NewSubscriberWithClient creates a subscriber with an existing client (for testing)
func NewSubscriberWithClient(client *redis.Client, channel string) *Subscriber {
	if channel == "" {
		channel = DefaultConfig().Channel
	}
	return &Subscriber{
		client:  client,
		channel: channel,
	}
}

// Subscription is a confirmed subscription to the event channel
type Subscription struct {
	pubsub *redis.PubSub
	ch     <-chan *redis.Message
}

// Subscribe subscribes to the channel and waits for the server to confirm it
func (s *Subscriber) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := s.client.Subscribe(ctx, s.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	return &Subscription{
		pubsub: pubsub,
		ch:     pubsub.Channel(),
	}, nil
}

// Next blocks until the next message arrives. A message that is not a valid
// event returns an *InvalidMessageError and the subscription stays usable.
func (sub *Subscription) Next(ctx context.Context) (*events.Envelope, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-sub.ch:
		if !ok {
			return nil, ErrSubscriptionClosed
		}
		env, err := events.Decode([]byte(msg.Payload))
		if err != nil {
			return nil, &InvalidMessageError{Payload: msg.Payload, Err: err}
		}
		return env, nil
	}
}

// Close unsubscribes
func (sub *Subscription) Close() error {
	return sub.pubsub.Close()
}

// InvalidMessageError reports a message on the channel that could not be decoded
type InvalidMessageError struct {
	Payload string
	Err     error
}

func (e *InvalidMessageError) Error() string {
	return fmt.Sprintf("invalid event message: %v", e.Err)
}

func (e *InvalidMessageError) Unwrap() error {
	return e.Err
}

// Listen calls handle for every event until ctx is cancelled or handle returns an
// error. Undecodable messages are passed to onInvalid when it is non-nil.
func (s *Subscriber) Listen(ctx context.Context, handle func(*events.Envelope) error, onInvalid func(*InvalidMessageError)) error {
	sub, err := s.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	for {
		env, err := sub.Next(ctx)
		var invalid *InvalidMessageError
		switch {
		case errors.As(err, &invalid):
			if onInvalid != nil {
				onInvalid(invalid)
			}
			continue
		case errors.Is(err, context.Canceled), errors.Is(err, ErrSubscriptionClosed):
			return nil
		case err != nil:
			return err
		}
		if err := handle(env); err != nil {
			return err
		}
	}
}

// Close closes the Redis connection
func (s *Subscriber) Close() error {
	return s.client.Close()
}
