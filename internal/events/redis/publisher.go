package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/boggle-go/internal/events"
	"github.com/mcoot/boggle-go/internal/model"
)

// Publisher sends events as JSON messages on a Redis channel
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher connects to Redis and returns a publisher for cfg.Channel
func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewPublisherWithClient(client, cfg.Channel), nil
}

// NewPublisherWithClient creates a publisher with an existing client (for testing)
func NewPublisherWithClient(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultConfig().Channel
	}
	return &Publisher{
		client:  client,
		channel: channel,
	}
}

// Ensure Publisher implements the interface
var _ events.Publisher = (*Publisher)(nil)

// Publish sends each event in order. Every event is attempted; the errors are joined.
func (p *Publisher) Publish(ctx context.Context, evts ...model.Event) error {
	var errs []error
	for _, e := range evts {
		data, err := events.Encode(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}
