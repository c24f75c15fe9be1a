package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/askstack/qa-platform/internal/core/domain"
)

const listenBuffer = 16

// Publisher fans push events out over Redis pub/sub so every API replica
// holding a socket for the recipient can deliver them.
// Channel format: notifications:<user_id>
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish serialises event onto the recipient's channel.
func (p *Publisher) Publish(ctx context.Context, recipientID string, event domain.PushEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode push event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(recipientID), payload).Err(); err != nil {
		return fmt.Errorf("publish push event: %w", err)
	}
	return nil
}

// Listen subscribes to the recipient's channel and forwards raw payloads
// until ctx is cancelled. The returned channel is closed when the
// subscription ends.
func (p *Publisher) Listen(ctx context.Context, recipientID string) (<-chan []byte, error) {
	ps := p.client.Subscribe(ctx, Channel(recipientID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", Channel(recipientID), err)
	}

	out := make(chan []byte, listenBuffer)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Channel is the pub/sub channel name for a recipient.
func Channel(recipientID string) string {
	return key("notifications", recipientID)
}
