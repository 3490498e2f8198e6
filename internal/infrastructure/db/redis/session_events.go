package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

const sessionChannel = "portal:session-events"

// SessionEvents broadcasts session changes between instances over Redis
// pub/sub.
type SessionEvents struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSessionEvents(client *redis.Client, log zerolog.Logger) *SessionEvents {
	return &SessionEvents{client: client, log: log}
}

func (e *SessionEvents) Publish(ctx context.Context, event domain.AuthEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode session event: %w", err)
	}
	if err := e.client.Publish(ctx, sessionChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish session event: %w", err)
	}
	return nil
}

// Subscribe waits for the subscription to be confirmed, then forwards events
// until ctx is cancelled. Malformed payloads are logged and skipped.
func (e *SessionEvents) Subscribe(ctx context.Context) (<-chan domain.AuthEvent, error) {
	sub := e.client.Subscribe(ctx, sessionChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe session events: %w", err)
	}

	out := make(chan domain.AuthEvent)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev domain.AuthEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					e.log.Warn().Err(err).Msg("discarding malformed session event")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
