package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const DefaultStateChannel = "tictactoe:state"

// StatePublisher publishes game snapshots on a Redis channel. Nothing is
// stored; subscribers only see snapshots published while they listen.
type StatePublisher struct {
	client  *redis.Client
	channel string
}

func NewStatePublisher(client *redis.Client, channel string) *StatePublisher {
	if channel == "" {
		channel = DefaultStateChannel
	}

	return &StatePublisher{
		client:  client,
		channel: channel,
	}
}

// Notify - publishes the snapshot as JSON.
func (that *StatePublisher) Notify(ctx context.Context, state *entity.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal state: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, stateJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish state: %w", err)
	}

	return nil
}

// Subscribe - streams decoded snapshots until ctx is done.
func (that *StatePublisher) Subscribe(ctx context.Context) (<-chan *entity.State, error) {
	sub := that.client.Subscribe(ctx, that.channel)

	// wait for the subscription confirmation so no publish is missed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	states := make(chan *entity.State)
	go func() {
		defer close(states)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var state entity.State
				if err := json.Unmarshal([]byte(msg.Payload), &state); err != nil {
					continue
				}

				select {
				case states <- &state:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return states, nil
}
