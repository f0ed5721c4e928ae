package live

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const TypeStatsUpdated = "STATS_UPDATED"

type StatsEvent struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Players  []uint `json:"players"`
	Instance string `json:"instance"`
}

// RedisNotifier fans stats change events out to every instance through a
// Redis pub/sub channel.
type RedisNotifier struct {
	db         *redis.Client
	channel    string
	instanceID string
}

func NewRedisNotifier(db *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{
		db:         db,
		channel:    channel,
		instanceID: uuid.New().String(),
	}
}

func (r *RedisNotifier) InstanceID() string {
	return r.instanceID
}

func (r *RedisNotifier) PublishStatsUpdated(ctx context.Context, playerIDs ...uint) error {
	event := StatsEvent{
		ID:       uuid.New().String(),
		Type:     TypeStatsUpdated,
		Players:  playerIDs,
		Instance: r.instanceID,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding stats event: %w", err)
	}
	if err := r.db.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing stats event: %w", err)
	}
	return nil
}

// Subscribe confirms the subscription, then delivers events to handle from a
// background goroutine until ctx is cancelled.
func (r *RedisNotifier) Subscribe(ctx context.Context, handle func(StatsEvent)) error {
	sub := r.db.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("error subscribing to %s: %w", r.channel, err)
	}
	log.WithField("channel", r.channel).Info("Subscribed to stats channel")

	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				dispatchEvent(msg.Payload, handle)
			}
		}
	}()
	return nil
}

func dispatchEvent(payload string, handle func(StatsEvent)) {
	var event StatsEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.WithError(err).Warn("Error decoding stats event")
		return
	}
	if event.Type != TypeStatsUpdated {
		log.WithField("type", event.Type).Warn("Unknown stats event type")
		return
	}
	handle(event)
}
