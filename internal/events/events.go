package events

import (
	"context"
	"encoding/json"
	"time"

	"server/internal/database"
	"server/internal/logger"
)

const publishTimeout = 2 * time.Second

// Event channels.
const (
	ChannelApplications = "applications"
)

// Event types published on ChannelApplications.
const (
	TypeApplicationReceived = "application.received"
	TypeApplicationReviewed = "application.reviewed"
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventBus publishes lifecycle events over valkey pub/sub. Publishing is
// fire-and-forget: a failed publish never fails the request that raised it.
type EventBus struct {
	client database.CacheClient
	log    logger.Logger
}

func New(client database.CacheClient) *EventBus {
	return &EventBus{
		client: client,
		log:    logger.New("events"),
	}
}

func (b *EventBus) Publish(channel string, event Event) error {
	if b == nil || b.client == nil {
		return nil
	}
	log := b.log.Function("Publish")

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "event", event)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = b.client.Do(ctx,
		b.client.B().Publish().Channel(channel).Message(string(payload)).Build()).Error()
	if err != nil {
		return log.Err("failed to publish event", err, "channel", channel, "type", event.Type)
	}

	return nil
}

func (b *EventBus) Close() error {
	return nil
}
