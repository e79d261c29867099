// Package cache holds the Redis read-through cache for hot lookups.
// Every write path to a cached entity invalidates its key; the database
// stays authoritative.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ticketforge/ticketforge/internal/domain"
)

const eventTTL = 30 * time.Second

type EventCache struct {
	client *redis.Client
}

func NewEventCache(client *redis.Client) *EventCache {
	return &EventCache{
		client: client,
	}
}

func (c *EventCache) Get(ctx context.Context, eventID uint) (domain.Event, bool) {
	raw, err := c.client.Get(ctx, eventKey(eventID)).Bytes()
	if err != nil {
		return domain.Event{}, false
	}

	var event domain.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return domain.Event{}, false
	}

	return event, true
}

func (c *EventCache) Set(ctx context.Context, event domain.Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, eventKey(event.ID), raw, eventTTL).Err(); err != nil {
		zap.L().Warn("failed to cache event", zap.Uint("event_id", event.ID), zap.Error(err))
	}
}

func (c *EventCache) Invalidate(ctx context.Context, eventID uint) {
	if err := c.client.Del(ctx, eventKey(eventID)).Err(); err != nil {
		zap.L().Warn("failed to invalidate event cache", zap.Uint("event_id", eventID), zap.Error(err))
	}
}

// NopEventCache is used when Redis is not configured.
type NopEventCache struct{}

func (NopEventCache) Get(context.Context, uint) (domain.Event, bool) { return domain.Event{}, false }
func (NopEventCache) Set(context.Context, domain.Event)              {}
func (NopEventCache) Invalidate(context.Context, uint)               {}

func eventKey(eventID uint) string {
	return fmt.Sprintf("event:%d", eventID)
}
