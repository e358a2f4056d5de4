package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// EventGuard implements ports.EventGuard using Redis SET NX.
type EventGuard struct {
	client goredis.UniversalClient
	prefix string
}

// NewEventGuard creates a new Redis-backed webhook event guard.
func NewEventGuard(client goredis.UniversalClient) *EventGuard {
	return &EventGuard{
		client: client,
		prefix: "webhook:event:",
	}
}

// Claim stores eventID if absent. It returns false when the id is already held.
func (g *EventGuard) Claim(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	result, err := g.client.SetArgs(ctx, g.prefix+eventID, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis event claim: %w", err)
	}
	return result == "OK", nil
}

func (g *EventGuard) Release(ctx context.Context, eventID string) error {
	if err := g.client.Del(ctx, g.prefix+eventID).Err(); err != nil {
		return fmt.Errorf("redis event release: %w", err)
	}
	return nil
}
