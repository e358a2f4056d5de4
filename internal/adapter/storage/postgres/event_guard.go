package postgres

import (
	"context"
	"fmt"
	"time"
)

// EventGuard implements ports.EventGuard on the webhook_events table.
// Used when Redis is disabled.
type EventGuard struct {
	pool Pool
}

// NewEventGuard creates a new EventGuard.
func NewEventGuard(pool Pool) *EventGuard {
	return &EventGuard{pool: pool}
}

// Claim inserts the event id. An existing unexpired row means the event was seen.
func (g *EventGuard) Claim(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	query := `INSERT INTO webhook_events (event_id, expires_at, created_at)
		VALUES ($1, NOW() + make_interval(secs => $2), NOW())
		ON CONFLICT (event_id) DO UPDATE
			SET expires_at = EXCLUDED.expires_at, created_at = NOW()
			WHERE webhook_events.expires_at < NOW()`

	tag, err := g.pool.Exec(ctx, query, eventID, ttl.Seconds())
	if err != nil {
		return false, fmt.Errorf("claim webhook event: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Release deletes the claim so a redelivery is processed.
func (g *EventGuard) Release(ctx context.Context, eventID string) error {
	if _, err := g.pool.Exec(ctx, `DELETE FROM webhook_events WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("release webhook event: %w", err)
	}
	return nil
}

// PurgeExpired removes claims past their TTL and reports how many went away.
func (g *EventGuard) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := g.pool.Exec(ctx, `DELETE FROM webhook_events WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("purge webhook events: %w", err)
	}
	return tag.RowsAffected(), nil
}
