package services

import (
	"context"
	"time"

	"storefront-api/pkg/logging"

	"github.com/redis/go-redis/v9"
)

// ReplayChecker deduplicates provider event ids. Seen reports whether an
// event was already processed; Mark records it once its side effects have
// committed. A delivery that fails mid-processing is never marked, so the
// provider's redelivery runs the handler again.
type ReplayChecker interface {
	Seen(ctx context.Context, eventID string) bool
	Mark(ctx context.Context, eventID string)
}

// ReplayGuard deduplicates webhook deliveries by Stripe event id in Redis
// with a TTL. It is best-effort: on Redis failure it reports the event as
// unseen and lets the unique session index catch duplicates.
type ReplayGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplayGuard creates a replay guard. Event ids are remembered for 24
// hours, which covers Stripe's redelivery window.
func NewReplayGuard(client *redis.Client) *ReplayGuard {
	return &ReplayGuard{
		client: client,
		ttl:    24 * time.Hour,
	}
}

// Seen reports whether the event id has been marked as processed.
func (g *ReplayGuard) Seen(ctx context.Context, eventID string) bool {
	if eventID == "" {
		return false
	}

	n, err := g.client.Exists(ctx, "stripe:event:"+eventID).Result()
	if err != nil {
		logging.Warnf("Replay check failed for event %s: %v", eventID, err)
		return false
	}
	if n > 0 {
		logging.Infof("Duplicate delivery of event %s ignored", eventID)
	}
	return n > 0
}

// Mark records the event id as processed.
func (g *ReplayGuard) Mark(ctx context.Context, eventID string) {
	if eventID == "" {
		return
	}
	if err := g.client.Set(ctx, "stripe:event:"+eventID, 1, g.ttl).Err(); err != nil {
		logging.Warnf("Replay mark failed for event %s: %v", eventID, err)
	}
}
