// Package views provides short-TTL deduplication of article view events so a
// reader refreshing a page does not inflate view counts. State lives in Redis
// keyed by (resource, viewer); the gateway process itself stays stateless.
package views

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"hwreview_gateway/platform/config"

	"github.com/redis/go-redis/v9"
)

// Tracker records first-sight view events. A nil Tracker is valid and treats
// every view as first sight, so dedup degrades to best-effort when Redis is
// not configured or unavailable.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTracker connects to Redis from config. Returns nil (dedup disabled)
// when no REDIS_URL is configured.
func NewTracker(cfg config.RedisConfig) (*Tracker, error) {
	if cfg.GetRedisURL() == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	return &Tracker{
		client: redis.NewClient(opts),
		ttl:    cfg.GetViewDedupTTL(),
	}, nil
}

// NewTrackerWithClient wires an existing client; used by tests with miniredis.
func NewTrackerWithClient(client *redis.Client, ttl time.Duration) *Tracker {
	return &Tracker{client: client, ttl: ttl}
}

// FirstSight reports whether this viewer has not seen this resource within
// the TTL window, marking it seen as a side effect. Errors count as first
// sight: losing dedup briefly is preferable to dropping view events.
func (t *Tracker) FirstSight(ctx context.Context, resource, id, viewer string) bool {
	if t == nil || t.client == nil {
		return true
	}

	key := "views:" + resource + ":" + id + ":" + viewer
	ok, err := t.client.SetNX(ctx, key, 1, t.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Close releases the Redis connection.
func (t *Tracker) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}

// ViewerKey derives a stable dedup key for the caller: the user ID when a
// session exists, otherwise a hash of the client IP so raw addresses are not
// stored.
func ViewerKey(userID, clientIP string) string {
	if userID != "" {
		return "u:" + userID
	}
	sum := sha256.Sum256([]byte(clientIP))
	return "ip:" + hex.EncodeToString(sum[:8])
}
