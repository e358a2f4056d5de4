package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultMappingTTL bounds how long a cached mapping may outlive an out-of-band change.
const DefaultMappingTTL = 10 * time.Minute

// CachedMappingRepository is a read-through cache in front of a MappingRepository.
// Only hits are cached; a miss always reaches the backing store. Cache failures are
// logged and the backing store answers instead.
type CachedMappingRepository struct {
	next   ports.MappingRepository
	client goredis.UniversalClient
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedMappingRepository wraps next with a Redis cache.
func NewCachedMappingRepository(next ports.MappingRepository, client goredis.UniversalClient, ttl time.Duration, log zerolog.Logger) *CachedMappingRepository {
	if ttl <= 0 {
		ttl = DefaultMappingTTL
	}
	return &CachedMappingRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "mapping_cache").Logger(),
	}
}

func localKey(kind domain.MappingKind, localID int64) string {
	return fmt.Sprintf("mapping:%s:l:%d", kind, localID)
}

func remoteKey(kind domain.MappingKind, remoteID string) string {
	return fmt.Sprintf("mapping:%s:r:%s", kind, remoteID)
}

// Save writes through to the backing store, then drops every cached entry it could stale.
func (r *CachedMappingRepository) Save(ctx context.Context, kind domain.MappingKind, localID int64, remoteID string) error {
	prev := r.previousRemote(ctx, kind, localID)

	if err := r.next.Save(ctx, kind, localID, remoteID); err != nil {
		return err
	}

	keys := []string{localKey(kind, localID), remoteKey(kind, remoteID)}
	if prev != "" && prev != remoteID {
		keys = append(keys, remoteKey(kind, prev))
	}
	r.invalidate(ctx, keys...)
	return nil
}

func (r *CachedMappingRepository) GetRemoteID(ctx context.Context, kind domain.MappingKind, localID int64) (string, bool, error) {
	key := localKey(kind, localID)
	val, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return val, true, nil
	case !errors.Is(err, goredis.Nil):
		r.log.Warn().Err(err).Str("key", key).Msg("mapping cache read failed, using store")
	}

	remoteID, ok, err := r.next.GetRemoteID(ctx, kind, localID)
	if err != nil || !ok {
		return remoteID, ok, err
	}
	r.fill(ctx, key, remoteID)
	return remoteID, true, nil
}

func (r *CachedMappingRepository) GetLocalID(ctx context.Context, kind domain.MappingKind, remoteID string) (int64, bool, error) {
	key := remoteKey(kind, remoteID)
	val, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if id, perr := strconv.ParseInt(val, 10, 64); perr == nil {
			return id, true, nil
		}
		r.invalidate(ctx, key)
	case !errors.Is(err, goredis.Nil):
		r.log.Warn().Err(err).Str("key", key).Msg("mapping cache read failed, using store")
	}

	localID, ok, err := r.next.GetLocalID(ctx, kind, remoteID)
	if err != nil || !ok {
		return localID, ok, err
	}
	r.fill(ctx, key, strconv.FormatInt(localID, 10))
	return localID, true, nil
}

func (r *CachedMappingRepository) Delete(ctx context.Context, kind domain.MappingKind, localID int64) error {
	prev := r.previousRemote(ctx, kind, localID)

	if err := r.next.Delete(ctx, kind, localID); err != nil {
		return err
	}

	keys := []string{localKey(kind, localID)}
	if prev != "" {
		keys = append(keys, remoteKey(kind, prev))
	}
	r.invalidate(ctx, keys...)
	return nil
}

// Truncate clears the backing table and then every cached key of the kind.
func (r *CachedMappingRepository) Truncate(ctx context.Context, kind domain.MappingKind) (int64, error) {
	n, err := r.next.Truncate(ctx, kind)
	if err != nil {
		return n, err
	}

	iter := r.client.Scan(ctx, 0, fmt.Sprintf("mapping:%s:*", kind), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.log.Warn().Err(err).Str("kind", string(kind)).Msg("mapping cache scan failed")
	}
	r.invalidate(ctx, keys...)
	return n, nil
}

// previousRemote returns the remote id localID maps to before a write. The
// store is asked first since the reverse key may be cached without the forward one.
func (r *CachedMappingRepository) previousRemote(ctx context.Context, kind domain.MappingKind, localID int64) string {
	prev, _, err := r.next.GetRemoteID(ctx, kind, localID)
	if err == nil {
		return prev
	}
	r.log.Warn().Err(err).Int64("local_id", localID).Msg("mapping lookup before write failed, using cache")
	prev, _ = r.client.Get(ctx, localKey(kind, localID)).Result()
	return prev
}

func (r *CachedMappingRepository) fill(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("mapping cache fill failed")
	}
}

func (r *CachedMappingRepository) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn().Err(err).Strs("keys", keys).Msg("mapping cache invalidation failed")
	}
}
