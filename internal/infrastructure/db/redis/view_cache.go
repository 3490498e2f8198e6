package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talentbridge/job-portal/internal/api/metrics"
	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

const defaultRetention = 24 * time.Hour

// ViewCache keeps the last resolved composite view per identity.
// Key format:
//
//	portal:view:<identity_id>             JSON-encoded view
//	portal:view:<identity_id>:checked_at  unix milliseconds of the last fetch
//
// Entries live for the retention period; freshness is decided by the caller
// from checked_at.
type ViewCache struct {
	client    *redis.Client
	retention time.Duration
}

// NewViewCache creates a ViewCache. A non-positive retention uses 24h.
func NewViewCache(client *redis.Client, retention time.Duration) *ViewCache {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &ViewCache{client: client, retention: retention}
}

func (c *ViewCache) Load(ctx context.Context, identityID string) (*ports.CachedView, error) {
	vals, err := c.client.MGet(ctx, viewKey(identityID), checkedAtKey(identityID)).Result()
	if err != nil {
		return nil, fmt.Errorf("view cache load: %w", err)
	}
	cached, err := decodeEntry(vals)
	if err != nil {
		return nil, fmt.Errorf("view cache decode: %w", err)
	}
	if cached == nil {
		metrics.ViewCacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.ViewCacheLookupsTotal.WithLabelValues("hit").Inc()
	return cached, nil
}

// Store writes both keys in one MULTI so a reader never sees a view paired
// with another fetch's timestamp.
func (c *ViewCache) Store(ctx context.Context, view *domain.CompositeView, checkedAt time.Time) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("view cache encode: %w", err)
	}
	id := view.IdentityID()
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, viewKey(id), payload, c.retention)
		pipe.Set(ctx, checkedAtKey(id), checkedAt.UnixMilli(), c.retention)
		return nil
	})
	if err != nil {
		return fmt.Errorf("view cache store: %w", err)
	}
	return nil
}

func (c *ViewCache) Invalidate(ctx context.Context, identityID string) error {
	if err := c.client.Del(ctx, viewKey(identityID), checkedAtKey(identityID)).Err(); err != nil {
		return fmt.Errorf("view cache invalidate: %w", err)
	}
	return nil
}

// decodeEntry turns an MGET reply into a cached view. A half-written or
// absent pair is a miss.
func decodeEntry(vals []interface{}) (*ports.CachedView, error) {
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return nil, nil
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected view type %T", vals[0])
	}
	ts, ok := vals[1].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected checked_at type %T", vals[1])
	}
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse checked_at: %w", err)
	}

	var view domain.CompositeView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, err
	}
	return &ports.CachedView{View: &view, CheckedAt: time.UnixMilli(ms).UTC()}, nil
}

func viewKey(identityID string) string {
	return "portal:view:" + identityID
}

func checkedAtKey(identityID string) string {
	return viewKey(identityID) + ":checked_at"
}
