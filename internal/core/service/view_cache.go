package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// DefaultFreshness is how long a cached view is served without asking the
// backend again.
const DefaultFreshness = 5 * time.Minute

// Freshness classifies a cache lookup.
type Freshness int

const (
	Miss Freshness = iota
	Fresh
	Stale
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "miss"
	}
}

// Lookup is the outcome of CachedResolver.Lookup. View is nil on a miss.
type Lookup struct {
	View      *domain.CompositeView
	CheckedAt time.Time
	Freshness Freshness
}

// ViewResolver builds a composite view from the backend.
type ViewResolver interface {
	Resolve(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error)
}

// CachedResolver puts a ViewCache in front of a ViewResolver. Reading and
// refreshing are separate operations: Lookup never calls the backend.
type CachedResolver struct {
	resolver  ViewResolver
	cache     ports.ViewCache
	freshness time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// NewCachedResolver returns a CachedResolver. A non-positive freshness falls
// back to DefaultFreshness.
func NewCachedResolver(resolver ViewResolver, cache ports.ViewCache, freshness time.Duration, log zerolog.Logger) *CachedResolver {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &CachedResolver{
		resolver:  resolver,
		cache:     cache,
		freshness: freshness,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Lookup reads the cached view for identityID. Cache read errors count as
// a miss.
func (c *CachedResolver) Lookup(ctx context.Context, identityID string) Lookup {
	cached, err := c.cache.Load(ctx, identityID)
	if err != nil {
		c.log.Warn().Err(err).Str("identity_id", identityID).Msg("view cache read failed")
		return Lookup{Freshness: Miss}
	}
	if cached == nil || cached.View == nil || cached.View.IdentityID() != identityID {
		return Lookup{Freshness: Miss}
	}

	out := Lookup{View: cached.View, CheckedAt: cached.CheckedAt, Freshness: Stale}
	if c.now().Sub(cached.CheckedAt) < c.freshness {
		out.Freshness = Fresh
	}
	return out
}

// Revalidate resolves identity from the backend and replaces the cached
// entry. On failure the cache is left untouched.
func (c *CachedResolver) Revalidate(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error) {
	view, err := c.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}
	c.Store(ctx, view)
	return view, nil
}

// Store writes view as freshly checked. Write failures are logged only; the
// next lookup will simply miss.
func (c *CachedResolver) Store(ctx context.Context, view *domain.CompositeView) {
	if err := c.cache.Store(ctx, view, c.now()); err != nil {
		c.log.Warn().Err(err).Str("identity_id", view.IdentityID()).Msg("view cache write failed")
	}
}

// Invalidate drops the cached entry for identityID.
func (c *CachedResolver) Invalidate(ctx context.Context, identityID string) {
	if err := c.cache.Invalidate(ctx, identityID); err != nil {
		c.log.Warn().Err(err).Str("identity_id", identityID).Msg("view cache invalidate failed")
	}
}
