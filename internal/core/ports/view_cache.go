package ports

import (
	"context"
	"time"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// CachedView is a composite view plus the moment it was last fetched.
type CachedView struct {
	View      *domain.CompositeView
	CheckedAt time.Time
}

// ViewCache stores the last resolved composite view per identity.
type ViewCache interface {
	// Load returns (nil, nil) on a miss.
	Load(ctx context.Context, identityID string) (*CachedView, error)
	Store(ctx context.Context, view *domain.CompositeView, checkedAt time.Time) error
	Invalidate(ctx context.Context, identityID string) error
}
