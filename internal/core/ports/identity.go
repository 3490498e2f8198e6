package ports

import (
	"context"
	"time"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// IdentityRepository persists identities for the local identity provider.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	MarkConfirmed(ctx context.Context, id string, at time.Time) error
}

// IdentityProvider is the authentication half of the remote backend.
type IdentityProvider interface {
	// SignUp creates an identity. The returned session is nil when the
	// identity must confirm its email before signing in.
	SignUp(ctx context.Context, email, password string, meta domain.IdentityMetadata) (*domain.Identity, *domain.Session, error)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	// IdentityFromToken validates an access token and returns its identity.
	IdentityFromToken(ctx context.Context, token string) (*domain.Identity, error)
	RefreshToken(ctx context.Context, token string) (*domain.Session, error)
	ConfirmEmail(ctx context.Context, token string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
}

// TokenDenylist records revoked access tokens until they would expire anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SessionEvents fans session changes out to every running instance.
type SessionEvents interface {
	Publish(ctx context.Context, event domain.AuthEvent) error
	// Subscribe delivers events until ctx is cancelled, then closes the channel.
	Subscribe(ctx context.Context) (<-chan domain.AuthEvent, error)
}
