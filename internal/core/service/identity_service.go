package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

const (
	purposeAccess  = "access"
	purposeConfirm = "confirm"

	confirmTokenTTL = 48 * time.Hour
)

// ConfirmationNotifier delivers email-confirmation tokens.
type ConfirmationNotifier interface {
	SendConfirmation(ctx context.Context, identity domain.Identity, token string) error
}

// IdentityOptions configures IdentityService.
type IdentityOptions struct {
	JWTSecret           string
	TokenTTL            time.Duration
	RequireConfirmation bool
}

// IdentityService is the local identity provider: bcrypt password hashes,
// HS256 access tokens, a revocation denylist and session-change events.
type IdentityService struct {
	repo     ports.IdentityRepository
	denylist ports.TokenDenylist
	events   ports.SessionEvents
	notifier ConfirmationNotifier
	opts     IdentityOptions
	log      zerolog.Logger
	now      func() time.Time
}

type tokenClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func NewIdentityService(
	repo ports.IdentityRepository,
	denylist ports.TokenDenylist,
	events ports.SessionEvents,
	notifier ConfirmationNotifier,
	opts IdentityOptions,
	log zerolog.Logger,
) *IdentityService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &IdentityService{
		repo:     repo,
		denylist: denylist,
		events:   events,
		notifier: notifier,
		opts:     opts,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *IdentityService) SignUp(ctx context.Context, email, password string, meta domain.IdentityMetadata) (*domain.Identity, *domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	identity := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     meta,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !s.opts.RequireConfirmation {
		identity.ConfirmedAt = &now
	}

	created, err := s.repo.Create(ctx, identity)
	if err != nil {
		return nil, nil, err
	}

	if s.opts.RequireConfirmation {
		token, err := s.issue(*created, purposeConfirm, confirmTokenTTL)
		if err != nil {
			return nil, nil, err
		}
		if s.notifier != nil {
			if err := s.notifier.SendConfirmation(ctx, *created, token.AccessToken); err != nil {
				s.log.Warn().Err(err).Str("identity_id", created.ID).Msg("confirmation delivery failed")
			}
		}
		return created, nil, nil
	}

	session, err := s.issue(*created, purposeAccess, s.opts.TokenTTL)
	if err != nil {
		return nil, nil, err
	}
	s.publish(ctx, domain.EventSignedIn, *created)
	return created, session, nil
}

func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !identity.Confirmed() {
		return nil, domain.ErrEmailNotConfirmed
	}

	session, err := s.issue(*identity, purposeAccess, s.opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventSignedIn, *identity)
	return session, nil
}

func (s *IdentityService) IdentityFromToken(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.parse(token, purposeAccess)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}
	identity, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return identity, nil
}

func (s *IdentityService) RefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.parse(token, purposeAccess)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}
	identity, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	session, err := s.issue(*identity, purposeAccess, s.opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	s.revoke(ctx, claims)
	s.publish(ctx, domain.EventTokenRefreshed, *identity)
	return session, nil
}

func (s *IdentityService) ConfirmEmail(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.parse(token, purposeConfirm)
	if err != nil {
		return nil, err
	}
	identity, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if !identity.Confirmed() {
		now := s.now()
		if err := s.repo.MarkConfirmed(ctx, identity.ID, now); err != nil {
			return nil, fmt.Errorf("confirm identity: %w", err)
		}
		identity.ConfirmedAt = &now
	}

	session, err := s.issue(*identity, purposeAccess, s.opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventSignedIn, *identity)
	return session, nil
}

func (s *IdentityService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token, purposeAccess)
	if err != nil {
		return err
	}
	s.revoke(ctx, claims)
	s.publish(ctx, domain.EventSignedOut, domain.Identity{ID: claims.Subject, Email: claims.Email})
	return nil
}

func (s *IdentityService) issue(identity domain.Identity, purpose string, ttl time.Duration) (*domain.Session, error) {
	now := s.now()
	exp := now.Add(ttl)
	claims := tokenClaims{
		Email:   identity.Email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.Session{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresAt:   exp,
		Identity:    identity,
	}, nil
}

func (s *IdentityService) parse(token, purpose string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid || claims.Purpose != purpose || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *IdentityService) checkRevoked(ctx context.Context, tokenID string) error {
	if s.denylist == nil {
		return nil
	}
	revoked, err := s.denylist.IsRevoked(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return domain.ErrInvalidToken
	}
	return nil
}

func (s *IdentityService) revoke(ctx context.Context, claims *tokenClaims) {
	if s.denylist == nil || claims.ExpiresAt == nil {
		return
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.log.Warn().Err(err).Str("identity_id", claims.Subject).Msg("failed to revoke token")
	}
}

func (s *IdentityService) publish(ctx context.Context, typ domain.AuthEventType, identity domain.Identity) {
	if s.events == nil {
		return
	}
	ev := domain.AuthEvent{Type: typ, IdentityID: identity.ID, Email: identity.Email, OccurredAt: s.now()}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("identity_id", identity.ID).Str("event", string(typ)).Msg("failed to publish session event")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LogNotifier writes confirmation tokens to the log. It stands in for a
// mailer in development.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) SendConfirmation(_ context.Context, identity domain.Identity, token string) error {
	n.Log.Info().
		Str("identity_id", identity.ID).
		Str("email", identity.Email).
		Str("confirmation_token", token).
		Msg("email confirmation required")
	return nil
}
