package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

const (
	minPasswordLength = 6

	pendingConfirmationMessage = "Please check your email to confirm your account before signing in."
)

// RevalidationScheduler refreshes a stale cached view in the background.
type RevalidationScheduler interface {
	Schedule(identity domain.Identity)
}

// SessionController is the single authority over session state. It is
// created once per process; Start must be called before Ready reports true.
type SessionController struct {
	provider  ports.IdentityProvider
	events    ports.SessionEvents
	views     *CachedResolver
	scheduler RevalidationScheduler
	repos     Repositories
	accounts  accounts
	log       zerolog.Logger
	now       func() time.Time

	ready     atomic.Bool
	startOnce sync.Once
	startErr  error
}

// NewSessionController wires the controller. events may be nil when session
// changes are not broadcast.
func NewSessionController(
	provider ports.IdentityProvider,
	events ports.SessionEvents,
	views *CachedResolver,
	scheduler RevalidationScheduler,
	repos Repositories,
	log zerolog.Logger,
) *SessionController {
	return &SessionController{
		provider:  provider,
		events:    events,
		views:     views,
		scheduler: scheduler,
		repos:     repos,
		accounts:  accounts{companies: repos.Companies, vendors: repos.Vendors, log: log},
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start subscribes to session events exactly once and then marks the
// controller ready. Later calls return the first call's result.
func (s *SessionController) Start(ctx context.Context) error {
	s.startOnce.Do(func() {
		if s.events != nil {
			ch, err := s.events.Subscribe(ctx)
			if err != nil {
				s.startErr = err
				return
			}
			go s.consume(ctx, ch)
		}
		s.ready.Store(true)
		s.log.Info().Msg("session controller ready")
	})
	return s.startErr
}

func (s *SessionController) Ready() bool { return s.ready.Load() }

func (s *SessionController) consume(ctx context.Context, ch <-chan domain.AuthEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			s.handleEvent(ctx, ev)
		}
	}
}

// handleEvent keeps the cache in step with session changes made by any
// instance. Token refreshes leave the view alone. A signed_in event only warms
// the cache for identities that already have a profile: events carry no
// sign-up metadata, and provisioning belongs to SignUp and ConfirmEmail.
func (s *SessionController) handleEvent(ctx context.Context, ev domain.AuthEvent) {
	if ev.IdentityID == "" {
		return
	}
	switch ev.Type {
	case domain.EventSignedIn:
		if s.views.Lookup(ctx, ev.IdentityID).Freshness != Miss {
			return
		}
		if _, err := s.repos.Profiles.FindByID(ctx, ev.IdentityID); err != nil {
			if !errors.Is(err, domain.ErrProfileNotFound) {
				s.log.Warn().Err(err).Str("identity_id", ev.IdentityID).Msg("signed_in event: profile lookup failed")
			}
			return
		}
		s.scheduler.Schedule(domain.Identity{ID: ev.IdentityID, Email: ev.Email})
	case domain.EventSignedOut:
		s.views.Invalidate(ctx, ev.IdentityID)
	case domain.EventTokenRefreshed:
	default:
		s.log.Debug().Str("event", string(ev.Type)).Msg("ignoring unknown session event")
	}
}

// SignIn authenticates and resolves a fresh view. Every failure is a
// *domain.AuthError.
func (s *SessionController) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, domain.NewAuthError(err)
	}
	view, err := s.views.Revalidate(ctx, session.Identity)
	if err != nil {
		s.log.Error().Err(err).Str("identity_id", session.Identity.ID).Msg("sign-in profile resolution failed")
		return nil, domain.NewAuthError(err)
	}
	return &ports.SignInResult{Session: *session, View: view}, nil
}

// SignUp registers an identity. When the provider returns a session the
// profile and role records are created immediately; otherwise the result is
// pending confirmation and nothing else is written.
func (s *SessionController) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	in, err := normalizeSignUp(in)
	if err != nil {
		return nil, err
	}

	meta := domain.IdentityMetadata{
		FullName:    in.FullName,
		Role:        in.Role,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		ServiceType: in.ServiceType,
	}
	identity, session, err := s.provider.SignUp(ctx, in.Email, in.Password, meta)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &ports.SignUpResult{PendingConfirmation: true, Message: pendingConfirmationMessage}, nil
	}

	view, err := s.provision(ctx, *identity)
	if err != nil {
		return nil, err
	}
	s.views.Store(ctx, view)
	return &ports.SignUpResult{Session: session, View: view}, nil
}

// ConfirmEmail completes a pending sign-up and signs the identity in.
func (s *SessionController) ConfirmEmail(ctx context.Context, token string) (*ports.SignInResult, error) {
	session, err := s.provider.ConfirmEmail(ctx, token)
	if err != nil {
		return nil, err
	}
	view, err := s.provision(ctx, session.Identity)
	if err != nil {
		return nil, err
	}
	s.views.Store(ctx, view)
	return &ports.SignInResult{Session: *session, View: view}, nil
}

// SignOut revokes the token and forgets the cached view. Provider errors are
// logged; local state is cleared regardless.
func (s *SessionController) SignOut(ctx context.Context, token, identityID string) {
	if err := s.provider.SignOut(ctx, token); err != nil {
		s.log.Warn().Err(err).Str("identity_id", identityID).Msg("sign-out at provider failed")
	}
	if identityID != "" {
		s.views.Invalidate(ctx, identityID)
	}
}

// Current returns the identity's view: fresh entries as-is, stale entries
// as-is with a background refresh, misses by resolving now.
func (s *SessionController) Current(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error) {
	l := s.views.Lookup(ctx, identity.ID)
	switch l.Freshness {
	case Fresh:
		return l.View, nil
	case Stale:
		s.scheduler.Schedule(identity)
		return l.View, nil
	}
	return s.views.Revalidate(ctx, identity)
}

// Refresh discards the cached view and resolves it again.
func (s *SessionController) Refresh(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error) {
	s.views.Invalidate(ctx, identity.ID)
	return s.views.Revalidate(ctx, identity)
}

// provision creates the profile and role records described by the identity's
// sign-up metadata. It is safe to repeat.
func (s *SessionController) provision(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error) {
	now := s.now()
	profile := domain.NewProfileFromIdentity(identity, now)
	if err := s.repos.Profiles.Create(ctx, &profile); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		existing, err := s.repos.Profiles.FindByID(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		profile = *existing
		profile.Role = profile.Role.Canonical()
	}

	meta := identity.Metadata
	var acc domain.Account
	switch profile.Role {
	case domain.RoleCompany:
		name := strings.TrimSpace(meta.CompanyName)
		if name == "" {
			break
		}
		ca, err := s.accounts.attachCompany(ctx, profile.ID, name, defaultPosition, domain.CompanyUpdate{}, now)
		if err != nil {
			return nil, err
		}
		acc = *ca
	case domain.RoleVendor:
		name := strings.TrimSpace(meta.CompanyName)
		if name == "" {
			name = profile.FullName
		}
		st := strings.TrimSpace(meta.ServiceType)
		va, err := s.accounts.attachVendor(ctx, profile.ID, name, defaultPosition, domain.VendorUpdate{ServiceType: &st}, now)
		if err != nil {
			return nil, err
		}
		acc = *va
	case domain.RoleJobSeeker:
		js, err := ensureJobSeeker(ctx, s.repos.JobSeekers, profile.ID, now)
		if err != nil {
			return nil, err
		}
		acc = domain.JobSeekerAccount{JobSeeker: *js}
	}
	return domain.NewView(profile, acc)
}

// normalizeSignUp trims the form and rejects it before any remote call.
func normalizeSignUp(in ports.SignUpInput) (ports.SignUpInput, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = string(domain.RoleJobSeeker)
	}

	if _, err := mail.ParseAddress(in.Email); err != nil || in.Email == "" {
		return in, domain.NewValidationError("email", "a valid email address is required")
	}
	if len(in.Password) < minPasswordLength {
		return in, domain.NewValidationError("password", "password must be at least 6 characters")
	}
	if in.FullName == "" {
		return in, domain.NewValidationError("full_name", "full name is required")
	}

	switch domain.Role(in.Role) {
	case domain.RoleJobSeeker:
	case domain.RoleCompany:
		if in.CompanyName == "" {
			return in, domain.NewValidationError("company_name", "company name is required for company accounts")
		}
	case domain.RoleVendor:
		if in.ServiceType == "" {
			return in, domain.NewValidationError("service_type", "service type is required for vendor accounts")
		}
	default:
		return in, domain.NewValidationError("role", "role must be job_seeker, company or vendor")
	}
	return in, nil
}
