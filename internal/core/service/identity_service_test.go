package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

type captureNotifier struct {
	token string
}

func (n *captureNotifier) SendConfirmation(_ context.Context, _ domain.Identity, token string) error {
	n.token = token
	return nil
}

func newIdentityService(requireConfirmation bool) (*IdentityService, *stubIdentityRepo, *stubEvents, *captureNotifier) {
	repo := newStubIdentityRepo()
	events := newStubEvents()
	notifier := &captureNotifier{}
	svc := NewIdentityService(repo, newStubDenylist(), events, notifier, IdentityOptions{
		JWTSecret:           "secret",
		TokenTTL:            time.Hour,
		RequireConfirmation: requireConfirmation,
	}, zerolog.Nop())
	return svc, repo, events, notifier
}

func TestIdentityService_SignUp_IssuesSession(t *testing.T) {
	svc, repo, events, _ := newIdentityService(false)

	identity, session, err := svc.SignUp(context.Background(), " Alice@Example.com ", "pass123", domain.IdentityMetadata{FullName: "Alice", Role: "company"})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if session == nil {
		t.Fatalf("expected session when confirmation is not required")
	}
	if identity.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", identity.Email)
	}
	stored := repo.byID[identity.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(session.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != identity.ID || claims["purpose"] != purposeAccess {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if claims["jti"] == "" {
		t.Fatalf("expected token id")
	}
	if got := events.types(); len(got) != 1 || got[0] != domain.EventSignedIn {
		t.Fatalf("expected one signed_in event, got %v", got)
	}
}

func TestIdentityService_SignUp_PendingConfirmation(t *testing.T) {
	svc, _, events, notifier := newIdentityService(true)
	ctx := context.Background()

	identity, session, err := svc.SignUp(ctx, "bob@example.com", "pass123", domain.IdentityMetadata{})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if session != nil {
		t.Fatalf("expected no session before confirmation")
	}
	if identity.Confirmed() {
		t.Fatalf("identity must not be confirmed yet")
	}
	if notifier.token == "" {
		t.Fatalf("expected confirmation token to be delivered")
	}

	if _, err := svc.SignIn(ctx, "bob@example.com", "pass123"); !errors.Is(err, domain.ErrEmailNotConfirmed) {
		t.Fatalf("expected ErrEmailNotConfirmed, got %v", err)
	}

	confirmed, err := svc.ConfirmEmail(ctx, notifier.token)
	if err != nil {
		t.Fatalf("ConfirmEmail returned error: %v", err)
	}
	if !confirmed.Identity.Confirmed() {
		t.Fatalf("expected confirmed identity in session")
	}
	if _, err := svc.SignIn(ctx, "bob@example.com", "pass123"); err != nil {
		t.Fatalf("sign in after confirmation failed: %v", err)
	}
	if len(events.types()) != 2 {
		t.Fatalf("expected two signed_in events, got %v", events.types())
	}
}

func TestIdentityService_SignUp_Duplicate(t *testing.T) {
	svc, _, _, _ := newIdentityService(false)
	ctx := context.Background()

	_, _, _ = svc.SignUp(ctx, "carol@example.com", "pass123", domain.IdentityMetadata{})
	if _, _, err := svc.SignUp(ctx, "carol@example.com", "other12", domain.IdentityMetadata{}); !errors.Is(err, domain.ErrIdentityExists) {
		t.Fatalf("expected ErrIdentityExists, got %v", err)
	}
}

func TestIdentityService_SignIn_InvalidPassword(t *testing.T) {
	svc, _, _, _ := newIdentityService(false)
	ctx := context.Background()

	_, _, _ = svc.SignUp(ctx, "dave@example.com", "goodpass", domain.IdentityMetadata{})
	if _, err := svc.SignIn(ctx, "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "ghost@example.com", "pass"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestIdentityService_SignOut_RevokesToken(t *testing.T) {
	svc, _, events, _ := newIdentityService(false)
	ctx := context.Background()

	_, session, err := svc.SignUp(ctx, "erin@example.com", "pass123", domain.IdentityMetadata{})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if _, err := svc.IdentityFromToken(ctx, session.AccessToken); err != nil {
		t.Fatalf("token should be valid before sign-out: %v", err)
	}

	if err := svc.SignOut(ctx, session.AccessToken); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if _, err := svc.IdentityFromToken(ctx, session.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after sign-out, got %v", err)
	}
	got := events.types()
	if got[len(got)-1] != domain.EventSignedOut {
		t.Fatalf("expected signed_out event last, got %v", got)
	}
}

func TestIdentityService_RefreshToken(t *testing.T) {
	svc, _, events, _ := newIdentityService(false)
	ctx := context.Background()

	_, session, _ := svc.SignUp(ctx, "fay@example.com", "pass123", domain.IdentityMetadata{})
	refreshed, err := svc.RefreshToken(ctx, session.AccessToken)
	if err != nil {
		t.Fatalf("RefreshToken returned error: %v", err)
	}
	if refreshed.AccessToken == session.AccessToken {
		t.Fatalf("expected a new token")
	}
	if _, err := svc.IdentityFromToken(ctx, session.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("old token should be revoked, got %v", err)
	}
	if _, err := svc.IdentityFromToken(ctx, refreshed.AccessToken); err != nil {
		t.Fatalf("new token should be valid: %v", err)
	}
	got := events.types()
	if got[len(got)-1] != domain.EventTokenRefreshed {
		t.Fatalf("expected token_refreshed event last, got %v", got)
	}
}

func TestIdentityService_IdentityFromToken_RejectsExpiredAndConfirmTokens(t *testing.T) {
	svc, _, _, notifier := newIdentityService(true)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc.now = clock.now
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "gus@example.com", "pass123", domain.IdentityMetadata{}); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if _, err := svc.IdentityFromToken(ctx, notifier.token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("confirmation token must not authenticate, got %v", err)
	}

	session, err := svc.ConfirmEmail(ctx, notifier.token)
	if err != nil {
		t.Fatalf("ConfirmEmail returned error: %v", err)
	}
	clock.advance(2 * time.Hour)
	if _, err := svc.IdentityFromToken(ctx, session.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}
