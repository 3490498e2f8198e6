package ports

import (
	"context"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// SignUpInput carries the sign-up form.
type SignUpInput struct {
	Email       string
	Password    string
	FullName    string
	Role        string
	Phone       string
	CompanyName string
	ServiceType string
}

// SignInResult is a successful sign-in: the session and the resolved view.
type SignInResult struct {
	Session domain.Session
	View    *domain.CompositeView
}

// SignUpResult is either pending email confirmation (no session, no view)
// or a signed-in account with its records created.
type SignUpResult struct {
	PendingConfirmation bool
	Message             string
	Session             *domain.Session
	View                *domain.CompositeView
}

// SessionService owns sign-in, sign-up, sign-out and the cached composite view.
type SessionService interface {
	// Ready reports whether startup has finished; until then callers cannot
	// tell "no session" from "not determined yet".
	Ready() bool
	// SignIn never returns a bare error: failures are *domain.AuthError.
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	ConfirmEmail(ctx context.Context, token string) (*SignInResult, error)
	// SignOut revokes the session and clears cached state. It never fails.
	SignOut(ctx context.Context, token, identityID string)
	Current(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error)
	Refresh(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error)
}
