package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrProfileNotFound    = errors.New("profile not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrJobSeekerNotFound  = errors.New("job seeker record not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrObjectNotFound     = errors.New("object not found")

	ErrDuplicate    = errors.New("record already exists")
	ErrNoCompany    = errors.New("no company associated with this account")
	ErrNoVendor     = errors.New("no vendor associated with this account")
	ErrRoleMismatch = errors.New("operation not allowed for this role")
	ErrForbidden    = errors.New("access forbidden")
	ErrStorage      = errors.New("storage failure")
)

// ValidationError is returned when input is rejected before any remote call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AuthErrorCode tags sign-in failures so callers can render them inline.
type AuthErrorCode string

const (
	AuthInvalidCredentials AuthErrorCode = "invalid_credentials"
	AuthProfileNotFound    AuthErrorCode = "profile_not_found"
	AuthUnknown            AuthErrorCode = "unknown"
)

// AuthError is the failure shape returned by sign-in.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError classifies err into an AuthError.
func NewAuthError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrIdentityNotFound):
		return &AuthError{Code: AuthInvalidCredentials, Message: "invalid email or password", Err: err}
	case errors.Is(err, ErrEmailNotConfirmed):
		return &AuthError{Code: AuthInvalidCredentials, Message: "email address has not been confirmed", Err: err}
	case errors.Is(err, ErrProfileNotFound):
		return &AuthError{Code: AuthProfileNotFound, Message: "profile not found", Err: err}
	default:
		return &AuthError{Code: AuthUnknown, Message: "sign in failed", Err: err}
	}
}
