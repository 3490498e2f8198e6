package handler

import (
	"time"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

type signUpRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=6"`
	FullName    string `json:"full_name"    validate:"required"`
	Role        string `json:"role"         validate:"omitempty,oneof=job_seeker company vendor"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	ServiceType string `json:"service_type"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type confirmRequest struct {
	Token string `json:"token" validate:"required"`
}

type sessionResponse struct {
	AccessToken string                `json:"access_token"`
	TokenType   string                `json:"token_type"`
	ExpiresAt   time.Time             `json:"expires_at"`
	User        domain.Identity       `json:"user"`
	Profile     *domain.CompositeView `json:"profile,omitempty"`
}

type signUpResponse struct {
	PendingConfirmation bool             `json:"pending_confirmation"`
	Message             string           `json:"message,omitempty"`
	Session             *sessionResponse `json:"session,omitempty"`
}

// meResponse mirrors what a page needs on load: who is signed in, their
// composite view, and whether the session state is settled yet.
type meResponse struct {
	User    *domain.Identity      `json:"user"`
	Profile *domain.CompositeView `json:"profile"`
	Ready   bool                  `json:"ready"`
}

func toSessionResponse(s domain.Session, view *domain.CompositeView) *sessionResponse {
	return &sessionResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresAt:   s.ExpiresAt,
		User:        s.Identity,
		Profile:     view,
	}
}
