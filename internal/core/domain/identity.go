package domain

import "time"

// IdentityMetadata is the free-form data captured at sign-up and used to
// provision a profile when none exists yet.
type IdentityMetadata struct {
	FullName    string `json:"full_name,omitempty" bson:"full_name,omitempty"`
	Role        string `json:"role,omitempty" bson:"role,omitempty"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
	CompanyName string `json:"company_name,omitempty" bson:"company_name,omitempty"`
	ServiceType string `json:"service_type,omitempty" bson:"service_type,omitempty"`
}

// Identity is the authentication-provider view of a principal.
type Identity struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	ConfirmedAt  *time.Time       `json:"confirmed_at,omitempty"`
	Metadata     IdentityMetadata `json:"metadata"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Confirmed reports whether the identity may sign in.
func (i Identity) Confirmed() bool { return i.ConfirmedAt != nil }

// Session is an issued access token bound to an identity.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Identity    Identity  `json:"identity"`
}

// AuthEventType enumerates session-change notifications.
type AuthEventType string

const (
	EventSignedIn       AuthEventType = "signed_in"
	EventSignedOut      AuthEventType = "signed_out"
	EventTokenRefreshed AuthEventType = "token_refreshed"
)

// AuthEvent is broadcast by the identity provider whenever a session changes.
type AuthEvent struct {
	Type       AuthEventType `json:"type"`
	IdentityID string        `json:"identity_id"`
	Email      string        `json:"email,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
