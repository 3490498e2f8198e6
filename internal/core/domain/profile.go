package domain

import (
	"strings"
	"time"
)

// Profile is the primary application record, one per identity.
type Profile struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	FullName  string    `json:"full_name" bson:"full_name"`
	Role      Role      `json:"role" bson:"role"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	ResumeURL string    `json:"resume_url,omitempty" bson:"resume_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewProfileFromIdentity builds the default profile for an identity that
// has none. Metadata wins; otherwise the email local-part and job_seeker
// are used.
func NewProfileFromIdentity(id Identity, now time.Time) Profile {
	name := strings.TrimSpace(id.Metadata.FullName)
	if name == "" {
		name = emailLocalPart(id.Email)
	}
	role := Role(id.Metadata.Role).Canonical()
	if !role.Valid() {
		role = RoleJobSeeker
	}
	return Profile{
		ID:        id.ID,
		Email:     id.Email,
		FullName:  name,
		Role:      role,
		Phone:     id.Metadata.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// ProfileUpdate carries a partial profile change; nil fields are untouched.
type ProfileUpdate struct {
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	ResumeURL *string `json:"resume_url,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.FullName == nil && u.Phone == nil && u.Location == nil &&
		u.Bio == nil && u.AvatarURL == nil && u.ResumeURL == nil
}

// Validate rejects updates that would blank required fields.
func (u ProfileUpdate) Validate() error {
	if u.FullName != nil && strings.TrimSpace(*u.FullName) == "" {
		return NewValidationError("full_name", "full name is required")
	}
	return nil
}

// Apply patches p in place.
func (u ProfileUpdate) Apply(p *Profile, now time.Time) {
	setString(&p.FullName, u.FullName)
	setString(&p.Phone, u.Phone)
	setString(&p.Location, u.Location)
	setString(&p.Bio, u.Bio)
	setString(&p.AvatarURL, u.AvatarURL)
	setString(&p.ResumeURL, u.ResumeURL)
	p.UpdatedAt = now
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
