package domain

import (
	"strings"
	"time"
)

// Vendor is a service provider organisation.
type Vendor struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	ServiceType  string    `json:"service_type" bson:"service_type"`
	Website      string    `json:"website,omitempty" bson:"website,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	Location     string    `json:"location,omitempty" bson:"location,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty" bson:"contact_email,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	IsVerified   bool      `json:"is_verified" bson:"is_verified"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// VendorMembership links a profile to a vendor.
type VendorMembership struct {
	ProfileID string    `json:"profile_id" bson:"profile_id"`
	VendorID  string    `json:"vendor_id" bson:"vendor_id"`
	Position  string    `json:"position,omitempty" bson:"position,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// VendorUpdate is a partial vendor change; nil fields are untouched.
type VendorUpdate struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	ServiceType  *string `json:"service_type,omitempty"`
	Website      *string `json:"website,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty"`
	Location     *string `json:"location,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Position     *string `json:"position,omitempty"`
}

// TrimmedName returns the requested name, or "" when none was given.
func (u VendorUpdate) TrimmedName() string {
	if u.Name == nil {
		return ""
	}
	return strings.TrimSpace(*u.Name)
}

// Validate checks the fields that are present.
func (u VendorUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return NewValidationError("name", "vendor name is required")
	}
	if u.ServiceType != nil && strings.TrimSpace(*u.ServiceType) == "" {
		return NewValidationError("service_type", "service type is required")
	}
	if u.Website != nil && strings.TrimSpace(*u.Website) != "" {
		return validateWebsite(*u.Website)
	}
	return nil
}

// Apply patches v in place.
func (u VendorUpdate) Apply(v *Vendor, now time.Time) {
	setString(&v.Name, u.Name)
	setString(&v.Description, u.Description)
	setString(&v.ServiceType, u.ServiceType)
	setString(&v.Website, u.Website)
	setString(&v.LogoURL, u.LogoURL)
	setString(&v.Location, u.Location)
	setString(&v.ContactEmail, u.ContactEmail)
	setString(&v.Phone, u.Phone)
	if u.IsActive != nil {
		v.IsActive = *u.IsActive
	}
	v.UpdatedAt = now
}

// NewVendor builds an active vendor named name with the update applied.
func NewVendor(id, name string, u VendorUpdate, now time.Time) Vendor {
	v := Vendor{ID: id, IsActive: true, CreatedAt: now}
	u.Apply(&v, now)
	v.Name = strings.TrimSpace(name)
	return v
}

// VendorFilter narrows the vendor directory.
type VendorFilter struct {
	ServiceType string
	Search      string
	Limit       int
}
