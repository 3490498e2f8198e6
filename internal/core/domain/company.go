package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const minFoundedYear = 1800

// Company is an employer organisation.
type Company struct {
	ID                 string            `json:"id" bson:"_id"`
	Name               string            `json:"name" bson:"name"`
	Description        string            `json:"description,omitempty" bson:"description,omitempty"`
	Website            string            `json:"website,omitempty" bson:"website,omitempty"`
	LogoURL            string            `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	Industry           string            `json:"industry,omitempty" bson:"industry,omitempty"`
	CompanySize        string            `json:"company_size,omitempty" bson:"company_size,omitempty"`
	Location           string            `json:"location,omitempty" bson:"location,omitempty"`
	Headquarters       string            `json:"headquarters,omitempty" bson:"headquarters,omitempty"`
	FoundedYear        *int              `json:"founded_year,omitempty" bson:"founded_year,omitempty"`
	IsVerified         bool              `json:"is_verified" bson:"is_verified"`
	Benefits           []string          `json:"benefits" bson:"benefits"`
	CompanyCulture     string            `json:"company_culture,omitempty" bson:"company_culture,omitempty"`
	SocialMedia        map[string]string `json:"social_media" bson:"social_media"`
	EmployeeCountRange string            `json:"employee_count_range,omitempty" bson:"employee_count_range,omitempty"`
	CreatedAt          time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" bson:"updated_at"`
}

// CompanyMembership links a profile to a company.
type CompanyMembership struct {
	ProfileID string    `json:"profile_id" bson:"profile_id"`
	CompanyID string    `json:"company_id" bson:"company_id"`
	Position  string    `json:"position,omitempty" bson:"position,omitempty"`
	IsAdmin   bool      `json:"is_admin" bson:"is_admin"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CompanyUpdate is a partial company change; nil fields are untouched.
type CompanyUpdate struct {
	Name               *string            `json:"name,omitempty"`
	Description        *string            `json:"description,omitempty"`
	Website            *string            `json:"website,omitempty"`
	LogoURL            *string            `json:"logo_url,omitempty"`
	Industry           *string            `json:"industry,omitempty"`
	CompanySize        *string            `json:"company_size,omitempty"`
	Location           *string            `json:"location,omitempty"`
	Headquarters       *string            `json:"headquarters,omitempty"`
	FoundedYear        *int               `json:"founded_year,omitempty"`
	Benefits           *[]string          `json:"benefits,omitempty"`
	CompanyCulture     *string            `json:"company_culture,omitempty"`
	SocialMedia        *map[string]string `json:"social_media,omitempty"`
	EmployeeCountRange *string            `json:"employee_count_range,omitempty"`
	Position           *string            `json:"position,omitempty"`
}

// TrimmedName returns the requested name, or "" when none was given.
func (u CompanyUpdate) TrimmedName() string {
	if u.Name == nil {
		return ""
	}
	return strings.TrimSpace(*u.Name)
}

// Validate checks the fields that are present. now bounds founded_year.
func (u CompanyUpdate) Validate(now time.Time) error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return NewValidationError("name", "company name is required")
	}
	if u.Website != nil && strings.TrimSpace(*u.Website) != "" {
		if err := validateWebsite(*u.Website); err != nil {
			return err
		}
	}
	if u.FoundedYear != nil {
		if y := *u.FoundedYear; y < minFoundedYear || y > now.Year() {
			return NewValidationError("founded_year",
				fmt.Sprintf("must be a year between %d and %d", minFoundedYear, now.Year()))
		}
	}
	return nil
}

// Apply patches c in place.
func (u CompanyUpdate) Apply(c *Company, now time.Time) {
	setString(&c.Name, u.Name)
	setString(&c.Description, u.Description)
	setString(&c.Website, u.Website)
	setString(&c.LogoURL, u.LogoURL)
	setString(&c.Industry, u.Industry)
	setString(&c.CompanySize, u.CompanySize)
	setString(&c.Location, u.Location)
	setString(&c.Headquarters, u.Headquarters)
	if u.FoundedYear != nil {
		y := *u.FoundedYear
		c.FoundedYear = &y
	}
	if u.Benefits != nil {
		c.Benefits = cleanList(*u.Benefits)
	}
	setString(&c.CompanyCulture, u.CompanyCulture)
	if u.SocialMedia != nil {
		c.SocialMedia = make(map[string]string, len(*u.SocialMedia))
		for k, v := range *u.SocialMedia {
			c.SocialMedia[k] = v
		}
	}
	setString(&c.EmployeeCountRange, u.EmployeeCountRange)
	c.UpdatedAt = now
}

// NewCompany builds a fresh company named name with the update applied.
func NewCompany(id, name string, u CompanyUpdate, now time.Time) Company {
	c := Company{
		ID:          id,
		Benefits:    []string{},
		SocialMedia: map[string]string{},
		CreatedAt:   now,
	}
	u.Apply(&c, now)
	c.Name = strings.TrimSpace(name)
	return c
}

func validateWebsite(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return NewValidationError("website", "must be a valid URL (e.g. https://example.com)")
	}
	return nil
}

// cleanList trims entries and drops blanks and duplicates, keeping order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
