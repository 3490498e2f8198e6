package ports

import (
	"context"
	"time"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// ProfileRepository persists the profiles collection.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	// Create returns domain.ErrDuplicate when a profile with the same id exists.
	Create(ctx context.Context, p *domain.Profile) error
	Update(ctx context.Context, id string, u domain.ProfileUpdate, now time.Time) (*domain.Profile, error)
}

// CompanyRepository persists companies and their company_users memberships.
type CompanyRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	FindByName(ctx context.Context, name string) (*domain.Company, error)
	// Create returns domain.ErrDuplicate when the name is already taken.
	Create(ctx context.Context, c *domain.Company) error
	Update(ctx context.Context, id string, u domain.CompanyUpdate, now time.Time) (*domain.Company, error)
	Delete(ctx context.Context, id string) error

	FindMembership(ctx context.Context, profileID string) (*domain.CompanyMembership, error)
	// AddMember inserts or replaces the membership of m.ProfileID in m.CompanyID.
	AddMember(ctx context.Context, m *domain.CompanyMembership) error
}

// VendorRepository persists vendors and their vendor_users memberships.
type VendorRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Vendor, error)
	FindByName(ctx context.Context, name string) (*domain.Vendor, error)
	Create(ctx context.Context, v *domain.Vendor) error
	Update(ctx context.Context, id string, u domain.VendorUpdate, now time.Time) (*domain.Vendor, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error)

	FindMembership(ctx context.Context, profileID string) (*domain.VendorMembership, error)
	AddMember(ctx context.Context, m *domain.VendorMembership) error
}

// JobSeekerRepository persists the job_seekers collection.
type JobSeekerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.JobSeeker, error)
	Create(ctx context.Context, js *domain.JobSeeker) error
	Save(ctx context.Context, js *domain.JobSeeker) error
}

// JobRepository persists jobs. Every mutation is filtered by both job id and
// owning company id.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	ListByCompany(ctx context.Context, companyID string, filter domain.JobFilter) ([]*domain.Job, error)
	// Update returns domain.ErrJobNotFound when no job matches id and company.
	Update(ctx context.Context, companyID, jobID string, u domain.JobUpdate, now time.Time) (*domain.Job, error)
	// Delete reports how many rows matched id and company; zero is not an error.
	Delete(ctx context.Context, companyID, jobID string) (int64, error)
	Stats(ctx context.Context, companyID string) (*domain.CompanyStats, error)
	// ListActive returns active postings of every company, newest first.
	ListActive(ctx context.Context, limit int) ([]*domain.JobListing, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
