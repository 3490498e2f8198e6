package ports

import (
	"context"
	"io"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// UploadInput describes a file to store. Path is relative to the caller's
// own folder inside Bucket.
type UploadInput struct {
	Bucket      string
	Path        string
	Body        io.Reader
	Size        int64
	ContentType string
}

// UploadResult is where an uploaded file ended up.
type UploadResult struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
	URL    string `json:"url"`
}

// CompanyDashboard is the company landing page payload.
type CompanyDashboard struct {
	Company    domain.Company      `json:"company"`
	Stats      domain.CompanyStats `json:"stats"`
	RecentJobs []*domain.Job       `json:"recent_jobs"`
}

// JobSeekerDashboard is the job seeker landing page payload.
type JobSeekerDashboard struct {
	JobSeeker  *domain.JobSeeker    `json:"job_seeker,omitempty"`
	RecentJobs []*domain.JobListing `json:"recent_jobs"`
}

// PortalService holds the profile, company, vendor, job-seeker and job
// mutations. Profile-side mutations return the patched view, which has
// already been written back to the cache.
type PortalService interface {
	UpdateProfile(ctx context.Context, view *domain.CompositeView, u domain.ProfileUpdate) (*domain.CompositeView, error)
	UpdateCompanyProfile(ctx context.Context, view *domain.CompositeView, u domain.CompanyUpdate) (*domain.CompositeView, error)
	UpdateVendorProfile(ctx context.Context, view *domain.CompositeView, u domain.VendorUpdate) (*domain.CompositeView, error)
	UpdateJobSeekerProfile(ctx context.Context, view *domain.CompositeView, u domain.JobSeekerUpdate) (*domain.CompositeView, error)

	UploadFile(ctx context.Context, view *domain.CompositeView, in UploadInput) (*UploadResult, error)
	DeleteFile(ctx context.Context, view *domain.CompositeView, bucket, path string) error

	CreateJob(ctx context.Context, view *domain.CompositeView, in domain.JobInput) (*domain.Job, error)
	UpdateJob(ctx context.Context, view *domain.CompositeView, jobID string, u domain.JobUpdate) (*domain.Job, error)
	DeleteJob(ctx context.Context, view *domain.CompositeView, jobID string) (int64, error)
	GetCompanyJobs(ctx context.Context, view *domain.CompositeView, filter domain.JobFilter) ([]*domain.Job, error)

	CompanyDashboard(ctx context.Context, view *domain.CompositeView) (*CompanyDashboard, error)
	JobSeekerDashboard(ctx context.Context, view *domain.CompositeView, limit int) (*JobSeekerDashboard, error)
	ListVendors(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error)
}
