package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

const (
	dashboardRecentJobs = 10
	jobSeekerFeedJobs   = 6
	defaultJobLimit     = 50
	maxListLimit        = 100
)

// ViewStore receives views patched by a mutation.
type ViewStore interface {
	Store(ctx context.Context, view *domain.CompositeView)
}

type portalService struct {
	repos    Repositories
	storage  ports.ObjectStorage
	views    ViewStore
	accounts accounts
	log      zerolog.Logger
	now      func() time.Time
}

// NewPortalService returns a PortalService implementation.
func NewPortalService(repos Repositories, storage ports.ObjectStorage, views ViewStore, log zerolog.Logger) ports.PortalService {
	return &portalService{
		repos:    repos,
		storage:  storage,
		views:    views,
		accounts: accounts{companies: repos.Companies, vendors: repos.Vendors, log: log},
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *portalService) UpdateProfile(ctx context.Context, view *domain.CompositeView, u domain.ProfileUpdate) (*domain.CompositeView, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if u.Empty() {
		return view, nil
	}

	p, err := s.repos.Profiles.Update(ctx, view.IdentityID(), u, s.now())
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	out := view.WithProfile(*p)
	s.views.Store(ctx, out)
	return out, nil
}

func (s *portalService) UpdateCompanyProfile(ctx context.Context, view *domain.CompositeView, u domain.CompanyUpdate) (*domain.CompositeView, error) {
	if view.Profile().Role != domain.RoleCompany {
		return nil, domain.ErrRoleMismatch
	}
	now := s.now()
	if err := u.Validate(now); err != nil {
		return nil, err
	}

	acc, ok := view.Company()
	if !ok {
		name := u.TrimmedName()
		if name == "" {
			return nil, domain.NewValidationError("name", "company name is required")
		}
		created, err := s.accounts.attachCompany(ctx, view.IdentityID(), name, positionOr(u.Position), u, now)
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("identity_id", view.IdentityID()).Str("company_id", created.Company.ID).Msg("company attached")
		return s.storeAccount(ctx, view, *created)
	}

	if !acc.Membership.IsAdmin {
		return nil, domain.ErrForbidden
	}
	c, err := s.repos.Companies.Update(ctx, acc.Company.ID, u, now)
	if err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	acc.Company = *c
	if u.Position != nil {
		acc.Membership.Position = strings.TrimSpace(*u.Position)
		if err := s.repos.Companies.AddMember(ctx, &acc.Membership); err != nil {
			return nil, fmt.Errorf("update company membership: %w", err)
		}
	}
	return s.storeAccount(ctx, view, acc)
}

func (s *portalService) UpdateVendorProfile(ctx context.Context, view *domain.CompositeView, u domain.VendorUpdate) (*domain.CompositeView, error) {
	if view.Profile().Role != domain.RoleVendor {
		return nil, domain.ErrRoleMismatch
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	now := s.now()

	acc, ok := view.Vendor()
	if !ok {
		name := u.TrimmedName()
		if name == "" {
			return nil, domain.NewValidationError("name", "vendor name is required")
		}
		if u.ServiceType == nil {
			return nil, domain.NewValidationError("service_type", "service type is required")
		}
		created, err := s.accounts.attachVendor(ctx, view.IdentityID(), name, positionOr(u.Position), u, now)
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("identity_id", view.IdentityID()).Str("vendor_id", created.Vendor.ID).Msg("vendor attached")
		return s.storeAccount(ctx, view, *created)
	}

	v, err := s.repos.Vendors.Update(ctx, acc.Vendor.ID, u, now)
	if err != nil {
		return nil, fmt.Errorf("update vendor: %w", err)
	}
	acc.Vendor = *v
	if u.Position != nil {
		acc.Membership.Position = strings.TrimSpace(*u.Position)
		if err := s.repos.Vendors.AddMember(ctx, &acc.Membership); err != nil {
			return nil, fmt.Errorf("update vendor membership: %w", err)
		}
	}
	return s.storeAccount(ctx, view, acc)
}

func (s *portalService) UpdateJobSeekerProfile(ctx context.Context, view *domain.CompositeView, u domain.JobSeekerUpdate) (*domain.CompositeView, error) {
	if view.Profile().Role != domain.RoleJobSeeker {
		return nil, domain.ErrRoleMismatch
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	now := s.now()

	var js domain.JobSeeker
	if acc, ok := view.JobSeeker(); ok {
		js = acc.JobSeeker
	} else {
		found, err := ensureJobSeeker(ctx, s.repos.JobSeekers, view.IdentityID(), now)
		if err != nil {
			return nil, err
		}
		js = *found
	}

	u.Apply(&js, now)
	if err := s.repos.JobSeekers.Save(ctx, &js); err != nil {
		return nil, fmt.Errorf("save job seeker: %w", err)
	}
	return s.storeAccount(ctx, view, domain.JobSeekerAccount{JobSeeker: js})
}

func (s *portalService) storeAccount(ctx context.Context, view *domain.CompositeView, acc domain.Account) (*domain.CompositeView, error) {
	out, err := view.WithAccount(acc)
	if err != nil {
		return nil, err
	}
	s.views.Store(ctx, out)
	return out, nil
}

// UploadFile stores the file under the caller's own folder of the bucket,
// replacing whatever was there, and returns its public URL.
func (s *portalService) UploadFile(ctx context.Context, view *domain.CompositeView, in ports.UploadInput) (*ports.UploadResult, error) {
	key, err := objectKey(view.IdentityID(), in.Bucket, in.Path)
	if err != nil {
		return nil, err
	}
	if in.Body == nil || in.Size == 0 {
		return nil, domain.NewValidationError("file", "file is empty")
	}
	if limit, _ := domain.UploadLimit(in.Bucket); in.Size > limit {
		return nil, domain.NewValidationError("file", fmt.Sprintf("file exceeds %d MB limit", limit>>20))
	}

	if err := s.storage.Upload(ctx, in.Bucket, key, in.Body, in.ContentType); err != nil {
		return nil, fmt.Errorf("%w: upload %s/%s: %w", domain.ErrStorage, in.Bucket, key, err)
	}
	return &ports.UploadResult{
		Bucket: in.Bucket,
		Path:   key,
		URL:    s.storage.PublicURL(in.Bucket, key),
	}, nil
}

func (s *portalService) DeleteFile(ctx context.Context, view *domain.CompositeView, bucket, p string) error {
	key, err := objectKey(view.IdentityID(), bucket, p)
	if err != nil {
		return err
	}
	if err := s.storage.Remove(ctx, bucket, key); err != nil {
		return fmt.Errorf("%w: remove %s/%s: %w", domain.ErrStorage, bucket, key, err)
	}
	return nil
}

// objectKey scopes p to the owner's folder. Paths already carrying the
// owner prefix are accepted as-is; anything escaping it is rejected.
func objectKey(owner, bucket, p string) (string, error) {
	if _, ok := domain.UploadLimit(bucket); !ok {
		return "", domain.NewValidationError("bucket", "unknown bucket")
	}
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "", domain.NewValidationError("path", "path is required")
	}
	clean := path.Clean("/" + p)[1:]
	if clean == "" || clean != strings.TrimPrefix(p, "/") {
		return "", domain.NewValidationError("path", "path must not contain relative segments")
	}
	clean = strings.TrimPrefix(clean, owner+"/")
	return owner + "/" + clean, nil
}

func (s *portalService) company(view *domain.CompositeView) (domain.CompanyAccount, error) {
	acc, ok := view.Company()
	if !ok {
		return acc, domain.ErrNoCompany
	}
	return acc, nil
}

func (s *portalService) CreateJob(ctx context.Context, view *domain.CompositeView, in domain.JobInput) (*domain.Job, error) {
	acc, err := s.company(view)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	job := domain.NewJob(uuid.NewString(), acc.Company.ID, in, s.now())
	if err := s.repos.Jobs.Create(ctx, &job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.log.Info().Str("job_id", job.ID).Str("company_id", job.CompanyID).Msg("job created")
	return &job, nil
}

func (s *portalService) UpdateJob(ctx context.Context, view *domain.CompositeView, jobID string, u domain.JobUpdate) (*domain.Job, error) {
	acc, err := s.company(view)
	if err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return s.repos.Jobs.Update(ctx, acc.Company.ID, jobID, u.Normalize(), s.now())
}

// DeleteJob returns how many jobs were removed. A job owned by another
// company matches nothing and yields zero.
func (s *portalService) DeleteJob(ctx context.Context, view *domain.CompositeView, jobID string) (int64, error) {
	acc, err := s.company(view)
	if err != nil {
		return 0, err
	}
	n, err := s.repos.Jobs.Delete(ctx, acc.Company.ID, jobID)
	if err != nil {
		return 0, fmt.Errorf("delete job: %w", err)
	}
	return n, nil
}

func (s *portalService) GetCompanyJobs(ctx context.Context, view *domain.CompositeView, filter domain.JobFilter) ([]*domain.Job, error) {
	acc, err := s.company(view)
	if err != nil {
		return nil, err
	}
	filter.Limit = clampLimit(filter.Limit)
	return s.repos.Jobs.ListByCompany(ctx, acc.Company.ID, filter)
}

func (s *portalService) CompanyDashboard(ctx context.Context, view *domain.CompositeView) (*ports.CompanyDashboard, error) {
	acc, err := s.company(view)
	if err != nil {
		return nil, err
	}
	stats, err := s.repos.Jobs.Stats(ctx, acc.Company.ID)
	if err != nil {
		return nil, fmt.Errorf("company stats: %w", err)
	}
	recent, err := s.repos.Jobs.ListByCompany(ctx, acc.Company.ID, domain.JobFilter{Limit: dashboardRecentJobs})
	if err != nil {
		return nil, fmt.Errorf("recent jobs: %w", err)
	}
	return &ports.CompanyDashboard{Company: acc.Company, Stats: *stats, RecentJobs: recent}, nil
}

// JobSeekerDashboard returns the newest active postings of every company
// together with the caller's candidate record.
func (s *portalService) JobSeekerDashboard(ctx context.Context, view *domain.CompositeView, limit int) (*ports.JobSeekerDashboard, error) {
	if view.Profile().Role != domain.RoleJobSeeker {
		return nil, domain.ErrRoleMismatch
	}
	if limit <= 0 {
		limit = jobSeekerFeedJobs
	}
	jobs, err := s.repos.Jobs.ListActive(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("active jobs: %w", err)
	}

	out := &ports.JobSeekerDashboard{RecentJobs: jobs}
	if acc, ok := view.JobSeeker(); ok {
		js := acc.JobSeeker
		out.JobSeeker = &js
	}
	return out, nil
}

func (s *portalService) ListVendors(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error) {
	filter.ServiceType = strings.TrimSpace(filter.ServiceType)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Limit = clampLimit(filter.Limit)
	return s.repos.Vendors.ListActive(ctx, filter)
}

func clampLimit(n int) int {
	if n <= 0 {
		return defaultJobLimit
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
