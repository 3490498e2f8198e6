package handler

import (
	"context"
	"io"
	"strings"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

type stubSessions struct {
	ready      bool
	signUpFn   func(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error)
	signInFn   func(ctx context.Context, email, password string) (*ports.SignInResult, error)
	confirmFn  func(ctx context.Context, token string) (*ports.SignInResult, error)
	currentFn  func(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error)
	refreshFn  func(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error)
	signedOut  []string
	signOutIDs []string
}

func (s *stubSessions) Ready() bool { return s.ready }

func (s *stubSessions) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubSessions) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	return s.signUpFn(ctx, in)
}

func (s *stubSessions) ConfirmEmail(ctx context.Context, token string) (*ports.SignInResult, error) {
	return s.confirmFn(ctx, token)
}

func (s *stubSessions) SignOut(_ context.Context, token, identityID string) {
	s.signedOut = append(s.signedOut, token)
	s.signOutIDs = append(s.signOutIDs, identityID)
}

func (s *stubSessions) Current(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error) {
	return s.currentFn(ctx, identity)
}

func (s *stubSessions) Refresh(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error) {
	return s.refreshFn(ctx, identity)
}

type stubTokens struct {
	identities map[string]domain.Identity
	refreshFn  func(ctx context.Context, token string) (*domain.Session, error)
}

func (s *stubTokens) IdentityFromToken(_ context.Context, token string) (*domain.Identity, error) {
	id, ok := s.identities[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &id, nil
}

func (s *stubTokens) RefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	return s.refreshFn(ctx, token)
}

// stubPortal embeds the interface so each test only fills in the calls it
// expects; anything else panics.
type stubPortal struct {
	ports.PortalService
	updateProfileFn func(view *domain.CompositeView, u domain.ProfileUpdate) (*domain.CompositeView, error)
	updateCompanyFn func(view *domain.CompositeView, u domain.CompanyUpdate) (*domain.CompositeView, error)
	createJobFn     func(view *domain.CompositeView, in domain.JobInput) (*domain.Job, error)
	updateJobFn     func(view *domain.CompositeView, id string, u domain.JobUpdate) (*domain.Job, error)
	deleteJobFn     func(view *domain.CompositeView, id string) (int64, error)
	listJobsFn      func(view *domain.CompositeView, f domain.JobFilter) ([]*domain.Job, error)
	uploadFn        func(view *domain.CompositeView, in ports.UploadInput, body []byte) (*ports.UploadResult, error)
	deleteFileFn    func(view *domain.CompositeView, bucket, path string) error
	listVendorsFn   func(f domain.VendorFilter) ([]*domain.Vendor, error)
	seekerDashFn    func(view *domain.CompositeView, limit int) (*ports.JobSeekerDashboard, error)
}

func (s *stubPortal) UpdateProfile(_ context.Context, view *domain.CompositeView, u domain.ProfileUpdate) (*domain.CompositeView, error) {
	return s.updateProfileFn(view, u)
}

func (s *stubPortal) UpdateCompanyProfile(_ context.Context, view *domain.CompositeView, u domain.CompanyUpdate) (*domain.CompositeView, error) {
	return s.updateCompanyFn(view, u)
}

func (s *stubPortal) CreateJob(_ context.Context, view *domain.CompositeView, in domain.JobInput) (*domain.Job, error) {
	return s.createJobFn(view, in)
}

func (s *stubPortal) UpdateJob(_ context.Context, view *domain.CompositeView, id string, u domain.JobUpdate) (*domain.Job, error) {
	return s.updateJobFn(view, id, u)
}

func (s *stubPortal) DeleteJob(_ context.Context, view *domain.CompositeView, id string) (int64, error) {
	return s.deleteJobFn(view, id)
}

func (s *stubPortal) GetCompanyJobs(_ context.Context, view *domain.CompositeView, f domain.JobFilter) ([]*domain.Job, error) {
	return s.listJobsFn(view, f)
}

func (s *stubPortal) UploadFile(_ context.Context, view *domain.CompositeView, in ports.UploadInput) (*ports.UploadResult, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	return s.uploadFn(view, in, body)
}

func (s *stubPortal) DeleteFile(_ context.Context, view *domain.CompositeView, bucket, path string) error {
	return s.deleteFileFn(view, bucket, path)
}

func (s *stubPortal) ListVendors(_ context.Context, f domain.VendorFilter) ([]*domain.Vendor, error) {
	return s.listVendorsFn(f)
}

func (s *stubPortal) JobSeekerDashboard(_ context.Context, view *domain.CompositeView, limit int) (*ports.JobSeekerDashboard, error) {
	return s.seekerDashFn(view, limit)
}

type stubStorage struct {
	ports.ObjectStorage
	objects map[string]string
}

func (s *stubStorage) Open(_ context.Context, bucket, path string) (*ports.StoredObject, error) {
	body, ok := s.objects[bucket+"/"+path]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return &ports.StoredObject{
		Body:        io.NopCloser(strings.NewReader(body)),
		ContentType: "text/plain",
		Size:        int64(len(body)),
	}, nil
}

func companyView(id string) *domain.CompositeView {
	v, _ := domain.NewView(
		domain.Profile{ID: id, Email: id + "@example.com", FullName: "Ada", Role: domain.RoleCompany},
		domain.CompanyAccount{
			Company:    domain.Company{ID: "co-1", Name: "Acme"},
			Membership: domain.CompanyMembership{ProfileID: id, CompanyID: "co-1", IsAdmin: true},
		},
	)
	return v
}
