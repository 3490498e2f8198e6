package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubIdentityRepo struct {
	byID map[string]*domain.Identity
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*domain.Identity)}
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	for _, existing := range r.byID {
		if existing.Email == identity.Email {
			return nil, domain.ErrIdentityExists
		}
	}
	clone := *identity
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, i := range r.byID {
		if i.Email == email {
			clone := *i
			return &clone, nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubIdentityRepo) MarkConfirmed(_ context.Context, id string, at time.Time) error {
	i, ok := r.byID[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	i.ConfirmedAt = &at
	return nil
}

type stubProfileRepo struct {
	byID      map[string]*domain.Profile
	creates   int
	findErr   error
	createErr error
	missFirst bool // first FindByID reports not found, as if a racing insert landed after it
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byID: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.byID[id]
	if !ok || r.missFirst {
		r.missFirst = false
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byID[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.creates++
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProfileRepo) Update(_ context.Context, id string, u domain.ProfileUpdate, now time.Time) (*domain.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	u.Apply(p, now)
	clone := *p
	return &clone, nil
}

type stubCompanyRepo struct {
	byID         map[string]*domain.Company
	members      map[string]*domain.CompanyMembership
	addMemberErr error
	deleted      []string
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{
		byID:    make(map[string]*domain.Company),
		members: make(map[string]*domain.CompanyMembership),
	}
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id string) (*domain.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) FindByName(_ context.Context, name string) (*domain.Company, error) {
	for _, c := range r.byID {
		if strings.EqualFold(c.Name, name) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (r *stubCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	if _, err := r.FindByName(ctx, c.Name); err == nil {
		return domain.ErrDuplicate
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCompanyRepo) Update(_ context.Context, id string, u domain.CompanyUpdate, now time.Time) (*domain.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	u.Apply(c, now)
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubCompanyRepo) FindMembership(_ context.Context, profileID string) (*domain.CompanyMembership, error) {
	m, ok := r.members[profileID]
	if !ok {
		return nil, domain.ErrMembershipNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubCompanyRepo) AddMember(_ context.Context, m *domain.CompanyMembership) error {
	if r.addMemberErr != nil {
		return r.addMemberErr
	}
	clone := *m
	r.members[m.ProfileID] = &clone
	return nil
}

type stubVendorRepo struct {
	byID         map[string]*domain.Vendor
	members      map[string]*domain.VendorMembership
	addMemberErr error
	lastFilter   domain.VendorFilter
}

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{
		byID:    make(map[string]*domain.Vendor),
		members: make(map[string]*domain.VendorMembership),
	}
}

func (r *stubVendorRepo) FindByID(_ context.Context, id string) (*domain.Vendor, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrVendorNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVendorRepo) FindByName(_ context.Context, name string) (*domain.Vendor, error) {
	for _, v := range r.byID {
		if strings.EqualFold(v.Name, name) {
			clone := *v
			return &clone, nil
		}
	}
	return nil, domain.ErrVendorNotFound
}

func (r *stubVendorRepo) Create(ctx context.Context, v *domain.Vendor) error {
	if _, err := r.FindByName(ctx, v.Name); err == nil {
		return domain.ErrDuplicate
	}
	clone := *v
	r.byID[v.ID] = &clone
	return nil
}

func (r *stubVendorRepo) Update(_ context.Context, id string, u domain.VendorUpdate, now time.Time) (*domain.Vendor, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrVendorNotFound
	}
	u.Apply(v, now)
	clone := *v
	return &clone, nil
}

func (r *stubVendorRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubVendorRepo) ListActive(_ context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error) {
	r.lastFilter = filter
	var out []*domain.Vendor
	for _, v := range r.byID {
		if !v.IsActive {
			continue
		}
		if filter.ServiceType != "" && v.ServiceType != filter.ServiceType {
			continue
		}
		clone := *v
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubVendorRepo) FindMembership(_ context.Context, profileID string) (*domain.VendorMembership, error) {
	m, ok := r.members[profileID]
	if !ok {
		return nil, domain.ErrMembershipNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubVendorRepo) AddMember(_ context.Context, m *domain.VendorMembership) error {
	if r.addMemberErr != nil {
		return r.addMemberErr
	}
	clone := *m
	r.members[m.ProfileID] = &clone
	return nil
}

type stubJobSeekerRepo struct {
	byID    map[string]*domain.JobSeeker
	creates int
}

func newStubJobSeekerRepo() *stubJobSeekerRepo {
	return &stubJobSeekerRepo{byID: make(map[string]*domain.JobSeeker)}
}

func (r *stubJobSeekerRepo) FindByID(_ context.Context, id string) (*domain.JobSeeker, error) {
	js, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobSeekerNotFound
	}
	clone := *js
	return &clone, nil
}

func (r *stubJobSeekerRepo) Create(_ context.Context, js *domain.JobSeeker) error {
	if _, ok := r.byID[js.ID]; ok {
		return domain.ErrDuplicate
	}
	r.creates++
	clone := *js
	r.byID[js.ID] = &clone
	return nil
}

func (r *stubJobSeekerRepo) Save(_ context.Context, js *domain.JobSeeker) error {
	clone := *js
	r.byID[js.ID] = &clone
	return nil
}

type stubJobRepo struct {
	byID      map[string]*domain.Job
	companies map[string]domain.CompanySummary
	createErr error
	listErr   error
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{
		byID:      make(map[string]*domain.Job),
		companies: make(map[string]domain.CompanySummary),
	}
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *job
	r.byID[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) ListByCompany(_ context.Context, companyID string, filter domain.JobFilter) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, j := range r.byID {
		if j.CompanyID != companyID || (filter.ActiveOnly && !j.IsActive) {
			continue
		}
		clone := *j
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, companyID, jobID string, u domain.JobUpdate, now time.Time) (*domain.Job, error) {
	j, ok := r.byID[jobID]
	if !ok || j.CompanyID != companyID {
		return nil, domain.ErrJobNotFound
	}
	if err := u.Apply(j, now); err != nil {
		return nil, err
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) Delete(_ context.Context, companyID, jobID string) (int64, error) {
	j, ok := r.byID[jobID]
	if !ok || j.CompanyID != companyID {
		return 0, nil
	}
	delete(r.byID, jobID)
	return 1, nil
}

func (r *stubJobRepo) Stats(_ context.Context, companyID string) (*domain.CompanyStats, error) {
	var s domain.CompanyStats
	for _, j := range r.byID {
		if j.CompanyID != companyID {
			continue
		}
		s.TotalJobs++
		if j.IsActive {
			s.ActiveJobs++
		}
		s.TotalApplications += int64(j.ApplicationsCount)
	}
	return &s, nil
}

func (r *stubJobRepo) ListActive(_ context.Context, limit int) ([]*domain.JobListing, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.JobListing
	for _, j := range r.byID {
		if !j.IsActive {
			continue
		}
		l := &domain.JobListing{Job: *j}
		if c, ok := r.companies[j.CompanyID]; ok {
			l.Company = &c
		}
		out = append(out, l)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubJobRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, j := range r.byID {
		if j.IsActive && j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now) {
			j.IsActive = false
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Cache, storage, denylist and event stubs
// ---------------------------------------------------------------------------

type stubViewCache struct {
	mu      sync.Mutex
	entries map[string]ports.CachedView
	loadErr error
}

func newStubViewCache() *stubViewCache {
	return &stubViewCache{entries: make(map[string]ports.CachedView)}
}

func (c *stubViewCache) Load(_ context.Context, identityID string) (*ports.CachedView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	e, ok := c.entries[identityID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (c *stubViewCache) Store(_ context.Context, view *domain.CompositeView, checkedAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[view.IdentityID()] = ports.CachedView{View: view, CheckedAt: checkedAt}
	return nil
}

func (c *stubViewCache) Invalidate(_ context.Context, identityID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, identityID)
	return nil
}

func (c *stubViewCache) has(identityID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[identityID]
	return ok
}

type memStorage struct {
	objects   map[string][]byte
	types     map[string]string
	uploadErr error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (s *memStorage) Upload(_ context.Context, bucket, path string, r io.Reader, contentType string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[bucket+"/"+path] = b
	s.types[bucket+"/"+path] = contentType
	return nil
}

func (s *memStorage) PublicURL(bucket, path string) string {
	return "http://files.test/storage/" + bucket + "/" + path
}

func (s *memStorage) Open(_ context.Context, bucket, path string) (*ports.StoredObject, error) {
	b, ok := s.objects[bucket+"/"+path]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return &ports.StoredObject{
		Body:        io.NopCloser(bytes.NewReader(b)),
		ContentType: s.types[bucket+"/"+path],
		Size:        int64(len(b)),
	}, nil
}

func (s *memStorage) Remove(_ context.Context, bucket, path string) error {
	if _, ok := s.objects[bucket+"/"+path]; !ok {
		return domain.ErrObjectNotFound
	}
	delete(s.objects, bucket+"/"+path)
	return nil
}

type stubDenylist struct {
	revoked map[string]time.Time
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.revoked[tokenID] = until
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := d.revoked[tokenID]
	return ok, nil
}

type stubEvents struct {
	mu         sync.Mutex
	published  []domain.AuthEvent
	subscribes int
	ch         chan domain.AuthEvent
	onPublish  func(domain.AuthEvent) // delivers inline, like a local subscriber
}

func newStubEvents() *stubEvents {
	return &stubEvents{ch: make(chan domain.AuthEvent, 16)}
}

func (e *stubEvents) Publish(_ context.Context, ev domain.AuthEvent) error {
	e.mu.Lock()
	e.published = append(e.published, ev)
	deliver := e.onPublish
	e.mu.Unlock()
	if deliver != nil {
		deliver(ev)
	}
	return nil
}

func (e *stubEvents) Subscribe(_ context.Context) (<-chan domain.AuthEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribes++
	return e.ch, nil
}

func (e *stubEvents) types() []domain.AuthEventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.AuthEventType, 0, len(e.published))
	for _, ev := range e.published {
		out = append(out, ev.Type)
	}
	return out
}

// countingResolver counts backend resolutions.
type countingResolver struct {
	inner ViewResolver
	calls int
	err   error
}

func (r *countingResolver) Resolve(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.inner.Resolve(ctx, identity)
}

// recordingScheduler collects scheduled identities instead of running them.
type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []string
}

func (s *recordingScheduler) Schedule(identity domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, identity.ID)
}

func (s *recordingScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scheduled)
}

// inlineScheduler revalidates on the caller's goroutine.
type inlineScheduler struct {
	views *CachedResolver
}

func (s inlineScheduler) Schedule(identity domain.Identity) {
	_, _ = s.views.Revalidate(context.Background(), identity)
}

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newRepos() (Repositories, *stubProfileRepo, *stubCompanyRepo, *stubVendorRepo, *stubJobSeekerRepo, *stubJobRepo) {
	profiles := newStubProfileRepo()
	companies := newStubCompanyRepo()
	vendors := newStubVendorRepo()
	seekers := newStubJobSeekerRepo()
	jobs := newStubJobRepo()
	return Repositories{
		Profiles:   profiles,
		Companies:  companies,
		Vendors:    vendors,
		JobSeekers: seekers,
		Jobs:       jobs,
	}, profiles, companies, vendors, seekers, jobs
}
