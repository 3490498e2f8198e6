package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talentbridge/job-portal/internal/api/middleware"
	"github.com/talentbridge/job-portal/internal/core/domain"
)

func TestJobHandler_Create(t *testing.T) {
	e := newEcho()
	portal := &stubPortal{
		createJobFn: func(view *domain.CompositeView, in domain.JobInput) (*domain.Job, error) {
			if view.IdentityID() != "id-1" {
				t.Fatalf("unexpected view owner %s", view.IdentityID())
			}
			if in.Title != "Go engineer" || in.JobType != domain.JobContract || len(in.SkillsRequired) != 2 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Job{ID: "job-1", CompanyID: "co-1", Title: in.Title, IsActive: true}, nil
		},
	}
	handler := NewJobHandler(portal)

	c, rec := postJSON(e, "/v1/jobs", `{"title":"Go engineer","description":"Build services","location":"Remote",
		"job_type":"contract","skills_required":["go","mongodb"],"salary_min":100,"salary_max":200}`)
	c.Set(middleware.ViewKey, companyView("id-1"))

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var job domain.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if job.ID != "job-1" || job.CompanyID != "co-1" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestJobHandler_Create_RequiresSkills(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubPortal{})

	c, _ := postJSON(e, "/v1/jobs", `{"title":"Go engineer","description":"Build","location":"Remote"}`)
	c.Set(middleware.ViewKey, companyView("id-1"))

	err := handler.Create(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "skills_required" {
		t.Fatalf("expected skills_required validation error, got %v", err)
	}
}

func TestJobHandler_Create_WithoutView(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubPortal{})

	c, rec := postJSON(e, "/v1/jobs", `{}`)
	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJobHandler_List_ParsesQuery(t *testing.T) {
	e := newEcho()
	portal := &stubPortal{
		listJobsFn: func(view *domain.CompositeView, f domain.JobFilter) ([]*domain.Job, error) {
			if !f.ActiveOnly || f.Limit != 5 {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return nil, nil
		},
	}
	handler := NewJobHandler(portal)

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs?active=true&limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ViewKey, companyView("id-1"))

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "[]\n" {
		t.Fatalf("expected empty array, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestJobHandler_List_BadLimit(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubPortal{})

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs?limit=lots", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ViewKey, companyView("id-1"))

	if err := handler.List(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJobHandler_Update_PartialFields(t *testing.T) {
	e := newEcho()
	portal := &stubPortal{
		updateJobFn: func(view *domain.CompositeView, id string, u domain.JobUpdate) (*domain.Job, error) {
			if id != "job-1" {
				t.Fatalf("unexpected id %s", id)
			}
			if u.IsActive == nil || *u.IsActive || u.Title != nil {
				t.Fatalf("only is_active should be set: %+v", u)
			}
			if u.ExperienceLevel == nil || *u.ExperienceLevel != domain.LevelSenior {
				t.Fatalf("experience level not mapped: %+v", u)
			}
			return &domain.Job{ID: id, IsActive: false}, nil
		},
	}
	handler := NewJobHandler(portal)

	c, rec := postJSON(e, "/v1/jobs/job-1", `{"is_active":false,"experience_level":"senior"}`)
	c.SetParamNames("id")
	c.SetParamValues("job-1")
	c.Set(middleware.ViewKey, companyView("id-1"))

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJobHandler_Update_NotFound(t *testing.T) {
	e := newEcho()
	portal := &stubPortal{
		updateJobFn: func(view *domain.CompositeView, id string, u domain.JobUpdate) (*domain.Job, error) {
			return nil, domain.ErrJobNotFound
		},
	}
	handler := NewJobHandler(portal)

	c, _ := postJSON(e, "/v1/jobs/other", `{"title":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues("other")
	c.Set(middleware.ViewKey, companyView("id-1"))

	if err := handler.Update(c); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobHandler_Delete_ReportsCount(t *testing.T) {
	e := newEcho()
	portal := &stubPortal{
		deleteJobFn: func(view *domain.CompositeView, id string) (int64, error) {
			if id == "job-1" {
				return 1, nil
			}
			return 0, nil
		},
	}
	handler := NewJobHandler(portal)

	for id, want := range map[string]int64{"job-1": 1, "someone-elses": 0} {
		req := httptest.NewRequest(http.MethodDelete, "/v1/jobs/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		c.Set(middleware.ViewKey, companyView("id-1"))

		if err := handler.Delete(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		var resp deleteJobResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Deleted != want {
			t.Fatalf("%s: expected %d deleted, got %d", id, want, resp.Deleted)
		}
	}
}
