package api

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewRouter_RegistersRoutes(t *testing.T) {
	e := NewRouter(Dependencies{Log: zerolog.Nop()})

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"POST /auth/signup",
		"POST /auth/login",
		"POST /auth/confirm",
		"POST /auth/logout",
		"POST /auth/refresh",
		"GET /auth/me",
		"PATCH /v1/profile",
		"POST /v1/profile/refresh",
		"PUT /v1/company",
		"PUT /v1/vendor",
		"PUT /v1/job-seeker",
		"POST /v1/jobs",
		"GET /v1/jobs",
		"PATCH /v1/jobs/:id",
		"DELETE /v1/jobs/:id",
		"POST /v1/uploads/:bucket",
		"DELETE /v1/uploads/:bucket/*",
		"GET /v1/dashboard/company",
		"GET /v1/dashboard/job-seeker",
		"GET /v1/vendors",
		"GET /storage/:bucket/*",
		"GET /health",
		"GET /health/ready",
		"GET /metrics",
		"GET /swagger/*",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}
