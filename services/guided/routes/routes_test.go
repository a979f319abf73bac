// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/middleware"
	"github.com/guidedhq/guided/services/guided/roadmap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetupRoutes_RegistersAPISurface(t *testing.T) {
	router := gin.New()
	issuer := middleware.NewTokenIssuer("test-secret")

	// A nil store is fine for registration; no handler runs here.
	SetupRoutes(router, nil, issuer, roadmap.NewGenerator(nil))

	expected := []struct {
		method string
		path   string
	}{
		{"GET", "/"},
		{"GET", "/metrics"},
		{"POST", "/api/auth/signup"},
		{"POST", "/api/auth/login"},
		{"GET", "/api/auth/me"},
		{"GET", "/api/mentors"},
		{"GET", "/api/mentors/:mentorId"},
		{"GET", "/api/candidate/status"},
		{"POST", "/api/candidate/onboarding"},
		{"GET", "/api/candidate/:candidateId"},
		{"GET", "/api/candidate/:candidateId/workflow"},
		{"POST", "/api/candidate/generate-roadmap"},
		{"POST", "/api/candidate/regenerate-roadmap"},
		{"POST", "/api/candidate/checkout"},
		{"POST", "/api/candidate/request-mentor"},
		{"POST", "/api/candidate/toggle-action"},
		{"POST", "/api/candidate/complete-session"},
		{"GET", "/api/mentor/dashboard"},
		{"GET", "/api/mentor/dashboard/:mentorId"},
		{"GET", "/api/mentor/requests"},
		{"POST", "/api/mentor/accept"},
		{"POST", "/api/mentor/decline"},
		{"POST", "/api/mentor/verify"},
		{"GET", "/api/mentor/verification-status"},
		{"GET", "/api/admin/dashboard"},
		{"GET", "/api/admin/pending-mentors"},
		{"POST", "/api/admin/verify-mentor"},
		{"POST", "/api/admin/reject-mentor"},
		{"GET", "/api/admin/mentors"},
		{"POST", "/api/admin/mentors/enable"},
		{"POST", "/api/admin/mentors/disable"},
		{"GET", "/api/admin/mentees"},
		{"GET", "/api/admin/mentees/:menteeId"},
		{"GET", "/api/admin/mentorships"},
		{"POST", "/api/admin/allocate-mentor"},
		{"POST", "/api/admin/flag-mentorship"},
		{"GET", "/api/admin/metrics"},
		{"GET", "/api/admin/charts/mentee-status"},
		{"GET", "/api/admin/charts/growth"},
	}

	registered := router.Routes()
	for _, want := range expected {
		found := false
		for _, r := range registered {
			if r.Method == want.method && r.Path == want.path {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("route %s %s not registered", want.method, want.path)
		}
	}
}

func TestSetupRoutes_ProtectedRoutesRequireAuth(t *testing.T) {
	router := gin.New()
	issuer := middleware.NewTokenIssuer("test-secret")
	SetupRoutes(router, nil, issuer, roadmap.NewGenerator(nil))

	protected := []struct {
		method string
		path   string
	}{
		{"GET", "/api/auth/me"},
		{"GET", "/api/mentors"},
		{"GET", "/api/candidate/status"},
		{"GET", "/api/mentor/dashboard"},
		{"GET", "/api/admin/dashboard"},
	}

	for _, p := range protected {
		req := httptest.NewRequest(p.method, p.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: got %d, want 401", p.method, p.path, w.Code)
		}
	}
}

func TestSetupRoutes_HealthIsPublic(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, nil, middleware.NewTokenIssuer("test-secret"), roadmap.NewGenerator(nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("health check returned %d, want 200", w.Code)
	}
}
