// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testUser = datatypes.UserAccount{
	ID:       "u-12345678",
	Email:    "candidate@guided.dev",
	Name:     "Test Candidate",
	Role:     datatypes.RoleCandidate,
	Verified: true,
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-12345678", claims.UserID)
	assert.Equal(t, "candidate@guided.dev", claims.Email)
	assert.Equal(t, datatypes.RoleCandidate, claims.Role)
	assert.Equal(t, "Test Candidate", claims.Name)
	assert.True(t, claims.Verified)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	issuer.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }

	token, err := issuer.Issue(testUser)
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	require.Error(t, err)
	assert.Equal(t, "token expired", err.Error())
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Issue(testUser)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Validate(token)
	require.Error(t, err)
	assert.Equal(t, "invalid token signature", err.Error())
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	_, err := issuer.Validate("not.a.token")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	h1 := issuer.HashPassword("password")
	h2 := issuer.HashPassword("password")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // hex sha256

	assert.NotEqual(t, h1, issuer.HashPassword("other"))
	assert.NotEqual(t, h1, NewTokenIssuer("other-secret").HashPassword("password"))
}

func authedRequest(t *testing.T, issuer *TokenIssuer, router *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	router := gin.New()
	router.GET("/protected", Authenticate(issuer), func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})

	token, err := issuer.Issue(testUser)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"tampered token", "Bearer " + token + "x", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := authedRequest(t, issuer, router, tc.header)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	router := gin.New()
	router.GET("/protected",
		Authenticate(issuer),
		RequireRole(datatypes.RoleAdmin, datatypes.RoleMentor),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	adminToken, err := issuer.Issue(datatypes.UserAccount{ID: "u-admin", Role: datatypes.RoleAdmin})
	require.NoError(t, err)
	candToken, err := issuer.Issue(testUser)
	require.NoError(t, err)

	w := authedRequest(t, issuer, router, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = authedRequest(t, issuer, router, "Bearer "+candToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "requires role: admin or mentor")
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	router := gin.New()
	router.GET("/protected", RequireRole(datatypes.RoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
