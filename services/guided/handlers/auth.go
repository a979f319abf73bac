// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the HTTP handlers for the guided service.
// Each handler is a closure over its dependencies, registered in routes.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/middleware"
	"github.com/guidedhq/guided/services/guided/store"
)

// Health confirms the backend is running.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "GUIDED backend running",
			"version":  "4.0.0",
			"database": "MongoDB",
		})
	}
}

// Signup registers a new user account.
//
// Candidates get an empty candidate profile created automatically; mentors
// are queued for admin verification and start unverified. The response
// includes a token so the user is logged in immediately.
func Signup(s *store.Store, issuer *middleware.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.SignupRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := body.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		if _, err := s.UserByEmail(ctx, body.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			slog.Error("Signup lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		uid := datatypes.NewID(datatypes.PrefixUser)
		// Mentors need admin approval before going live.
		verified := body.Role != datatypes.RoleMentor

		user := datatypes.UserAccount{
			ID:           uid,
			Email:        body.Email,
			Name:         body.Name,
			PasswordHash: issuer.HashPassword(body.Password),
			Role:         body.Role,
			Verified:     verified,
			LinkedinURL:  body.LinkedinURL,
			CreatedAt:    time.Now().Format("2006-01-02"),
		}
		if err := s.InsertUser(ctx, user); err != nil {
			slog.Error("Signup insert failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		switch body.Role {
		case datatypes.RoleMentor:
			role := body.LinkedinURL
			if role == "" {
				role = "Pending verification"
			}
			if err := s.InsertVerification(ctx, datatypes.PendingVerification{
				ID:          uid,
				Name:        body.Name,
				Role:        role,
				SubmittedAt: time.Now().Format("2006-01-02"),
				LinkedinURL: body.LinkedinURL,
				UserID:      uid,
			}); err != nil {
				slog.Error("Signup verification insert failed", "error", err)
			}
			s.RecordActivity(ctx, "New mentor application: "+body.Name, "signup")

		case datatypes.RoleCandidate:
			if err := s.InsertCandidate(ctx, datatypes.Candidate{
				ID:          uid,
				Name:        body.Name,
				Email:       body.Email,
				Status:      datatypes.StatusRegistered,
				Roadmap:     []datatypes.RoadmapStep{},
				SkillGaps:   []datatypes.SkillGap{},
				Sessions:    []datatypes.Session{},
				ActionItems: []datatypes.ActionItem{},
			}); err != nil {
				slog.Error("Signup candidate insert failed", "error", err)
			}
		}

		token, err := issuer.Issue(user)
		if err != nil {
			slog.Error("Token issue failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		slog.Info("User registered", "user_id", uid, "role", body.Role)
		c.JSON(http.StatusOK, gin.H{
			"message": "Account created",
			"token":   token,
			"user": gin.H{
				"id":       uid,
				"email":    body.Email,
				"name":     body.Name,
				"role":     body.Role,
				"verified": verified,
			},
		})
	}
}

// Login authenticates a user with email and password.
func Login(s *store.Store, issuer *middleware.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.LoginRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := body.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := s.UserByEmail(c.Request.Context(), body.Email)
		if err != nil || user.PasswordHash != issuer.HashPassword(body.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		token, err := issuer.Issue(user)
		if err != nil {
			slog.Error("Token issue failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user": gin.H{
				"id":       user.ID,
				"email":    user.Email,
				"name":     user.Name,
				"role":     user.Role,
				"verified": user.Verified,
			},
		})
	}
}

// Me returns the authenticated user's profile. The verified flag comes
// from the database so an admin approval takes effect without re-login.
func Me(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)

		verified := claims.Verified
		if user, err := s.UserByID(c.Request.Context(), claims.UserID); err == nil {
			verified = user.Verified
		}

		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"email":    claims.Email,
			"name":     claims.Name,
			"role":     claims.Role,
			"verified": verified,
		})
	}
}
