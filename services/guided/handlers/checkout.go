// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/middleware"
	"github.com/guidedhq/guided/services/guided/roadmap"
	"github.com/guidedhq/guided/services/guided/store"
	"github.com/guidedhq/guided/services/guided/workflow"
)

// platformFeeRate is the platform's cut on top of the session subtotal.
const platformFeeRate = 0.1

// Checkout finalises mentor selection and starts the mentorship.
//
// Validates that the mentor is available, generates the session schedule,
// action items, and a roadmap where missing, links the candidate to the
// mentor, creates a pending mentorship request, and prices the 8-session
// package (subtotal plus 10% platform fee).
func Checkout(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.CheckoutRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := datatypes.ValidateBody(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		claims := middleware.GetClaims(c)
		ctx := c.Request.Context()

		mentor, err := s.MentorByID(ctx, body.MentorID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
			return
		}
		if err != nil {
			slog.Error("Checkout mentor lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !mentor.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "this mentor is not currently available"})
			return
		}

		candidateID := body.CandidateID
		if candidateID == "" {
			candidateID = claims.UserID
		}
		if candidateID != claims.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only checkout for yourself"})
			return
		}

		cand, err := s.CandidateByID(ctx, candidateID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found, complete onboarding first"})
			return
		}
		if err != nil {
			slog.Error("Checkout candidate lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		subtotal := mentor.PricePerSession * workflow.SessionsPerPackage
		platformFee := math.Round(subtotal * platformFeeRate)
		total := subtotal + platformFee

		domain := roadmap.DetectDomain(cand.TargetRole, cand.CareerGoal)
		now := time.Now()

		if len(cand.Sessions) == 0 {
			cand.Sessions = workflow.GenerateSessions(mentor.Name, cand.TargetRole, domain, now)
		}
		if len(cand.ActionItems) == 0 {
			cand.ActionItems = workflow.GenerateActionItems(domain, now)
		}

		cand.MentorID = mentor.ID
		cand.Status = datatypes.StatusMentorshipActive

		// Checkout without a roadmap gets the template one; the AI path
		// stays behind the explicit generate endpoints.
		if !cand.RoadmapGenerated {
			cand.Roadmap, cand.SkillGaps = roadmap.FromTemplate(cand)
			cand.RoadmapGenerated = true
		}

		if err := s.ReplaceCandidate(ctx, cand); err != nil {
			slog.Error("Checkout save failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		name := cand.Name
		if name == "" {
			name = claims.Name
		}
		if err := s.InsertRequest(ctx, datatypes.MentorRequest{
			ID:            datatypes.NewID(datatypes.PrefixRequest),
			CandidateName: name,
			CandidateGoal: cand.CareerGoal,
			Experience:    cand.ExperienceLevel,
			Status:        "pending",
			SubmittedAt:   now.Format("2006-01-02"),
			CandidateID:   candidateID,
			MentorID:      body.MentorID,
		}); err != nil {
			slog.Error("Checkout request insert failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := s.IncrementMentorSessions(ctx, mentor.ID, workflow.SessionsPerPackage); err != nil {
			slog.Warn("Failed to bump mentor session count", "error", err, "mentor_id", mentor.ID)
		}

		s.RecordActivity(ctx, fmt.Sprintf("Payment: $%.0f — %s x %s (%d sessions)",
			total, name, mentor.Name, workflow.SessionsPerPackage), "payment")

		c.JSON(http.StatusOK, gin.H{
			"message":       "Mentorship confirmed",
			"mentorId":      mentor.ID,
			"mentorName":    mentor.Name,
			"sessionsCount": workflow.SessionsPerPackage,
			"subtotal":      subtotal,
			"platformFee":   platformFee,
			"total":         total,
			"sessions":      cand.Sessions,
		})
	}
}
