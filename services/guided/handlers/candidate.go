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
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/middleware"
	"github.com/guidedhq/guided/services/guided/store"
	"github.com/guidedhq/guided/services/guided/workflow"
)

// CandidateStatus reports where the candidate is in the workflow. The
// frontend uses this to decide which screen to show next.
func CandidateStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)

		cand, err := s.CandidateByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status":       datatypes.StatusRegistered,
				"hasOnboarded": false,
				"hasMentor":    false,
				"hasRoadmap":   false,
			})
			return
		}
		if err != nil {
			slog.Error("Candidate status lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       cand.Status,
			"hasOnboarded": cand.Status != datatypes.StatusRegistered,
			"hasMentor":    cand.MentorID != "",
			"hasRoadmap":   cand.RoadmapGenerated,
			"candidateId":  cand.ID,
		})
	}
}

// Onboarding saves the candidate's career goals and skill profile,
// creating the profile when signup did not (or updating it otherwise).
func Onboarding(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.OnboardingRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := body.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		claims := middleware.GetClaims(c)
		ctx := c.Request.Context()
		uid := claims.UserID

		_, err := s.CandidateByID(ctx, uid)
		switch {
		case err == nil:
			if err := s.UpdateOnboarding(ctx, uid, body); err != nil {
				slog.Error("Onboarding update failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		case errors.Is(err, store.ErrNotFound):
			name := body.Name
			if name == "" {
				name = claims.Name
			}
			email := body.Email
			if email == "" {
				email = claims.Email
			}
			if err := s.InsertCandidate(ctx, datatypes.Candidate{
				ID:              uid,
				CareerGoal:      body.CareerGoal,
				TargetRole:      body.TargetRole,
				TargetCompany:   body.TargetCompany,
				SkillLevel:      body.SkillLevel,
				ExperienceLevel: body.ExperienceLevel,
				ResumeUploaded:  body.ResumeUploaded,
				Name:            name,
				Email:           email,
				Status:          datatypes.StatusOnboarded,
				Roadmap:         []datatypes.RoadmapStep{},
				SkillGaps:       []datatypes.SkillGap{},
				Sessions:        []datatypes.Session{},
				ActionItems:     []datatypes.ActionItem{},
			}); err != nil {
				slog.Error("Onboarding insert failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		default:
			slog.Error("Onboarding lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		cand, err := s.CandidateByID(ctx, uid)
		if err != nil {
			slog.Error("Onboarding reload failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		name := cand.Name
		if name == "" {
			name = "Candidate"
		}
		s.RecordActivity(ctx, name+" completed onboarding", "signup")

		c.JSON(http.StatusOK, gin.H{
			"message":     "Onboarding complete",
			"candidateId": uid,
			"candidate":   cand,
		})
	}
}

// GetCandidate returns a candidate's full profile. Candidates may only
// read their own; admins may read any.
func GetCandidate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		candidateID := c.Param("candidateId")

		if claims.Role == datatypes.RoleCandidate && claims.UserID != candidateID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		cand, err := s.CandidateByID(c.Request.Context(), candidateID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		if err != nil {
			slog.Error("Candidate lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, cand)
	}
}

// Workflow returns the candidate's full dashboard: sessions with relative
// labels, roadmap, action items, next session, and weighted progress.
func Workflow(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		candidateID := c.Param("candidateId")

		if claims.Role == datatypes.RoleCandidate && claims.UserID != candidateID {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only view your own workflow"})
			return
		}

		ctx := c.Request.Context()
		cand, err := s.CandidateByID(ctx, candidateID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		if err != nil {
			slog.Error("Workflow lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		mentorName := ""
		if cand.MentorID != "" {
			if mentor, err := s.MentorByID(ctx, cand.MentorID); err == nil {
				mentorName = mentor.Name
			}
		}

		now := time.Now()
		overall, stats := workflow.Progress(cand)

		type sessionView struct {
			datatypes.Session
			Relative string `json:"relative"`
		}
		sessions := make([]sessionView, 0, len(cand.Sessions))
		for _, sess := range cand.Sessions {
			sessions = append(sessions, sessionView{
				Session:  sess,
				Relative: workflow.RelativeLabel(sess.Status, sess.Date, now),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"candidateId":     cand.ID,
			"mentorName":      mentorName,
			"status":          cand.Status,
			"sessions":        sessions,
			"actionItems":     cand.ActionItems,
			"roadmap":         cand.Roadmap,
			"nextSession":     workflow.FindNextSession(cand.Sessions, now),
			"overallProgress": overall,
			"stats":           stats,
		})
	}
}

// ToggleAction marks an action item as done or undone.
func ToggleAction(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.ToggleActionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := datatypes.ValidateBody(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		claims := middleware.GetClaims(c)
		if body.CandidateID != claims.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		ctx := c.Request.Context()
		cand, err := s.CandidateByID(ctx, claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		if err != nil {
			slog.Error("Toggle action lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		found := false
		completedCount := 0
		for i := range cand.ActionItems {
			if cand.ActionItems[i].ID == body.ActionItemID {
				cand.ActionItems[i].Completed = body.Completed
				found = true
			}
			if cand.ActionItems[i].Completed {
				completedCount++
			}
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "action item not found"})
			return
		}

		if err := s.ReplaceCandidate(ctx, cand); err != nil {
			slog.Error("Toggle action save failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":        "Updated",
			"actionItemId":   body.ActionItemID,
			"completed":      body.Completed,
			"completedCount": completedCount,
			"totalCount":     len(cand.ActionItems),
		})
	}
}

// CompleteSession marks a session as completed, stores optional notes,
// and auto-advances the roadmap proportionally to session completion.
func CompleteSession(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.CompleteSessionRequest
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
		cand, err := s.CandidateByID(ctx, claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		if err != nil {
			slog.Error("Complete session lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		var completedTitle string
		found := false
		for i := range cand.Sessions {
			if cand.Sessions[i].ID == body.SessionID {
				cand.Sessions[i].Status = "completed"
				if body.Notes != "" {
					cand.Sessions[i].Notes = body.Notes
				}
				completedTitle = cand.Sessions[i].Title
				found = true
				break
			}
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		workflow.AdvanceRoadmap(&cand)

		if err := s.ReplaceCandidate(ctx, cand); err != nil {
			slog.Error("Complete session save failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		completed := 0
		for _, sess := range cand.Sessions {
			if sess.Status == "completed" {
				completed++
			}
		}
		s.RecordActivity(ctx, cand.Name+" completed session: "+completedTitle, "session")

		c.JSON(http.StatusOK, gin.H{
			"message":           "Session completed",
			"sessionId":         body.SessionID,
			"completedSessions": completed,
			"totalSessions":     len(cand.Sessions),
		})
	}
}
