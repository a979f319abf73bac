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
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/store"
	"github.com/guidedhq/guided/services/guided/workflow"
)

// menteeStatus derives the admin-facing lifecycle bucket for a mentee.
func menteeStatus(c datatypes.Candidate) string {
	hasMentor := c.MentorID != ""
	hasRoadmap := len(c.Roadmap) > 0
	switch {
	case hasMentor && hasRoadmap:
		return "mentor_assigned"
	case hasRoadmap:
		return "roadmap_generated"
	case hasMentor:
		return "in_progress"
	default:
		return "unassigned"
	}
}

// initials returns the two-letter avatar monogram for a display name.
func initials(name string) string {
	if name == "" {
		return "??"
	}
	if len(name) > 2 {
		name = name[:2]
	}
	return strings.ToUpper(name)
}

// averageRating is the mean mentor rating, rounded to one decimal.
func averageRating(mentors []datatypes.Mentor) float64 {
	sum := 0.0
	for _, m := range mentors {
		sum += m.Rating
	}
	return math.Round(sum/float64(max(len(mentors), 1))*10) / 10
}

// countCompletedSessions sums completed sessions across every mentee.
func countCompletedSessions(candidates []datatypes.Candidate) int {
	total := 0
	for _, cand := range candidates {
		for _, sess := range cand.Sessions {
			if sess.Status == "completed" {
				total++
			}
		}
	}
	return total
}

// revenueSummary folds accepted mentorships into the platform revenue
// block: each accepted package earns the mentor's rate over eight sessions
// plus the 10% platform fee. The change figure is a growth placeholder
// scaled by request volume.
func revenueSummary(requests []datatypes.MentorRequest, mentors []datatypes.Mentor) gin.H {
	byID := make(map[string]datatypes.Mentor, len(mentors))
	for _, m := range mentors {
		byID[m.ID] = m
	}

	accepted := 0
	total := 0.0
	for _, r := range requests {
		if r.Status != "accepted" {
			continue
		}
		accepted++
		if m, ok := byID[r.MentorID]; ok {
			total += m.PricePerSession * workflow.SessionsPerPackage * (1 + platformFeeRate)
		}
	}
	total = math.Round(total)

	return gin.H{
		"total":        total,
		"change":       fmt.Sprintf("+%d%%", len(requests)*3),
		"transactions": accepted,
		"avgValue":     math.Round(total/float64(max(accepted, 1))*100) / 100,
	}
}

// AdminDashboard aggregates the platform-wide stats, the mentor roster and
// request/verification queues, the revenue summary, and the recent
// activity feed.
func AdminDashboard(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		totalUsers, err := s.CountUsers(ctx)
		if err != nil {
			slog.Error("Admin dashboard user count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		activeMentorships, err := s.CountRequestsByStatus(ctx, "accepted")
		if err != nil {
			slog.Error("Admin dashboard mentorship count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		candidates, err := s.AllCandidates(ctx)
		if err != nil {
			slog.Error("Admin dashboard mentee list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		mentors, err := s.AllMentors(ctx)
		if err != nil {
			slog.Error("Admin dashboard mentor list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		requests, err := s.AllRequests(ctx)
		if err != nil {
			slog.Error("Admin dashboard request list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		verifications, err := s.AllVerifications(ctx)
		if err != nil {
			slog.Error("Admin dashboard verification list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		activity, err := s.RecentActivity(ctx, 15)
		if err != nil {
			slog.Error("Admin dashboard activity failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if mentors == nil {
			mentors = []datatypes.Mentor{}
		}
		if requests == nil {
			requests = []datatypes.MentorRequest{}
		}
		if verifications == nil {
			verifications = []datatypes.PendingVerification{}
		}
		if activity == nil {
			activity = []datatypes.ActivityEntry{}
		}

		c.JSON(http.StatusOK, gin.H{
			"platformStats": gin.H{
				"totalUsers":           totalUsers,
				"activeMentorships":    activeMentorships,
				"pendingVerifications": len(verifications),
				"completedSessions":    countCompletedSessions(candidates),
				"avgRating":            averageRating(mentors),
				"successRate":          87,
			},
			"mentors":              mentors,
			"mentorRequests":       requests,
			"pendingVerifications": verifications,
			"recentActivity":       activity,
			"revenue":              revenueSummary(requests, mentors),
		})
	}
}

// VerifyMentor approves a pending mentor application, verifies the linked
// user account, and creates their marketplace profile.
func VerifyMentor(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.VerifyMentorRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := datatypes.ValidateBody(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		v, err := s.VerificationByID(ctx, body.MentorID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pending mentor not found"})
			return
		}
		if err != nil {
			slog.Error("Verify mentor lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := s.DeleteVerification(ctx, v.ID); err != nil {
			slog.Error("Verify mentor dequeue failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if v.UserID != "" {
			if err := s.SetUserVerified(ctx, v.UserID, true); err != nil {
				slog.Error("Verify mentor user update failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}

			if err := s.InsertMentor(ctx, datatypes.Mentor{
				ID:              datatypes.NewID(datatypes.PrefixMentor),
				Name:            v.Name,
				Role:            "Verified Mentor",
				Company:         "Independent",
				Avatar:          initials(v.Name),
				Experience:      max(v.Experience, 1),
				Domain:          "Software Engineering",
				PricePerSession: 75,
				Available:       true,
				Rating:          5,
				Sessions:        0,
				Bio:             "Verified mentor. LinkedIn: " + v.LinkedinURL,
				Verified:        true,
				UserID:          v.UserID,
			}); err != nil {
				slog.Error("Verify mentor profile insert failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}

		s.RecordActivity(ctx, "Mentor verified: "+v.Name, "admin")
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Mentor '%s' verified successfully", v.Name),
		})
	}
}

// RejectMentor removes a pending mentor application and marks the linked
// user account as rejected.
func RejectMentor(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.RejectMentorRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := datatypes.ValidateBody(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		v, err := s.VerificationByID(ctx, body.MentorID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pending mentor not found"})
			return
		}
		if err != nil {
			slog.Error("Reject mentor lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := s.DeleteVerification(ctx, v.ID); err != nil {
			slog.Error("Reject mentor dequeue failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if v.UserID != "" {
			if err := s.RejectUser(ctx, v.UserID, body.Reason); err != nil {
				slog.Error("Reject mentor user update failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}

		activity := "Mentor application rejected: " + v.Name
		if body.Reason != "" {
			activity += " — Reason: " + body.Reason
		}
		s.RecordActivity(ctx, activity, "admin")

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Mentor '%s' rejected", v.Name),
		})
	}
}

// PendingMentors lists the mentor applications waiting for review.
func PendingMentors(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		verifications, err := s.AllVerifications(ctx)
		if err != nil {
			slog.Error("Pending mentors list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		pending := make([]gin.H, 0, len(verifications))
		for _, v := range verifications {
			uid := v.UserID
			if uid == "" {
				uid = v.ID
			}
			email := "unknown@example.com"
			if user, err := s.UserByID(ctx, uid); err == nil {
				email = user.Email
			}
			pending = append(pending, gin.H{
				"id":          v.ID,
				"name":        v.Name,
				"email":       email,
				"avatar":      initials(v.Name),
				"role":        v.Role,
				"experience":  v.Experience,
				"submittedAt": v.SubmittedAt,
				"linkedinUrl": v.LinkedinURL,
				"userId":      v.UserID,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"pendingMentors": pending,
			"total":          len(pending),
		})
	}
}

// mentorAdminView is the management-view row for one mentor: contact and
// marketplace fields plus the current accepted-mentorship workload.
func mentorAdminView(m datatypes.Mentor, workload int64) gin.H {
	email := strings.ToLower(strings.ReplaceAll(m.Name, " ", ".")) + "@example.com"
	if m.UserID != "" {
		email = m.UserID + "@guided.dev"
	}
	avatar := m.Avatar
	if avatar == "" {
		avatar = initials(m.Name)
	}
	return gin.H{
		"id":              m.ID,
		"name":            m.Name,
		"email":           email,
		"avatar":          avatar,
		"expertise":       []string{m.Domain},
		"experience":      fmt.Sprintf("%d years", m.Experience),
		"price":           m.PricePerSession,
		"verified":        m.Verified,
		"enabled":         m.Available,
		"currentWorkload": workload,
		"maxWorkload":     5,
		"bio":             m.Bio,
		"rating":          m.Rating,
		"totalSessions":   m.Sessions,
		"role":            m.Role,
		"company":         m.Company,
	}
}

// AdminMentors lists every mentor profile with workload and contact info
// for the admin management view.
func AdminMentors(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		mentors, err := s.AllMentors(ctx)
		if err != nil {
			slog.Error("Admin mentors list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		out := make([]gin.H, 0, len(mentors))
		for _, m := range mentors {
			workload, err := s.CountAcceptedForMentor(ctx, m.ID)
			if err != nil {
				slog.Error("Admin mentors workload count failed", "error", err, "mentor_id", m.ID)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			out = append(out, mentorAdminView(m, workload))
		}

		c.JSON(http.StatusOK, gin.H{
			"mentors": out,
			"total":   len(out),
		})
	}
}

// menteeView is the admin projection of one mentee, shared by the list and
// detail endpoints. The roadmap payload carries milestone rows plus a
// roadmap-only progress percentage; the weighted workflow progress stays on
// the candidate's own dashboard.
func menteeView(cand datatypes.Candidate) gin.H {
	milestones := make([]gin.H, 0, len(cand.Roadmap))
	completedSteps := 0
	for _, step := range cand.Roadmap {
		status := "pending"
		switch step.Status {
		case "completed":
			status = "completed"
			completedSteps++
		case "current":
			status = "in_progress"
		}
		milestones = append(milestones, gin.H{
			"id":          step.ID,
			"title":       step.Title,
			"description": step.Description,
			"status":      status,
			"dueDate":     step.Duration,
		})
	}

	var roadmapData gin.H
	if len(cand.Roadmap) > 0 {
		role := cand.TargetRole
		if role == "" {
			role = "career goal"
		}
		company := cand.TargetCompany
		if company == "" {
			company = "target companies"
		}
		skills := make([]string, 0, len(cand.SkillGaps))
		for _, g := range cand.SkillGaps {
			skills = append(skills, g.Skill)
		}
		roadmapData = gin.H{
			"summary":         fmt.Sprintf("Personalized roadmap for %s at %s.", role, company),
			"skillGaps":       skills,
			"milestones":      milestones,
			"currentProgress": int(math.Round(float64(completedSteps) / float64(len(cand.Roadmap)) * 100)),
		}
	}

	name := cand.Name
	if name == "" {
		name = "Unknown"
	}
	joinedAt := cand.CreatedAt
	if joinedAt == "" {
		joinedAt = "2025-01-01"
	}
	return gin.H{
		"id":         cand.ID,
		"name":       name,
		"email":      cand.Email,
		"avatar":     initials(cand.Name),
		"targetRole": cand.TargetRole,
		"careerGoal": cand.CareerGoal,
		"resumeUrl":  "#resume",
		"status":     menteeStatus(cand),
		"mentorId":   cand.MentorID,
		"roadmap":    roadmapData,
		"joinedAt":   joinedAt,
	}
}

// AdminMentees lists every mentee with their derived lifecycle status and
// roadmap projection.
func AdminMentees(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		candidates, err := s.AllCandidates(ctx)
		if err != nil {
			slog.Error("Admin mentees list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		out := make([]gin.H, 0, len(candidates))
		for _, cand := range candidates {
			out = append(out, menteeView(cand))
		}

		c.JSON(http.StatusOK, gin.H{
			"mentees": out,
			"total":   len(out),
		})
	}
}

// AdminGetMentee returns a single mentee in the same shape as the list
// view.
func AdminGetMentee(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cand, err := s.CandidateByID(ctx, c.Param("menteeId"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentee not found"})
			return
		}
		if err != nil {
			slog.Error("Admin mentee lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, menteeView(cand))
	}
}

// mentorshipView is the monitoring row for one mentorship request:
// lifecycle status plus session progress from the mentee's schedule.
func mentorshipView(r datatypes.MentorRequest, sessions []datatypes.Session) gin.H {
	status := "paused"
	switch r.Status {
	case "accepted":
		status = "active"
	case "declined":
		status = "completed"
	}

	totalSessions := workflow.SessionsPerPackage
	if len(sessions) > 0 {
		totalSessions = len(sessions)
	}
	sessionsCompleted := 0
	lastSessionDate := ""
	for _, sess := range sessions {
		if sess.Status == "completed" {
			sessionsCompleted++
			lastSessionDate = sess.Date
		}
	}

	menteeName := r.CandidateName
	if menteeName == "" {
		menteeName = "Unknown"
	}
	return gin.H{
		"id":                r.ID,
		"menteeId":          r.CandidateID,
		"mentorId":          r.MentorID,
		"menteeName":        menteeName,
		"menteeGoal":        r.CandidateGoal,
		"status":            status,
		"startDate":         r.SubmittedAt,
		"lastSessionDate":   lastSessionDate,
		"sessionsCompleted": sessionsCompleted,
		"totalSessions":     totalSessions,
		"flagged":           r.Flagged,
		"flagReason":        r.FlagReason,
	}
}

// AdminMentorships lists every mentorship with its lifecycle status and
// session progress.
func AdminMentorships(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		requests, err := s.AllRequests(ctx)
		if err != nil {
			slog.Error("Admin mentorships list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		out := make([]gin.H, 0, len(requests))
		for _, r := range requests {
			var sessions []datatypes.Session
			if r.CandidateID != "" {
				if cand, err := s.CandidateByID(ctx, r.CandidateID); err == nil {
					sessions = cand.Sessions
				}
			}
			out = append(out, mentorshipView(r, sessions))
		}

		c.JSON(http.StatusOK, gin.H{
			"mentorships": out,
			"total":       len(out),
		})
	}
}

// EnableMentor puts a mentor back in the marketplace.
func EnableMentor(s *store.Store) gin.HandlerFunc {
	return setMentorAvailability(s, true, "enabled")
}

// DisableMentor hides a mentor from the marketplace.
func DisableMentor(s *store.Store) gin.HandlerFunc {
	return setMentorAvailability(s, false, "disabled")
}

func setMentorAvailability(s *store.Store, available bool, verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.MentorToggleRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := datatypes.ValidateBody(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		err := s.SetMentorAvailable(ctx, body.MentorID, available)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
			return
		}
		if err != nil {
			slog.Error("Mentor availability update failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		s.RecordActivity(ctx, fmt.Sprintf("Admin %s mentor %s", verb, body.MentorID), "admin")
		c.JSON(http.StatusOK, gin.H{
			"message":  "Mentor " + verb,
			"mentorId": body.MentorID,
			"enabled":  available,
		})
	}
}

// AllocateMentor manually assigns a mentor to a mentee, bypassing the
// marketplace checkout. The mentorship starts in the accepted state.
func AllocateMentor(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.AllocateMentorRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := datatypes.ValidateBody(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		cand, err := s.CandidateByID(ctx, body.MenteeID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentee not found"})
			return
		}
		if err != nil {
			slog.Error("Allocate mentee lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		mentor, err := s.MentorByID(ctx, body.MentorID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
			return
		}
		if err != nil {
			slog.Error("Allocate mentor lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := s.LinkMentor(ctx, cand.ID, mentor.ID); err != nil {
			slog.Error("Allocate link failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		requestID := datatypes.NewID(datatypes.PrefixRequest)
		if err := s.InsertRequest(ctx, datatypes.MentorRequest{
			ID:            requestID,
			CandidateName: cand.Name,
			CandidateGoal: cand.CareerGoal,
			Experience:    cand.ExperienceLevel,
			Status:        "accepted",
			SubmittedAt:   time.Now().Format("2006-01-02"),
			CandidateID:   cand.ID,
			MentorID:      mentor.ID,
		}); err != nil {
			slog.Error("Allocate request insert failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		s.RecordActivity(ctx, fmt.Sprintf("Admin allocated %s to %s", mentor.Name, cand.Name), "admin")
		c.JSON(http.StatusOK, gin.H{
			"message":      "Mentor allocated",
			"mentorshipId": requestID,
			"menteeId":     cand.ID,
			"mentorId":     mentor.ID,
		})
	}
}

// FlagMentorship marks a mentorship for manual review.
func FlagMentorship(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.FlagMentorshipRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := datatypes.ValidateBody(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reason := body.Reason
		if reason == "" {
			reason = "Flagged by admin for review"
		}

		ctx := c.Request.Context()
		err := s.FlagRequest(ctx, body.MentorshipID, reason)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentorship not found"})
			return
		}
		if err != nil {
			slog.Error("Flag mentorship failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		s.RecordActivity(ctx, "Mentorship flagged: "+body.MentorshipID, "admin")
		c.JSON(http.StatusOK, gin.H{
			"message":      "Mentorship flagged",
			"mentorshipId": body.MentorshipID,
			"flagReason":   reason,
		})
	}
}
