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
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/middleware"
	"github.com/guidedhq/guided/services/guided/store"
	"github.com/guidedhq/guided/services/guided/workflow"
)

// upcomingSession is one row in the mentor dashboard's session list.
type upcomingSession struct {
	ID     string `json:"id"`
	Mentee string `json:"mentee"`
	Topic  string `json:"topic"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// buildMentorDashboard assembles the dashboard payload from the mentor's
// requests and mentee profiles. The upcomingSessions stat counts every
// upcoming session across mentees; the displayed list shows the next five.
func buildMentorDashboard(mentor datatypes.Mentor, requests []datatypes.MentorRequest,
	mentees []datatypes.Candidate) gin.H {

	accepted := 0
	responded := 0
	for _, r := range requests {
		if r.Status != "pending" {
			responded++
		}
		if r.Status == "accepted" {
			accepted++
		}
	}

	var upcoming []upcomingSession
	completedSessions := 0
	recentMentees := make([]gin.H, 0, len(mentees))
	for _, m := range mentees {
		completedForMentee := 0
		for _, sess := range m.Sessions {
			switch sess.Status {
			case "upcoming":
				upcoming = append(upcoming, upcomingSession{
					ID: sess.ID, Mentee: m.Name, Topic: sess.Title, Date: sess.Date, Time: sess.Time,
				})
			case "completed":
				completedForMentee++
			}
		}
		completedSessions += completedForMentee

		totalSess := len(m.Sessions)
		if totalSess == 0 {
			totalSess = workflow.SessionsPerPackage
		}
		goal := m.CareerGoal
		if goal == "" {
			goal = m.TargetRole
		}
		recentMentees = append(recentMentees, gin.H{
			"id":                m.ID,
			"name":              m.Name,
			"goal":              goal,
			"progress":          int(math.Round(float64(completedForMentee) / float64(totalSess) * 100)),
			"sessionsCompleted": completedForMentee,
			"totalSessions":     totalSess,
		})
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })

	upcomingCount := len(upcoming)
	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}
	if upcoming == nil {
		upcoming = []upcomingSession{}
	}
	if requests == nil {
		requests = []datatypes.MentorRequest{}
	}

	responseRate := 100
	if len(requests) > 0 {
		responseRate = int(math.Round(float64(responded) / float64(len(requests)) * 100))
	}

	return gin.H{
		"mentorId":   mentor.ID,
		"mentorName": mentor.Name,
		"mentorStats": gin.H{
			"activeMentees":     len(mentees),
			"completedSessions": completedSessions + mentor.Sessions,
			"upcomingSessions":  upcomingCount,
			"rating":            mentor.Rating,
			"earnings":          float64(accepted) * mentor.PricePerSession * workflow.SessionsPerPackage,
			"responseRate":      responseRate,
		},
		"upcomingSessions": upcoming,
		"recentMentees":    recentMentees,
		"mentorRequests":   requests,
	}
}

// MentorDashboard assembles the mentor's home view: activity stats,
// upcoming sessions across mentees, mentee progress cards, and the full
// request list. Mentors without a marketplace profile yet get an empty
// dashboard rather than an error.
func MentorDashboard(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		ctx := c.Request.Context()

		// Admins can view a specific mentor's dashboard by id; mentors get
		// their own.
		var mentor datatypes.Mentor
		var err error
		if mentorID := c.Param("mentorId"); mentorID != "" {
			mentor, err = s.MentorByID(ctx, mentorID)
		} else {
			mentor, err = s.MentorByUserID(ctx, claims.UserID)
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"mentorId":   "",
				"mentorName": claims.Name,
				"mentorStats": gin.H{
					"activeMentees":     0,
					"completedSessions": 0,
					"upcomingSessions":  0,
					"rating":            0,
					"earnings":          0,
					"responseRate":      100,
				},
				"upcomingSessions": []gin.H{},
				"recentMentees":    []gin.H{},
				"mentorRequests":   []datatypes.MentorRequest{},
			})
			return
		}
		if err != nil {
			slog.Error("Mentor dashboard lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		requests, err := s.RequestsByMentor(ctx, mentor.ID)
		if err != nil {
			slog.Error("Mentor dashboard requests failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// Mentees come from accepted requests and direct admin assignments.
		menteeIDs := map[string]struct{}{}
		for _, r := range requests {
			if r.Status == "accepted" && r.CandidateID != "" {
				menteeIDs[r.CandidateID] = struct{}{}
			}
		}
		direct, err := s.CandidatesByMentor(ctx, mentor.ID)
		if err != nil {
			slog.Error("Mentor dashboard mentees failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		for _, d := range direct {
			menteeIDs[d.ID] = struct{}{}
		}

		ids := make([]string, 0, len(menteeIDs))
		for id := range menteeIDs {
			ids = append(ids, id)
		}
		mentees, err := s.CandidatesByIDs(ctx, ids)
		if err != nil {
			slog.Error("Mentor dashboard mentee load failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, buildMentorDashboard(mentor, requests, mentees))
	}
}

// MentorRequests lists the mentorship requests addressed to this mentor.
func MentorRequests(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		ctx := c.Request.Context()

		mentorID := ""
		if mentor, err := s.MentorByUserID(ctx, claims.UserID); err == nil {
			mentorID = mentor.ID
		}

		requests, err := s.RequestsByMentor(ctx, mentorID)
		if err != nil {
			slog.Error("Mentor requests failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if requests == nil {
			requests = []datatypes.MentorRequest{}
		}

		c.JSON(http.StatusOK, gin.H{
			"mentorId": mentorID,
			"requests": requests,
			"total":    len(requests),
		})
	}
}

// AcceptMentorship accepts a pending request. Only verified mentors may
// accept. The response includes a Google Calendar link for the first
// session, scheduled three days out at 10:00.
func AcceptMentorship(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.MentorshipActionRequest
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

		if user, err := s.UserByID(ctx, claims.UserID); err == nil && !user.Verified {
			c.JSON(http.StatusForbidden, gin.H{"error": "you must be verified before accepting mentees"})
			return
		}

		req, err := s.RequestByID(ctx, body.MentorshipID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		if err != nil {
			slog.Error("Accept lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if req.Status != "pending" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("cannot accept — status is %q", req.Status)})
			return
		}

		mentorID := ""
		if mentor, err := s.MentorByUserID(ctx, claims.UserID); err == nil {
			mentorID = mentor.ID
		}
		if req.MentorID != "" && req.MentorID != mentorID {
			c.JSON(http.StatusForbidden, gin.H{"error": "this request is not for you"})
			return
		}

		if err := s.SetRequestStatus(ctx, body.MentorshipID, "accepted"); err != nil {
			slog.Error("Accept update failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		s.RecordActivity(ctx, fmt.Sprintf("%s accepted mentorship from %s", claims.Name, req.CandidateName), "session")

		// First session three days out at 10:00 local.
		now := time.Now()
		firstSession := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location()).AddDate(0, 0, 3)

		goal := req.CandidateGoal
		if goal == "" {
			goal = "Career mentorship"
		}
		title := fmt.Sprintf("GUIDED Mentorship: %s ↔ %s", claims.Name, req.CandidateName)
		description := fmt.Sprintf(
			"Mentorship Session — GUIDED Platform\n\n"+
				"Mentor: %s\nMentee: %s\nGoal: %s\n\n"+
				"Agenda:\n"+
				"• Introduction & goal alignment\n"+
				"• Skill gap assessment\n"+
				"• Roadmap discussion\n"+
				"• Next steps & action items\n\n"+
				"Scheduled via GUIDED Mentorship Platform",
			claims.Name, req.CandidateName, goal)
		calendarURL := workflow.CalendarEventURL(title, description, firstSession, 60,
			"Google Meet (link will be shared via email)")

		req.Status = "accepted"
		c.JSON(http.StatusOK, gin.H{
			"message":     "Mentorship accepted",
			"request":     req,
			"calendarUrl": calendarURL,
			"sessionDetails": gin.H{
				"date":          firstSession.Format("January 02, 2006"),
				"time":          firstSession.Format("03:04 PM"),
				"mentorName":    claims.Name,
				"candidateName": req.CandidateName,
			},
		})
	}
}

// DeclineMentorship declines a pending request.
func DeclineMentorship(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.MentorshipActionRequest
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

		req, err := s.RequestByID(ctx, body.MentorshipID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		if err != nil {
			slog.Error("Decline lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if req.Status != "pending" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("cannot decline — status is %q", req.Status)})
			return
		}

		mentorID := ""
		if mentor, err := s.MentorByUserID(ctx, claims.UserID); err == nil {
			mentorID = mentor.ID
		}
		if req.MentorID != "" && req.MentorID != mentorID {
			c.JSON(http.StatusForbidden, gin.H{"error": "this request is not for you"})
			return
		}

		if err := s.SetRequestStatus(ctx, body.MentorshipID, "declined"); err != nil {
			slog.Error("Decline update failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		req.Status = "declined"
		c.JSON(http.StatusOK, gin.H{"message": "Mentorship declined", "request": req})
	}
}

// SubmitVerification records (or refreshes) the mentor's LinkedIn URL for
// admin review.
func SubmitVerification(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.VerificationSubmitRequest
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

		user, err := s.UserByID(ctx, claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			slog.Error("Verification user lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := s.SetUserLinkedin(ctx, claims.UserID, body.LinkedinURL); err != nil {
			slog.Error("Verification linkedin update failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if _, err := s.VerificationByUserID(ctx, claims.UserID); err == nil {
			if err := s.UpdateVerificationLinkedin(ctx, claims.UserID, body.LinkedinURL); err != nil {
				slog.Error("Verification update failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Verification updated", "status": "pending"})
			return
		}

		if err := s.InsertVerification(ctx, datatypes.PendingVerification{
			ID:          claims.UserID,
			Name:        user.Name,
			Role:        body.LinkedinURL,
			SubmittedAt: time.Now().Format("2006-01-02"),
			LinkedinURL: body.LinkedinURL,
			UserID:      claims.UserID,
		}); err != nil {
			slog.Error("Verification insert failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		s.RecordActivity(ctx, "Mentor verification request: "+user.Name, "signup")
		c.JSON(http.StatusOK, gin.H{"message": "Verification submitted", "status": "pending"})
	}
}

// VerificationStatus reports whether the mentor has been verified and
// whether an application is still in the queue.
func VerificationStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		ctx := c.Request.Context()

		user, err := s.UserByID(ctx, claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			slog.Error("Verification status lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		_, pendingErr := s.VerificationByUserID(ctx, claims.UserID)

		c.JSON(http.StatusOK, gin.H{
			"verified":    user.Verified,
			"pending":     pendingErr == nil,
			"linkedinUrl": user.LinkedinURL,
		})
	}
}
