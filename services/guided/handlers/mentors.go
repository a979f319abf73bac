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

	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/store"
)

// ListMentors searches the verified mentor catalogue. Query parameters:
// search (free text), domain, price (band), experience (band); each
// defaults to no filtering.
func ListMentors(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.MentorFilter{
			Search:     c.Query("search"),
			Domain:     c.Query("domain"),
			Price:      c.Query("price"),
			Experience: c.Query("experience"),
		}

		mentors, err := s.ListMentors(c.Request.Context(), filter)
		if err != nil {
			slog.Error("Mentor list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if mentors == nil {
			mentors = []datatypes.Mentor{}
		}

		c.JSON(http.StatusOK, gin.H{
			"mentors": mentors,
			"total":   len(mentors),
		})
	}
}

// GetMentor returns a single mentor's full profile.
func GetMentor(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		mentor, err := s.MentorByID(c.Request.Context(), c.Param("mentorId"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
			return
		}
		if err != nil {
			slog.Error("Mentor lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, mentor)
	}
}
