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
	"github.com/guidedhq/guided/services/guided/middleware"
	"github.com/guidedhq/guided/services/guided/roadmap"
	"github.com/guidedhq/guided/services/guided/store"
)

// GenerateRoadmap builds the candidate's roadmap if one does not exist
// yet. Existing roadmaps are returned unchanged; use RegenerateRoadmap
// to force a refresh.
func GenerateRoadmap(s *store.Store, gen *roadmap.Generator) gin.HandlerFunc {
	return roadmapHandler(s, gen, false)
}

// RegenerateRoadmap always replaces the candidate's roadmap, useful after
// a profile update or when the candidate wants a fresh plan.
func RegenerateRoadmap(s *store.Store, gen *roadmap.Generator) gin.HandlerFunc {
	return roadmapHandler(s, gen, true)
}

func roadmapHandler(s *store.Store, gen *roadmap.Generator, force bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body datatypes.RoadmapRequest
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
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only generate your own roadmap"})
			return
		}

		ctx := c.Request.Context()
		cand, err := s.CandidateByID(ctx, body.CandidateID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		if err != nil {
			slog.Error("Roadmap candidate lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		message := "Roadmap generated"
		if force {
			message = "Roadmap regenerated"
		}

		if force || !cand.RoadmapGenerated {
			steps, gaps, source := gen.Generate(ctx, cand)
			cand.Roadmap = steps
			cand.SkillGaps = gaps
			cand.RoadmapGenerated = true
			cand.GeneratedBy = source
			cand.Status = datatypes.StatusRoadmapGenerated
			if err := s.ReplaceCandidate(ctx, cand); err != nil {
				slog.Error("Roadmap save failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}

		targetCompany := cand.TargetCompany
		if targetCompany == "" {
			targetCompany = "Top Companies"
		}
		generatedBy := cand.GeneratedBy
		if generatedBy == "" {
			generatedBy = roadmap.SourceMock
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       message,
			"candidateId":   cand.ID,
			"targetRole":    cand.TargetRole,
			"targetCompany": targetCompany,
			"skillLevel":    cand.SkillLevel,
			"timeline":      roadmap.Timeline(cand.SkillLevel),
			"domain":        roadmap.DetectDomain(cand.TargetRole, cand.CareerGoal),
			"generatedBy":   generatedBy,
			"roadmap":       cand.Roadmap,
			"skillGaps":     cand.SkillGaps,
		})
	}
}
