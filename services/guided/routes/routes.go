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
	"github.com/gin-gonic/gin"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/handlers"
	"github.com/guidedhq/guided/services/guided/middleware"
	"github.com/guidedhq/guided/services/guided/roadmap"
	"github.com/guidedhq/guided/services/guided/store"
	"github.com/guidedhq/guided/services/guided/telemetry"
)

// SetupRoutes wires the full API surface. Everything under /api except
// signup and login requires a valid bearer token; role checks are applied
// per group.
func SetupRoutes(router *gin.Engine, s *store.Store, issuer *middleware.TokenIssuer,
	gen *roadmap.Generator) {

	router.GET("/", handlers.Health())
	router.GET("/metrics", telemetry.MetricsHandler())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", handlers.Signup(s, issuer))
			auth.POST("/login", handlers.Login(s, issuer))
			auth.GET("/me", middleware.Authenticate(issuer), handlers.Me(s))
		}

		authed := api.Group("")
		authed.Use(middleware.Authenticate(issuer))
		{
			// Marketplace browsing: candidates shop, admins audit.
			authed.GET("/mentors",
				middleware.RequireRole(datatypes.RoleCandidate, datatypes.RoleAdmin),
				handlers.ListMentors(s))
			authed.GET("/mentors/:mentorId",
				middleware.RequireRole(datatypes.RoleCandidate, datatypes.RoleMentor, datatypes.RoleAdmin),
				handlers.GetMentor(s))

			candidate := authed.Group("/candidate")
			{
				candidateOnly := middleware.RequireRole(datatypes.RoleCandidate)
				candidateOrAdmin := middleware.RequireRole(datatypes.RoleCandidate, datatypes.RoleAdmin)

				candidate.GET("/status", candidateOnly, handlers.CandidateStatus(s))
				candidate.POST("/onboarding", candidateOnly, handlers.Onboarding(s))
				candidate.GET("/:candidateId", candidateOrAdmin, handlers.GetCandidate(s))
				candidate.GET("/:candidateId/workflow", candidateOrAdmin, handlers.Workflow(s))
				candidate.POST("/generate-roadmap", candidateOnly, handlers.GenerateRoadmap(s, gen))
				candidate.POST("/regenerate-roadmap", candidateOnly, handlers.RegenerateRoadmap(s, gen))
				candidate.POST("/checkout", candidateOnly, handlers.Checkout(s))
				// Older frontend builds call request-mentor; same flow.
				candidate.POST("/request-mentor", candidateOnly, handlers.Checkout(s))
				candidate.POST("/toggle-action", candidateOnly, handlers.ToggleAction(s))
				candidate.POST("/complete-session", candidateOnly, handlers.CompleteSession(s))
			}

			mentor := authed.Group("/mentor")
			{
				mentorOnly := middleware.RequireRole(datatypes.RoleMentor)
				mentorOrAdmin := middleware.RequireRole(datatypes.RoleMentor, datatypes.RoleAdmin)

				mentor.GET("/dashboard", mentorOnly, handlers.MentorDashboard(s))
				mentor.GET("/dashboard/:mentorId", mentorOrAdmin, handlers.MentorDashboard(s))
				mentor.GET("/requests", mentorOnly, handlers.MentorRequests(s))
				mentor.POST("/accept", mentorOnly, handlers.AcceptMentorship(s))
				mentor.POST("/decline", mentorOnly, handlers.DeclineMentorship(s))
				mentor.POST("/verify", mentorOnly, handlers.SubmitVerification(s))
				mentor.GET("/verification-status", mentorOnly, handlers.VerificationStatus(s))
			}

			admin := authed.Group("/admin")
			admin.Use(middleware.RequireRole(datatypes.RoleAdmin))
			{
				admin.GET("/dashboard", handlers.AdminDashboard(s))
				admin.GET("/pending-mentors", handlers.PendingMentors(s))
				admin.POST("/verify-mentor", handlers.VerifyMentor(s))
				admin.POST("/reject-mentor", handlers.RejectMentor(s))
				admin.GET("/mentors", handlers.AdminMentors(s))
				admin.POST("/mentors/enable", handlers.EnableMentor(s))
				admin.POST("/mentors/disable", handlers.DisableMentor(s))
				admin.GET("/mentees", handlers.AdminMentees(s))
				admin.GET("/mentees/:menteeId", handlers.AdminGetMentee(s))
				admin.GET("/mentorships", handlers.AdminMentorships(s))
				admin.POST("/allocate-mentor", handlers.AllocateMentor(s))
				admin.POST("/flag-mentorship", handlers.FlagMentorship(s))
				admin.GET("/metrics", handlers.DashboardMetrics(s))
				admin.GET("/charts/mentee-status", handlers.MenteeStatusChart(s))
				admin.GET("/charts/growth", handlers.GrowthChart(s))
			}
		}
	}
}
