// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/roadmap"
	"github.com/guidedhq/guided/services/guided/workflow"
)

// SeedIfEmpty populates the database with demo data on first startup so
// the platform is usable immediately for development and demos. Runs only
// when the users collection is empty. demoPasswordHash is the stored hash
// for the shared demo password.
func (s *Store) SeedIfEmpty(ctx context.Context, demoPasswordHash string) error {
	count, err := s.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		slog.Info("MongoDB already populated", "users", count)
		return nil
	}

	if err := s.seed(ctx, demoPasswordHash); err != nil {
		return err
	}
	slog.Info("Database seeded with demo data")
	return nil
}

func (s *Store) seed(ctx context.Context, demoPasswordHash string) error {
	// Demo accounts, one per role.
	accounts := []datatypes.UserAccount{
		{ID: "u-candidate", Email: "candidate@guided.dev", Name: "Arjun Mehta", Role: datatypes.RoleCandidate, Verified: true},
		{ID: "u-mentor", Email: "mentor@guided.dev", Name: "Ananya Iyer", Role: datatypes.RoleMentor, Verified: true},
		{ID: "u-admin", Email: "admin@guided.dev", Name: "Platform Admin", Role: datatypes.RoleAdmin, Verified: true},
	}
	for _, u := range accounts {
		u.PasswordHash = demoPasswordHash
		u.CreatedAt = "2026-01-15"
		if err := s.InsertUser(ctx, u); err != nil {
			return err
		}
	}

	// The marketplace catalogue.
	mentors := []datatypes.Mentor{
		{ID: "m1", Name: "Ananya Iyer", Role: "Senior Software Engineer", Company: "Google", Avatar: "AI",
			Experience: 8, Domain: "Software Engineering", PricePerSession: 6000, Available: true, Rating: 4.9, Sessions: 142,
			Bio: "Passionate about helping engineers level up their system design and coding interview skills.", UserID: "u-mentor"},
		{ID: "m2", Name: "Vikram Desai", Role: "Product Manager", Company: "Flipkart", Avatar: "VD",
			Experience: 6, Domain: "Product Management", PricePerSession: 7000, Available: true, Rating: 4.8, Sessions: 98,
			Bio: "Former founder turned PM. I help candidates break into top product roles."},
		{ID: "m3", Name: "Priya Sharma", Role: "Data Scientist", Company: "Infosys", Avatar: "PS",
			Experience: 5, Domain: "Data Science", PricePerSession: 5000, Available: false, Rating: 4.7, Sessions: 67,
			Bio: "Specialized in ML interviews and portfolio building for aspiring data scientists."},
		{ID: "m4", Name: "Rajesh Nair", Role: "Engineering Manager", Company: "Amazon", Avatar: "RN",
			Experience: 10, Domain: "Software Engineering", PricePerSession: 10000, Available: true, Rating: 5.0, Sessions: 203,
			Bio: "I coach engineers on the path to staff+ and management roles at top companies."},
		{ID: "m5", Name: "Kavya Reddy", Role: "UX Design Lead", Company: "Zoho", Avatar: "KR",
			Experience: 7, Domain: "Design", PricePerSession: 5500, Available: true, Rating: 4.9, Sessions: 115,
			Bio: "Helping designers build world-class portfolios and ace design challenges."},
		{ID: "m6", Name: "Arun Kapoor", Role: "Staff Engineer", Company: "Razorpay", Avatar: "AK",
			Experience: 12, Domain: "Software Engineering", PricePerSession: 12000, Available: true, Rating: 4.8, Sessions: 89,
			Bio: "Deep expertise in distributed systems. I help engineers think at scale."},
	}
	for _, m := range mentors {
		m.Verified = true
		if err := s.InsertMentor(ctx, m); err != nil {
			return err
		}
	}

	// A demo candidate with a workflow already in progress.
	demo := datatypes.Candidate{
		ID:               "u-candidate",
		CareerGoal:       "Break into top tech companies as a frontend engineer",
		TargetRole:       "Senior Frontend Engineer",
		TargetCompany:    "Google",
		SkillLevel:       "intermediate",
		ExperienceLevel:  "3-5",
		ResumeUploaded:   true,
		Name:             "Arjun Mehta",
		Email:            "candidate@guided.dev",
		Status:           datatypes.StatusMentorshipActive,
		RoadmapGenerated: true,
		MentorID:         "m1",
	}

	demo.Roadmap, demo.SkillGaps = roadmap.FromTemplate(demo)
	if len(demo.Roadmap) >= 2 {
		demo.Roadmap[0].Status = "completed"
		demo.Roadmap[1].Status = "current"
	}

	demo.Sessions = workflow.GenerateSessions("Ananya Iyer", "Senior Frontend Engineer", "frontend", time.Now())
	if len(demo.Sessions) >= 2 {
		demo.Sessions[0].Status = "completed"
		demo.Sessions[0].Notes = "Defined 12-week goals. Identified key skill gaps in system design."
		demo.Sessions[1].Status = "completed"
		demo.Sessions[1].Notes = "Covered component architecture. Need to practice hooks patterns."
	}

	demo.ActionItems = workflow.GenerateActionItems("frontend", time.Now())
	if len(demo.ActionItems) >= 2 {
		demo.ActionItems[0].Completed = true
		demo.ActionItems[1].Completed = true
	}

	if err := s.InsertCandidate(ctx, demo); err != nil {
		return err
	}

	// Mentorship requests: one accepted, two pending.
	requests := []datatypes.MentorRequest{
		{ID: "req1", CandidateName: "Arjun Mehta", CandidateGoal: "Break into top tech companies as a frontend engineer",
			Experience: "3-5 years", Status: "accepted", SubmittedAt: "2026-02-01", CandidateID: "u-candidate", MentorID: "m1"},
		{ID: "req2", CandidateName: "Sneha Patel", CandidateGoal: "Transition from backend to full-stack",
			Experience: "4 years", Status: "pending", SubmittedAt: "2026-02-07", MentorID: "m1"},
		{ID: "req3", CandidateName: "Rohan Joshi", CandidateGoal: "Land first data science role",
			Experience: "Bootcamp grad", Status: "pending", SubmittedAt: "2026-02-05", MentorID: "m1"},
	}
	for _, r := range requests {
		if err := s.InsertRequest(ctx, r); err != nil {
			return err
		}
	}

	// Mentor applications waiting for admin approval.
	verifications := []datatypes.PendingVerification{
		{ID: "v1", Name: "Meera Kulkarni", Role: "Senior PM at Flipkart", Experience: 7,
			SubmittedAt: "2026-02-08", LinkedinURL: "https://linkedin.com/in/meerakulkarni"},
		{ID: "v2", Name: "Siddharth Rao", Role: "Staff Engineer at Ola", Experience: 9,
			SubmittedAt: "2026-02-07", LinkedinURL: "https://linkedin.com/in/siddharthrao"},
	}
	for _, v := range verifications {
		if err := s.InsertVerification(ctx, v); err != nil {
			return err
		}
	}

	s.RecordActivity(ctx, "Arjun Mehta completed session with Ananya Iyer", "session")
	s.RecordActivity(ctx, "New mentor application: Arun Kapoor (Razorpay)", "signup")
	s.RecordActivity(ctx, "Payment processed: ₹54,000 for 8-session package", "payment")

	return nil
}
