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
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ananya Iyer", "AN"},
		{"bo", "BO"},
		{"X", "X"},
		{"", "??"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, initials(tt.name), "initials(%q)", tt.name)
	}
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, averageRating(nil))
	assert.Equal(t, 4.7, averageRating([]datatypes.Mentor{{Rating: 4.7}}))
	// (4.9 + 4.7 + 5.0) / 3 = 4.866… → 4.9
	assert.Equal(t, 4.9, averageRating([]datatypes.Mentor{
		{Rating: 4.9}, {Rating: 4.7}, {Rating: 5.0},
	}))
}

func TestCountCompletedSessions(t *testing.T) {
	candidates := []datatypes.Candidate{
		{Sessions: []datatypes.Session{
			{Status: "completed"}, {Status: "completed"}, {Status: "upcoming"},
		}},
		{Sessions: []datatypes.Session{{Status: "completed"}}},
		{},
	}
	assert.Equal(t, 3, countCompletedSessions(candidates))
	assert.Equal(t, 0, countCompletedSessions(nil))
}

func TestRevenueSummary(t *testing.T) {
	mentors := []datatypes.Mentor{
		{ID: "m-1", PricePerSession: 6000},
		{ID: "m-2", PricePerSession: 10000},
	}
	requests := []datatypes.MentorRequest{
		{Status: "accepted", MentorID: "m-1"},
		{Status: "accepted", MentorID: "m-2"},
		{Status: "pending", MentorID: "m-1"},
		{Status: "accepted", MentorID: "m-gone"},
	}

	rev := revenueSummary(requests, mentors)

	// (6000 + 10000) × 8 × 1.1; the request with no mentor profile still
	// counts as a transaction but adds no revenue.
	assert.Equal(t, 140800.0, rev["total"])
	assert.Equal(t, 3, rev["transactions"])
	assert.Equal(t, "+12%", rev["change"])
	assert.InDelta(t, 46933.33, rev["avgValue"], 0.001)
}

func TestRevenueSummary_NoAccepted(t *testing.T) {
	rev := revenueSummary([]datatypes.MentorRequest{{Status: "pending"}}, nil)
	assert.Equal(t, 0.0, rev["total"])
	assert.Equal(t, 0, rev["transactions"])
	assert.Equal(t, 0.0, rev["avgValue"])
	assert.Equal(t, "+3%", rev["change"])
}

func TestMenteeView_RoadmapProjection(t *testing.T) {
	cand := datatypes.Candidate{
		ID:            "c-1",
		Name:          "Arjun Mehta",
		Email:         "arjun@example.com",
		CareerGoal:    "Lead a platform team",
		TargetRole:    "Staff Engineer",
		TargetCompany: "Stripe",
		MentorID:      "m-1",
		CreatedAt:     "2026-01-10",
		Roadmap: []datatypes.RoadmapStep{
			{ID: "1", Title: "Foundations", Description: "Core skills", Duration: "Weeks 1-4", Status: "completed"},
			{ID: "2", Title: "Projects", Description: "Build depth", Duration: "Weeks 5-8", Status: "completed"},
			{ID: "3", Title: "Systems", Description: "Design practice", Duration: "Weeks 9-12", Status: "current"},
			{ID: "4", Title: "Interviews", Description: "Mock rounds", Duration: "Weeks 13-16", Status: "upcoming"},
		},
		SkillGaps: []datatypes.SkillGap{
			{Skill: "System Design", Level: 40, Target: 80},
			{Skill: "Go", Level: 55, Target: 85},
		},
		Sessions: []datatypes.Session{
			{Status: "completed"}, {Status: "completed"},
			{Status: "completed"}, {Status: "upcoming"},
		},
	}

	out := menteeView(cand)

	assert.Equal(t, "AR", out["avatar"])
	assert.Equal(t, "#resume", out["resumeUrl"])
	assert.Equal(t, "Lead a platform team", out["careerGoal"])
	assert.Equal(t, "mentor_assigned", out["status"])
	assert.Equal(t, "2026-01-10", out["joinedAt"])

	roadmap, ok := out["roadmap"].(gin.H)
	require.True(t, ok)
	assert.Equal(t, []string{"System Design", "Go"}, roadmap["skillGaps"])
	assert.Contains(t, roadmap["summary"], "Staff Engineer")

	// Roadmap progress counts roadmap steps only: 2 of 4 completed, even
	// though 3 of 4 sessions are done.
	assert.Equal(t, 50, roadmap["currentProgress"])

	milestones, ok := roadmap["milestones"].([]gin.H)
	require.True(t, ok)
	require.Len(t, milestones, 4)
	assert.Equal(t, "completed", milestones[0]["status"])
	assert.Equal(t, "in_progress", milestones[2]["status"])
	assert.Equal(t, "pending", milestones[3]["status"])
	assert.Equal(t, "Design practice", milestones[2]["description"])
	assert.Equal(t, "Weeks 9-12", milestones[2]["dueDate"])
}

func TestMenteeView_NoRoadmap(t *testing.T) {
	out := menteeView(datatypes.Candidate{ID: "c-2", Email: "new@example.com"})

	assert.Equal(t, "Unknown", out["name"])
	assert.Equal(t, "??", out["avatar"])
	assert.Equal(t, "unassigned", out["status"])
	assert.Equal(t, "2025-01-01", out["joinedAt"])
	assert.Nil(t, out["roadmap"])
}

func TestMentorAdminView(t *testing.T) {
	m := datatypes.Mentor{
		ID:              "m-1",
		Name:            "Priya Nair",
		Role:            "Engineering Manager",
		Company:         "Atlassian",
		Experience:      9,
		Domain:          "Backend Engineering",
		PricePerSession: 8000,
		Available:       true,
		Rating:          4.8,
		Sessions:        34,
		Bio:             "Backend and distributed systems.",
		Verified:        true,
		UserID:          "u-42",
	}

	out := mentorAdminView(m, 3)

	assert.Equal(t, "u-42@guided.dev", out["email"])
	assert.Equal(t, "PR", out["avatar"])
	assert.Equal(t, []string{"Backend Engineering"}, out["expertise"])
	assert.Equal(t, "9 years", out["experience"])
	assert.Equal(t, 8000.0, out["price"])
	assert.Equal(t, true, out["verified"])
	assert.Equal(t, true, out["enabled"])
	assert.Equal(t, int64(3), out["currentWorkload"])
	assert.Equal(t, 5, out["maxWorkload"])
	assert.Equal(t, "Backend and distributed systems.", out["bio"])
	assert.Equal(t, 34, out["totalSessions"])
}

func TestMentorAdminView_NoAccount(t *testing.T) {
	out := mentorAdminView(datatypes.Mentor{Name: "Sam Okafor", Avatar: "SO"}, 0)
	assert.Equal(t, "sam.okafor@example.com", out["email"])
	assert.Equal(t, "SO", out["avatar"])
}

func TestMentorshipView(t *testing.T) {
	req := datatypes.MentorRequest{
		ID:            "req-1",
		CandidateID:   "c-1",
		MentorID:      "m-1",
		CandidateName: "Arjun Mehta",
		CandidateGoal: "Transition to backend",
		Status:        "accepted",
		SubmittedAt:   "2026-02-01",
		Flagged:       true,
		FlagReason:    "No sessions in 3 weeks",
	}
	sessions := []datatypes.Session{
		{Status: "completed", Date: "2026-02-10"},
		{Status: "completed", Date: "2026-02-17"},
		{Status: "upcoming", Date: "2026-02-24"},
	}

	out := mentorshipView(req, sessions)

	assert.Equal(t, "c-1", out["menteeId"])
	assert.Equal(t, "m-1", out["mentorId"])
	assert.Equal(t, "Arjun Mehta", out["menteeName"])
	assert.Equal(t, "Transition to backend", out["menteeGoal"])
	assert.Equal(t, "active", out["status"])
	assert.Equal(t, "2026-02-01", out["startDate"])
	assert.Equal(t, "2026-02-17", out["lastSessionDate"])
	assert.Equal(t, 2, out["sessionsCompleted"])
	assert.Equal(t, 3, out["totalSessions"])
	assert.Equal(t, true, out["flagged"])
}

func TestMentorshipView_StatusMapping(t *testing.T) {
	tests := []struct {
		reqStatus string
		want      string
	}{
		{"accepted", "active"},
		{"declined", "completed"},
		{"pending", "paused"},
	}
	for _, tt := range tests {
		out := mentorshipView(datatypes.MentorRequest{Status: tt.reqStatus}, nil)
		assert.Equal(t, tt.want, out["status"], "status %q", tt.reqStatus)
	}

	// No schedule yet: fall back to the package size and Unknown mentee.
	out := mentorshipView(datatypes.MentorRequest{Status: "pending"}, nil)
	assert.Equal(t, 8, out["totalSessions"])
	assert.Equal(t, "Unknown", out["menteeName"])
	assert.Equal(t, 0, out["sessionsCompleted"])
}
