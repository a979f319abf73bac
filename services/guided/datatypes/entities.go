// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the domain entities and request bodies for the
// guided service.
//
// Entities are persisted to MongoDB with snake_case bson keys and `_id`
// primary keys, and serialized to the API as camelCase JSON. The two tag
// sets on each struct keep the wire format and the storage format aligned
// with each other without any translation layer in between.
//
// IDs are short prefixed hex strings (u-3f9c21ab, m-9d04e7c2, req-51bb0a3e)
// generated by NewID.
package datatypes

// Candidate workflow statuses, in lifecycle order.
const (
	StatusRegistered       = "registered"
	StatusOnboarded        = "onboarded"
	StatusRoadmapGenerated = "roadmap_generated"
	StatusMentorshipActive = "mentorship_active"
)

// User roles.
const (
	RoleCandidate = "candidate"
	RoleMentor    = "mentor"
	RoleAdmin     = "admin"
)

// UserAccount is a registered platform user of any role.
type UserAccount struct {
	ID              string `bson:"_id" json:"id"`
	Email           string `bson:"email" json:"email"`
	Name            string `bson:"name" json:"name"`
	PasswordHash    string `bson:"password_hash" json:"-"`
	Role            string `bson:"role" json:"role"`
	Verified        bool   `bson:"verified" json:"verified"`
	Rejected        bool   `bson:"rejected,omitempty" json:"rejected,omitempty"`
	RejectionReason string `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	LinkedinURL     string `bson:"linkedin_url" json:"linkedinUrl"`
	CreatedAt       string `bson:"created_at" json:"createdAt"`
}

// Mentor is a verified mentor profile visible in the marketplace.
type Mentor struct {
	ID              string  `bson:"_id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Role            string  `bson:"role" json:"role"`
	Company         string  `bson:"company" json:"company"`
	Avatar          string  `bson:"avatar" json:"avatar"`
	Experience      int     `bson:"experience" json:"experience"`
	Domain          string  `bson:"domain" json:"domain"`
	PricePerSession float64 `bson:"price_per_session" json:"pricePerSession"`
	Available       bool    `bson:"available" json:"available"`
	Rating          float64 `bson:"rating" json:"rating"`
	Sessions        int     `bson:"sessions" json:"sessions"`
	Bio             string  `bson:"bio" json:"bio"`
	Verified        bool    `bson:"verified" json:"verified"`
	UserID          string  `bson:"user_id" json:"userId"`
}

// RoadmapStep is a single phase in a candidate's career roadmap.
// Status is one of "completed", "current", or "upcoming".
type RoadmapStep struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Duration    string `bson:"duration" json:"duration"`
	Status      string `bson:"status" json:"status"`
}

// SkillGap is the distance between a candidate's current proficiency in a
// skill and the job-ready target, both on a 0-100 scale.
type SkillGap struct {
	Skill  string `bson:"skill" json:"skill"`
	Level  int    `bson:"level" json:"level"`
	Target int    `bson:"target" json:"target"`
}

// Session is a scheduled or completed mentoring session. Date is an ISO
// date (YYYY-MM-DD); Time is the human-readable slot ("10:00 AM").
type Session struct {
	ID     string `bson:"id" json:"id"`
	Title  string `bson:"title" json:"title"`
	Date   string `bson:"date" json:"date"`
	Time   string `bson:"time" json:"time"`
	Status string `bson:"status" json:"status"`
	Mentor string `bson:"mentor" json:"mentor"`
	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ActionItem is a homework task assigned to a candidate.
type ActionItem struct {
	ID        string `bson:"id" json:"id"`
	Title     string `bson:"title" json:"title"`
	Completed bool   `bson:"completed" json:"completed"`
	DueDate   string `bson:"due_date" json:"dueDate"`
}

// Candidate is a mentee moving through the career development workflow.
//
// Lifecycle: registered -> onboarded -> roadmap_generated -> mentorship_active.
type Candidate struct {
	ID               string        `bson:"_id" json:"id"`
	CareerGoal       string        `bson:"career_goal" json:"careerGoal"`
	TargetRole       string        `bson:"target_role" json:"targetRole"`
	TargetCompany    string        `bson:"target_company" json:"targetCompany"`
	SkillLevel       string        `bson:"skill_level" json:"skillLevel"`
	ExperienceLevel  string        `bson:"experience_level" json:"experienceLevel"`
	ResumeUploaded   bool          `bson:"resume_uploaded" json:"resumeUploaded"`
	Name             string        `bson:"name" json:"name"`
	Email            string        `bson:"email" json:"email"`
	Status           string        `bson:"status" json:"status"`
	RoadmapGenerated bool          `bson:"roadmap_generated" json:"roadmapGenerated"`
	GeneratedBy      string        `bson:"generated_by" json:"generatedBy"`
	Roadmap          []RoadmapStep `bson:"roadmap" json:"roadmap"`
	SkillGaps        []SkillGap    `bson:"skill_gaps" json:"skillGaps"`
	Sessions         []Session     `bson:"sessions" json:"sessions"`
	ActionItems      []ActionItem  `bson:"action_items" json:"actionItems"`
	MentorID         string        `bson:"mentor_id,omitempty" json:"mentorId,omitempty"`
	CreatedAt        string        `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}

// MentorRequest is a mentorship request from a candidate to a mentor.
// Status is one of "pending", "accepted", or "declined".
type MentorRequest struct {
	ID            string `bson:"_id" json:"id"`
	CandidateName string `bson:"candidate_name" json:"candidateName"`
	CandidateGoal string `bson:"candidate_goal" json:"candidateGoal"`
	Experience    string `bson:"experience" json:"experience"`
	Status        string `bson:"status" json:"status"`
	SubmittedAt   string `bson:"submitted_at" json:"submittedAt"`
	CandidateID   string `bson:"candidate_id" json:"candidateId"`
	MentorID      string `bson:"mentor_id" json:"mentorId"`
	Flagged       bool   `bson:"flagged,omitempty" json:"flagged,omitempty"`
	FlagReason    string `bson:"flag_reason,omitempty" json:"flagReason,omitempty"`
}

// PendingVerification is a mentor application awaiting admin approval.
type PendingVerification struct {
	ID          string `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Role        string `bson:"role" json:"role"`
	Experience  int    `bson:"experience" json:"experience"`
	SubmittedAt string `bson:"submitted_at" json:"submittedAt"`
	LinkedinURL string `bson:"linkedin_url" json:"linkedinUrl"`
	UserID      string `bson:"user_id" json:"userId"`
}

// ActivityEntry is a line in the platform's recent-activity feed, shown on
// the admin dashboard. Type is one of "session", "signup", "payment", "admin".
type ActivityEntry struct {
	ID          string `bson:"_id" json:"id"`
	Type        string `bson:"type" json:"type"`
	Description string `bson:"description" json:"description"`
	Time        string `bson:"time" json:"time"`
	CreatedAt   string `bson:"created_at" json:"-"`
}
