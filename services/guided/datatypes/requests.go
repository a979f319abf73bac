// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request bodies.
var validate *validator.Validate

func init() {
	validate = validator.New()

	// skill_level: one of the three proficiency tiers used by the
	// roadmap generator. Empty is allowed; required is a separate tag.
	_ = validate.RegisterValidation("skill_level", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "beginner", "intermediate", "advanced":
			return true
		}
		return false
	})

	// experience_level: the experience buckets the skill modifiers key on.
	_ = validate.RegisterValidation("experience_level", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "0", "1-2", "3-5", "5+":
			return true
		}
		return false
	})

	// platform_role: candidate, mentor, or admin.
	_ = validate.RegisterValidation("platform_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case RoleCandidate, RoleMentor, RoleAdmin:
			return true
		}
		return false
	})
}

// SignupRequest is the payload for creating a new user account.
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Name        string `json:"name" validate:"required"`
	Role        string `json:"role" validate:"required,platform_role"`
	LinkedinURL string `json:"linkedinUrl"`
}

// Validate checks the signup payload against the role and password rules.
func (r *SignupRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid signup request: %w", err)
	}
	return nil
}

// LoginRequest is the payload for authenticating an existing user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the login payload.
func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid login request: %w", err)
	}
	return nil
}

// OnboardingRequest is the payload for the candidate onboarding step.
type OnboardingRequest struct {
	CareerGoal      string `json:"careerGoal" validate:"required"`
	TargetRole      string `json:"targetRole" validate:"required"`
	TargetCompany   string `json:"targetCompany"`
	SkillLevel      string `json:"skillLevel" validate:"required,skill_level"`
	ExperienceLevel string `json:"experienceLevel" validate:"required,experience_level"`
	ResumeUploaded  bool   `json:"resumeUploaded"`
	Name            string `json:"name"`
	Email           string `json:"email"`
}

// Validate checks the onboarding payload, including the skill and
// experience level enums the roadmap generator depends on.
func (r *OnboardingRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid onboarding request: %w", err)
	}
	return nil
}

// RoadmapRequest identifies which candidate to generate or regenerate a
// roadmap for.
type RoadmapRequest struct {
	CandidateID string `json:"candidateId" validate:"required"`
}

// CheckoutRequest selects a mentor and starts the checkout flow.
// CandidateID defaults to the authenticated user when empty.
type CheckoutRequest struct {
	MentorID    string `json:"mentorId" validate:"required"`
	CandidateID string `json:"candidateId"`
}

// ToggleActionRequest marks a candidate's action item as done or undone.
type ToggleActionRequest struct {
	CandidateID  string `json:"candidateId" validate:"required"`
	ActionItemID string `json:"actionItemId" validate:"required"`
	Completed    bool   `json:"completed"`
}

// CompleteSessionRequest marks a mentoring session as completed.
type CompleteSessionRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Notes     string `json:"notes"`
}

// MentorshipActionRequest identifies a mentorship request to accept or decline.
type MentorshipActionRequest struct {
	MentorshipID string `json:"mentorshipId" validate:"required"`
}

// VerificationSubmitRequest carries a mentor's LinkedIn URL for review.
type VerificationSubmitRequest struct {
	LinkedinURL string `json:"linkedinUrl" validate:"required,url"`
}

// VerifyMentorRequest identifies which pending mentor an admin approves.
type VerifyMentorRequest struct {
	MentorID string `json:"mentorId" validate:"required"`
}

// RejectMentorRequest identifies which pending mentor an admin rejects.
type RejectMentorRequest struct {
	MentorID string `json:"mentorId" validate:"required"`
	Reason   string `json:"reason"`
}

// MentorToggleRequest enables or disables a mentor in the marketplace.
type MentorToggleRequest struct {
	MentorID string `json:"mentorId" validate:"required"`
}

// AllocateMentorRequest manually assigns a mentor to a mentee.
type AllocateMentorRequest struct {
	MenteeID string `json:"menteeId" validate:"required"`
	MentorID string `json:"mentorId" validate:"required"`
}

// FlagMentorshipRequest flags a mentorship for manual review.
type FlagMentorshipRequest struct {
	MentorshipID string `json:"mentorshipId" validate:"required"`
	Reason       string `json:"reason"`
}

// ValidateBody runs struct validation for the simple ID-carrier payloads
// that have no Validate method of their own.
func ValidateBody(body any) error {
	if err := validate.Struct(body); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
