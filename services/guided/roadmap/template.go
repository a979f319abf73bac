// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package roadmap generates personalized career roadmaps and skill-gap
// analyses for candidates.
//
// The primary path sends a structured prompt to an LLM backend and parses
// the JSON response defensively. When the backend is unavailable or returns
// garbage, a deterministic template generator produces an equivalent
// roadmap from curated phase and skill tables, so roadmap generation never
// fails a request.
package roadmap

import (
	"fmt"
	"strings"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

// domainSkill is one row of the curated skill table for a domain:
// the skill name plus base current and target proficiency levels.
type domainSkill struct {
	name   string
	level  int
	target int
}

// domainSkills maps each career domain to its core skills.
var domainSkills = map[string][]domainSkill{
	"software engineering": {
		{"System Design", 30, 80},
		{"Data Structures & Algorithms", 45, 85},
		{"Coding Interviews", 35, 80},
		{"Communication", 55, 75},
		{"Architecture Patterns", 25, 70},
	},
	"frontend": {
		{"React / Next.js", 40, 85},
		{"CSS & Design Systems", 50, 80},
		{"Performance Optimization", 25, 70},
		{"TypeScript", 45, 80},
		{"Accessibility", 30, 75},
	},
	"backend": {
		{"API Design", 40, 85},
		{"Database Design", 35, 80},
		{"Distributed Systems", 20, 70},
		{"Security & Auth", 30, 75},
		{"DevOps / CI-CD", 25, 65},
	},
	"data science": {
		{"Machine Learning", 30, 80},
		{"Statistics & Probability", 40, 75},
		{"Python / Pandas", 50, 85},
		{"Data Visualization", 45, 75},
		{"SQL & Databases", 40, 70},
	},
	"product management": {
		{"Product Strategy", 25, 75},
		{"User Research", 35, 80},
		{"Metrics & Analytics", 30, 70},
		{"Stakeholder Communication", 50, 80},
		{"Roadmap Planning", 35, 75},
	},
	"design": {
		{"UI Design", 40, 85},
		{"UX Research", 30, 75},
		{"Prototyping", 45, 80},
		{"Design Systems", 25, 70},
		{"User Testing", 35, 75},
	},
}

// Adjustments to the base skill levels for the candidate's proficiency tier
// and years of experience.
var (
	skillModifiers = map[string]int{"beginner": -15, "intermediate": 0, "advanced": 20}
	expModifiers   = map[string]int{"0": -10, "1-2": -5, "3-5": 5, "5+": 15}
)

// DefaultDomain is used when no keyword matches the candidate's goal.
const DefaultDomain = "software engineering"

// DetectDomain returns the career domain that best matches the candidate's
// target role and goal text: one of "frontend", "backend", "data science",
// "product management", "design", or the software engineering default.
func DetectDomain(targetRole, careerGoal string) string {
	text := strings.ToLower(targetRole + " " + careerGoal)

	if containsAny(text, "frontend", "react", "ui engineer", "web") {
		return "frontend"
	}
	if containsAny(text, "backend", "server", "api", "infrastructure") {
		return "backend"
	}
	if containsAny(text, "data scien", "ml ", "machine learn", "analytics") {
		return "data science"
	}
	if containsAny(text, "product manage", " pm ", "product lead") {
		return "product management"
	}
	if containsAny(text, "design", "ux", "ui/ux") {
		return "design"
	}

	return DefaultDomain
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Timeline estimates the total roadmap duration for a skill level.
func Timeline(skillLevel string) string {
	switch skillLevel {
	case "advanced":
		return "8 weeks"
	case "beginner":
		return "16 weeks"
	default:
		return "12 weeks"
	}
}

// FromTemplate builds a roadmap and skill-gap analysis from the curated
// templates. This is the deterministic fallback used when the AI backend
// is unavailable; pacing and skill levels are adjusted to the candidate.
func FromTemplate(c datatypes.Candidate) ([]datatypes.RoadmapStep, []datatypes.SkillGap) {
	domain := DetectDomain(c.TargetRole, c.CareerGoal)
	target := c.TargetRole
	if target == "" {
		target = "Software Engineer"
	}
	company := c.TargetCompany
	if company == "" {
		company = "top companies"
	}
	skillMod := skillModifiers[c.SkillLevel]
	expMod := expModifiers[c.ExperienceLevel]

	// Pacing per phase depends on how much ramp-up the candidate needs.
	var splits [5]string
	switch c.SkillLevel {
	case "advanced":
		splits = [5]string{"Week 1", "Weeks 2-3", "Week 4", "Week 5", "Weeks 6-8"}
	case "beginner":
		splits = [5]string{"Weeks 1-3", "Weeks 4-7", "Weeks 8-10", "Weeks 11-12", "Weeks 13-16"}
	default:
		splits = [5]string{"Weeks 1-2", "Weeks 3-5", "Weeks 6-7", "Week 8", "Weeks 9-12"}
	}

	steps := []datatypes.RoadmapStep{
		{
			ID:    "r1",
			Title: "Foundation & Skill Assessment",
			Description: fmt.Sprintf(
				"Assess your current abilities against %s requirements. "+
					"Build a baseline in core competencies identified in your skill gap analysis.", target),
			Duration: splits[0],
			Status:   "upcoming",
		},
		{
			ID:    "r2",
			Title: fmt.Sprintf("Build %s Portfolio", titleCase(domain)),
			Description: fmt.Sprintf(
				"Create 2-3 targeted projects demonstrating your expertise for a %s role at %s. "+
					"Document your process and decisions.", target, company),
			Duration: splits[1],
			Status:   "upcoming",
		},
		{
			ID:    "r3",
			Title: "Mock Interviews & Feedback",
			Description: fmt.Sprintf(
				"Complete structured mock interviews focused on %s. "+
					"Get detailed feedback on technical depth and behavioral responses.", domain),
			Duration: splits[2],
			Status:   "upcoming",
		},
		{
			ID:    "r4",
			Title: "Application Strategy",
			Description: fmt.Sprintf(
				"Optimize your resume and LinkedIn for %s roles. "+
					"Build a targeted company list and networking plan for %s.", target, company),
			Duration: splits[3],
			Status:   "upcoming",
		},
		{
			ID:    "r5",
			Title: "Interview Sprint & Launch",
			Description: fmt.Sprintf(
				"Execute your interview strategy with ongoing mentor support. "+
					"Debrief after each round for a %s position.", target),
			Duration: splits[4],
			Status:   "upcoming",
		},
	}

	base, ok := domainSkills[domain]
	if !ok {
		base = domainSkills[DefaultDomain]
	}
	gaps := make([]datatypes.SkillGap, 0, len(base))
	for _, s := range base {
		level := clamp(s.level+skillMod+expMod, 5, 90)
		target := s.target
		if target > 95 {
			target = 95
		}
		if target < level+10 {
			target = level + 10
		}
		gaps = append(gaps, datatypes.SkillGap{Skill: s.name, Level: level, Target: target})
	}

	return steps, gaps
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
