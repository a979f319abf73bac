// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package workflow implements the candidate progress mechanics: session and
// action-item scheduling, relative date labels, weighted overall progress,
// roadmap auto-advance, and calendar links for accepted mentorships.
package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

// SessionsPerPackage is the size of the standard mentorship package.
const SessionsPerPackage = 8

// GenerateSessions builds the 8-session mentorship schedule, spaced one
// week apart starting a week from now, alternating morning and afternoon
// slots. Titles are personalised to the candidate's domain and target role.
func GenerateSessions(mentorName, targetRole, domain string, now time.Time) []datatypes.Session {
	titles := []string{
		fmt.Sprintf("Kickoff & %s Assessment", titleCase(domain)),
		fmt.Sprintf("Deep Dive: Core %s Skills", titleCase(domain)),
		"Portfolio Review & Feedback",
		fmt.Sprintf("Mock Interview #1 — %s", targetRole),
		fmt.Sprintf("Advanced %s Practice", titleCase(domain)),
		"Behavioral Interview Prep",
		fmt.Sprintf("Mock Interview #2 — %s", targetRole),
		"Career Launch & Next Steps",
	}

	sessions := make([]datatypes.Session, 0, len(titles))
	for i, title := range titles {
		slot := "10:00 AM"
		if i%2 == 1 {
			slot = "2:00 PM"
		}
		sessions = append(sessions, datatypes.Session{
			ID:     datatypes.NewID(datatypes.PrefixSession),
			Title:  title,
			Date:   now.AddDate(0, 0, 7+i*7).Format("2006-01-02"),
			Time:   slot,
			Status: "upcoming",
			Mentor: mentorName,
		})
	}
	return sessions
}

// actionItemTitles holds the homework sets per domain.
var actionItemTitles = map[string][]string{
	"software engineering": {
		"Complete 10 LeetCode medium problems",
		"Read 'Designing Data-Intensive Applications' Ch. 1-3",
		"Build a REST API with proper error handling",
		"Write a system design document for a chat app",
		"Update LinkedIn with recent project work",
	},
	"frontend": {
		"Build a responsive dashboard with React + Tailwind",
		"Implement a complex form with validation",
		"Create an accessible component library",
		"Optimize an app for Core Web Vitals",
		"Write unit tests for 3 components",
	},
	"backend": {
		"Design a RESTful API with OpenAPI spec",
		"Implement authentication with JWT",
		"Set up a CI/CD pipeline",
		"Write database migration scripts",
		"Build a rate-limited API endpoint",
	},
	"data science": {
		"Complete a Kaggle competition notebook",
		"Build an end-to-end ML pipeline",
		"Create a data visualization dashboard",
		"Write SQL queries for complex analytics",
		"Document a model's performance metrics",
	},
	"product management": {
		"Write a PRD for a feature",
		"Conduct 3 user interviews",
		"Create a competitive analysis doc",
		"Build a metrics dashboard mock",
		"Present a product roadmap to peers",
	},
	"design": {
		"Complete a design challenge (48h)",
		"Create a design system in Figma",
		"Conduct a usability test with 3 users",
		"Redesign a popular app's checkout flow",
		"Build a portfolio case study",
	},
}

// GenerateActionItems builds the domain-specific homework list with
// staggered due dates: one week out, then 5 days apart.
func GenerateActionItems(domain string, now time.Time) []datatypes.ActionItem {
	titles, ok := actionItemTitles[domain]
	if !ok {
		titles = actionItemTitles["software engineering"]
	}

	items := make([]datatypes.ActionItem, 0, len(titles))
	for i, title := range titles {
		items = append(items, datatypes.ActionItem{
			ID:      datatypes.NewID(datatypes.PrefixAction),
			Title:   title,
			DueDate: now.AddDate(0, 0, 7+i*5).Format("2006-01-02"),
		})
	}
	return items
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
