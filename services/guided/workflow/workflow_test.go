// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package workflow

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

var testNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateSessions(t *testing.T) {
	sessions := GenerateSessions("Sarah Chen", "Backend Engineer", "backend", testNow)
	require.Len(t, sessions, SessionsPerPackage)

	// Weekly spacing starting a week out.
	assert.Equal(t, "2026-02-08", sessions[0].Date)
	assert.Equal(t, "2026-02-15", sessions[1].Date)
	assert.Equal(t, "2026-03-29", sessions[7].Date)

	// Alternating slots.
	assert.Equal(t, "10:00 AM", sessions[0].Time)
	assert.Equal(t, "2:00 PM", sessions[1].Time)
	assert.Equal(t, "10:00 AM", sessions[2].Time)

	for _, s := range sessions {
		assert.Equal(t, "upcoming", s.Status)
		assert.Equal(t, "Sarah Chen", s.Mentor)
		assert.True(t, strings.HasPrefix(s.ID, "s-"), "session id %q", s.ID)
	}

	assert.Equal(t, "Kickoff & Backend Assessment", sessions[0].Title)
	assert.Contains(t, sessions[3].Title, "Mock Interview #1")
	assert.Contains(t, sessions[3].Title, "Backend Engineer")
	assert.Equal(t, "Career Launch & Next Steps", sessions[7].Title)
}

func TestGenerateActionItems(t *testing.T) {
	items := GenerateActionItems("frontend", testNow)
	require.Len(t, items, 5)

	// Due dates: one week out, then every 5 days.
	assert.Equal(t, "2026-02-08", items[0].DueDate)
	assert.Equal(t, "2026-02-13", items[1].DueDate)
	assert.Equal(t, "2026-02-28", items[4].DueDate)

	for _, it := range items {
		assert.False(t, it.Completed)
		assert.True(t, strings.HasPrefix(it.ID, "a-"), "action id %q", it.ID)
	}

	// Unknown domains fall back to the software engineering set.
	items = GenerateActionItems("astrology", testNow)
	assert.Equal(t, "Complete 10 LeetCode medium problems", items[0].Title)
}

func TestProgress(t *testing.T) {
	c := datatypes.Candidate{
		Sessions: []datatypes.Session{
			{Status: "completed"}, {Status: "completed"}, {Status: "upcoming"}, {Status: "upcoming"},
		},
		ActionItems: []datatypes.ActionItem{
			{Completed: true}, {Completed: false},
		},
		Roadmap: []datatypes.RoadmapStep{
			{Status: "completed"}, {Status: "current"}, {Status: "upcoming"}, {Status: "upcoming"},
		},
	}

	overall, stats := Progress(c)
	assert.Equal(t, 2, stats.CompletedSessions)
	assert.Equal(t, 4, stats.TotalSessions)
	assert.Equal(t, 1, stats.CompletedActions)
	assert.Equal(t, 1, stats.CompletedSteps)

	// 0.5*0.4 + 0.5*0.3 + 0.25*0.3 = 0.425 -> 43%
	assert.Equal(t, 43, overall)
}

func TestProgress_Empty(t *testing.T) {
	overall, stats := Progress(datatypes.Candidate{})
	assert.Equal(t, 0, overall)
	assert.Equal(t, 0, stats.TotalSessions)
}

func TestFindNextSession(t *testing.T) {
	sessions := []datatypes.Session{
		{ID: "s-1", Status: "completed", Date: "2026-01-25"},
		{ID: "s-2", Status: "upcoming", Date: "2026-02-02", Time: "10:00 AM", Title: "Next up"},
		{ID: "s-3", Status: "upcoming", Date: "2026-02-09"},
	}
	next := FindNextSession(sessions, testNow)
	require.NotNil(t, next)
	assert.Equal(t, "s-2", next.ID)
	assert.Equal(t, "Next up", next.Title)

	assert.Nil(t, FindNextSession(nil, testNow))
	assert.Nil(t, FindNextSession([]datatypes.Session{{Status: "completed"}}, testNow))
}

func TestRelativeLabel(t *testing.T) {
	tests := []struct {
		name   string
		status string
		date   string
		want   string
	}{
		{"tomorrow", "upcoming", "2026-02-03", "Tomorrow"},
		{"in days", "upcoming", "2026-02-05", "In 3 days"},
		{"next week", "upcoming", "2026-02-10", "Next week"},
		{"in weeks", "upcoming", "2026-03-10", "In 5 weeks"},
		{"completed future-dated", "completed", "2026-02-10", "Completed"},
		{"completed days ago", "completed", "2026-01-29", "4 days ago"},
		{"completed weeks ago", "completed", "2026-01-01", "4 weeks ago"},
		{"bad date", "upcoming", "not-a-date", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeLabel(tc.status, tc.date, testNow))
		})
	}

	// Dates parse at midnight, so "Today" only lines up when now is too.
	midnight := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Today", RelativeLabel("upcoming", "2026-02-01", midnight))
	assert.Equal(t, "Tomorrow", RelativeLabel("upcoming", "2026-02-02", midnight))
}

func TestAdvanceRoadmap(t *testing.T) {
	c := datatypes.Candidate{
		Sessions: []datatypes.Session{
			{Status: "completed"}, {Status: "completed"}, {Status: "completed"}, {Status: "completed"},
			{Status: "upcoming"}, {Status: "upcoming"}, {Status: "upcoming"}, {Status: "upcoming"},
		},
		Roadmap: []datatypes.RoadmapStep{
			{ID: "r1"}, {ID: "r2"}, {ID: "r3"}, {ID: "r4"}, {ID: "r5"},
		},
	}

	// 4 of 8 sessions done -> 4*5/8 = 2 steps completed, third current.
	AdvanceRoadmap(&c)
	assert.Equal(t, "completed", c.Roadmap[0].Status)
	assert.Equal(t, "completed", c.Roadmap[1].Status)
	assert.Equal(t, "current", c.Roadmap[2].Status)
	assert.Equal(t, "upcoming", c.Roadmap[3].Status)
	assert.Equal(t, "upcoming", c.Roadmap[4].Status)

	// All sessions done -> every step completed, no current marker left.
	for i := range c.Sessions {
		c.Sessions[i].Status = "completed"
	}
	AdvanceRoadmap(&c)
	for i, step := range c.Roadmap {
		assert.Equal(t, "completed", step.Status, "step %d", i)
	}
}

func TestAdvanceRoadmap_NoData(t *testing.T) {
	c := datatypes.Candidate{}
	AdvanceRoadmap(&c) // must not panic
	assert.Empty(t, c.Roadmap)
}

func TestCalendarEventURL(t *testing.T) {
	start := time.Date(2026, 2, 4, 10, 0, 0, 0, time.UTC)
	u := CalendarEventURL("Mentorship Kickoff", "Agenda:\n- intros", start, 60, "Google Meet")

	assert.True(t, strings.HasPrefix(u, "https://calendar.google.com/calendar/render?"))
	assert.Contains(t, u, "action=TEMPLATE")
	assert.Contains(t, u, "dates=20260204T100000%2F20260204T110000")
	assert.Contains(t, u, "text=Mentorship+Kickoff")
	assert.Contains(t, u, "location=Google+Meet")
}
