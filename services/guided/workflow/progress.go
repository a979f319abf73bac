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
	"fmt"
	"math"
	"time"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

// Progress weights: sessions carry the most signal, action items and
// roadmap steps split the rest evenly.
const (
	sessionWeight = 0.4
	actionWeight  = 0.3
	roadmapWeight = 0.3
)

// Stats summarizes a candidate's completion counters for the dashboard.
type Stats struct {
	CompletedSessions int `json:"completedSessions"`
	TotalSessions     int `json:"totalSessions"`
	CompletedActions  int `json:"completedActions"`
	TotalActions      int `json:"totalActions"`
	CompletedSteps    int `json:"completedSteps"`
	TotalSteps        int `json:"totalSteps"`
}

// NextSession is the projection of the candidate's next upcoming session.
type NextSession struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Title    string `json:"title"`
	Relative string `json:"relative"`
	ID       string `json:"id"`
}

// Progress computes the candidate's completion stats and the weighted
// overall percentage shown on the dashboard.
func Progress(c datatypes.Candidate) (int, Stats) {
	stats := Stats{
		TotalSessions: len(c.Sessions),
		TotalActions:  len(c.ActionItems),
		TotalSteps:    len(c.Roadmap),
	}
	for _, s := range c.Sessions {
		if s.Status == "completed" {
			stats.CompletedSessions++
		}
	}
	for _, a := range c.ActionItems {
		if a.Completed {
			stats.CompletedActions++
		}
	}
	for _, r := range c.Roadmap {
		if r.Status == "completed" {
			stats.CompletedSteps++
		}
	}

	sessPct := ratio(stats.CompletedSessions, stats.TotalSessions)
	actionPct := ratio(stats.CompletedActions, stats.TotalActions)
	roadmapPct := ratio(stats.CompletedSteps, stats.TotalSteps)

	overall := int(math.Round((sessPct*sessionWeight + actionPct*actionWeight + roadmapPct*roadmapWeight) * 100))
	return overall, stats
}

func ratio(done, total int) float64 {
	if total == 0 {
		total = 1
	}
	return float64(done) / float64(total)
}

// FindNextSession returns the first upcoming session with its relative
// label, or nil when nothing is scheduled.
func FindNextSession(sessions []datatypes.Session, now time.Time) *NextSession {
	for _, s := range sessions {
		if s.Status != "upcoming" {
			continue
		}
		return &NextSession{
			Date:     s.Date,
			Time:     s.Time,
			Title:    s.Title,
			Relative: RelativeLabel(s.Status, s.Date, now),
			ID:       s.ID,
		}
	}
	return nil
}

// RelativeLabel renders a human-friendly distance to a session date:
// "Today", "Tomorrow", "In 3 days", "Next week", "In 5 weeks" for upcoming
// sessions; "Completed", "4 days ago", "2 weeks ago" for completed ones.
// Returns "" when the date does not parse.
func RelativeLabel(status, date string, now time.Time) string {
	sd, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	diff := int(math.Floor(sd.Sub(now).Hours() / 24))

	if status == "completed" {
		switch {
		case diff >= 0:
			return "Completed"
		case -diff < 7:
			return fmt.Sprintf("%d days ago", -diff)
		default:
			return fmt.Sprintf("%d weeks ago", -diff/7)
		}
	}

	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff < 7:
		return fmt.Sprintf("In %d days", diff)
	case diff < 14:
		return "Next week"
	default:
		return fmt.Sprintf("In %d weeks", diff/7)
	}
}

// AdvanceRoadmap re-marks the candidate's roadmap steps proportionally to
// session completion: completed*steps/totalSessions steps are done, the
// next one becomes current, the rest stay upcoming.
func AdvanceRoadmap(c *datatypes.Candidate) {
	total := len(c.Sessions)
	steps := len(c.Roadmap)
	if total == 0 || steps == 0 {
		return
	}

	completed := 0
	for _, s := range c.Sessions {
		if s.Status == "completed" {
			completed++
		}
	}

	done := completed * steps / total
	if done > steps {
		done = steps
	}
	for i := range c.Roadmap {
		switch {
		case i < done:
			c.Roadmap[i].Status = "completed"
		case i == done:
			c.Roadmap[i].Status = "current"
		default:
			c.Roadmap[i].Status = "upcoming"
		}
	}
}
