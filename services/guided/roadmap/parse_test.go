// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"roadmap": [
		{"id": "r1", "title": "Foundations", "description": "Learn the basics", "duration": "Weeks 1-2", "status": "upcoming"}
	],
	"skillGaps": [
		{"skill": "System Design", "level": 30, "target": 80}
	]
}`

func TestParseResponse_PlainJSON(t *testing.T) {
	steps, gaps, err := ParseResponse(validPayload)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Len(t, gaps, 1)
	assert.Equal(t, "Foundations", steps[0].Title)
	assert.Equal(t, 30, gaps[0].Level)
	assert.Equal(t, 80, gaps[0].Target)
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	fenced := "Here is your roadmap:\n```json\n" + validPayload + "\n```\nGood luck!"
	steps, _, err := ParseResponse(fenced)
	require.NoError(t, err)
	assert.Equal(t, "r1", steps[0].ID)

	// Bare fences without the json tag also work.
	fenced = "```\n" + validPayload + "\n```"
	_, _, err = ParseResponse(fenced)
	require.NoError(t, err)
}

func TestParseResponse_TrailingCommas(t *testing.T) {
	raw := `{
		"roadmap": [
			{"id": "r1", "title": "A", "duration": "Week 1", "status": "upcoming",},
		],
		"skillGaps": [
			{"skill": "X", "level": 40, "target": 70,},
		],
	}`
	steps, gaps, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Len(t, steps, 1)
	assert.Len(t, gaps, 1)
}

func TestParseResponse_WrappedPayload(t *testing.T) {
	wrapped := `{"response": ` + validPayload + `}`
	steps, gaps, err := ParseResponse(wrapped)
	require.NoError(t, err)
	assert.Len(t, steps, 1)
	assert.Len(t, gaps, 1)
}

func TestParseResponse_MissingFieldsGetDefaults(t *testing.T) {
	raw := `{
		"roadmap": [{"description": "just a description"}, {"title": "Named"}],
		"skillGaps": [{"skill": "SQL"}]
	}`
	steps, gaps, err := ParseResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, "r1", steps[0].ID)
	assert.Equal(t, "Step 1", steps[0].Title)
	assert.Equal(t, "Week 1", steps[0].Duration)
	assert.Equal(t, "upcoming", steps[0].Status)
	assert.Equal(t, "Named", steps[1].Title)
	assert.Equal(t, "r2", steps[1].ID)

	assert.Equal(t, 30, gaps[0].Level)
	assert.Equal(t, 80, gaps[0].Target)
}

func TestParseResponse_ClampsLevels(t *testing.T) {
	raw := `{
		"roadmap": [{"title": "A"}],
		"skillGaps": [
			{"skill": "Low", "level": -20, "target": 1},
			{"skill": "High", "level": 120, "target": 200},
			{"skill": "Float", "level": 42.7, "target": 88.1}
		]
	}`
	_, gaps, err := ParseResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, 5, gaps[0].Level)
	assert.Equal(t, 15, gaps[0].Target) // at least level+10

	assert.Equal(t, 95, gaps[1].Level)
	assert.Equal(t, 95, gaps[1].Target) // capped even when level+10 exceeds it

	assert.Equal(t, 42, gaps[2].Level)
	assert.Equal(t, 88, gaps[2].Target)
}

func TestParseResponse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"no JSON at all", "sorry, I cannot help with that"},
		{"malformed JSON", `{"roadmap": [}`},
		{"empty roadmap", `{"roadmap": [], "skillGaps": [{"skill": "X"}]}`},
		{"empty skill gaps", `{"roadmap": [{"title": "A"}], "skillGaps": []}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseResponse(tc.raw)
			assert.Error(t, err)
		})
	}
}
