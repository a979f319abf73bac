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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/llm"
)

// stubLLM returns a canned response or error.
type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ llm.GenerationParams) (string, error) {
	return s.response, s.err
}

func TestGenerator_NilBackendUsesTemplates(t *testing.T) {
	gen := NewGenerator(nil)
	steps, gaps, source := gen.Generate(context.Background(), datatypes.Candidate{})
	assert.Equal(t, SourceMock, source)
	assert.Len(t, steps, 5)
	assert.Len(t, gaps, 5)
}

func TestGenerator_BackendSuccess(t *testing.T) {
	gen := NewGenerator(&stubLLM{response: validPayload})
	steps, gaps, source := gen.Generate(context.Background(), datatypes.Candidate{ID: "u-test"})
	assert.Equal(t, SourceGemini, source)
	require.Len(t, steps, 1)
	assert.Equal(t, "Foundations", steps[0].Title)
	require.Len(t, gaps, 1)
}

func TestGenerator_BackendErrorFallsBack(t *testing.T) {
	gen := NewGenerator(&stubLLM{err: errors.New("quota exceeded")})
	steps, _, source := gen.Generate(context.Background(), datatypes.Candidate{})
	assert.Equal(t, SourceMock, source)
	assert.Len(t, steps, 5)
}

func TestGenerator_UnparseableResponseFallsBack(t *testing.T) {
	gen := NewGenerator(&stubLLM{response: "I am unable to produce JSON today."})
	steps, gaps, source := gen.Generate(context.Background(), datatypes.Candidate{
		TargetRole: "Backend Engineer",
	})
	assert.Equal(t, SourceMock, source)
	assert.Len(t, steps, 5)
	// Fallback still honors the candidate's domain.
	assert.Equal(t, "API Design", gaps[0].Skill)
}

func TestBuildPrompt_Defaults(t *testing.T) {
	prompt := BuildPrompt(datatypes.Candidate{})
	assert.Contains(t, prompt, "Career transition into tech")
	assert.Contains(t, prompt, "Software Engineer")
	assert.Contains(t, prompt, "Top Tech Companies")

	prompt = BuildPrompt(datatypes.Candidate{
		CareerGoal:      "become a staff engineer",
		TargetRole:      "Staff Engineer",
		TargetCompany:   "Stripe",
		SkillLevel:      "advanced",
		ExperienceLevel: "5+",
	})
	assert.Contains(t, prompt, "become a staff engineer")
	assert.Contains(t, prompt, "Stripe")
	assert.Contains(t, prompt, "advanced")
}
