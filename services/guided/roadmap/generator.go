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
	"log/slog"

	"github.com/guidedhq/guided/services/guided/datatypes"
	"github.com/guidedhq/guided/services/guided/telemetry"
	"github.com/guidedhq/guided/services/llm"
)

// Roadmap source labels. Stored on the candidate so the dashboard can tell
// an AI-authored roadmap from a template one.
const (
	SourceGemini = "gemini"
	SourceMock   = "mock"
)

// Generator produces roadmaps, preferring the LLM backend and falling back
// to templates. A nil backend means template-only operation.
type Generator struct {
	backend llm.LLMClient
}

// NewGenerator returns a Generator using the given backend. Pass nil to
// run without AI (every roadmap comes from the templates).
func NewGenerator(backend llm.LLMClient) *Generator {
	return &Generator{backend: backend}
}

// Generate builds a roadmap and skill-gap analysis for the candidate.
//
// Never returns an error: any backend or parse failure falls back to the
// deterministic template generator. The returned source label is
// SourceGemini or SourceMock.
func (g *Generator) Generate(ctx context.Context, c datatypes.Candidate) ([]datatypes.RoadmapStep, []datatypes.SkillGap, string) {
	if g.backend == nil {
		return g.fallback(c, "no LLM backend configured")
	}

	raw, err := g.backend.Generate(ctx, BuildPrompt(c), llm.GenerationParams{JSONOutput: true})
	if err != nil {
		return g.fallback(c, err.Error())
	}

	steps, gaps, err := ParseResponse(raw)
	if err != nil {
		return g.fallback(c, err.Error())
	}

	slog.Info("Gemini generated roadmap", "steps", len(steps), "skill_gaps", len(gaps), "candidate", c.ID)
	telemetry.RoadmapGenerations.WithLabelValues(SourceGemini).Inc()
	return steps, gaps, SourceGemini
}

func (g *Generator) fallback(c datatypes.Candidate, reason string) ([]datatypes.RoadmapStep, []datatypes.SkillGap, string) {
	slog.Warn("AI roadmap generation failed, using template fallback", "reason", reason, "candidate", c.ID)
	steps, gaps := FromTemplate(c)
	telemetry.RoadmapGenerations.WithLabelValues(SourceMock).Inc()
	return steps, gaps, SourceMock
}
