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
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

// Models asked for bare JSON still wrap it in markdown fences or leave a
// trailing comma often enough that parsing has to assume the worst.
var (
	fenceRe         = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// aiStep mirrors one roadmap entry in the model's JSON output.
type aiStep struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Status      string `json:"status"`
}

// aiGap mirrors one skill gap in the model's JSON output. Numbers arrive
// as json.Number so both 40 and 40.0 parse.
type aiGap struct {
	Skill  string      `json:"skill"`
	Level  json.Number `json:"level"`
	Target json.Number `json:"target"`
}

type aiPayload struct {
	Roadmap   []aiStep `json:"roadmap"`
	SkillGaps []aiGap  `json:"skillGaps"`
}

// ParseResponse extracts a roadmap and skill gaps from a raw model
// response.
//
// Cleanup order: strip markdown code fences, cut to the outermost JSON
// object, remove trailing commas, then unwrap a single nesting level
// (some models return {"response": {"roadmap": ...}}). Missing step
// fields get positional defaults; gap levels are clamped to [5,95] with
// target at least level+10.
func ParseResponse(raw string) ([]datatypes.RoadmapStep, []datatypes.SkillGap, error) {
	raw = strings.TrimSpace(raw)

	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		raw = strings.TrimSpace(m[1])
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, nil, fmt.Errorf("no JSON object in model response")
	}
	raw = raw[start : end+1]

	raw = trailingCommaRe.ReplaceAllString(raw, "$1")

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	// Unwrap one nesting level when "roadmap" is not at the top.
	if _, ok := top["roadmap"]; !ok {
		for _, v := range top {
			var inner map[string]json.RawMessage
			if err := json.Unmarshal(v, &inner); err != nil {
				continue
			}
			if _, ok := inner["roadmap"]; ok {
				top = inner
				break
			}
		}
	}

	rewrapped, err := json.Marshal(top)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to rewrap model response: %w", err)
	}

	var payload aiPayload
	dec := json.NewDecoder(strings.NewReader(string(rewrapped)))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("failed to decode roadmap payload: %w", err)
	}

	steps := make([]datatypes.RoadmapStep, 0, len(payload.Roadmap))
	for i, s := range payload.Roadmap {
		steps = append(steps, datatypes.RoadmapStep{
			ID:          orDefault(s.ID, fmt.Sprintf("r%d", i+1)),
			Title:       orDefault(s.Title, fmt.Sprintf("Step %d", i+1)),
			Description: s.Description,
			Duration:    orDefault(s.Duration, fmt.Sprintf("Week %d", i+1)),
			Status:      orDefault(s.Status, "upcoming"),
		})
	}

	gaps := make([]datatypes.SkillGap, 0, len(payload.SkillGaps))
	for _, g := range payload.SkillGaps {
		level := clamp(numberOr(g.Level, 30), 5, 95)
		// Floor to level+10 first, then cap: a maxed-out level cannot push
		// the target past the scale.
		target := numberOr(g.Target, 80)
		if target < level+10 {
			target = level + 10
		}
		if target > 95 {
			target = 95
		}
		gaps = append(gaps, datatypes.SkillGap{
			Skill:  orDefault(g.Skill, "Unknown Skill"),
			Level:  level,
			Target: target,
		})
	}

	if len(steps) == 0 || len(gaps) == 0 {
		return nil, nil, fmt.Errorf("model returned empty roadmap or skill gaps")
	}
	return steps, gaps, nil
}

// numberOr converts a json.Number to int, tolerating floats, with a
// default for missing or malformed values.
func numberOr(n json.Number, def int) int {
	if n == "" {
		return def
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return def
}
