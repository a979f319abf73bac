// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

// InsertCandidate adds a candidate profile.
func (s *Store) InsertCandidate(ctx context.Context, c datatypes.Candidate) error {
	if _, err := s.db.Collection(colCandidates).InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

// CandidateByID looks up a candidate profile by its id.
func (s *Store) CandidateByID(ctx context.Context, id string) (datatypes.Candidate, error) {
	var c datatypes.Candidate
	err := s.db.Collection(colCandidates).FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	return c, wrapNotFound(err)
}

// ReplaceCandidate persists the full candidate document. The workflow
// handlers mutate the in-memory candidate and write it back whole, the
// same way the embedded roadmap and session arrays are read whole.
func (s *Store) ReplaceCandidate(ctx context.Context, c datatypes.Candidate) error {
	_, err := s.db.Collection(colCandidates).ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("failed to replace candidate: %w", err)
	}
	return nil
}

// UpdateOnboarding overwrites the career-profile fields captured during
// onboarding and moves the candidate to the onboarded status.
func (s *Store) UpdateOnboarding(ctx context.Context, id string, r datatypes.OnboardingRequest) error {
	_, err := s.db.Collection(colCandidates).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"career_goal":      r.CareerGoal,
			"target_role":      r.TargetRole,
			"target_company":   r.TargetCompany,
			"skill_level":      r.SkillLevel,
			"experience_level": r.ExperienceLevel,
			"resume_uploaded":  r.ResumeUploaded,
			"status":           datatypes.StatusOnboarded,
		}})
	return err
}

// LinkMentor assigns a mentor to a candidate and activates the mentorship.
func (s *Store) LinkMentor(ctx context.Context, candidateID, mentorID string) error {
	_, err := s.db.Collection(colCandidates).UpdateOne(ctx,
		bson.M{"_id": candidateID},
		bson.M{"$set": bson.M{"mentor_id": mentorID, "status": datatypes.StatusMentorshipActive}})
	return err
}

// AllCandidates returns every candidate profile. Admin use.
func (s *Store) AllCandidates(ctx context.Context) ([]datatypes.Candidate, error) {
	cur, err := s.db.Collection(colCandidates).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	var candidates []datatypes.Candidate
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return candidates, nil
}

// CandidatesByMentor returns the candidates directly linked to a mentor.
func (s *Store) CandidatesByMentor(ctx context.Context, mentorID string) ([]datatypes.Candidate, error) {
	cur, err := s.db.Collection(colCandidates).Find(ctx, bson.M{"mentor_id": mentorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates by mentor: %w", err)
	}
	var candidates []datatypes.Candidate
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return candidates, nil
}

// CandidatesByIDs loads a batch of candidate profiles.
func (s *Store) CandidatesByIDs(ctx context.Context, ids []string) ([]datatypes.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.db.Collection(colCandidates).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	var candidates []datatypes.Candidate
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return candidates, nil
}

// CountCandidates returns the total number of candidate profiles.
func (s *Store) CountCandidates(ctx context.Context) (int64, error) {
	return s.db.Collection(colCandidates).CountDocuments(ctx, bson.M{})
}
