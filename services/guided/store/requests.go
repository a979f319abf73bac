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

// InsertRequest records a new mentorship request.
func (s *Store) InsertRequest(ctx context.Context, r datatypes.MentorRequest) error {
	if _, err := s.db.Collection(colRequests).InsertOne(ctx, r); err != nil {
		return fmt.Errorf("failed to insert mentor request: %w", err)
	}
	return nil
}

// RequestByID looks up a mentorship request by its id.
func (s *Store) RequestByID(ctx context.Context, id string) (datatypes.MentorRequest, error) {
	var r datatypes.MentorRequest
	err := s.db.Collection(colRequests).FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	return r, wrapNotFound(err)
}

// RequestsByMentor lists the requests addressed to a mentor.
func (s *Store) RequestsByMentor(ctx context.Context, mentorID string) ([]datatypes.MentorRequest, error) {
	cur, err := s.db.Collection(colRequests).Find(ctx, bson.M{"mentor_id": mentorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list mentor requests: %w", err)
	}
	var requests []datatypes.MentorRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode mentor requests: %w", err)
	}
	return requests, nil
}

// AllRequests returns every mentorship request. Admin use.
func (s *Store) AllRequests(ctx context.Context) ([]datatypes.MentorRequest, error) {
	cur, err := s.db.Collection(colRequests).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list mentor requests: %w", err)
	}
	var requests []datatypes.MentorRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode mentor requests: %w", err)
	}
	return requests, nil
}

// SetRequestStatus moves a request to accepted or declined.
func (s *Store) SetRequestStatus(ctx context.Context, id, status string) error {
	_, err := s.db.Collection(colRequests).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	return err
}

// FlagRequest marks a mentorship for manual review.
// Returns ErrNotFound when the request does not exist.
func (s *Store) FlagRequest(ctx context.Context, id, reason string) error {
	res, err := s.db.Collection(colRequests).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"flagged": true, "flag_reason": reason}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRequestsByStatus counts requests with the given status.
func (s *Store) CountRequestsByStatus(ctx context.Context, status string) (int64, error) {
	return s.db.Collection(colRequests).CountDocuments(ctx, bson.M{"status": status})
}

// CountFlaggedRequests counts mentorships flagged for review.
func (s *Store) CountFlaggedRequests(ctx context.Context) (int64, error) {
	return s.db.Collection(colRequests).CountDocuments(ctx, bson.M{"flagged": true})
}

// CountAcceptedForMentor counts a mentor's active mentorships.
func (s *Store) CountAcceptedForMentor(ctx context.Context, mentorID string) (int64, error) {
	return s.db.Collection(colRequests).CountDocuments(ctx,
		bson.M{"mentor_id": mentorID, "status": "accepted"})
}
