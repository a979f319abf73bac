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
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

// MentorFilter holds the marketplace search parameters. Zero values and
// the literal "all" mean "no filter" for that dimension.
type MentorFilter struct {
	// Search is matched case-insensitively against name, role, company,
	// and domain.
	Search string
	// Domain is an exact domain match.
	Domain string
	// Price is a band: "under-6000", "6000-10000", or "over-10000".
	Price string
	// Experience is a minimum-years band: "5+", "8+", or "10+".
	Experience string
}

// query renders the filter as a Mongo query. Only verified mentors are
// ever returned by the marketplace.
func (f MentorFilter) query() bson.M {
	q := bson.M{"verified": true}

	if f.Search != "" {
		regex := primitive.Regex{Pattern: f.Search, Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"role": regex},
			bson.M{"company": regex},
			bson.M{"domain": regex},
		}
	}

	if f.Domain != "" && f.Domain != "all" {
		q["domain"] = f.Domain
	}

	switch f.Price {
	case "under-6000":
		q["price_per_session"] = bson.M{"$lt": 6000}
	case "6000-10000":
		q["price_per_session"] = bson.M{"$gte": 6000, "$lte": 10000}
	case "over-10000":
		q["price_per_session"] = bson.M{"$gt": 10000}
	}

	switch f.Experience {
	case "5+":
		q["experience"] = bson.M{"$gte": 5}
	case "8+":
		q["experience"] = bson.M{"$gte": 8}
	case "10+":
		q["experience"] = bson.M{"$gte": 10}
	}

	return q
}

// ListMentors returns the verified mentors matching the filter.
func (s *Store) ListMentors(ctx context.Context, f MentorFilter) ([]datatypes.Mentor, error) {
	cur, err := s.db.Collection(colMentors).Find(ctx, f.query())
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	var mentors []datatypes.Mentor
	if err := cur.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("failed to decode mentors: %w", err)
	}
	return mentors, nil
}

// AllMentors returns every mentor profile, verified or not. Admin use.
func (s *Store) AllMentors(ctx context.Context) ([]datatypes.Mentor, error) {
	cur, err := s.db.Collection(colMentors).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	var mentors []datatypes.Mentor
	if err := cur.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("failed to decode mentors: %w", err)
	}
	return mentors, nil
}

// MentorByID looks up a mentor profile by its id.
func (s *Store) MentorByID(ctx context.Context, id string) (datatypes.Mentor, error) {
	var m datatypes.Mentor
	err := s.db.Collection(colMentors).FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	return m, wrapNotFound(err)
}

// MentorByUserID looks up the mentor profile linked to a user account.
func (s *Store) MentorByUserID(ctx context.Context, userID string) (datatypes.Mentor, error) {
	var m datatypes.Mentor
	err := s.db.Collection(colMentors).FindOne(ctx, bson.M{"user_id": userID}).Decode(&m)
	return m, wrapNotFound(err)
}

// InsertMentor adds a mentor profile to the marketplace.
func (s *Store) InsertMentor(ctx context.Context, m datatypes.Mentor) error {
	if _, err := s.db.Collection(colMentors).InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert mentor: %w", err)
	}
	return nil
}

// IncrementMentorSessions adds n to a mentor's lifetime session count.
func (s *Store) IncrementMentorSessions(ctx context.Context, id string, n int) error {
	_, err := s.db.Collection(colMentors).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$inc": bson.M{"sessions": n}})
	return err
}

// SetMentorAvailable toggles marketplace visibility for a mentor.
// Returns ErrNotFound when the mentor does not exist.
func (s *Store) SetMentorAvailable(ctx context.Context, id string, available bool) error {
	res, err := s.db.Collection(colMentors).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"available": available}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountMentors returns the total number of mentor profiles.
func (s *Store) CountMentors(ctx context.Context) (int64, error) {
	return s.db.Collection(colMentors).CountDocuments(ctx, bson.M{})
}
