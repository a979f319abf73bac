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

// InsertVerification queues a mentor application for admin review.
func (s *Store) InsertVerification(ctx context.Context, v datatypes.PendingVerification) error {
	if _, err := s.db.Collection(colVerifications).InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to insert pending verification: %w", err)
	}
	return nil
}

// VerificationByID looks up a pending verification by its id.
func (s *Store) VerificationByID(ctx context.Context, id string) (datatypes.PendingVerification, error) {
	var v datatypes.PendingVerification
	err := s.db.Collection(colVerifications).FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	return v, wrapNotFound(err)
}

// VerificationByUserID looks up the pending verification for a user account.
func (s *Store) VerificationByUserID(ctx context.Context, userID string) (datatypes.PendingVerification, error) {
	var v datatypes.PendingVerification
	err := s.db.Collection(colVerifications).FindOne(ctx, bson.M{"user_id": userID}).Decode(&v)
	return v, wrapNotFound(err)
}

// UpdateVerificationLinkedin refreshes the LinkedIn URL on an existing
// pending verification.
func (s *Store) UpdateVerificationLinkedin(ctx context.Context, userID, url string) error {
	_, err := s.db.Collection(colVerifications).UpdateOne(ctx,
		bson.M{"user_id": userID}, bson.M{"$set": bson.M{"linkedin_url": url}})
	return err
}

// DeleteVerification removes an application from the pending queue.
func (s *Store) DeleteVerification(ctx context.Context, id string) error {
	_, err := s.db.Collection(colVerifications).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AllVerifications returns the full pending queue.
func (s *Store) AllVerifications(ctx context.Context) ([]datatypes.PendingVerification, error) {
	cur, err := s.db.Collection(colVerifications).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending verifications: %w", err)
	}
	var verifications []datatypes.PendingVerification
	if err := cur.All(ctx, &verifications); err != nil {
		return nil, fmt.Errorf("failed to decode pending verifications: %w", err)
	}
	return verifications, nil
}

// CountVerifications returns the size of the pending queue.
func (s *Store) CountVerifications(ctx context.Context) (int64, error) {
	return s.db.Collection(colVerifications).CountDocuments(ctx, bson.M{})
}
