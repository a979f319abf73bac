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

// InsertUser adds a new user account. Fails on a duplicate email because
// of the unique index.
func (s *Store) InsertUser(ctx context.Context, u datatypes.UserAccount) error {
	if _, err := s.db.Collection(colUsers).InsertOne(ctx, u); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UserByEmail looks up an account by email address.
func (s *Store) UserByEmail(ctx context.Context, email string) (datatypes.UserAccount, error) {
	var u datatypes.UserAccount
	err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, wrapNotFound(err)
}

// UserByID looks up an account by its id.
func (s *Store) UserByID(ctx context.Context, id string) (datatypes.UserAccount, error) {
	var u datatypes.UserAccount
	err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, wrapNotFound(err)
}

// SetUserVerified flips the verified flag on an account.
func (s *Store) SetUserVerified(ctx context.Context, id string, verified bool) error {
	_, err := s.db.Collection(colUsers).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"verified": verified}})
	return err
}

// RejectUser marks an account as rejected with the admin's reason.
func (s *Store) RejectUser(ctx context.Context, id, reason string) error {
	_, err := s.db.Collection(colUsers).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"verified": false, "rejected": true, "rejection_reason": reason}})
	return err
}

// SetUserLinkedin updates the LinkedIn URL on a user profile.
func (s *Store) SetUserLinkedin(ctx context.Context, id, url string) error {
	_, err := s.db.Collection(colUsers).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"linkedin_url": url}})
	return err
}

// CountUsers returns the total number of registered accounts.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.db.Collection(colUsers).CountDocuments(ctx, bson.M{})
}
