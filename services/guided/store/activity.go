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
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

// RecordActivity appends an entry to the recent-activity feed. Activity is
// an audit trail, not business state, so failures are logged and swallowed;
// no handler should 500 because the feed insert lost a race.
func (s *Store) RecordActivity(ctx context.Context, description, activityType string) {
	now := time.Now()
	entry := datatypes.ActivityEntry{
		ID:          datatypes.NewID(datatypes.PrefixActivity),
		Type:        activityType,
		Description: description,
		Time:        now.Format("03:04 PM"),
		CreatedAt:   now.Format(time.RFC3339),
	}
	if _, err := s.db.Collection(colActivity).InsertOne(ctx, entry); err != nil {
		slog.Warn("Failed to record activity entry", "error", err, "description", description)
	}
}

// RecentActivity returns the latest feed entries, newest first.
func (s *Store) RecentActivity(ctx context.Context, limit int64) ([]datatypes.ActivityEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.db.Collection(colActivity).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent activity: %w", err)
	}
	var entries []datatypes.ActivityEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode recent activity: %w", err)
	}
	return entries, nil
}
