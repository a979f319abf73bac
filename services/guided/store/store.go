// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store is the MongoDB persistence layer for the guided service.
//
// One Store wraps a single database with typed accessors per collection.
// Documents use the bson tags declared in datatypes; there is no separate
// storage model. Lookups that find nothing return ErrNotFound rather than
// the driver's sentinel so handlers never import the driver.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	colUsers         = "users"
	colMentors       = "mentors"
	colCandidates    = "candidates"
	colRequests      = "mentor_requests"
	colVerifications = "pending_verifications"
	colActivity      = "recent_activity"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client, pings the deployment, and returns a Store bound
// to the named database.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	slog.Info("Connected to MongoDB", "database", dbName)
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes for the frequently queried fields.
// Safe to call on every startup; Mongo treats existing indexes as no-ops.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{colUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{colMentors, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}}},
		{colRequests, mongo.IndexModel{Keys: bson.D{{Key: "mentor_id", Value: 1}}}},
		{colCandidates, mongo.IndexModel{Keys: bson.D{{Key: "mentor_id", Value: 1}}}},
	}

	for _, idx := range indexes {
		if _, err := s.db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}

// wrapNotFound maps the driver's no-documents sentinel to ErrNotFound.
func wrapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
