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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMentorFilter_Query_Defaults(t *testing.T) {
	q := MentorFilter{}.query()
	assert.Equal(t, bson.M{"verified": true}, q)
}

func TestMentorFilter_Query_Search(t *testing.T) {
	q := MentorFilter{Search: "sarah"}.query()

	or, ok := q["$or"].(bson.A)
	require.True(t, ok, "expected $or clause")
	require.Len(t, or, 4)

	first, ok := or[0].(bson.M)
	require.True(t, ok)
	regex, ok := first["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "sarah", regex.Pattern)
	assert.Equal(t, "i", regex.Options)
}

func TestMentorFilter_Query_Domain(t *testing.T) {
	q := MentorFilter{Domain: "frontend"}.query()
	assert.Equal(t, "frontend", q["domain"])

	// "all" means unfiltered.
	q = MentorFilter{Domain: "all"}.query()
	_, present := q["domain"]
	assert.False(t, present)
}

func TestMentorFilter_Query_PriceBands(t *testing.T) {
	tests := []struct {
		band string
		want bson.M
	}{
		{"under-6000", bson.M{"$lt": 6000}},
		{"6000-10000", bson.M{"$gte": 6000, "$lte": 10000}},
		{"over-10000", bson.M{"$gt": 10000}},
	}
	for _, tc := range tests {
		q := MentorFilter{Price: tc.band}.query()
		assert.Equal(t, tc.want, q["price_per_session"], "band %s", tc.band)
	}

	q := MentorFilter{Price: "nonsense"}.query()
	_, present := q["price_per_session"]
	assert.False(t, present)
}

func TestMentorFilter_Query_ExperienceBands(t *testing.T) {
	tests := []struct {
		band string
		min  int
	}{
		{"5+", 5},
		{"8+", 8},
		{"10+", 10},
	}
	for _, tc := range tests {
		q := MentorFilter{Experience: tc.band}.query()
		assert.Equal(t, bson.M{"$gte": tc.min}, q["experience"], "band %s", tc.band)
	}
}

func TestMentorFilter_Query_Combined(t *testing.T) {
	q := MentorFilter{
		Search:     "google",
		Domain:     "backend",
		Price:      "under-6000",
		Experience: "8+",
	}.query()

	assert.Equal(t, true, q["verified"])
	assert.Contains(t, q, "$or")
	assert.Equal(t, "backend", q["domain"])
	assert.Equal(t, bson.M{"$lt": 6000}, q["price_per_session"])
	assert.Equal(t, bson.M{"$gte": 8}, q["experience"])
}
