// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// ID prefixes by entity kind.
const (
	PrefixUser     = "u"
	PrefixMentor   = "m"
	PrefixRequest  = "req"
	PrefixSession  = "s"
	PrefixAction   = "a"
	PrefixActivity = "act"
)

// NewID returns a short prefixed identifier like "u-3f9c21ab": the prefix,
// a dash, and the first 8 hex characters of a random UUID. Short enough to
// read in logs, random enough for this dataset.
func NewID(prefix string) string {
	u := uuid.New()
	return prefix + "-" + hex.EncodeToString(u[:])[:8]
}
