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
	"strings"
	"testing"
)

func TestSignupRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		wantErr bool
	}{
		{
			name: "valid candidate",
			req:  SignupRequest{Email: "a@b.com", Password: "secret1", Name: "A", Role: "candidate"},
		},
		{
			name: "valid mentor with linkedin",
			req:  SignupRequest{Email: "m@b.com", Password: "secret1", Name: "M", Role: "mentor", LinkedinURL: "https://linkedin.com/in/m"},
		},
		{
			name:    "bad email",
			req:     SignupRequest{Email: "nope", Password: "secret1", Name: "A", Role: "candidate"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     SignupRequest{Email: "a@b.com", Password: "abc", Name: "A", Role: "candidate"},
			wantErr: true,
		},
		{
			name:    "unknown role",
			req:     SignupRequest{Email: "a@b.com", Password: "secret1", Name: "A", Role: "superuser"},
			wantErr: true,
		},
		{
			name:    "missing name",
			req:     SignupRequest{Email: "a@b.com", Password: "secret1", Role: "candidate"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestOnboardingRequestValidate(t *testing.T) {
	valid := OnboardingRequest{
		CareerGoal:      "become a backend engineer",
		TargetRole:      "Backend Engineer",
		SkillLevel:      "intermediate",
		ExperienceLevel: "1-2",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := valid
	bad.SkillLevel = "expert"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown skill level")
	}

	bad = valid
	bad.ExperienceLevel = "20"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown experience level")
	}

	bad = valid
	bad.CareerGoal = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing career goal")
	}
}

func TestValidateBody(t *testing.T) {
	if err := ValidateBody(&CheckoutRequest{MentorID: "m1"}); err != nil {
		t.Errorf("valid checkout rejected: %v", err)
	}
	if err := ValidateBody(&CheckoutRequest{}); err == nil {
		t.Error("expected error for missing mentorId")
	}
	if err := ValidateBody(&VerificationSubmitRequest{LinkedinURL: "not-a-url"}); err == nil {
		t.Error("expected error for malformed linkedin url")
	}
}

func TestNewID(t *testing.T) {
	id := NewID(PrefixUser)
	if !strings.HasPrefix(id, "u-") {
		t.Errorf("id %q missing prefix", id)
	}
	if len(id) != len("u-")+8 {
		t.Errorf("id %q has wrong length", id)
	}
	if NewID(PrefixUser) == NewID(PrefixUser) {
		t.Error("ids should be unique")
	}

	for prefix, want := range map[string]string{
		PrefixMentor:  "m-",
		PrefixRequest: "req-",
		PrefixSession: "s-",
		PrefixAction:  "a-",
	} {
		if !strings.HasPrefix(NewID(prefix), want) {
			t.Errorf("NewID(%q) missing prefix %q", prefix, want)
		}
	}
}
