// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Service: "test", Output: &buf})

	logger.Info("hello", "count", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["service"] != "test" {
		t.Errorf("service = %v", entry["service"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count = %v", entry["count"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("too quiet")
	logger.Info("still too quiet")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %s", buf.String())
	}

	logger.Warn("loud enough")
	if !strings.Contains(buf.String(), "loud enough") {
		t.Errorf("warn record missing: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	child := logger.With("request_id", "req-123")
	child.Info("handled")

	if !strings.Contains(buf.String(), "req-123") {
		t.Errorf("attached attribute missing: %s", buf.String())
	}
}

func TestLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{Level: LevelInfo, LogDir: dir, Service: "filetest"})

	logger.Info("persisted")
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Close twice is fine.
	if err := logger.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	name := filepath.Join(dir, "filetest_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "persisted") {
		t.Errorf("log file missing record: %s", data)
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger.Slog() == nil {
		t.Fatal("Default returned logger without slog backend")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
