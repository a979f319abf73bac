// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the guided service configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the service together.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// MongoURI is the MongoDB connection string.
	MongoURI string
	// MongoDatabase is the database name.
	MongoDatabase string
	// JWTSecret signs bearer tokens and salts password hashes.
	JWTSecret string
	// OTLPEndpoint is the OTLP gRPC collector address. Tracing is
	// disabled when empty.
	OTLPEndpoint string
	// GinMode sets the Gin runtime mode (debug, release, test).
	GinMode string
	// LogLevel is the minimum log severity (debug, info, warn, error).
	LogLevel string
	// LogDir enables file logging when set.
	LogDir string
}

// Load reads the configuration. A .env file in the working directory is
// applied first when present; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration from .env file")
	}

	cfg := Config{
		Port:          getEnvOr("PORT", "8000"),
		MongoURI:      getEnvOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOr("MONGO_DB", "guided"),
		JWTSecret:     getEnvOr("JWT_SECRET", "guided-dev-secret"),
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		GinMode:       getEnvOr("GIN_MODE", "debug"),
		LogLevel:      getEnvOr("LOG_LEVEL", "info"),
		LogDir:        os.Getenv("LOG_DIR"),
	}

	if cfg.JWTSecret == "guided-dev-secret" {
		slog.Warn("JWT_SECRET not set, using development default")
	}
	return cfg
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
