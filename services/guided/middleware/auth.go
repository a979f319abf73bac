// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the guided service.
//
// The auth middleware extracts a bearer token from the Authorization
// header, validates it with the TokenIssuer, and stores the resulting
// Claims in the Gin context for downstream handlers.
//
//	Request
//	   │
//	   ▼
//	Authenticate
//	   │
//	   ├─► Extract token from "Authorization: Bearer <token>"
//	   │
//	   ├─► issuer.Validate(token)
//	   │
//	   └─► Store Claims in context
//	           │
//	           ▼
//	       RequireRole / Handler (retrieves via GetClaims)
package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/guidedhq/guided/services/guided/datatypes"
)

// =============================================================================
// Claims & Token Issuer
// =============================================================================

// claimsKey is the Gin context key for storing validated Claims.
const claimsKey = "guided_auth_claims"

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Claims carries the platform identity inside a JWT.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// TokenIssuer signs and validates the service's HS256 bearer tokens.
// It also owns password hashing, which shares the signing secret as salt.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer returns an issuer for the given shared secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for the user, expiring after TokenTTL.
func (t *TokenIssuer) Issue(u datatypes.UserAccount) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID:   u.ID,
		Email:    u.Email,
		Role:     u.Role,
		Name:     u.Name,
		Verified: u.Verified,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, mapJWTError(err)
	}
	return &claims, nil
}

// HashPassword hashes a password with SHA-256, salted with the signing
// secret. Matches the stored password_hash format.
func (t *TokenIssuer) HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + ":" + string(t.secret)))
	return hex.EncodeToString(sum[:])
}

// mapJWTError collapses jwt library errors into stable messages.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.New("token expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.New("invalid token signature")
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.New("token alg is invalid")
	default:
		return errors.New("invalid token")
	}
}

// =============================================================================
// Context Helpers
// =============================================================================

// SetClaims stores the authenticated identity in the Gin context.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsKey, claims)
}

// GetClaims retrieves the authenticated identity, or nil when the request
// did not pass Authenticate.
func GetClaims(c *gin.Context) *Claims {
	if v, exists := c.Get(claimsKey); exists {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}

// =============================================================================
// Middleware
// =============================================================================

// Authenticate validates the bearer token on every request and aborts
// with 401 when it is missing, expired, or tampered with.
func Authenticate(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token",
			})
			return
		}

		claims, err := issuer.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user has one of
// the given roles. Must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("requires role: %s", strings.Join(roles, " or ")),
		})
	}
}

// extractBearerToken extracts the token from the Authorization header.
// The "Bearer" prefix is case-insensitive per RFC 7235.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
