// Package jwtmw issues and verifies the HS256 tokens that guard the stock API.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimUsername is the custom claim carrying the login name.
const ClaimUsername = "username"

// Generator signs JWT tokens for authenticated users.
type Generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT token with standard claims plus the username.
func (g *Generator) GenerateToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         userID,
		"exp":         now.Add(g.expiration).Unix(),
		"iat":         now.Unix(),
		ClaimUsername: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
