package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/allisson/deliveryqueue/internal/errors"
)

const tokenBytes = 32

// tokenService implements TokenService with SHA-256 hashing.
type tokenService struct{}

// NewTokenService creates a new TokenService.
func NewTokenService() TokenService {
	return &tokenService{}
}

// GenerateToken creates a random 32-byte token, base64 URL-encoded.
func (t *tokenService) GenerateToken() (string, string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.URLEncoding.EncodeToString(raw)
	return plainToken, t.HashToken(plainToken), nil
}

// HashToken returns the hex-encoded SHA-256 of plainToken.
func (t *tokenService) HashToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}
