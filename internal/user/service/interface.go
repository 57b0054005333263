// Package service provides the credential primitives behind user registration
// and bearer authentication.
package service

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	Hash(plain string) (string, error)
	// Compare reports whether plain matches hash. It is constant-time.
	Compare(plain, hash string) bool
}

// TokenService generates opaque bearer tokens and hashes them for lookup.
type TokenService interface {
	// GenerateToken returns the plain token, shown to the caller once, and
	// the hash that is stored.
	GenerateToken() (plainToken string, tokenHash string, err error)
	HashToken(plainToken string) string
}
