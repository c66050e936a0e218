package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Password limits. bcrypt ignores input past 72 bytes, so longer secrets are
// rejected rather than silently truncated.
const (
	MinPasswordLength = 8
	maxBcryptInput    = 72
	DefaultBcryptCost = 12
)

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig reads BCRYPT_COST (10-14) and PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost, err := envInt("BCRYPT_COST", DefaultBcryptCost)
	if err != nil {
		return nil, err
	}
	c := &PasswordConfig{BcryptCost: cost, Pepper: os.Getenv("PASSWORD_PEPPER")}
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	if len(c.Pepper) >= maxBcryptInput-MinPasswordLength {
		return nil, fmt.Errorf("PASSWORD_PEPPER too long: %d bytes", len(c.Pepper))
	}
	return c, nil
}

// CheckPassword reports whether pw is acceptable for a new account.
func (c *PasswordConfig) CheckPassword(pw string) error {
	if len(pw) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(pw)+len(c.Pepper) > maxBcryptInput {
		return fmt.Errorf("password must be at most %d bytes", maxBcryptInput-len(c.Pepper))
	}
	return nil
}

// HashPassword hashes pw with bcrypt, pepper appended.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies pw against a stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}
