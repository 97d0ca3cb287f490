package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch indicates the plaintext does not reproduce the stored digest.
var ErrMismatch = errors.New("password: mismatch")

// Hash generates a bcrypt digest with a per-call random salt. Hashing the
// same plaintext twice yields different digests.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify checks plain against a bcrypt digest. bcrypt's comparison is not
// correlated with how many leading characters match.
func Verify(plain, digest string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}
