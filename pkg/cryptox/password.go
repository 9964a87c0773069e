package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for all stored credentials.
// Bumping it only affects new hashes; existing digests keep the cost they
// were created with and still verify.
const HashCost = 10

// ErrMismatch is returned by VerifyPassword when the plaintext does not match
// the stored digest. Malformed digests report the same error so callers treat
// a corrupt hash as "not matched" rather than a distinct failure.
var ErrMismatch = errors.New("cryptox: password does not match")

// HashPassword derives a one-way salted bcrypt digest of the plaintext.
// bcrypt generates its own random salt, so hashing the same password twice
// yields different digests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt digest.
// The underlying comparison is constant-time with respect to the digest.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err != nil {
		return ErrMismatch
	}
	return nil
}
