package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from the plaintext password.
// It fails only on internal bcrypt errors (e.g. the password exceeding the
// 72-byte bcrypt limit).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// The digest comparison inside bcrypt is constant-time.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
