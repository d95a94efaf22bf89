// Package cryptox wraps the hashing and comparison primitives used for the
// shared viewer password and the configured admin secret.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashSecret hashes a plaintext secret with bcrypt at the default cost.
// The result embeds the salt and is safe to persist as-is.
func HashSecret(plaintext []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(plaintext, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret reports whether plaintext matches the stored bcrypt hash.
func CheckSecret(hashed string, plaintext []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), plaintext) == nil
}

// ConstantTimeEquals compares two byte slices in constant time. Used for the
// admin-secret branch of password verification so both branches of the check
// stay timing-safe.
func ConstantTimeEquals(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
