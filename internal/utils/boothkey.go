// Package utils provides small helpers shared across handlers and
// middleware.
package utils

import "golang.org/x/crypto/bcrypt"

// HashBoothKey returns the bcrypt hash of a venue-issued booth key.
// The hash, not the key, goes into BOOTH_KEY_HASH.
func HashBoothKey(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyBoothKey safely compares a bcrypt hash and a presented key.
func VerifyBoothKey(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
