// internal/auth/password.go
//
// bcrypt helpers for the credential check at login and for the offline
// `users add` / `users hash` commands. Plaintext is never compared to
// plaintext; the comparison is delegated to bcrypt.CompareHashAndPassword.

package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned by HashPassword for inputs bcrypt would truncate.
var ErrPasswordTooLong = errors.New("password must be 72 bytes or fewer")

// HashPassword returns a salted bcrypt hash of pw. A cost of 0 means bcrypt.DefaultCost (10).
func HashPassword(pw string, cost int) (string, error) {
	if len(pw) > 72 {
		return "", ErrPasswordTooLong
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

// CheckPassword is a bcrypt verifier. Malformed hashes and mismatches both report false.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
