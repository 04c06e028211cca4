// Package security contains everything related to the security of user data
package security

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword returns a bcrypt hash of the given password. The salt is
// generated per call and embedded in the output.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash. Malformed
// hashes simply fail verification instead of surfacing an error.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
