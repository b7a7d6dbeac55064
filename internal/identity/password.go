package identity

import (
	"golang.org/x/crypto/bcrypt"
)

// hashPassword creates a bcrypt hash from the given plaintext password.
func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// verifyPassword checks a plaintext password against a stored bcrypt hash.
func verifyPassword(hashed, provided string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(provided)) == nil
}
