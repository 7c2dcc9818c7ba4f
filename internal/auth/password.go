package auth

import "golang.org/x/crypto/bcrypt"

// hashCost is the fixed bcrypt work factor. Raising it slows every
// register/login; this is the dominant latency source on those paths.
const hashCost = 10

// HashPassword derives a salted one-way hash of the plaintext. The salt and
// cost factor are encoded in the output, so verification is self-contained.
// Two hashes of the same plaintext differ.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
