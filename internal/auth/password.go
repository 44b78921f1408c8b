package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for password hashing. 12 keeps a single
// hash in the tens of milliseconds, which makes offline brute force
// expensive without stalling interactive logins.
const bcryptCost = 12

// maxPasswordBytes is bcrypt's input limit. GenerateFromPassword errors
// on anything longer, so validation rejects it up front instead of
// surfacing a hashing failure.
const maxPasswordBytes = 72

// HashPassword computes a salted bcrypt digest of the password. The salt
// is regenerated on every call, so hashing the same password twice
// produces different digests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored digest.
// The comparison is constant time, and a malformed or empty digest fails
// closed rather than erroring past the credential check.
func VerifyPassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
