package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost keeps verification latency in the tens of milliseconds on
// commodity hardware.
const bcryptCost = 10

// HashPassword produces a salted bcrypt digest of the plaintext. Two calls
// with the same input yield different digests.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plain matches the stored digest. A malformed
// digest verifies as false; this never returns an error to callers.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
