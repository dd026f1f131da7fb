package auth

import "golang.org/x/crypto/bcrypt"

// HashSecret hashes a plaintext secret with the configured bcrypt cost.
// Secrets are never stored or compared in clear.
func HashSecret(secret string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareSecret verifies a plaintext secret against its stored hash.
// bcrypt's comparison is constant-time.
func CompareSecret(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
