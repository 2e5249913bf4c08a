package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// APIKeyVerifier checks admin API keys against a bcrypt hash
type APIKeyVerifier struct {
	hash []byte
}

// NewAPIKeyVerifier returns nil when no hash is configured, which disables
// API key access entirely
func NewAPIKeyVerifier(hash string) *APIKeyVerifier {
	if hash == "" {
		return nil
	}
	return &APIKeyVerifier{hash: []byte(hash)}
}

// HashAPIKey produces the value stored in ADMIN_API_KEY_HASH
func HashAPIKey(key string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (v *APIKeyVerifier) Verify(key string) bool {
	if v == nil || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(key)) == nil
}
