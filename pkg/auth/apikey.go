// Package auth implements the shared-secret API key check.
package auth

// Verifier compares presented keys against a configured secret.
// The comparison is a plain string equality.
type Verifier struct {
	secret string
}

// NewVerifier creates a Verifier for secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify reports whether key is non-empty and equals the secret.
func (v *Verifier) Verify(key string) bool {
	if key == "" {
		return false
	}
	return key == v.secret
}
