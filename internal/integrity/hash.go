// Package integrity implements the content hasher: deterministic
// canonicalization of structured payloads and a simulated signature over
// the canonical form. The signature is a plain digest salted with a fixed,
// non-secret tag — it detects accidental or casual tampering in this demo
// system but is not a MAC and carries no real authenticity guarantee.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
)

// signingTag is the fixed suffix appended to canonical payloads before
// digesting. It is deliberately not a secret.
const signingTag = "|fundledger-demo-tag"

// Digest returns the hex-encoded SHA-256 of content. Always 64 hex
// characters, pure, no side effects.
func Digest(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Sign computes the simulated signature for payload:
// Digest(Canonical(payload) + signingTag). Returns a *SerializationError
// when the payload cannot be canonicalized.
func Sign(payload any) (string, error) {
	canonical, err := Canonical(payload)
	if err != nil {
		return "", err
	}
	return Digest(canonical + signingTag), nil
}

// ScopedDigest digests payload within a named scope, used by the
// fast-path transaction check: Digest(Canonical(payload) + "|" + scope).
func ScopedDigest(payload any, scope string) (string, error) {
	canonical, err := Canonical(payload)
	if err != nil {
		return "", err
	}
	return Digest(canonical + "|" + scope), nil
}
