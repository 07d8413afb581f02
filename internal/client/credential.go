package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CredentialVerifier hashes and checks user passwords. Kept behind an
// interface so deployments can swap in their identity provider.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// HMACVerifier derives password hashes with HMAC-SHA256 keyed by a
// server-side secret.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier creates a verifier keyed by the given secret
func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Hash(password string) (string, error) {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func (v *HMACVerifier) Verify(hash, password string) bool {
	computed, err := v.Hash(password)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(computed), []byte(hash))
}
