// Package wgkey generates and derives WireGuard key material natively, so a
// missing wg binary does not break key management.
package wgkey

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// KeyPair holds a base64-encoded Curve25519 key pair.
type KeyPair struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// Generate creates a new key pair.
func Generate() (*KeyPair, error) {
	private := make([]byte, 32)
	if _, err := rand.Read(private); err != nil {
		return nil, fmt.Errorf("generate private key: %w", err)
	}
	clamp(private)

	public, err := curve25519.X25519(private, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	return &KeyPair{
		PrivateKey: base64.StdEncoding.EncodeToString(private),
		PublicKey:  base64.StdEncoding.EncodeToString(public),
	}, nil
}

// DerivePublicKey computes the public key for a base64-encoded private key.
func DerivePublicKey(privateKey string) (string, error) {
	private, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("private key is not valid base64: %w", err)
	}
	if len(private) != 32 {
		return "", fmt.Errorf("private key must be 32 bytes, got %d", len(private))
	}
	clamp(private)

	public, err := curve25519.X25519(private, curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("derive public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(public), nil
}

// Valid reports whether key looks like a WireGuard key: 44 characters of
// base64 decoding to exactly 32 bytes.
func Valid(key string) bool {
	if len(key) != 44 {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(key)
	return err == nil && len(decoded) == 32
}

// clamp applies the Curve25519 clamping required by WireGuard.
func clamp(key []byte) {
	key[0] &= 248
	key[31] &= 127
	key[31] |= 64
}
