// Package signer produces and verifies detached ECDSA secp256k1 signatures
// over arbitrary byte payloads. Messages are digested with SHA-256 before
// signing; signatures are exchanged as hex strings.
package signer

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"
)

// Sign signs the SHA-256 digest of msg with the private key, producing a
// hex-encoded 65-byte [r, s, v] signature.
func Sign(msg []byte, privateKey *ecdsa.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("ecdsa: private key is nil")
	}

	digest := sha256.Sum256(msg)
	signature, err := crypto.Sign(digest[:], privateKey)
	if err != nil {
		return "", fmt.Errorf("ecdsa: sign error: %w", err)
	}

	if len(signature) != 65 {
		return "", fmt.Errorf("ecdsa: invalid signature length: expected 65 bytes, got %d", len(signature))
	}

	return hex.EncodeToString(signature), nil
}

// Verify checks a hex-encoded signature over msg against a hex-encoded public
// key. It is pure: no stored-key dependency.
//
// Accepts compressed (33 bytes) and uncompressed (65 bytes) public keys and
// both 64-byte [r, s] and 65-byte [r, s, v] signatures.
func Verify(msg []byte, signatureHex, publicKeyHex string) (bool, error) {
	publicKey, err := parsePublicKeyHex(publicKeyHex)
	if err != nil {
		return false, err
	}

	sigBytes, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", err)
	}

	var rsBytes []byte
	switch len(sigBytes) {
	case 65:
		rsBytes = sigBytes[:64]
	case 64:
		rsBytes = sigBytes
	default:
		return false, fmt.Errorf("invalid signature length: got %d, want 64 or 65 bytes", len(sigBytes))
	}

	r := new(big.Int).SetBytes(rsBytes[:32])
	s := new(big.Int).SetBytes(rsBytes[32:])
	if r.Sign() == 0 || s.Sign() == 0 {
		return false, fmt.Errorf("invalid signature format")
	}

	digest := sha256.Sum256(msg)
	return ecdsa.Verify(publicKey, digest[:], r, s), nil
}

// parsePublicKeyHex parses a hex-encoded secp256k1 public key in compressed
// or uncompressed form.
func parsePublicKeyHex(publicKeyHex string) (*ecdsa.PublicKey, error) {
	pubKeyBytes, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}
	if len(pubKeyBytes) == 0 {
		return nil, fmt.Errorf("empty public key")
	}

	if pubKeyBytes[0] == 0x02 || pubKeyBytes[0] == 0x03 {
		parsed, err := btcec.ParsePubKey(pubKeyBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse compressed public key: %w", err)
		}
		pubKeyBytes = parsed.SerializeUncompressed()
	}

	publicKey, err := crypto.UnmarshalPubkey(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return publicKey, nil
}
