// Package did provides deterministic identifier derivation from public keys.
//
// An identifier has the form "did:<method>:<hex-encoded public key>". It is
// derived, never stored: the same key pair always yields the same identifier,
// so it is recomputed on demand from whatever key the store currently holds.
package did

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/privacylion/go-didwallet/config"
)

// FromPublicKey derives the identifier for a public key using the default
// method prefix. The encoding is the lowercase hex of the 65-byte uncompressed
// SEC1 representation.
//
// The key must be non-nil; passing nil is a caller contract violation.
func FromPublicKey(pub *ecdsa.PublicKey) string {
	return FromPublicKeyWithMethod(pub, config.DefaultMethod)
}

// FromPublicKeyWithMethod derives the identifier under an explicit method
// prefix (e.g. "did:btcr").
func FromPublicKeyWithMethod(pub *ecdsa.PublicKey, method string) string {
	pubBytes := crypto.FromECDSAPub(pub)
	return method + ":" + hex.EncodeToString(pubBytes)
}

// FromPublicKeyHex derives the identifier from a hex-encoded public key.
//
// Supports both compressed (33 bytes) and uncompressed (65 bytes) public key
// formats; compressed keys are expanded before encoding so that the derived
// identifier is independent of the input representation. The publicKeyHex
// parameter can include or omit the "0x" prefix.
func FromPublicKeyHex(publicKeyHex string) (string, error) {
	publicKeyBytes, err := hex.DecodeString(strings.TrimPrefix(publicKeyHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("failed to decode public key hex: %w", err)
	}

	var publicKey *ecdsa.PublicKey

	if len(publicKeyBytes) == 33 && (publicKeyBytes[0] == 0x02 || publicKeyBytes[0] == 0x03) {
		parsed, err := btcec.ParsePubKey(publicKeyBytes)
		if err != nil {
			return "", fmt.Errorf("failed to parse compressed public key: %w", err)
		}
		publicKey = parsed.ToECDSA()
	} else if len(publicKeyBytes) == 65 && publicKeyBytes[0] == 0x04 {
		publicKey, err = crypto.UnmarshalPubkey(publicKeyBytes)
		if err != nil {
			return "", fmt.Errorf("failed to unmarshal public key: %w", err)
		}
	} else {
		return "", fmt.Errorf("unsupported public key format: expected 33 bytes (compressed) or 65 bytes (uncompressed), got %d bytes", len(publicKeyBytes))
	}

	return FromPublicKey(publicKey), nil
}

// PublicKeyHex returns the lowercase hex encoding of the uncompressed public
// key, i.e. the identifier body without the method prefix.
func PublicKeyHex(pub *ecdsa.PublicKey) string {
	return hex.EncodeToString(crypto.FromECDSAPub(pub))
}
