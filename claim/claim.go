// Package claim implements the canonical claim model: a flat mapping of
// string field names to string values, deterministically encoded for hashing
// and signing.
//
// The canonical encoding is JSON with keys in lexicographic order, excluding
// the "signature" field. Two claims with the same field set always encode to
// identical bytes regardless of construction order, so a signature computed
// over the encoding stays verifiable no matter how the claim was assembled.
// The scheme is fixed for the lifetime of the system: a claim produced under
// one scheme cannot be verified under another.
package claim

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/privacylion/go-didwallet/signer"
	"github.com/privacylion/go-didwallet/walleterror"
)

// SignatureField is the reserved field name carrying the claim's own
// signature. It is excluded from the canonical encoding.
const SignatureField = "signature"

// Fields is a claim's field mapping.
type Fields map[string]string

// Canonicalize serializes the fields, sorted by key and excluding the
// signature field, into the byte form used for hashing and signing.
func (f Fields) Canonicalize() ([]byte, error) {
	keys := maps.Keys(f)
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, key := range keys {
		if key == SignatureField {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field name %q: %w", key, err)
		}
		encodedValue, err := json.Marshal(f[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", key, err)
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Decode parses canonical-encoded bytes back into a field mapping.
func Decode(data []byte) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, walleterror.New(walleterror.KindDecode, "malformed claim encoding", err)
	}
	return f, nil
}

// Sign computes a signature over the canonical encoding of all non-signature
// fields and appends it under the signature field. A claim is considered
// signed only after this call.
func (f Fields) Sign(privateKey *ecdsa.PrivateKey) error {
	canonical, err := f.Canonicalize()
	if err != nil {
		return err
	}

	sigHex, err := signer.Sign(canonical, privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign claim: %w", err)
	}

	f[SignatureField] = sigHex
	return nil
}

// VerifySignature recomputes the canonical encoding of the non-signature
// fields and checks the appended signature against the hex-encoded public
// key.
func (f Fields) VerifySignature(publicKeyHex string) (bool, error) {
	sigHex, ok := f[SignatureField]
	if !ok {
		return false, fmt.Errorf("claim has no signature field")
	}

	canonical, err := f.Canonicalize()
	if err != nil {
		return false, err
	}

	return signer.Verify(canonical, sigHex, publicKeyHex)
}

// Pretty serializes the claim, signature included, as indented JSON with
// sorted keys. This is the transmissible/display form handed back to callers.
func (f Fields) Pretty() (string, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize claim: %w", err)
	}
	return string(data), nil
}

// Clone returns a shallow copy of the field mapping.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	maps.Copy(out, f)
	return out
}
