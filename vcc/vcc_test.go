package vcc

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacylion/go-didwallet/claim"
	"github.com/privacylion/go-didwallet/did"
)

func TestBuildExcludesSignatureField(t *testing.T) {
	fields := claim.Fields{
		"content_hash": "abc",
		"ln_address":   "alice@ln.example",
		"signature":    "deadbeef",
	}

	doc := Build("did:btcr:04aa", fields)

	subject, ok := doc["credentialSubject"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abc", subject["content_hash"])
	assert.NotContains(t, subject, "signature")
	assert.Equal(t, "did:btcr:04aa", doc["issuer"])
	assert.Equal(t, "VerifiableContentClaim", doc["type"])
}

func TestCanonicalizeStable(t *testing.T) {
	doc := Build("did:btcr:04aa", claim.Fields{"a": "1", "b": "2"})

	first, err := doc.Canonicalize()
	require.NoError(t, err)
	second, err := doc.Canonicalize()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAddProofAndVerify(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	issuer := did.FromPublicKey(&key.PublicKey)
	doc := Build(issuer, claim.Fields{
		"content_hash": "abc",
		"ln_address":   "alice@ln.example",
	})

	require.NoError(t, doc.AddProof(key, issuer+"#key-1"))

	proof, ok := doc["proof"].(Proof)
	require.True(t, ok)
	assert.Equal(t, "DataIntegrityProof", proof.Type)
	assert.Equal(t, "ecdsa-rdfc-2019", proof.Cryptosuite)
	assert.NotEmpty(t, proof.ProofValue)

	valid, err := doc.VerifyProof(did.PublicKeyHex(&key.PublicKey))
	require.NoError(t, err)
	assert.True(t, valid)

	// Tampering with the subject invalidates the proof.
	doc["credentialSubject"].(map[string]interface{})["content_hash"] = "tampered"
	valid, err = doc.VerifyProof(did.PublicKeyHex(&key.PublicKey))
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestAddProofRequiresVerificationMethod(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	doc := Build("did:btcr:04aa", claim.Fields{"a": "1"})
	assert.Error(t, doc.AddProof(key, ""))
}

func TestVerifyProofWithoutProof(t *testing.T) {
	doc := Build("did:btcr:04aa", claim.Fields{"a": "1"})
	_, err := doc.VerifyProof("04aa")
	assert.Error(t, err)
}
