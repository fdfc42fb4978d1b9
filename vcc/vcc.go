// Package vcc exports a content claim as a verifiable-credential shaped
// JSON-LD document carrying a data-integrity proof. The proof is computed
// over the URDNA2015 canonical form of the document, so verification is
// independent of field ordering and whitespace.
//
// This is an optional export surface; the flat signed claim produced by the
// protocol package remains the primary output.
package vcc

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/privacylion/go-didwallet/claim"
	"github.com/privacylion/go-didwallet/signer"
)

// vocabContext is an inline @vocab context so that every claim field maps to
// a term without remote context resolution.
const vocabContext = "https://privacylion.io/ns#"

// Proof is the data-integrity proof attached to a credential document.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	Cryptosuite        string `json:"cryptosuite"`
	ProofValue         string `json:"proofValue"`
}

// Document is a content credential as a JSON object.
type Document map[string]interface{}

// Build assembles a credential document from content-claim fields. The
// issuerDID becomes both the issuer and the subject's creator binding.
func Build(issuerDID string, fields claim.Fields) Document {
	subject := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		if key == claim.SignatureField {
			continue
		}
		subject[key] = value
	}

	return Document{
		"@context": map[string]interface{}{
			"@vocab": vocabContext,
		},
		"type":              "VerifiableContentClaim",
		"issuer":            issuerDID,
		"issuanceDate":      time.Now().UTC().Format(time.RFC3339),
		"credentialSubject": subject,
	}
}

// Canonicalize produces the SHA-256 digest of the document's URDNA2015
// canonical form, excluding the proof field.
func (d Document) Canonicalize() ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("document is nil")
	}

	doc := make(map[string]interface{}, len(d))
	for key, value := range d {
		if key != "proof" {
			doc[key] = value
		}
	}

	processor := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Format = "application/n-quads"
	options.Algorithm = ld.AlgorithmURDNA2015

	canonical, err := processor.Normalize(doc, options)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}

	digest := sha256.Sum256([]byte(canonical.(string)))
	return digest[:], nil
}

// AddProof signs the document's canonical digest and attaches the proof.
func (d Document) AddProof(privateKey *ecdsa.PrivateKey, verificationMethod string) error {
	if verificationMethod == "" {
		return fmt.Errorf("verification method is required")
	}

	digest, err := d.Canonicalize()
	if err != nil {
		return fmt.Errorf("failed to canonicalize document: %w", err)
	}

	sigHex, err := signer.Sign(digest, privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign document: %w", err)
	}

	d["proof"] = Proof{
		Type:               "DataIntegrityProof",
		Created:            time.Now().UTC().Format(time.RFC3339),
		VerificationMethod: verificationMethod,
		ProofPurpose:       "assertionMethod",
		Cryptosuite:        "ecdsa-rdfc-2019",
		ProofValue:         sigHex,
	}
	return nil
}

// VerifyProof recomputes the canonical digest and checks the attached proof
// against the hex-encoded public key.
func (d Document) VerifyProof(publicKeyHex string) (bool, error) {
	proof, ok := d["proof"].(Proof)
	if !ok {
		return false, fmt.Errorf("document has no proof")
	}

	digest, err := d.Canonicalize()
	if err != nil {
		return false, fmt.Errorf("failed to canonicalize document: %w", err)
	}

	return signer.Verify(digest, proof.ProofValue, publicKeyHex)
}
