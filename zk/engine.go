// Package zk wraps the external zero-knowledge-proof and contract-construction
// engines. Both are opaque to the wallet core: they take string/byte inputs
// and return opaque proof or contract strings, signaling failure with an
// empty result that this package translates into a typed error. The returned
// values are owned by the caller; any foreign-buffer lifetime management is an
// adapter concern invisible here.
package zk

import (
	"context"

	"github.com/privacylion/go-didwallet/walleterror"
)

// ProofEngine generates zero-knowledge computation proofs.
type ProofEngine interface {
	// GenerateProof produces a proof for the named circuit over the given
	// hex-encoded input and output digests.
	GenerateProof(ctx context.Context, circuit, inputHashHex, outputHashHex string) (string, error)
}

// ContractEngine builds and signs discreet-log contracts.
type ContractEngine interface {
	// CreateContract builds a contract string for an outcome with the
	// given payout ratios (informally summing to 1.0) and oracle key.
	CreateContract(outcome string, payout []float64, oraclePubKey string) (string, error)

	// SignOutcome signs a contract outcome, returning an opaque signature
	// string.
	SignOutcome(outcome string) (string, error)
}

// ProofFunc adapts a raw proof-generator function into a ProofEngine. The
// underlying function signals failure by returning an empty string, which is
// translated into a proof-generation error rather than propagated as a valid
// empty result.
type ProofFunc func(circuit, inputHashHex, outputHashHex string) string

// GenerateProof implements ProofEngine.
func (f ProofFunc) GenerateProof(ctx context.Context, circuit, inputHashHex, outputHashHex string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", walleterror.New(walleterror.KindProofGeneration, "proof generation canceled", err)
	}

	proof := f(circuit, inputHashHex, outputHashHex)
	if proof == "" {
		return "", walleterror.Newf(walleterror.KindProofGeneration, "proof engine failed for circuit %q", circuit)
	}
	return proof, nil
}

// ContractFuncs adapts raw contract-engine functions into a ContractEngine.
// Each underlying function signals failure with an empty string.
type ContractFuncs struct {
	Create func(outcome string, payout []float64, oraclePubKey string) string
	Sign   func(outcome string) string
}

// CreateContract implements ContractEngine.
func (c ContractFuncs) CreateContract(outcome string, payout []float64, oraclePubKey string) (string, error) {
	contract := c.Create(outcome, payout, oraclePubKey)
	if contract == "" {
		return "", walleterror.Newf(walleterror.KindContract, "contract engine failed for outcome %q", outcome)
	}
	return contract, nil
}

// SignOutcome implements ContractEngine.
func (c ContractFuncs) SignOutcome(outcome string) (string, error) {
	signature := c.Sign(outcome)
	if signature == "" {
		return "", walleterror.Newf(walleterror.KindContract, "contract engine failed to sign outcome %q", outcome)
	}
	return signature, nil
}
