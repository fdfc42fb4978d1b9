package zk

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// StubProofEngine is a deterministic in-process ProofEngine for tests and
// development builds where the real prover is unavailable.
func StubProofEngine() ProofEngine {
	return ProofFunc(func(circuit, inputHashHex, outputHashHex string) string {
		digest := sha256.Sum256([]byte(circuit + ":" + inputHashHex + ":" + outputHashHex))
		return "stwo_proof_" + hex.EncodeToString(digest[:])
	})
}

// StubContractEngine is a deterministic in-process ContractEngine.
func StubContractEngine() ContractEngine {
	return ContractFuncs{
		Create: func(outcome string, payout []float64, oraclePubKey string) string {
			ratios := make([]string, len(payout))
			for i, p := range payout {
				ratios[i] = fmt.Sprintf("%.2f", p)
			}
			return fmt.Sprintf("dlc{outcome=%s,payout=[%s],oracle=%s}", outcome, strings.Join(ratios, ","), oraclePubKey)
		},
		Sign: func(outcome string) string {
			digest := sha256.Sum256([]byte("dlc_outcome:" + outcome))
			return hex.EncodeToString(digest[:])
		},
	}
}
