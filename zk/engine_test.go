package zk

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacylion/go-didwallet/walleterror"
)

func TestStubProofEngineDeterministic(t *testing.T) {
	engine := StubProofEngine()

	first, err := engine.GenerateProof(context.Background(), "fib", "aa", "bb")
	require.NoError(t, err)
	second, err := engine.GenerateProof(context.Background(), "fib", "aa", "bb")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "stwo_proof_"))

	other, err := engine.GenerateProof(context.Background(), "fib", "aa", "cc")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestProofFuncTranslatesEmptyResult(t *testing.T) {
	engine := ProofFunc(func(circuit, inputHashHex, outputHashHex string) string {
		return ""
	})

	_, err := engine.GenerateProof(context.Background(), "fib", "aa", "bb")
	require.Error(t, err)
	assert.Equal(t, walleterror.KindProofGeneration, walleterror.KindOf(err))
}

func TestProofFuncHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := StubProofEngine()
	_, err := engine.GenerateProof(ctx, "fib", "aa", "bb")
	require.Error(t, err)
	assert.Equal(t, walleterror.KindProofGeneration, walleterror.KindOf(err))
}

func TestStubContractEngine(t *testing.T) {
	engine := StubContractEngine()

	contract, err := engine.CreateContract("team_a_wins", []float64{0.9, 0.1}, "oracle_pub")
	require.NoError(t, err)
	assert.Contains(t, contract, "team_a_wins")
	assert.Contains(t, contract, "0.90")
	assert.Contains(t, contract, "oracle_pub")

	sig, err := engine.SignOutcome("team_a_wins")
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestContractFuncsTranslateEmptyResults(t *testing.T) {
	engine := ContractFuncs{
		Create: func(outcome string, payout []float64, oraclePubKey string) string { return "" },
		Sign:   func(outcome string) string { return "" },
	}

	_, err := engine.CreateContract("o", []float64{1.0}, "pub")
	require.Error(t, err)
	assert.Equal(t, walleterror.KindContract, walleterror.KindOf(err))

	_, err = engine.SignOutcome("o")
	require.Error(t, err)
	assert.Equal(t, walleterror.KindContract, walleterror.KindOf(err))
}
