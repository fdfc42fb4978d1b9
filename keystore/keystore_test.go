package keystore

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacylion/go-didwallet/config"
	"github.com/privacylion/go-didwallet/signer"
	"github.com/privacylion/go-didwallet/walleterror"
)

func newTestKeyStore(t *testing.T) (*KeyStore, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return New(store, config.New(config.Config{})), store
}

func TestGenerateAndRetrieve(t *testing.T) {
	ks, _ := newTestKeyStore(t)

	pair, did, err := ks.Generate()
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, did)

	got, err := ks.Retrieve()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pair.PrivateKey.D, got.PrivateKey.D)

	currentDID, err := ks.CurrentDID()
	require.NoError(t, err)
	assert.Equal(t, did, currentDID)
}

func TestRetrieveAbsent(t *testing.T) {
	ks, _ := newTestKeyStore(t)

	pair, err := ks.Retrieve()
	require.NoError(t, err, "an empty store is absence, not an error")
	assert.Nil(t, pair)

	did, err := ks.CurrentDID()
	require.NoError(t, err)
	assert.Empty(t, did)
}

func TestGenerateReplacesPriorKey(t *testing.T) {
	ks, _ := newTestKeyStore(t)

	first, _, err := ks.Generate()
	require.NoError(t, err)
	second, _, err := ks.Generate()
	require.NoError(t, err)

	stored, err := ks.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, second.PrivateKey.D, stored.PrivateKey.D)
	assert.NotEqual(t, first.PrivateKey.D, stored.PrivateKey.D)

	// Signatures from the first key must no longer verify against the
	// stored key.
	msg := []byte("challenge")
	sig, err := signer.Sign(msg, first.PrivateKey)
	require.NoError(t, err)

	ok, err := signer.Verify(msg, sig, pubHex(stored))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegenerateDiscardsOldKey(t *testing.T) {
	ks, _ := newTestKeyStore(t)

	_, firstDID, err := ks.Generate()
	require.NoError(t, err)

	_, secondDID, err := ks.Regenerate()
	require.NoError(t, err)
	assert.NotEqual(t, firstDID, secondDID)

	currentDID, err := ks.CurrentDID()
	require.NoError(t, err)
	assert.Equal(t, secondDID, currentDID)
}

func TestRegenerateOnEmptyStore(t *testing.T) {
	ks, _ := newTestKeyStore(t)

	// Not-found on the delete step is ignored.
	_, did, err := ks.Regenerate()
	require.NoError(t, err)
	assert.NotEmpty(t, did)
}

func TestRetrieveCorruptSecret(t *testing.T) {
	cfg := config.New(config.Config{})
	slot := Slot{Service: cfg.KeychainService, Account: cfg.KeyAccount}

	tests := []struct {
		name   string
		secret []byte
	}{
		{name: "wrong length", secret: []byte{0x01, 0x02, 0x03}},
		{name: "zero scalar", secret: make([]byte, 32)},
		{name: "out of range scalar", secret: fill(32, 0xff)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Put(slot, tt.secret))

			ks := New(store, cfg)
			_, err := ks.Retrieve()
			require.Error(t, err)
			assert.Equal(t, walleterror.KindDecode, walleterror.KindOf(err))
		})
	}
}

func TestRegenerateAbortsOnDeleteFailure(t *testing.T) {
	cfg := config.New(config.Config{})
	inner := NewMemoryStore()
	store := &failingStore{SecretStore: inner, deleteErr: errors.New("store locked")}
	ks := New(store, cfg)

	_, oldDID, err := ks.Generate()
	require.NoError(t, err)

	store.failing = true
	_, _, err = ks.Regenerate()
	require.Error(t, err)
	assert.Equal(t, walleterror.KindStorage, walleterror.KindOf(err))

	// The old key must still be in place.
	store.failing = false
	currentDID, err := ks.CurrentDID()
	require.NoError(t, err)
	assert.Equal(t, oldDID, currentDID)
}

func TestGenerateSurfacesPutFailure(t *testing.T) {
	cfg := config.New(config.Config{})
	store := &failingStore{SecretStore: NewMemoryStore(), putErr: errors.New("write rejected"), failing: true}
	ks := New(store, cfg)

	_, _, err := ks.Generate()
	require.Error(t, err)
	assert.Equal(t, walleterror.KindStorage, walleterror.KindOf(err))
}

// failingStore wraps a SecretStore and injects failures when enabled.
type failingStore struct {
	SecretStore
	failing   bool
	putErr    error
	deleteErr error
}

func (s *failingStore) Put(slot Slot, secret []byte) error {
	if s.failing && s.putErr != nil {
		return s.putErr
	}
	return s.SecretStore.Put(slot, secret)
}

func (s *failingStore) Delete(slot Slot) error {
	if s.failing && s.deleteErr != nil {
		return s.deleteErr
	}
	return s.SecretStore.Delete(slot)
}

func pubHex(pair *KeyPair) string {
	return hex.EncodeToString(crypto.FromECDSAPub(pair.PublicKey))
}

func fill(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}
