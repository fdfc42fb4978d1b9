// Package keystore owns the durable signing key. It wraps an external
// SecretStore collaborator with generate/regenerate/retrieve semantics and
// guarantees at most one stored secret per slot.
//
// The KeyStore itself adds no locking: mutating operations (Generate,
// Regenerate) must be externally serialized to at most one in flight per slot,
// since Regenerate performs delete-then-generate with no isolation.
package keystore

import (
	"bytes"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/privacylion/go-didwallet/config"
	"github.com/privacylion/go-didwallet/did"
	"github.com/privacylion/go-didwallet/walleterror"
)

// KeyPair is the current signing key pair over secp256k1.
type KeyPair struct {
	PrivateKey *ecdsa.PrivateKey
	PublicKey  *ecdsa.PublicKey
}

// KeyStore manages the single signing key slot.
type KeyStore struct {
	store SecretStore
	slot  Slot
	cfg   *config.Config
}

// New creates a KeyStore over the given secret store, using the slot and DID
// method from cfg. Pass config.New(config.Config{}) for defaults.
func New(store SecretStore, cfg *config.Config) *KeyStore {
	return &KeyStore{
		store: store,
		slot: Slot{
			Service: cfg.KeychainService,
			Account: cfg.KeyAccount,
		},
		cfg: cfg,
	}
}

// Generate creates a fresh random key pair, stores its private scalar
// (replacing any existing secret under the slot) and returns the pair together
// with its derived identifier.
func (k *KeyStore) Generate() (*KeyPair, string, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate private key: %w", err)
	}

	// Delete-then-add, mirroring the replace semantics of platform
	// keychains. A failed delete of a missing secret is not an error.
	if err := k.store.Delete(k.slot); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, "", walleterror.New(walleterror.KindStorage, "failed to replace stored key", err)
	}
	if err := k.store.Put(k.slot, crypto.FromECDSA(privateKey)); err != nil {
		return nil, "", walleterror.New(walleterror.KindStorage, "failed to store private key", err)
	}

	pair := &KeyPair{
		PrivateKey: privateKey,
		PublicKey:  privateKey.Public().(*ecdsa.PublicKey),
	}
	return pair, did.FromPublicKeyWithMethod(pair.PublicKey, k.cfg.Method), nil
}

// Regenerate deletes the current secret and generates a new one. The old key
// is irrecoverable after this call; there is no rollback. A "not found"
// condition on delete is ignored, any other deletion failure aborts before a
// new key is generated, leaving the old key (if any) in place.
func (k *KeyStore) Regenerate() (*KeyPair, string, error) {
	if err := k.store.Delete(k.slot); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, "", walleterror.New(walleterror.KindStorage, "failed to delete private key", err)
	}
	return k.Generate()
}

// Retrieve fetches and parses the stored secret. An empty store returns
// (nil, nil), not an error; stored bytes that do not parse as a valid
// secp256k1 scalar surface as a decode failure (corruption).
func (k *KeyStore) Retrieve() (*KeyPair, error) {
	secret, err := k.store.Get(k.slot)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, walleterror.New(walleterror.KindStorage, "failed to read private key", err)
	}

	privateKey, err := parsePrivateScalar(secret)
	if err != nil {
		return nil, walleterror.New(walleterror.KindDecode, "stored private key is corrupt", err)
	}

	return &KeyPair{
		PrivateKey: privateKey,
		PublicKey:  privateKey.Public().(*ecdsa.PublicKey),
	}, nil
}

// CurrentDID derives the identifier of the currently stored key. An empty
// store yields ("", nil).
func (k *KeyStore) CurrentDID() (string, error) {
	pair, err := k.Retrieve()
	if err != nil {
		return "", err
	}
	if pair == nil {
		return "", nil
	}
	return did.FromPublicKeyWithMethod(pair.PublicKey, k.cfg.Method), nil
}

// parsePrivateScalar parses a stored 32-byte secret into a secp256k1 private
// key, rejecting out-of-range and zero scalars.
func parsePrivateScalar(secret []byte) (*ecdsa.PrivateKey, error) {
	if len(secret) != 32 {
		return nil, fmt.Errorf("invalid secret length: expected 32 bytes, got %d", len(secret))
	}

	scalar := secp256k1.PrivKeyFromBytes(secret)
	if scalar.Key.IsZero() {
		return nil, fmt.Errorf("invalid secret: zero scalar")
	}
	// PrivKeyFromBytes reduces out-of-range scalars mod the curve order, so
	// a round trip that does not reproduce the input means corruption.
	if !bytes.Equal(scalar.Serialize(), secret) {
		return nil, fmt.Errorf("invalid secret: scalar out of range")
	}

	// Rebuild through go-ethereum so the key carries the same curve
	// instance the signing path expects.
	return crypto.ToECDSA(secret)
}
