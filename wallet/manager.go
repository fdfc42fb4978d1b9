// Package wallet exposes the process-wide wallet façade the UI layer calls.
// The Manager owns the cached current identifier and its lifecycle and
// delegates claim production to the protocol package.
//
// The Manager serializes nothing across mutating calls: callers must issue at
// most one in-flight mutating operation (generate/regenerate) at a time. The
// identifier cache itself is guarded, so readers and observers are safe
// against a concurrent refresh.
package wallet

import (
	"context"
	"sync"

	"github.com/privacylion/go-didwallet/config"
	"github.com/privacylion/go-didwallet/keystore"
	"github.com/privacylion/go-didwallet/payment"
	"github.com/privacylion/go-didwallet/protocol"
)

// Observer receives the new identifier after every successful key generation
// or refresh.
type Observer func(did string)

// Manager is the wallet façade. Construction does not auto-generate a key:
// the identifier stays absent until the caller generates or retrieves one.
type Manager struct {
	keys     *keystore.KeyStore
	protocol *protocol.ClaimProtocol

	mu        sync.Mutex
	publicDID string
	observers map[int]Observer
	nextObs   int
}

// NewManager creates a Manager over a secret store. Protocol collaborators
// (publish sink, proof and contract engines, metrics, logger) are supplied as
// protocol options.
func NewManager(store keystore.SecretStore, cfg *config.Config, opts ...protocol.Option) *Manager {
	keys := keystore.New(store, cfg)
	return &Manager{
		keys:      keys,
		protocol:  protocol.New(keys, cfg, opts...),
		observers: make(map[int]Observer),
	}
}

// Subscribe registers an observer for identifier changes and returns a cancel
// function. Observers are invoked synchronously after each successful
// generate, regenerate, or identifier refresh.
func (m *Manager) Subscribe(obs Observer) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextObs
	m.nextObs++
	m.observers[id] = obs

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// setDID updates the cache and notifies observers.
func (m *Manager) setDID(did string) {
	m.mu.Lock()
	m.publicDID = did
	observers := make([]Observer, 0, len(m.observers))
	for _, obs := range m.observers {
		observers = append(observers, obs)
	}
	m.mu.Unlock()

	for _, obs := range observers {
		obs(did)
	}
}

// PublicDID returns the cached identifier, or "" when none has been generated
// or retrieved yet.
func (m *Manager) PublicDID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.publicDID
}

// GenerateKeyPair creates and stores a fresh key pair and returns the derived
// identifier.
func (m *Manager) GenerateKeyPair() (string, error) {
	_, did, err := m.keys.Generate()
	if err != nil {
		return "", err
	}
	m.setDID(did)
	return did, nil
}

// RegenerateKeyPair deletes the current key and generates a new one. The old
// key is irrecoverable afterwards.
func (m *Manager) RegenerateKeyPair() (string, error) {
	_, did, err := m.keys.Regenerate()
	if err != nil {
		return "", err
	}
	m.setDID(did)
	return did, nil
}

// CurrentDID re-derives the identifier from the stored key and refreshes the
// cache. An empty store yields ("", nil) and leaves the cache unchanged.
func (m *Manager) CurrentDID() (string, error) {
	did, err := m.keys.CurrentDID()
	if err != nil {
		return "", err
	}
	if did != "" {
		m.setDID(did)
	}
	return did, nil
}

// Authenticate performs the DID-challenge handshake against the given payment
// backend. See protocol.ClaimProtocol.Authenticate.
func (m *Manager) Authenticate(ctx context.Context, nonce string, backend payment.Backend, withdrawTo string) (signature, preimage string, err error) {
	return m.protocol.Authenticate(ctx, nonce, backend, withdrawTo)
}

// ProveOwnership produces a signed ownership claim through the selected
// wallet backend.
func (m *Manager) ProveOwnership(ctx context.Context, walletType payment.WalletType, withdrawTo string, amountSats int) (string, error) {
	return m.protocol.ProveOwnership(ctx, walletType, withdrawTo, amountSats)
}

// GenerateContentClaim produces a signed content claim for the URL.
func (m *Manager) GenerateContentClaim(ctx context.Context, contentURL, lnAddress string, metadata map[string]string) (string, error) {
	return m.protocol.GenerateContentClaim(ctx, contentURL, lnAddress, metadata)
}

// GenerateComputationProof produces an opaque proof and a signature over its
// binding metadata.
func (m *Manager) GenerateComputationProof(ctx context.Context, input, output []byte, circuit string) (proof, signedMetadata string, err error) {
	return m.protocol.GenerateComputationProof(ctx, input, output, circuit)
}

// CreateDLC builds a discreet-log contract.
func (m *Manager) CreateDLC(outcome string, payout []float64, oraclePubKey string) (string, error) {
	return m.protocol.CreateDLC(outcome, payout, oraclePubKey)
}

// SignDLCOutcome signs a contract outcome.
func (m *Manager) SignDLCOutcome(outcome string) (string, error) {
	return m.protocol.SignDLCOutcome(outcome)
}

// PublishProof hands a signed payload to the broadcast sink.
func (m *Manager) PublishProof(kind int, signedProof string) {
	m.protocol.PublishProof(kind, signedProof)
}
