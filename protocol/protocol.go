// Package protocol orchestrates the claim lifecycle: obtain a payment receipt
// from a backend, assemble claim fields, canonicalize, hash, sign, and hand
// back the final transmissible claim. It also implements the DID-challenge
// authentication handshake combining a nonce signature with a payment
// authorization.
//
// Ordering is a correctness invariant: within a single ProveOwnership call,
// payment authorization strictly precedes field assembly, which strictly
// precedes hashing and signing. A claim is never signed before the receipt it
// attests to exists, and no partial claim is ever visible to the caller.
package protocol

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/privacylion/go-didwallet/claim"
	"github.com/privacylion/go-didwallet/config"
	"github.com/privacylion/go-didwallet/keystore"
	"github.com/privacylion/go-didwallet/metrics"
	"github.com/privacylion/go-didwallet/payment"
	"github.com/privacylion/go-didwallet/publish"
	"github.com/privacylion/go-didwallet/signer"
	"github.com/privacylion/go-didwallet/walleterror"
	"github.com/privacylion/go-didwallet/zk"
)

// Claim field names.
const (
	FieldWalletType  = "wallet_type"
	FieldWithdrawTo  = "withdraw_to"
	FieldPaid        = "paid"
	FieldPreimage    = "preimage"
	FieldLoginPaid   = "login_paid"
	FieldCreatedBy   = "created_by"
	FieldContentHash = "content_hash"
	FieldLNAddress   = "ln_address"
)

// Relay event kinds for published payloads.
const (
	KindComputationProof = 1
	KindContentClaim     = 2
)

// ContentHasher computes a content hash for a content URL. The default
// implementation hashes the URL string itself; fetching and hashing the
// actual content is a collaborator concern.
type ContentHasher func(ctx context.Context, contentURL string) (string, error)

// DefaultContentHasher hashes the URL string with SHA-256.
func DefaultContentHasher(ctx context.Context, contentURL string) (string, error) {
	digest := sha256.Sum256([]byte(contentURL))
	return hex.EncodeToString(digest[:]), nil
}

// ClaimProtocol coordinates key retrieval, payment backends and the external
// proof/contract engines to produce signed claims.
type ClaimProtocol struct {
	keys     *keystore.KeyStore
	cfg      *config.Config
	resolve  func(payment.WalletType) (payment.Backend, error)
	sink     publish.Sink
	prover   zk.ProofEngine
	contract zk.ContractEngine
	hasher   ContentHasher
	metrics  *metrics.Metrics
	logger   *log.Logger
}

// Option configures a ClaimProtocol.
type Option func(*ClaimProtocol)

// WithResolver overrides backend resolution, letting tests substitute stub
// backends for the closed registry.
func WithResolver(resolve func(payment.WalletType) (payment.Backend, error)) Option {
	return func(p *ClaimProtocol) {
		p.resolve = resolve
	}
}

// WithPublisher sets the broadcast sink for signed payloads.
func WithPublisher(sink publish.Sink) Option {
	return func(p *ClaimProtocol) {
		p.sink = sink
	}
}

// WithProofEngine sets the zero-knowledge proof engine.
func WithProofEngine(engine zk.ProofEngine) Option {
	return func(p *ClaimProtocol) {
		p.prover = engine
	}
}

// WithContractEngine sets the contract-construction engine.
func WithContractEngine(engine zk.ContractEngine) Option {
	return func(p *ClaimProtocol) {
		p.contract = engine
	}
}

// WithContentHasher sets the content-hashing collaborator.
func WithContentHasher(hasher ContentHasher) Option {
	return func(p *ClaimProtocol) {
		p.hasher = hasher
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *ClaimProtocol) {
		p.metrics = m
	}
}

// WithLogger sets the logger used for side-effect reporting (payout splits,
// anchor notifications).
func WithLogger(logger *log.Logger) Option {
	return func(p *ClaimProtocol) {
		p.logger = logger
	}
}

// New creates a ClaimProtocol over the given key store and configuration.
func New(keys *keystore.KeyStore, cfg *config.Config, opts ...Option) *ClaimProtocol {
	p := &ClaimProtocol{
		keys:     keys,
		cfg:      cfg,
		resolve:  payment.Resolve,
		sink:     publish.Discard{},
		prover:   zk.StubProofEngine(),
		contract: zk.StubContractEngine(),
		hasher:   DefaultContentHasher,
		logger:   log.New(os.Stdout, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// requireKey fetches the current key pair, failing when none is stored.
func (p *ClaimProtocol) requireKey() (*keystore.KeyPair, error) {
	pair, err := p.keys.Retrieve()
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, walleterror.Newf(walleterror.KindNoKey, "no private key found")
	}
	return pair, nil
}

// Authenticate performs the DID-challenge handshake: it signs the nonce bytes
// and requests a payment authorization concurrently, and both must succeed.
//
// The signature covers the nonce alone, never the preimage. This asymmetry
// with ProveOwnership, whose signature covers the full field set, is kept
// deliberately.
func (p *ClaimProtocol) Authenticate(ctx context.Context, nonce string, backend payment.Backend, withdrawTo string) (string, string, error) {
	pair, err := p.requireKey()
	if err != nil {
		return "", "", err
	}

	var sigHex, preimage string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sigHex, err = signer.Sign([]byte(nonce), pair.PrivateKey)
		return err
	})
	g.Go(func() error {
		var err error
		preimage, err = backend.AuthorizePayment(gctx, p.cfg.AuthAmountSats, withdrawTo)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}

	return sigHex, preimage, nil
}

// ProveOwnership authorizes a payment through the selected wallet backend,
// assembles the ownership claim, signs it, and returns the transmissible
// pretty-printed form.
func (p *ClaimProtocol) ProveOwnership(ctx context.Context, walletType payment.WalletType, withdrawTo string, amountSats int) (string, error) {
	pair, err := p.requireKey()
	if err != nil {
		return "", err
	}

	backend, err := p.resolve(walletType)
	if err != nil {
		return "", err
	}

	preimage, err := backend.AuthorizePayment(ctx, amountSats, withdrawTo)
	if err != nil {
		return "", err
	}
	if p.metrics != nil {
		p.metrics.IncrementPaymentsAuthorized(walletType.String())
	}

	fields := claim.Fields{
		FieldWalletType: walletType.String(),
		FieldWithdrawTo: withdrawTo,
		FieldPaid:       "true",
		FieldPreimage:   preimage,
	}

	if p.incentivePaid(amountSats) {
		fields[FieldLoginPaid] = "true"
		p.handlePayoutSplit(withdrawTo, amountSats)
	}

	if err := fields.Sign(pair.PrivateKey); err != nil {
		// The payment cannot be rolled back at this layer; the error must
		// make clear it already went through.
		return "", fmt.Errorf("payment authorized (preimage %s) but claim signing failed: %w", preimage, err)
	}

	signed, err := fields.Pretty()
	if err != nil {
		return "", fmt.Errorf("payment authorized (preimage %s) but claim serialization failed: %w", preimage, err)
	}

	if p.metrics != nil {
		p.metrics.IncrementClaimsSigned("ownership")
	}
	return signed, nil
}

// incentivePaid is the incentive-eligibility policy: a fixed amount
// threshold.
func (p *ClaimProtocol) incentivePaid(amountSats int) bool {
	return amountSats >= p.cfg.IncentiveThresholdSats
}

// handlePayoutSplit records the payout split between the authenticating party
// and the platform share. Reporting only; no funds move here.
func (p *ClaimProtocol) handlePayoutSplit(withdrawTo string, amountSats int) {
	userShare := int(float64(amountSats) * p.cfg.UserShare)
	platformShare := amountSats - userShare
	p.logger.Printf("payout: user gets %d sats to %s, platform gets %d sats", userShare, withdrawTo, platformShare)
	if p.metrics != nil {
		p.metrics.RecordPayoutSplit(userShare, platformShare)
	}
}

// GenerateContentClaim produces a signed content claim binding a content hash
// to the signer's identifier and a payment destination. Caller-supplied
// metadata is merged in, caller keys winning on conflict. After signing, an
// anchor notification is published fire-and-forget; its failure never fails
// the call.
func (p *ClaimProtocol) GenerateContentClaim(ctx context.Context, contentURL, lnAddress string, metadata map[string]string) (string, error) {
	pair, err := p.requireKey()
	if err != nil {
		return "", err
	}

	contentHash, err := p.hasher(ctx, contentURL)
	if err != nil {
		return "", fmt.Errorf("failed to compute content hash: %w", err)
	}

	currentDID, err := p.keys.CurrentDID()
	if err != nil {
		return "", err
	}

	fields := claim.Fields{
		FieldCreatedBy:   currentDID,
		FieldContentHash: contentHash,
		FieldLNAddress:   lnAddress,
	}
	for key, value := range metadata {
		fields[key] = value
	}

	if err := fields.Sign(pair.PrivateKey); err != nil {
		return "", err
	}

	signed, err := fields.Pretty()
	if err != nil {
		return "", err
	}

	p.sink.Publish(KindContentClaim, signed)
	if p.metrics != nil {
		p.metrics.IncrementClaimsSigned("content")
	}
	return signed, nil
}

// GenerateComputationProof hashes the input and output independently, asks
// the proof engine for a proof over them, then signs a metadata digest that
// binds a hash of the proof to the circuit name. The proof itself is never
// signed directly, only the metadata digest.
//
// The metadata string format is fixed; verifiers reproduce it byte for byte.
func (p *ClaimProtocol) GenerateComputationProof(ctx context.Context, input, output []byte, circuit string) (string, string, error) {
	inputHash := sha256.Sum256(input)
	outputHash := sha256.Sum256(output)

	proof, err := p.prover.GenerateProof(ctx, circuit, hex.EncodeToString(inputHash[:]), hex.EncodeToString(outputHash[:]))
	if err != nil {
		return "", "", err
	}

	proofHash := sha256.Sum256([]byte(proof))
	metadata := fmt.Sprintf("proof_hash:%s,circuit:%s", hex.EncodeToString(proofHash[:]), circuit)

	pair, err := p.requireKey()
	if err != nil {
		return "", "", err
	}
	sigHex, err := signer.Sign([]byte(metadata), pair.PrivateKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign proof metadata: %w", err)
	}

	return proof, sigHex, nil
}

// CreateDLC builds a discreet-log contract through the contract engine.
func (p *ClaimProtocol) CreateDLC(outcome string, payout []float64, oraclePubKey string) (string, error) {
	return p.contract.CreateContract(outcome, payout, oraclePubKey)
}

// SignDLCOutcome signs a contract outcome through the contract engine.
func (p *ClaimProtocol) SignDLCOutcome(outcome string) (string, error) {
	return p.contract.SignOutcome(outcome)
}

// PublishProof hands a signed payload to the broadcast sink. Fire-and-forget.
func (p *ClaimProtocol) PublishProof(kind int, signedProof string) {
	p.sink.Publish(kind, signedProof)
}
