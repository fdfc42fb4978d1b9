package config

// Default values
const (
	// DefaultMethod is the DID method prefix prepended to the hex-encoded
	// public key when deriving an identifier.
	DefaultMethod = "did:btcr"

	// DefaultKeychainService and DefaultKeyAccount identify the single
	// secret slot in the secure store.
	DefaultKeychainService = "Privacy-Lion.DID-BTC"
	DefaultKeyAccount      = "btcdid.privatekey"

	// DefaultAuthAmountSats is the fixed payment amount requested during
	// the DID-challenge authentication handshake.
	DefaultAuthAmountSats = 100

	// DefaultIncentiveThresholdSats is the minimum payment amount that
	// qualifies a claim for the login incentive.
	DefaultIncentiveThresholdSats = 100

	// DefaultUserShare is the fraction of an incentive-eligible payment
	// credited to the authenticating party; the remainder is the platform
	// share.
	DefaultUserShare = 0.9

	DefaultRelayURL = "https://relay.privacylion.io/publish"
)

// Config holds the tunable policy values for wallet operations.
type Config struct {
	Method                 string
	KeychainService        string
	KeyAccount             string
	AuthAmountSats         int
	IncentiveThresholdSats int
	UserShare              float64
	RelayURL               string
}

// New creates a new Config instance with the provided values.
// If a value is empty/zero, it will use the default value.
// Pass an empty Config{} to use all defaults.
func New(cfg Config) *Config {
	result := &Config{
		Method:                 DefaultMethod,
		KeychainService:        DefaultKeychainService,
		KeyAccount:             DefaultKeyAccount,
		AuthAmountSats:         DefaultAuthAmountSats,
		IncentiveThresholdSats: DefaultIncentiveThresholdSats,
		UserShare:              DefaultUserShare,
		RelayURL:               DefaultRelayURL,
	}

	if cfg.Method != "" {
		result.Method = cfg.Method
	}
	if cfg.KeychainService != "" {
		result.KeychainService = cfg.KeychainService
	}
	if cfg.KeyAccount != "" {
		result.KeyAccount = cfg.KeyAccount
	}
	if cfg.AuthAmountSats != 0 {
		result.AuthAmountSats = cfg.AuthAmountSats
	}
	if cfg.IncentiveThresholdSats != 0 {
		result.IncentiveThresholdSats = cfg.IncentiveThresholdSats
	}
	if cfg.UserShare != 0 {
		result.UserShare = cfg.UserShare
	}
	if cfg.RelayURL != "" {
		result.RelayURL = cfg.RelayURL
	}

	return result
}
