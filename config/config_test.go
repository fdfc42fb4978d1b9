package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	cfg := New(Config{})

	assert.Equal(t, DefaultMethod, cfg.Method)
	assert.Equal(t, DefaultKeychainService, cfg.KeychainService)
	assert.Equal(t, DefaultKeyAccount, cfg.KeyAccount)
	assert.Equal(t, DefaultAuthAmountSats, cfg.AuthAmountSats)
	assert.Equal(t, DefaultIncentiveThresholdSats, cfg.IncentiveThresholdSats)
	assert.Equal(t, DefaultUserShare, cfg.UserShare)
	assert.Equal(t, DefaultRelayURL, cfg.RelayURL)
}

func TestNewOverrides(t *testing.T) {
	cfg := New(Config{
		Method:         "did:example",
		AuthAmountSats: 250,
		UserShare:      0.8,
	})

	assert.Equal(t, "did:example", cfg.Method)
	assert.Equal(t, 250, cfg.AuthAmountSats)
	assert.Equal(t, 0.8, cfg.UserShare)
	// Unset values keep defaults.
	assert.Equal(t, DefaultKeychainService, cfg.KeychainService)
	assert.Equal(t, DefaultIncentiveThresholdSats, cfg.IncentiveThresholdSats)
}
